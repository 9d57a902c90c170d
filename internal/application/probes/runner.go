package probes

import (
	"context"
	"unicode/utf8"

	"github.com/bryanwahyu/openai-status/internal/application"
	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
	domain "github.com/bryanwahyu/openai-status/internal/domain/probes"
)

// Runner issues one timed chat completion per deployment.
type Runner struct {
	Chat         domain.ChatClient
	Conversation domain.Conversation
	Params       domain.Params
	Clock        application.Clock
}

func NewRunner(chat domain.ChatClient, conv domain.Conversation, params domain.Params, clock application.Clock) *Runner {
	return &Runner{Chat: chat, Conversation: conv, Params: params, Clock: clock}
}

// Probe calls the deployment once, without retry. Only the chat call itself is timed.
func (r *Runner) Probe(ctx context.Context, acct accounts.ServiceAccount, dep deployments.Deployment, modelFamily string) (domain.ProbeResult, error) {
	if !dep.IsChat() {
		return domain.ProbeResult{}, &domain.ProbeError{Service: acct.Name, Deployment: dep.ID, Err: domain.ErrNotChatDeployment}
	}

	msgs := r.Conversation.Messages()
	req := domain.ChatRequest{
		Endpoint:   acct.Endpoint,
		Key:        acct.Key,
		Deployment: dep.ID,
		Model:      dep.Model,
		Messages:   msgs,
		Params:     r.Params,
	}

	start := r.Clock.Now()
	content, err := r.Chat.Complete(ctx, req)
	end := r.Clock.Now()
	if err != nil {
		return domain.ProbeResult{}, &domain.ProbeError{Service: acct.Name, Deployment: dep.ID, Err: err}
	}

	return domain.ProbeResult{
		Service:     acct.Name,
		Deployment:  dep.ID,
		Version:     dep.Version,
		ModelFamily: modelFamily,
		StartTime:   start,
		Duration:    application.Seconds(start, end),
		Length:      domain.MessagesLength(msgs) + utf8.RuneCountInString(content),
	}, nil
}
