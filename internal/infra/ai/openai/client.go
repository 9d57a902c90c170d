package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/openai-status/internal/domain/probes"
)

const DefaultAPIVersion = "2023-05-15"

// Client calls Azure OpenAI chat deployments. Endpoint and key come with every
// request, so one Client serves all accounts.
type Client struct {
	APIVersion string
	HTTPClient *http.Client
}

func NewClient(apiVersion string, httpClient *http.Client) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{APIVersion: apiVersion, HTTPClient: httpClient}
}

func (c *Client) api(endpoint, key string) *openai.Client {
	cfg := openai.DefaultAzureConfig(key, endpoint)
	cfg.APIVersion = c.APIVersion
	// deployment names are used verbatim in the URL
	cfg.AzureModelMapperFunc = func(model string) string { return model }
	if c.HTTPClient != nil {
		cfg.HTTPClient = c.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

// isReasoningModel: o1/o3/o4/gpt-5* reject temperature and max_tokens
func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func (c *Client) Complete(ctx context.Context, in probes.ChatRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(in.Messages))
	for _, m := range in.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:            in.Deployment,
		Messages:         msgs,
		FrequencyPenalty: in.Params.FrequencyPenalty,
		PresencePenalty:  in.Params.PresencePenalty,
		Stop:             in.Params.Stop,
	}
	if isReasoningModel(in.Model) {
		req.MaxCompletionTokens = in.Params.MaxTokens
	} else {
		req.MaxTokens = in.Params.MaxTokens
		req.Temperature = in.Params.Temperature
		req.TopP = in.Params.TopP
	}

	resp, err := c.api(in.Endpoint, in.Key).CreateChatCompletion(ctx, req)
	if err != nil {
		if isQuotaError(err) {
			return "", fmt.Errorf("%w: %v", probes.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func isQuotaError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
