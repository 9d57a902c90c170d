package probes

import (
	"slices"
	"unicode/utf8"
)

// Role of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	DefaultSystemPrompt = "Assistant is a large language model trained by OpenAI."
	DefaultUserMessage  = "How are you?"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the canned request sent by every probe.
// It is immutable: Messages hands out a copy.
type Conversation struct {
	messages []Message
}

func NewConversation(system, user string) Conversation {
	return Conversation{messages: []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}}
}

// DefaultConversation is the system prompt + "How are you?" pair.
func DefaultConversation() Conversation {
	return NewConversation(DefaultSystemPrompt, DefaultUserMessage)
}

func (c Conversation) Messages() []Message { return slices.Clone(c.messages) }

// Length is the total character count of all messages.
func (c Conversation) Length() int { return MessagesLength(c.messages) }

// MessagesLength counts characters (runes, not bytes) across msgs.
func MessagesLength(msgs []Message) int {
	n := 0
	for _, m := range msgs {
		n += utf8.RuneCountInString(m.Content)
	}
	return n
}

// Params are the sampling parameters of a probe request.
type Params struct {
	Temperature      float32
	MaxTokens        int
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
	Stop             []string
}

func DefaultParams() Params {
	return Params{
		Temperature: 0.7,
		MaxTokens:   800,
		TopP:        0.95,
	}
}
