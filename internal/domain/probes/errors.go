package probes

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded indicates the provider returned a quota/limit error (HTTP 429).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrNotChatDeployment is returned when probing a deployment that is not chat-completion.
var ErrNotChatDeployment = errors.New("deployment is not a chat-completion deployment")

// ProbeError wraps a failed chat completion call.
type ProbeError struct {
	Service    string
	Deployment string
	Err        error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s/%s: %v", e.Service, e.Deployment, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }
