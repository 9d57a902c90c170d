package probes

import (
	"time"
)

// ProbeResult is one timed chat-completion exchange against a deployment.
type ProbeResult struct {
	Service     string    `json:"service"`
	Deployment  string    `json:"deployment"`
	Version     string    `json:"version"`
	ModelFamily string    `json:"model_family"`
	StartTime   time.Time `json:"start_time"`
	Duration    float64   `json:"duration"` // seconds
	Length      int       `json:"length"`   // request + response characters
}
