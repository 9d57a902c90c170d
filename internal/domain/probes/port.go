package probes

import "context"

// ChatRequest is everything a ChatClient needs to call one deployment.
type ChatRequest struct {
	Endpoint   string
	Key        string
	Deployment string
	Model      string
	Messages   []Message
	Params     Params
}

// ChatClient port (chat completion endpoint). Returns the first choice content.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ReportSink port (upload of the serialized report). An empty URL with a nil
// error means the sink is not configured and nothing was uploaded.
type ReportSink interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// Recorder receives probe and run outcomes, e.g. for metrics.
type Recorder interface {
	ObserveProbe(res ProbeResult)
	ObserveRun(modelFamily string, err error)
}

type NopRecorder struct{}

func (NopRecorder) ObserveProbe(ProbeResult)  {}
func (NopRecorder) ObserveRun(string, error) {}
