package probes

import (
	"context"
	"sync"
	"time"

	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
	domain "github.com/bryanwahyu/openai-status/internal/domain/probes"
)

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2024, 3, 1, 7, 5, 0, 0, time.UTC), step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type fakeDirectory struct {
	accounts []accounts.ServiceAccount
	listErr  error
	loginErr error
	logins   []accounts.Credentials
}

func (f *fakeDirectory) ListAccounts(context.Context) (*accounts.Set, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return accounts.NewSet(f.accounts...), nil
}

func (f *fakeDirectory) FetchKey(_ context.Context, name string) (string, error) {
	return "key-" + name, nil
}

func (f *fakeDirectory) Login(_ context.Context, c accounts.Credentials) error {
	f.logins = append(f.logins, c)
	return f.loginErr
}

type fakeCatalog struct {
	byAccount map[string][]deployments.Deployment
	err       error
	calls     []string
}

func (f *fakeCatalog) ListDeployments(_ context.Context, account string) ([]deployments.Deployment, error) {
	f.calls = append(f.calls, account)
	if f.err != nil {
		return nil, f.err
	}
	return f.byAccount[account], nil
}

type fakeChat struct {
	reply    string
	errFor   map[string]error
	requests []domain.ChatRequest
}

func (f *fakeChat) Complete(_ context.Context, req domain.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	if err := f.errFor[req.Deployment]; err != nil {
		return "", err
	}
	return f.reply, nil
}

type upload struct {
	data     string
	filename string
}

type fakeSink struct {
	url     string
	err     error
	uploads []upload
}

func (f *fakeSink) Upload(_ context.Context, data []byte, filename string) (string, error) {
	f.uploads = append(f.uploads, upload{data: string(data), filename: filename})
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeRecorder struct {
	probes []domain.ProbeResult
	runs   []error
}

func (f *fakeRecorder) ObserveProbe(r domain.ProbeResult) { f.probes = append(f.probes, r) }

func (f *fakeRecorder) ObserveRun(_ string, err error) { f.runs = append(f.runs, err) }

func chatDep(account, id, model, version string) deployments.Deployment {
	return deployments.Deployment{ID: id, Capability: deployments.CapabilityChatCompletion, Model: model, Version: version, Account: account}
}
