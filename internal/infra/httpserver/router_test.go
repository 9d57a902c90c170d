package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appprobes "github.com/bryanwahyu/openai-status/internal/application/probes"
	"github.com/bryanwahyu/openai-status/internal/domain/probes"
	"github.com/bryanwahyu/openai-status/internal/middleware"
)

type fakeProber struct {
	families, regions []string
	summary           appprobes.Summary
	err               error
	calls             int
}

func (f *fakeProber) RunAll(_ context.Context, families, regions []string) (appprobes.Summary, error) {
	f.calls++
	f.families, f.regions = families, regions
	return f.summary, f.err
}

func newTestRouter(p Prober) http.Handler {
	return NewRouter(p, Options{
		Families: []string{"gpt-4", "gpt-35-turbo"},
		HealthCheckers: map[string]middleware.HealthChecker{
			"az": middleware.CheckerFunc(func(context.Context) error { return nil }),
		},
		Log: zerolog.Nop(),
	})
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRunReturnsSummaryText(t *testing.T) {
	p := &fakeProber{summary: appprobes.Summary{Runs: []appprobes.FamilyTiming{
		{ModelFamily: "gpt-4", Seconds: 2},
		{ModelFamily: "gpt-35-turbo", Seconds: 1.5},
	}}}
	rec := do(newTestRouter(p), http.MethodGet, "/api/openai_status_run")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "All tests run successfully: Test for gpt-4 took 2 seconds, Test for gpt-35-turbo took 1.5 seconds. Total duration 3.5 seconds.", rec.Body.String())
	assert.Equal(t, []string{"gpt-4", "gpt-35-turbo"}, p.families)
	assert.Empty(t, p.regions)
}

func TestRunAcceptsPostAndQueryFilters(t *testing.T) {
	p := &fakeProber{}
	rec := do(newTestRouter(p), http.MethodPost, "/api/openai_status_run?model_family=gpt-4o&region=eastus&region=swedencentral")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"gpt-4o"}, p.families)
	assert.Equal(t, []string{"eastus", "swedencentral"}, p.regions)
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	for _, target := range []string{
		"/api/openai_status_run?model_family=gpt-4%3Brm",
		"/api/openai_status_run?region=East%20US",
	} {
		p := &fakeProber{}
		rec := do(newTestRouter(p), http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Zero(t, p.calls)
	}
}

func TestRunErrorStatusCodes(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("probe a/b: %w", probes.ErrQuotaExceeded): http.StatusTooManyRequests,
		errors.New("directory list: exit status 1"):          http.StatusInternalServerError,
	}
	for err, code := range cases {
		rec := do(newTestRouter(&fakeProber{err: err}), http.MethodGet, "/api/openai_status_run")
		assert.Equal(t, code, rec.Code, err.Error())
	}
}

func TestProbeRoutes(t *testing.T) {
	h := newTestRouter(&fakeProber{})

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/ready").Code)

	live := do(h, http.MethodGet, "/live")
	assert.Equal(t, "ok", live.Body.String())

	metrics := do(h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "openai_status_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/openai_status_run", nil)
	req.Header.Set("Origin", "https://portal.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newTestRouter(&fakeProber{}).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
