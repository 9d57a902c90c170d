package probes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
	domain "github.com/bryanwahyu/openai-status/internal/domain/probes"
)

type fixture struct {
	dir      *fakeDirectory
	catalog  *fakeCatalog
	chat     *fakeChat
	sink     *fakeSink
	recorder *fakeRecorder
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		dir: &fakeDirectory{accounts: []accounts.ServiceAccount{
			{Name: "aoai-swe", Endpoint: "https://swe.example/", Location: "swedencentral"},
			{Name: "aoai-eus", Endpoint: "https://eus.example/", Location: "eastus"},
		}},
		catalog: &fakeCatalog{byAccount: map[string][]deployments.Deployment{
			"aoai-swe": {chatDep("aoai-swe", "gpt4", "gpt-4", "0613")},
		}},
		chat:     &fakeChat{reply: "fine"},
		sink:     &fakeSink{url: "https://acct.core.windows.net/docs/x.csv"},
		recorder: &fakeRecorder{},
	}
	clock := newStepClock(time.Second)
	f.svc = &Service{
		Directory: f.dir,
		Catalog:   f.catalog,
		Runner:    NewRunner(f.chat, domain.DefaultConversation(), domain.DefaultParams(), clock),
		Sink:      f.sink,
		Clock:     clock,
		Recorder:  f.recorder,
		Log:       zerolog.Nop(),
	}
	return f
}

func TestRunSkipsAccountWithoutDeployments(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Run(context.Background(), "gpt-4", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"aoai-swe", "aoai-eus"}, f.catalog.calls)
	require.Len(t, f.chat.requests, 1)
	assert.Equal(t, "key-aoai-swe", f.chat.requests[0].Key)

	require.Equal(t, 1, res.Report.Len())
	row := res.Report.Rows()[0]
	assert.Equal(t, "aoai-swe", row.Service)
	assert.Equal(t, domain.DefaultConversation().Length()+len("fine"), row.Length)

	require.Len(t, f.sink.uploads, 1)
	up := f.sink.uploads[0]
	assert.True(t, strings.HasPrefix(up.filename, "call_log"))
	assert.True(t, strings.HasSuffix(up.filename, ".csv"))
	assert.Equal(t, res.Filename, up.filename)
	lines := strings.Split(strings.TrimSpace(up.data), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(domain.Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "aoai-swe,gpt4,0613,gpt-4,"))

	assert.Equal(t, "https://acct.core.windows.net/docs/x.csv", res.URL)
	require.NotNil(t, res.Stats)
	assert.Equal(t, "aoai-swe", res.Stats.MaxService)
	assert.Len(t, f.recorder.probes, 1)
	assert.Equal(t, []error{nil}, f.recorder.runs)
}

func TestRunFiltersByModelFamily(t *testing.T) {
	f := newFixture()
	f.catalog.byAccount["aoai-eus"] = []deployments.Deployment{
		chatDep("aoai-eus", "gpt35", "gpt-35-turbo", "0301"),
		{ID: "ada", Capability: deployments.CapabilityEmbeddings, Model: "gpt-35-turbo"},
		chatDep("aoai-eus", "gpt35-16k", "gpt-35-turbo-16k", "0613"),
	}

	res, err := f.svc.Run(context.Background(), "gpt-35-turbo", nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Report.Len())
	assert.Equal(t, "gpt35", res.Report.Rows()[0].Deployment)
}

func TestRunRegionFilter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Run(context.Background(), "gpt-4", []string{"eastus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"aoai-eus"}, f.catalog.calls)
	assert.Empty(t, f.chat.requests)
}

func TestRunEmptyReportStillUploadsHeader(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Run(context.Background(), "gpt-4o", nil)
	require.NoError(t, err)

	assert.Zero(t, res.Report.Len())
	assert.Nil(t, res.Stats)
	require.Len(t, f.sink.uploads, 1)
	assert.Equal(t, strings.Join(domain.Columns, ",")+"\n", f.sink.uploads[0].data)
}

func TestRunProbeFailureAbortsWithoutUpload(t *testing.T) {
	f := newFixture()
	f.catalog.byAccount["aoai-eus"] = []deployments.Deployment{chatDep("aoai-eus", "gpt4-eus", "gpt-4", "0613")}
	f.chat.errFor = map[string]error{"gpt4-eus": errors.New("503 service unavailable")}

	_, err := f.svc.Run(context.Background(), "gpt-4", nil)
	var perr *domain.ProbeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "gpt4-eus", perr.Deployment)
	assert.Empty(t, f.sink.uploads)
	require.Len(t, f.recorder.runs, 1)
	assert.Error(t, f.recorder.runs[0])
}

func TestRunDirectoryErrorPropagates(t *testing.T) {
	f := newFixture()
	f.dir.listErr = &accounts.DirectoryError{Op: "list", Err: errors.New("exit status 1")}

	_, err := f.svc.Run(context.Background(), "gpt-4", nil)
	var derr *accounts.DirectoryError
	require.ErrorAs(t, err, &derr)
	assert.Empty(t, f.catalog.calls)
	assert.Empty(t, f.sink.uploads)
}

func TestRunDeploymentErrorPropagates(t *testing.T) {
	f := newFixture()
	f.catalog.err = &deployments.DeploymentError{Op: "list", Account: "aoai-swe", Err: errors.New("bad json")}

	_, err := f.svc.Run(context.Background(), "gpt-4", nil)
	var derr *deployments.DeploymentError
	require.ErrorAs(t, err, &derr)
	assert.Empty(t, f.sink.uploads)
}

func TestRunSinkErrorPropagates(t *testing.T) {
	f := newFixture()
	f.sink.err = errors.New("upload failed")

	_, err := f.svc.Run(context.Background(), "gpt-4", nil)
	assert.EqualError(t, err, "upload failed")
}

func TestRunWithoutSink(t *testing.T) {
	f := newFixture()
	f.svc.Sink = nil

	res, err := f.svc.Run(context.Background(), "gpt-4", nil)
	require.NoError(t, err)
	assert.Empty(t, res.URL)
	assert.NotEmpty(t, res.Filename)
}

func TestRunAllRunsFamiliesInOrder(t *testing.T) {
	f := newFixture()
	f.catalog.byAccount["aoai-eus"] = []deployments.Deployment{chatDep("aoai-eus", "gpt35", "gpt-35-turbo", "0301")}

	sum, err := f.svc.RunAll(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, sum.Runs, 2)
	assert.Equal(t, "gpt-4", sum.Runs[0].ModelFamily)
	assert.Equal(t, 1, sum.Runs[0].Rows)
	assert.Equal(t, "gpt-35-turbo", sum.Runs[1].ModelFamily)
	assert.Equal(t, 1, sum.Runs[1].Rows)
	assert.Len(t, f.sink.uploads, 2)
	for _, r := range sum.Runs {
		assert.Greater(t, r.Seconds, 0.0)
	}
}

func TestRunAllStopsAtFirstError(t *testing.T) {
	f := newFixture()
	f.chat.errFor = map[string]error{"gpt4": errors.New("timeout")}

	sum, err := f.svc.RunAll(context.Background(), []string{"gpt-4", "gpt-35-turbo"}, nil)
	require.Error(t, err)
	assert.Empty(t, sum.Runs)
	assert.Len(t, f.recorder.runs, 1)
}

func TestRunScheduledLogsInWhenCredentialsComplete(t *testing.T) {
	f := newFixture()
	f.svc.Credentials = accounts.Credentials{AppID: "app", Secret: "s3cr3t", TenantID: "tenant"}

	_, err := f.svc.RunScheduled(context.Background(), []string{"gpt-4"}, nil)
	require.NoError(t, err)
	require.Len(t, f.dir.logins, 1)
	assert.Equal(t, "app", f.dir.logins[0].AppID)
}

func TestRunScheduledSkipsLoginWithoutCredentials(t *testing.T) {
	f := newFixture()

	_, err := f.svc.RunScheduled(context.Background(), []string{"gpt-4"}, nil)
	require.NoError(t, err)
	assert.Empty(t, f.dir.logins)
}

func TestRunScheduledLoginFailure(t *testing.T) {
	f := newFixture()
	f.svc.Credentials = accounts.Credentials{AppID: "app", Secret: "s", TenantID: "t"}
	f.dir.loginErr = &accounts.DirectoryError{Op: "login", Err: errors.New("AADSTS7000215")}

	_, err := f.svc.RunScheduled(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Empty(t, f.catalog.calls)
}

func TestSummaryString(t *testing.T) {
	sum := Summary{Runs: []FamilyTiming{
		{ModelFamily: "gpt-4", Seconds: 12.5},
		{ModelFamily: "gpt-35-turbo", Seconds: 3.25},
	}}
	assert.Equal(t, 15.75, sum.Total())
	assert.Equal(t,
		"All tests run successfully: Test for gpt-4 took 12.5 seconds, Test for gpt-35-turbo took 3.25 seconds. Total duration 15.75 seconds.",
		sum.String())
}
