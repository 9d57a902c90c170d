package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/openai-status/internal/application"
	appprobes "github.com/bryanwahyu/openai-status/internal/application/probes"
	"github.com/bryanwahyu/openai-status/internal/config"
	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
	"github.com/bryanwahyu/openai-status/internal/domain/probes"
	aoai "github.com/bryanwahyu/openai-status/internal/infra/ai/openai"
	"github.com/bryanwahyu/openai-status/internal/infra/azure"
	"github.com/bryanwahyu/openai-status/internal/infra/executor/process"
	"github.com/bryanwahyu/openai-status/internal/infra/logger"
	"github.com/bryanwahyu/openai-status/internal/infra/storage"
	"github.com/bryanwahyu/openai-status/internal/middleware"
)

// Prober is the part of the probe service the commands drive.
type Prober interface {
	RunAll(ctx context.Context, families, regions []string) (appprobes.Summary, error)
	RunScheduled(ctx context.Context, families, regions []string) (appprobes.Summary, error)
}

// app is everything a command needs, built once from configuration.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	directory accounts.Directory
	catalog   deployments.Catalog
	prober    Prober
	checkers  map[string]middleware.HealthChecker
}

// newApp loads configuration and wires the probe service.
func newApp(cfgPath, logLevel string) (*app, error) {
	// load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	// init az cli adapter
	az := azure.NewCLI(process.NewRunner(), cfg.Azure.Binary, cfg.Azure.ResourceGroup, cfg.Azure.Subscription,
		log.With().Str("component", "azure").Logger())

	// init report sink
	sink, err := newSink(cfg, log.With().Str("component", "storage").Logger())
	if err != nil {
		return nil, err
	}

	clock := application.SystemClock{}
	chat := aoai.NewClient(cfg.OpenAI.APIVersion, &http.Client{Timeout: cfg.OpenAI.Timeout})

	svc := &appprobes.Service{
		Directory: az,
		Catalog:   az,
		Runner:    appprobes.NewRunner(chat, probes.DefaultConversation(), probes.DefaultParams(), clock),
		Sink:      sink,
		Clock:     clock,
		Recorder:  middleware.Recorder{},
		Credentials: accounts.Credentials{
			AppID:    cfg.Azure.AppID,
			Secret:   cfg.Azure.AppSecret,
			TenantID: cfg.Azure.TenantID,
		},
		Log: log,
	}

	return &app{
		cfg:       cfg,
		log:       log,
		directory: az,
		catalog:   az,
		prober:    svc,
		checkers:  map[string]middleware.HealthChecker{"az": az},
	}, nil
}

// newSink picks the blob backend. A backend without its connection settings
// yields a Sink that only writes the local copy.
func newSink(cfg *config.Config, log zerolog.Logger) (*storage.Sink, error) {
	sink := &storage.Sink{
		Container: cfg.Storage.ContainerDocs,
		LocalDir:  cfg.Storage.LocalDir,
		Log:       log,
	}

	switch cfg.Storage.Backend {
	case config.StorageMinio:
		if cfg.Minio.Endpoint == "" {
			return sink, nil
		}
		store, err := storage.NewMinio(cfg.Minio.Endpoint, cfg.Minio.Region, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("minio init error: %w", err)
		}
		sink.Store = store
	default:
		if cfg.Storage.ConnectionString == "" {
			return sink, nil
		}
		store, err := storage.NewAzureStore(cfg.Storage.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("azure storage init error: %w", err)
		}
		sink.Store = store
	}
	return sink, nil
}
