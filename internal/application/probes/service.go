package probes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/openai-status/internal/application"
	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
	domain "github.com/bryanwahyu/openai-status/internal/domain/probes"
)

// DefaultModelFamilies are probed, in order, when no family is requested.
var DefaultModelFamilies = []string{"gpt-4", "gpt-35-turbo"}

// Service implements the probe run use-cases.
// A run is strictly sequential; the Service holds no per-run state.
type Service struct {
	Directory   accounts.Directory
	Catalog     deployments.Catalog
	Runner      *Runner
	Sink        domain.ReportSink
	Clock       application.Clock
	Recorder    domain.Recorder
	Credentials accounts.Credentials
	Log         zerolog.Logger
}

// RunResult is the outcome of one successful Run.
type RunResult struct {
	RunID       string
	ModelFamily string
	Report      *domain.Report
	Filename    string
	URL         string
	Stats       *domain.Stats
	Elapsed     time.Duration
}

// Run discovers accounts and deployments, probes every matching chat deployment
// and uploads the report. Any error aborts the run and nothing is uploaded.
func (s *Service) Run(ctx context.Context, modelFamily string, regions []string) (RunResult, error) {
	res, err := s.run(ctx, modelFamily, regions)
	s.recorder().ObserveRun(modelFamily, err)
	return res, err
}

func (s *Service) run(ctx context.Context, modelFamily string, regions []string) (RunResult, error) {
	started := s.Clock.Now()
	res := RunResult{RunID: uuid.NewString(), ModelFamily: modelFamily, Report: &domain.Report{}}
	log := s.Log.With().Str("run_id", res.RunID).Str("model_family", modelFamily).Logger()

	log.Info().Msg("preparing to test services")
	services, err := accounts.Services(ctx, s.Directory)
	if err != nil {
		return RunResult{}, err
	}
	log.Info().Int("count", services.Len()).Msg("found services")

	if len(regions) > 0 {
		services = services.FilterByRegion(regions)
		log.Info().Int("count", services.Len()).Strs("regions", regions).Msg("filtered services by region")
	}

	for _, acct := range services.List() {
		deps, err := s.Catalog.ListDeployments(ctx, acct.Name)
		if err != nil {
			return RunResult{}, err
		}
		if len(deps) == 0 {
			log.Info().Str("service", acct.Name).Msg("no deployments found for service")
			continue
		}

		chat := deployments.ChatDeployments(deps, modelFamily)
		if len(chat) == 0 {
			log.Debug().Str("service", acct.Name).Int("deployments", len(deps)).Msg("no deployment found for model family")
			continue
		}

		for _, dep := range chat {
			log.Info().Str("service", acct.Name).Str("deployment", dep.ID).Str("version", dep.Version).Msg("testing deployment")
			pr, err := s.Runner.Probe(ctx, acct, dep, modelFamily)
			if err != nil {
				return RunResult{}, err
			}
			s.recorder().ObserveProbe(pr)
			res.Report.Append(pr)
		}
	}

	data, err := res.Report.CSV()
	if err != nil {
		return RunResult{}, err
	}
	res.Filename = domain.LogFilename(s.Clock.Now())
	if s.Sink != nil {
		url, err := s.Sink.Upload(ctx, data, res.Filename)
		if err != nil {
			return RunResult{}, err
		}
		res.URL = url
	}
	if res.URL != "" {
		log.Info().Str("url", res.URL).Msg("call log saved")
	} else {
		log.Warn().Str("file", res.Filename).Msg("call log not uploaded: storage not configured")
	}

	if stats, ok := res.Report.Stats(); ok {
		res.Stats = &stats
		log.Info().Float64("duration", stats.MaxDuration).Str("service", stats.MaxService).Msg("max duration")
		log.Info().Float64("duration", stats.MinDuration).Str("service", stats.MinService).Msg("min duration")
		log.Info().Float64("duration", stats.MeanDuration).Msg("average duration")
	} else {
		log.Warn().Msg("no results")
	}

	res.Elapsed = s.Clock.Now().Sub(started)
	return res, nil
}

// RunAll runs each model family in order and stops at the first error.
func (s *Service) RunAll(ctx context.Context, families, regions []string) (Summary, error) {
	if len(families) == 0 {
		families = DefaultModelFamilies
	}
	var sum Summary
	for _, family := range families {
		start := s.Clock.Now()
		res, err := s.Run(ctx, family, regions)
		if err != nil {
			return sum, err
		}
		sum.Runs = append(sum.Runs, FamilyTiming{
			ModelFamily: family,
			Seconds:     application.Seconds(start, s.Clock.Now()),
			Rows:        res.Report.Len(),
			URL:         res.URL,
		})
	}
	return sum, nil
}

// RunScheduled logs in with the service principal (when configured) and runs all families.
func (s *Service) RunScheduled(ctx context.Context, families, regions []string) (Summary, error) {
	if s.Credentials.Complete() {
		if err := s.Directory.Login(ctx, s.Credentials); err != nil {
			return Summary{}, err
		}
	}
	return s.RunAll(ctx, families, regions)
}

func (s *Service) recorder() domain.Recorder {
	if s.Recorder == nil {
		return domain.NopRecorder{}
	}
	return s.Recorder
}
