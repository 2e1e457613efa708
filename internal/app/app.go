// Package app assembles the stores, LLM provider and services from
// configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/assessment"
	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/config"
	"github.com/abhisek/levelup/internal/feedback"
	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/logging"
	"github.com/abhisek/levelup/internal/metrics"
	"github.com/abhisek/levelup/internal/progress"
	"github.com/abhisek/levelup/internal/questions"
	"github.com/abhisek/levelup/internal/quiz"
	"github.com/abhisek/levelup/internal/server"
	"github.com/abhisek/levelup/internal/store"
	"github.com/abhisek/levelup/internal/topicgate"
)

// ErrNoProvider is returned by generation calls when no LLM provider is
// configured.
var ErrNoProvider = errors.New("no LLM provider configured: set llm.provider or a vendor API key")

// unconfigured fails every call so the read-only surface still works
// without credentials.
type unconfigured struct{}

func (unconfigured) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, &llm.ErrProviderUnavailable{Err: ErrNoProvider}
}

func (unconfigured) ModelID() string { return "none" }

// App holds the wired components.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *store.Store
	Metrics *metrics.Metrics

	Provider    llm.Provider
	HasLLM      bool
	Generator   *questions.LLMGenerator
	Seeder      *questions.Seeder
	Catalog     *catalog.Service
	Assessments *assessment.Service
	Quizzes     *quiz.Service
	Feedback    *feedback.Service
	Progress    *progress.Service
	TopicGate   topicgate.Gate
	ownsLogger  bool
}

// Option adjusts New.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	provider llm.Provider
}

// WithLogger uses l instead of building one from the log config.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProvider uses p instead of building one from the llm config.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.provider = p }
}

// New opens the database at dsn and wires every service.
func New(ctx context.Context, cfg *config.Config, dsn string, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Metrics: metrics.New()}

	a.Logger = o.logger
	if a.Logger == nil {
		l, err := logging.New(cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		a.Logger = l
		a.ownsLogger = true
	}

	st, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.Store = st

	a.Provider = o.provider
	if a.Provider == nil {
		a.Provider, a.HasLLM, err = a.buildProvider(ctx)
		if err != nil {
			st.Close()
			return nil, err
		}
	} else {
		a.HasLLM = true
	}

	a.wire()
	return a, nil
}

func (a *App) buildProvider(ctx context.Context) (llm.Provider, bool, error) {
	llmCfg, ok := a.Config.LLMProviderConfig()
	if !ok {
		a.Logger.Warn("LLM provider not configured; generation features are unavailable")
		return unconfigured{}, false, nil
	}
	p, err := llm.NewProvider(ctx, llmCfg, llm.Deps{
		EventRepo: a.Store.Events(),
		Logger:    a.Logger,
		Observer:  a.Metrics,
	})
	if err != nil {
		return nil, false, fmt.Errorf("LLM provider: %w", err)
	}
	a.Logger.Info("LLM provider ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", p.ModelID()),
		zap.Duration("timeout", llmCfg.Timeout))
	return p, true, nil
}

func (a *App) wire() {
	cfg, st, log := a.Config, a.Store, a.Logger

	a.Catalog = catalog.NewService(st.Catalog(), log.Named("catalog"))
	a.Generator = questions.New(a.Provider, questions.DefaultConfig())
	a.Seeder = questions.NewSeeder(a.Generator, st.Questions(), log.Named("seeder"))
	a.TopicGate = topicgate.NewLLMGate(a.Provider, topicgate.DefaultConfig())

	composer := assessment.NewComposer(a.Generator, st.Questions(), questions.NewSampler(nil), cfg.ComposerConfig(), log.Named("composer"))
	a.Assessments = assessment.NewService(st.Assessments(), a.Catalog, composer,
		assessment.WithPassThreshold(cfg.Assessment.PassThreshold),
		assessment.WithRecorder(a.Metrics),
		assessment.WithLogger(log.Named("assessment")))

	a.Progress = progress.NewService(st.Users(), st.Attempts(), st.Placements(), a.Catalog, log.Named("progress"))
	a.Quizzes = quiz.NewService(quiz.Deps{
		Quizzes:   st.Quizzes(),
		Attempts:  st.Attempts(),
		Levels:    a.Catalog,
		Gate:      a.TopicGate,
		Generator: a.Generator,
		Streaks:   a.Progress,
		Recorder:  a.Metrics,
		Logger:    log.Named("quiz"),
	}, quiz.Config{
		MinQuestions:     cfg.Quiz.MinQuestions,
		MaxQuestions:     cfg.Quiz.MaxQuestions,
		DefaultQuestions: cfg.Quiz.DefaultQuestions,
	})
	a.Feedback = feedback.NewService(st.Attempts(), st.Quizzes(), a.Catalog,
		feedback.NewGenerator(a.Provider, feedback.DefaultConfig()))
}

// Server builds the HTTP server over the wired services.
func (a *App) Server() *server.Server {
	return server.New(a.Config.Server, server.Services{
		Catalog:     a.Catalog,
		Assessments: a.Assessments,
		Quizzes:     a.Quizzes,
		Feedback:    a.Feedback,
		Progress:    a.Progress,
	}, a.Metrics, a.Store, a.Logger)
}

// SeedCatalog upserts the built-in subjects.
func (a *App) SeedCatalog(ctx context.Context) error {
	return a.Catalog.Seed(ctx, catalog.Builtin())
}

// FillPools tops every subject's question pool up to perLevel questions.
func (a *App) FillPools(ctx context.Context, perLevel int) (map[string]questions.FillResult, error) {
	if !a.HasLLM {
		return nil, ErrNoProvider
	}
	subjects, err := a.Catalog.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]questions.FillResult, len(subjects))
	for _, s := range subjects {
		res, err := a.Seeder.Fill(ctx, s, perLevel)
		out[s.ID] = res
		if err != nil {
			return out, fmt.Errorf("fill %s: %w", s.ID, err)
		}
	}
	return out, nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	if a.ownsLogger && a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return err
}
