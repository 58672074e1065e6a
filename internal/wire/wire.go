// Package wire assembles the application from configuration.
// The CLI shares one lazily built App per process; tests build their own with New.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	cliadapter "github.com/example/enscope/internal/adapters/cli"
	"github.com/example/enscope/internal/adapters/filesystem"
	"github.com/example/enscope/internal/adapters/httpapi"
	"github.com/example/enscope/internal/adapters/llm"
	"github.com/example/enscope/internal/adapters/metrics"
	"github.com/example/enscope/internal/adapters/passphrase"
	"github.com/example/enscope/internal/adapters/render"
	"github.com/example/enscope/internal/adapters/sqlite"
	"github.com/example/enscope/internal/app"
	"github.com/example/enscope/internal/config"
	"github.com/example/enscope/internal/db"
	"github.com/example/enscope/internal/logging"
	"github.com/example/enscope/internal/ports/secondary"
)

// App holds every long-lived component.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sql.DB
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
	Hasher   *passphrase.Hasher
	Prompts  *filesystem.PromptStore
	HTML     *render.HTMLRenderer

	Generator secondary.TextGenerator
	Services  httpapi.Services
}

// New opens the database and builds the services for cfg.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	database, err := db.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	html, err := render.NewHTMLRenderer()
	if err != nil {
		database.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(database, "enscope"),
	)
	recorder := metrics.New(registry)

	generator, err := llm.New(llm.Config{
		Backend:           cfg.LLM.Backend,
		Model:             cfg.LLM.Model,
		APIKey:            cfg.LLM.APIKey.Value(),
		BaseURL:           cfg.LLM.BaseURL,
		Timeout:           cfg.LLM.Timeout,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	}, recorder, logger)
	if err != nil {
		database.Close()
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        database,
		Registry:  registry,
		Metrics:   recorder,
		Hasher:    passphrase.NewHasher(cfg.Auth.BcryptCost),
		Prompts:   filesystem.NewPromptStore(cfg.Prompts.Dir),
		HTML:      html,
		Generator: generator,
	}
	a.Services = a.buildServices()
	return a, nil
}

func (a *App) buildServices() httpapi.Services {
	// Create repository adapters (secondary ports)
	projectRepo := sqlite.NewProjectRepository(a.DB)
	workflowRepo := sqlite.NewWorkflowRepository(a.DB)
	stepRepo := sqlite.NewStepRepository(a.DB)
	scoreRepo := sqlite.NewScoreRepository(a.DB)
	gapRepo := sqlite.NewGapRepository(a.DB)

	cfg := a.Config
	return httpapi.Services{
		Projects:  app.NewProjectService(projectRepo, workflowRepo, a.Hasher, a.Logger),
		Workflows: app.NewWorkflowService(workflowRepo, stepRepo, a.Logger),
		Scores: app.NewScoreService(app.ScoreServiceDeps{
			Projects:  projectRepo,
			Workflows: workflowRepo,
			Steps:     stepRepo,
			Scores:    scoreRepo,
			Gaps:      gapRepo,
			Generator: a.Generator,
			Metrics:   a.Metrics,
			Logger:    a.Logger,
		}, app.ScoreConfig{
			Policy:      cfg.PenaltyPolicy(),
			Concurrency: cfg.Scoring.Concurrency,
			MaxTokens:   cfg.LLM.MaxTokens,
		}),
		Gaps:     app.NewGapService(gapRepo, projectRepo),
		Assist:   app.NewAssistService(projectRepo, workflowRepo, gapRepo, a.Prompts, a.Generator, a.Logger, cfg.LLM.MaxTokens),
		Diagrams: app.NewDiagramService(workflowRepo, stepRepo),
		Reports: app.NewReportService(app.ReportServiceDeps{
			Projects:  projectRepo,
			Workflows: workflowRepo,
			Steps:     stepRepo,
			Gaps:      gapRepo,
			Generator: a.Generator,
			Logger:    a.Logger,
			MaxTokens: cfg.LLM.ReportMaxTokens,
		}),
	}
}

// Router returns the HTTP API with metrics mounted.
func (a *App) Router() *gin.Engine {
	return httpapi.NewRouter(httpapi.Deps{
		Services: a.Services,
		HTML:     a.HTML,
		Metrics:  a.Metrics,
		Gatherer: a.Registry,
		Logger:   a.Logger,
	})
}

// Server returns an HTTP server for the configured address.
func (a *App) Server() *httpapi.Server {
	s := a.Config.Server
	return httpapi.NewServer(httpapi.ServerConfig{
		Addr:            s.Addr(),
		ReadTimeout:     s.ReadTimeout,
		WriteTimeout:    s.WriteTimeout,
		ShutdownTimeout: s.ShutdownTimeout,
	}, a.Router(), a.Logger)
}

// ProjectAdapter returns a ProjectAdapter writing to out.
func (a *App) ProjectAdapter(out io.Writer) *cliadapter.ProjectAdapter {
	return cliadapter.NewProjectAdapter(a.Services.Projects, out)
}

// GapAdapter returns a GapAdapter writing to out.
func (a *App) GapAdapter(out io.Writer) *cliadapter.GapAdapter {
	return cliadapter.NewGapAdapter(a.Services.Gaps, out)
}

// ReportAdapter returns a ReportAdapter writing to out.
func (a *App) ReportAdapter(out io.Writer) *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(a.Services.Reports, a.Services.Scores, a.Services.Diagrams, a.HTML, out)
}

// AssistAdapter returns an AssistAdapter writing to out.
func (a *App) AssistAdapter(out io.Writer) *cliadapter.AssistAdapter {
	return cliadapter.NewAssistAdapter(a.Services.Assist, out)
}

// WorkflowAdapter returns a WorkflowAdapter writing to out.
func (a *App) WorkflowAdapter(out io.Writer) *cliadapter.WorkflowAdapter {
	return cliadapter.NewWorkflowAdapter(a.Services.Workflows, out)
}

// Close releases the database and flushes the logger.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.DB.Close()
}

var (
	configPath string
	current    *App
	initErr    error
	once       sync.Once
)

// SetConfigPath selects the config file used by Default. Call it before
// the first Default call; later calls have no effect.
func SetConfigPath(path string) {
	configPath = path
}

// Default returns the process-wide App, building it on first use.
func Default() (*App, error) {
	once.Do(func() {
		current, initErr = build(configPath)
	})
	return current, initErr
}

func build(path string) (*App, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger)
}

// Shutdown closes the process-wide App if it was built.
func Shutdown() error {
	if current == nil {
		return nil
	}
	return current.Close()
}
