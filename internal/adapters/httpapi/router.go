// Package httpapi exposes the primary ports over a JSON REST API built on gin.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/example/enscope/internal/adapters/metrics"
	"github.com/example/enscope/internal/adapters/render"
	"github.com/example/enscope/internal/ports/primary"
)

// PassphraseHeader carries the project passphrase on mutating project routes.
const PassphraseHeader = "X-Project-Passphrase"

// Services are the primary ports served by the API.
type Services struct {
	Projects  primary.ProjectService
	Workflows primary.WorkflowService
	Scores    primary.ScoreService
	Gaps      primary.GapService
	Assist    primary.AssistService
	Diagrams  primary.DiagramService
	Reports   primary.ReportService
}

// Deps configures the router.
type Deps struct {
	Services
	HTML     *render.HTMLRenderer
	Metrics  *metrics.Recorder   // optional; records per-route counters
	Gatherer prometheus.Gatherer // optional; serves GET /metrics
	Logger   *zap.Logger
	Now      func() time.Time
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	registerValidators()

	h := &handler{Deps: deps}

	r := gin.New()
	r.Use(requestID(), requestLogger(deps.Logger), recovery(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Not found")
	})

	r.GET("/health", h.health)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")

	projects := api.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.POST("/join", h.joinProject)
	projects.GET("/:id", h.getProject)
	projects.PUT("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.GET("/:id/dashboard", h.getDashboard)
	projects.GET("/:id/workflows", h.listWorkflows)
	projects.GET("/:id/workflows/:index/report", h.getWorkflowReport)
	projects.GET("/:id/report", h.getProjectReport)
	projects.GET("/:id/reports/html", h.exportHTML)
	projects.GET("/:id/reports/pdf", h.exportHTML)
	projects.GET("/:id/reports/csv", h.exportCSV)
	projects.GET("/:id/reports/json", h.exportJSON)

	workflows := api.Group("/workflows")
	workflows.GET("/:workflowId", h.getWorkflow)
	workflows.POST("/:workflowId/steps", h.addStep)
	workflows.PUT("/:workflowId/status", h.setStatus)
	workflows.PUT("/steps/:stepId", h.updateStep)
	workflows.DELETE("/steps/:stepId", h.deleteStep)

	scores := api.Group("/scores")
	scores.POST("/generate/:workflowId", h.generateScores)
	scores.GET("/workflow/:workflowId", h.getWorkflowScores)
	scores.GET("/project/:projectId", h.getProjectScores)

	gaps := api.Group("/gaps")
	gaps.GET("/:projectId", h.listGaps)
	gaps.GET("/:projectId/summary", h.getGapSummary)
	gaps.POST("", h.createGap)
	gaps.PUT("/:gapId", h.updateGap)
	gaps.DELETE("/:gapId", h.deleteGap)

	ai := api.Group("/ai")
	ai.POST("/assist", h.assist)
	ai.POST("/score-step", h.scoreStep)

	api.GET("/diagrams/workflow/:workflowId", h.getDiagram)

	return r
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.Now().UTC().Format(time.RFC3339),
	})
}
