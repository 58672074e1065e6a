package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/enscope/internal/ports/primary"
)

type createProjectRequest struct {
	Name               string   `json:"name"`
	ClientName         string   `json:"client_name"`
	EngagementType     string   `json:"engagement_type"`
	TeamMembers        []string `json:"team_members"`
	ObservabilityTools []string `json:"observability_tools"`
	Passphrase         string   `json:"passphrase"`
}

type joinProjectRequest struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

type updateProjectRequest struct {
	Name               string   `json:"name"`
	ClientName         string   `json:"client_name"`
	EngagementType     string   `json:"engagement_type"`
	TeamMembers        []string `json:"team_members"`
	ObservabilityTools []string `json:"observability_tools"`
}

func (h *handler) listProjects(c *gin.Context) {
	projects, err := h.Projects.ListProjects(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *handler) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.Projects.CreateProject(c.Request.Context(), primary.CreateProjectRequest{
		Name:               req.Name,
		ClientName:         req.ClientName,
		EngagementType:     req.EngagementType,
		TeamMembers:        req.TeamMembers,
		ObservabilityTools: req.ObservabilityTools,
		Passphrase:         req.Passphrase,
	})
	if err != nil {
		h.respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *handler) joinProject(c *gin.Context) {
	var req joinProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.Projects.JoinProject(c.Request.Context(), primary.JoinProjectRequest{
		Name:       req.Name,
		Passphrase: req.Passphrase,
	})
	if err != nil {
		h.respondError(c, err, "Failed to join project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *handler) getProject(c *gin.Context) {
	project, err := h.Projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *handler) updateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.Projects.UpdateProject(c.Request.Context(), primary.UpdateProjectRequest{
		ProjectID:          c.Param("id"),
		Passphrase:         c.GetHeader(PassphraseHeader),
		Name:               req.Name,
		ClientName:         req.ClientName,
		EngagementType:     req.EngagementType,
		TeamMembers:        req.TeamMembers,
		ObservabilityTools: req.ObservabilityTools,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *handler) deleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.Projects.DeleteProject(c.Request.Context(), id, c.GetHeader(PassphraseHeader)); err != nil {
		h.respondError(c, err, "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted", "id": id})
}

func (h *handler) getDashboard(c *gin.Context) {
	dashboard, err := h.Projects.GetDashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch dashboard data")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *handler) listWorkflows(c *gin.Context) {
	workflows, err := h.Projects.ListWorkflows(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch workflows")
		return
	}
	c.JSON(http.StatusOK, workflows)
}
