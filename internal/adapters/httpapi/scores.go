package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/enscope/internal/ports/primary"
)

type scoreStepRequest struct {
	StepData *struct {
		ID string `json:"id"`
		primary.StepFields
	} `json:"stepData" binding:"required"`
	WorkflowData *struct {
		WorkflowName string `json:"workflow_name"`
	} `json:"workflowData" binding:"required"`
}

func (h *handler) generateScores(c *gin.Context) {
	result, err := h.Scores.ScoreWorkflow(c.Request.Context(), c.Param("workflowId"))
	if err != nil {
		h.respondError(c, err, "Failed to generate scores")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) getWorkflowScores(c *gin.Context) {
	scores, err := h.Scores.GetWorkflowScores(c.Request.Context(), c.Param("workflowId"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch workflow scores")
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *handler) getProjectScores(c *gin.Context) {
	scores, err := h.Scores.GetProjectScores(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch project scores")
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *handler) scoreStep(c *gin.Context) {
	var req scoreStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.Scores.ScoreStep(c.Request.Context(), primary.ScoreStepRequest{
		StepID:       req.StepData.ID,
		WorkflowName: req.WorkflowData.WorkflowName,
		Fields:       req.StepData.StepFields,
	})
	if err != nil {
		h.respondError(c, err, "Failed to score step")
		return
	}
	c.JSON(http.StatusOK, result)
}
