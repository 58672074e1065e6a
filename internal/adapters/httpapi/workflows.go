package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/enscope/internal/ports/primary"
)

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *handler) getWorkflow(c *gin.Context) {
	wf, err := h.Workflows.GetWorkflow(c.Request.Context(), c.Param("workflowId"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch workflow")
		return
	}
	c.JSON(http.StatusOK, wf)
}

func (h *handler) addStep(c *gin.Context) {
	var fields primary.StepFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBindError(c, err)
		return
	}

	step, err := h.Workflows.AddStep(c.Request.Context(), c.Param("workflowId"), fields)
	if err != nil {
		h.respondError(c, err, "Failed to create step")
		return
	}
	c.JSON(http.StatusCreated, step)
}

func (h *handler) updateStep(c *gin.Context) {
	var fields primary.StepFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBindError(c, err)
		return
	}

	step, err := h.Workflows.UpdateStep(c.Request.Context(), c.Param("stepId"), fields)
	if err != nil {
		h.respondError(c, err, "Failed to update step")
		return
	}
	c.JSON(http.StatusOK, step)
}

func (h *handler) deleteStep(c *gin.Context) {
	id := c.Param("stepId")
	if err := h.Workflows.DeleteStep(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete step")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step deleted", "id": id})
}

func (h *handler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	wf, err := h.Workflows.SetStatus(c.Request.Context(), c.Param("workflowId"), req.Status)
	if err != nil {
		h.respondError(c, err, "Failed to update workflow status")
		return
	}
	c.JSON(http.StatusOK, wf)
}
