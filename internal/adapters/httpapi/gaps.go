package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/enscope/internal/ports/primary"
)

type createGapRequest struct {
	ProjectID     string `json:"project_id" binding:"required"`
	WorkflowIndex int    `json:"workflow_index" binding:"required,workflow_index"`
	GapType       string `json:"gap_type" binding:"required,gap_type"`
	Severity      string `json:"severity" binding:"required,severity"`
	Description   string `json:"description" binding:"required"`
}

type updateGapRequest struct {
	WorkflowIndex int    `json:"workflow_index" binding:"omitempty,workflow_index"`
	GapType       string `json:"gap_type" binding:"omitempty,gap_type"`
	Severity      string `json:"severity" binding:"omitempty,severity"`
	Description   string `json:"description"`
}

func (h *handler) listGaps(c *gin.Context) {
	list, err := h.Gaps.ListGaps(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch gaps")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) getGapSummary(c *gin.Context) {
	summary, err := h.Gaps.GetSummary(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch gaps summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handler) createGap(c *gin.Context) {
	var req createGapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.Gaps.CreateGap(c.Request.Context(), primary.CreateGapRequest{
		ProjectID:     req.ProjectID,
		WorkflowIndex: req.WorkflowIndex,
		GapType:       req.GapType,
		Severity:      req.Severity,
		Description:   req.Description,
	})
	if err != nil {
		h.respondError(c, err, "Failed to create gap")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handler) updateGap(c *gin.Context) {
	var req updateGapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.Gaps.UpdateGap(c.Request.Context(), primary.UpdateGapRequest{
		GapID:         c.Param("gapId"),
		WorkflowIndex: req.WorkflowIndex,
		GapType:       req.GapType,
		Severity:      req.Severity,
		Description:   req.Description,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update gap")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handler) deleteGap(c *gin.Context) {
	id := c.Param("gapId")
	if err := h.Gaps.DeleteGap(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete gap")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gap deleted", "id": id})
}
