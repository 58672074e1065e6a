package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/enscope/internal/ports/primary"
)

type assistRequest struct {
	ProjectID     string         `json:"projectId"`
	WorkflowIndex int            `json:"workflowIndex"`
	FieldName     string         `json:"fieldName"`
	FieldValue    string         `json:"fieldValue"`
	AllStepData   map[string]any `json:"allStepData"`
}

func (h *handler) assist(c *gin.Context) {
	var req assistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.Assist.Assist(c.Request.Context(), primary.AssistRequest{
		ProjectID:     req.ProjectID,
		WorkflowIndex: req.WorkflowIndex,
		FieldName:     req.FieldName,
		FieldValue:    req.FieldValue,
		StepData:      stringFields(req.AllStepData),
	})
	if err != nil {
		h.respondError(c, err, "Failed to generate assistance")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// stringFields flattens client step data to strings, dropping nulls.
func stringFields(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

func (h *handler) getDiagram(c *gin.Context) {
	d, err := h.Diagrams.GetWorkflowDiagram(c.Request.Context(), c.Param("workflowId"))
	if err != nil {
		h.respondError(c, err, "Failed to generate diagram")
		return
	}
	c.JSON(http.StatusOK, d)
}
