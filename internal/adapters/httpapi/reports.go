package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/enscope/internal/adapters/render"
)

func (h *handler) getWorkflowReport(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid workflow index")
		return
	}

	rep, err := h.Reports.GetWorkflowReport(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		h.respondError(c, err, "Failed to generate workflow report")
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *handler) getProjectReport(c *gin.Context) {
	rep, err := h.Reports.GetProjectReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to generate project report")
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *handler) exportHTML(c *gin.Context) {
	if h.HTML == nil {
		writeError(c, http.StatusInternalServerError, "HTML export is not available")
		return
	}

	id := c.Param("id")
	rep, err := h.Reports.GetExecutiveReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to generate report")
		return
	}

	var buf bytes.Buffer
	if err := h.HTML.Render(&buf, rep); err != nil {
		h.respondError(c, err, "Failed to generate report")
		return
	}

	c.Header("Content-Disposition", attachment(fmt.Sprintf("enscope-report-%s.html", id)))
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *handler) exportCSV(c *gin.Context) {
	kind := c.DefaultQuery("type", render.CSVProject)
	if !render.ValidCSVKind(kind) {
		writeError(c, http.StatusBadRequest, "Invalid report type. Must be one of: project, workflows, steps")
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	var buf bytes.Buffer
	switch kind {
	case render.CSVSteps:
		rows, err := h.Reports.GetStepRows(ctx, id)
		if err != nil {
			h.respondError(c, err, "Failed to export report")
			return
		}
		if err := render.WriteStepsCSV(&buf, rows); err != nil {
			h.respondError(c, err, "Failed to export report")
			return
		}
	default:
		rep, err := h.Reports.GetProjectReport(ctx, id)
		if err != nil {
			h.respondError(c, err, "Failed to export report")
			return
		}
		if kind == render.CSVWorkflows {
			err = render.WriteWorkflowsCSV(&buf, rep)
		} else {
			err = render.WriteProjectCSV(&buf, rep)
		}
		if err != nil {
			h.respondError(c, err, "Failed to export report")
			return
		}
	}

	c.Header("Content-Disposition", attachment(fmt.Sprintf("enscope-%s-report-%s.csv", kind, id)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *handler) exportJSON(c *gin.Context) {
	id := c.Param("id")
	rep, err := h.Reports.GetProjectReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to export report")
		return
	}

	c.Header("Content-Disposition", attachment(fmt.Sprintf("enscope-report-%s.json", id)))
	c.IndentedJSON(http.StatusOK, rep)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
