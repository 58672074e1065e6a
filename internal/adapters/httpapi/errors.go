package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/logging"
)

// errorBody is the shape of every error response.
type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: message, Status: status})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {error, status}. Internal errors are logged
// and replaced with fallback so storage details never reach the client.
func (h *handler) respondError(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	var message string
	switch kind {
	case apperr.Internal:
		logging.FromContext(c.Request.Context(), h.Logger).Error(fallback,
			zap.String("route", c.FullPath()),
			zap.Error(err))
		message = fallback
	case apperr.Upstream:
		logging.FromContext(c.Request.Context(), h.Logger).Warn("upstream failure",
			zap.String("route", c.FullPath()),
			zap.Error(err))
		message = err.Error()
	default:
		var ae *apperr.Error
		if errors.As(err, &ae) {
			message = ae.Message
		} else {
			message = err.Error()
		}
	}

	writeError(c, status, message)
}

// respondBindError reports a malformed or invalid request body as 400.
func respondBindError(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, bindMessage(err))
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	return "Invalid value for: " + strings.Join(invalid, ", ")
}
