package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

// Body is the standard response wrapper for every endpoint.
type Body struct {
	Success    bool   `json:"success"`
	Count      *int   `json:"count,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OK writes a success envelope around data.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Body{Success: true, Data: data})
}

// List writes a query envelope as-is; count and pagination come from the
// advanced-results layer.
func List(c *gin.Context, env *query.Envelope) {
	c.JSON(http.StatusOK, env)
}

// Err writes a failure envelope.
func Err(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Success: false, Error: message})
}

// AbortErr writes a failure envelope and stops the middleware chain.
func AbortErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Error: message})
}

// FromError is the terminal error-translation stage: it maps the domain
// error taxonomy onto HTTP statuses. Unclassified errors are logged and
// reported as a generic server error.
func FromError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		Err(c, http.StatusBadRequest, err.Error())
	case domain.IsUnauthorized(err):
		Err(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		Err(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		Err(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		Err(c, http.StatusBadRequest, err.Error())
	default:
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).WithError(err).Error("unhandled error")
		}
		Err(c, http.StatusInternalServerError, "server error")
	}
}
