package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"digiwallet/internal/apperror"   // Error kinds
	"digiwallet/internal/middleware" // Request id lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string        `json:"error"` // Human readable message
	Code  apperror.Kind `json:"code"`  // Machine readable kind
}

// statusOf maps an error kind to its HTTP status
func statusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.AlreadyExists:
		return http.StatusConflict
	case apperror.InvalidArgument, apperror.InvalidState:
		return http.StatusBadRequest
	case apperror.InsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err. Internal errors are logged and hidden from the caller.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err) // Classify error
	status := statusOf(kind)
	msg := apperror.Message(err)
	// Hide internal details
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":       c.FullPath(),               // Route
			"request_id": middleware.GetRequestID(c), // Correlation id
			"error":      err.Error(),                // Error message
		}).Error("Request failed with internal error")
		msg = "internal server error"
	}
	_ = c.Error(err) // Attach for the access log
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: kind})
}

// badRequest renders an INVALID_ARGUMENT answer for malformed input
func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: apperror.InvalidArgument})
}

// idParam parses a positive numeric path parameter, answering 400 otherwise
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	// Reject zero and non-numeric ids
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name+" "+strconv.Quote(raw))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into dst, answering 400 on failure
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
