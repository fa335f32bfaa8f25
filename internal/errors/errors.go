package errors

import (
	"net/http"
	"os"
	"strings"

	"codeberg.org/docchat/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.FromDomain() for errors coming out of the rag service; it
//     maps the error's kind to the right status code and retryable flag
//   - Use errors.InternalError(), errors.BadRequest(), etc. for everything else
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//     or errors.Wrap() when the failure needs a classification
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes for failures outside the domain taxonomy
const (
	CodeNotFound        = "not_found"
	CodeValidationError = "validation_error"
	CodeServerError     = "server_error"
	CodeBadRequest      = "bad_request"
)

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	// add details if error provided
	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// maps a classified pipeline error to the right HTTP response.
// the distinction matters to the caller: "your document isn't ready yet"
// must not look like "the system is broken".
func FromDomain(c *gin.Context, err error) {
	var de *DomainError

	if !asDomain(err, &de) {
		InternalError(c, "", err)
		return
	}

	status := http.StatusInternalServerError

	switch de.Kind {
	case KindInvalidQuery:
		status = http.StatusBadRequest
	case KindDocumentNotFound:
		status = http.StatusNotFound
	case KindDocumentNotIndexed:
		status = http.StatusConflict
	case KindProviderUnavailable:
		status = http.StatusBadGateway
	case KindProviderTimeout:
		status = http.StatusGatewayTimeout
	case KindDimensionMismatch:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorErr(err, de.Message,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"kind", string(de.Kind),
		)
	}

	c.JSON(status, ErrorResponse{
		Error:     string(de.Kind),
		Message:   de.Message,
		Details:   sanitizeError(de.Err),
		Retryable: Retryable(err),
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()
	env := os.Getenv("ENVIRONMENT")

	if env != "production" {
		return errMsg
	}

	if strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") {
		return "database operation failed"
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") {
		return "connection error occurred"
	}

	if strings.Contains(errMsg, "timeout") {
		return "request timed out"
	}

	if strings.Contains(errMsg, "not found") {
		return "resource not found"
	}

	return "an error occurred"
}
