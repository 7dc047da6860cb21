package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body written for errors surfaced through the
// gin error list rather than a handler's own response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler drains c.Errors after the handler chain ran, logs each
// entry, and answers with the status carried by the last one. Errors
// without a StatusCode method are treated as internal.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		rid := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", rid).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}

		status := http.StatusInternalServerError
		if coded, ok := last.Err.(interface{ StatusCode() int }); ok {
			status = coded.StatusCode()
		}
		c.JSON(status, ErrorResponse{Code: status, Message: last.Error(), TraceID: rid})
	}
}
