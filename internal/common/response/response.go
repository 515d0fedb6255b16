package response

import (
	"github.com/gin-gonic/gin"

	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/logger"
)

// Debug controls whether internal error detail is included in 500 bodies.
// Set once at startup.
var Debug bool

// Envelope is the standard response body.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Count      int `json:"count"`
	TotalUsers int `json:"totalUsers"`
}

type paginatedEnvelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Paginated(c *gin.Context, status int, message string, data interface{}, p Pagination) {
	c.JSON(status, paginatedEnvelope{Success: true, Message: message, Data: data, Pagination: p})
}

// Error renders err as the standard error envelope. Unknown errors become
// 500s with detail hidden unless Debug is set.
func Error(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal("Internal server error", err)
	}

	if appErr.IsInternal() {
		logger.Error().
			Err(appErr).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Internal error")
	}

	body := Envelope{Success: false, Message: appErr.Message}
	if appErr.IsInternal() {
		body.Message = "Internal server error"
		if Debug && appErr.Cause != nil {
			body.Error = appErr.Cause.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus(), body)
}

// Abort renders a bare error message with the given status, for middleware
// that rejects before any handler runs.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}
