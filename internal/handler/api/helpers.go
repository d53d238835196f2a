package api

import (
	"net/http"

	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// abortWithMessage prefers the message a use case attached to err.
func abortWithMessage(c *gin.Context, status int, err error, fallback string) {
	msg := errs.Message(err)
	if msg == "" {
		msg = fallback
	}
	httperr.AbortWithError(c, status, err, msg, nil)
}

// render maps a use case result to its response body. A mapping failure is
// a server error.
func render[V, R any](c *gin.Context, status int, toResponse func(V) (R, error), v V) {
	res, err := toResponse(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}

func parseIDParam(c *gin.Context, name, invalidMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, invalidMsg, nil)
		return uuid.Nil, false
	}
	return id, true
}
