package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/logger"
)

// writeError maps an engine error onto an HTTP status and the uniform
// {"error", "kind"} payload.
func writeError(c *gin.Context, err error) {
	kind := engine.KindOf(err)

	var status int
	switch kind {
	case engine.KindUnauthorized:
		status = http.StatusUnauthorized
	case engine.KindValidation, engine.KindConflict:
		status = http.StatusBadRequest
	case engine.KindForbidden:
		status = http.StatusForbidden
	case engine.KindNotFound, engine.KindNotFoundOrForbidden:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, gin.H{
		"error": engine.Message(err),
		"kind":  string(kind),
	})
}

// badRequest reports a malformed request body or query in the same payload
// shape as engine validation failures.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": msg,
		"kind":  string(engine.KindValidation),
	})
}
