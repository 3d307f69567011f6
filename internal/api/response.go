package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// serverError logs full detail server-side and returns the generic 500
// envelope. The underlying error text reaches the client only in
// development mode.
func (h *Handler) serverError(c *gin.Context, err error) {
	slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)

	body := gin.H{
		"success": false,
		"message": "Server Error",
	}
	if h.debug {
		body["error"] = err.Error()
	} else {
		body["error"] = "An unexpected error occurred"
	}
	c.JSON(http.StatusInternalServerError, body)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": message,
	})
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
