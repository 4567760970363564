package handler

import (
	"log"
	"net/http"

	"github.com/educonnect/backend/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// respondError maps an error to its HTTP status. Server-side failures are
// logged with full detail and answered with a fixed message, the caller
// never sees storage internals.
func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
