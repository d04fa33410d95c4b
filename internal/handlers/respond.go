package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grocery-share/internal/apperr"
)

// respondError maps the error taxonomy to an HTTP status and a
// human-readable message. Transient failures surface as 503 so clients know
// a retry is safe; everything unclassified is an opaque 500.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
