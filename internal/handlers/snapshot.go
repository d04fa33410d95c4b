package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grocery-share/internal/auth"
	"grocery-share/internal/logging"
	"grocery-share/internal/snapshot"
)

type SnapshotHandler struct {
	archiver *snapshot.Archiver
	log      logging.Logger
}

func NewSnapshotHandler(archiver *snapshot.Archiver, log logging.Logger) *SnapshotHandler {
	return &SnapshotHandler{archiver: archiver, log: log}
}

// CreateSnapshot copies the caller's entire list into the archive and
// reports the final count. Originals are never touched; each call appends a
// fresh backup generation.
func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	copied, err := h.archiver.SnapshotAll(ctx, uid, func(copied int) {
		if copied%25 == 0 {
			h.log.Info(ctx, "snapshot progress", "owner_uid", uid, "copied", copied)
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"copied": copied})
}
