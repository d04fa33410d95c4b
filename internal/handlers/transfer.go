package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"grocery-share/internal/auth"
	"grocery-share/internal/items"
	"grocery-share/internal/models"
	"grocery-share/internal/transfer"
)

type TransferHandler struct {
	protocol  *transfer.Protocol
	items     items.Repository
	validator *validator.Validate
}

func NewTransferHandler(protocol *transfer.Protocol, items items.Repository) *TransferHandler {
	return &TransferHandler{
		protocol:  protocol,
		items:     items,
		validator: validator.New(),
	}
}

// SendMessage offers one of the caller's items to another user.
func (h *TransferHandler) SendMessage(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := h.loadOwnItem(c, uid, req.ItemID)
	if !ok {
		return
	}

	messageID, err := h.protocol.Send(c.Request.Context(), uid, req.ToUID, item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message_id": messageID})
}

// SendBatch offers several of the caller's items to one recipient. Sends are
// sequential in request order; the response reports partial failure instead
// of rolling back messages already recorded.
func (h *TransferHandler) SendBatch(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.SendBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch := make([]*models.GroceryItem, 0, len(req.ItemIDs))
	for _, itemID := range req.ItemIDs {
		item, ok := h.loadOwnItem(c, uid, itemID)
		if !ok {
			return
		}
		batch = append(batch, item)
	}

	result := h.protocol.SendBatch(c.Request.Context(), uid, req.ToUID, batch)

	c.JSON(http.StatusOK, gin.H{
		"sent":        len(result.MessageIDs),
		"message_ids": result.MessageIDs,
		"failure":     result.Failure,
	})
}

// GetPendingMessages is the poll-on-demand inbox: every pending message
// addressed to the caller.
func (h *TransferHandler) GetPendingMessages(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	msgs, err := h.protocol.ListPending(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.ItemMessage{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *TransferHandler) AcceptMessage(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	item, err := h.protocol.Accept(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer accepted", "item": item})
}

func (h *TransferHandler) RejectMessage(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.protocol.Reject(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer rejected"})
}

// loadOwnItem fetches an item and verifies the caller owns it. On failure
// it writes the response itself and returns false. Only a sender's own
// items can be offered.
func (h *TransferHandler) loadOwnItem(c *gin.Context, uid, itemID string) (*models.GroceryItem, bool) {
	item, err := h.items.Get(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if item.OwnerUID != uid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found or access denied"})
		return nil, false
	}
	return item, true
}
