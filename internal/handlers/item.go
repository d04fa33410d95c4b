package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"grocery-share/internal/auth"
	"grocery-share/internal/items"
	"grocery-share/internal/models"
)

type ItemHandler struct {
	repo      items.Repository
	validator *validator.Validate
}

func NewItemHandler(repo items.Repository) *ItemHandler {
	return &ItemHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := h.repo.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.GroceryItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": list})
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.GroceryItem{
		OwnerUID:   uid,
		Name:       req.Name,
		ImageURL:   req.ImageURL,
		WebsiteURL: req.WebsiteURL,
	}
	if err := h.repo.Create(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	item, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if item.OwnerUID != uid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.repo.Update(c.Request.Context(), uid, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
