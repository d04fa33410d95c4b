package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grocery-share/internal/auth"
	"grocery-share/internal/directory"
	"grocery-share/internal/identity"
	"grocery-share/internal/models"
)

type UserHandler struct {
	accounts identity.Accounts
	resolver *directory.Resolver
}

func NewUserHandler(accounts identity.Accounts, resolver *directory.Resolver) *UserHandler {
	return &UserHandler{accounts: accounts, resolver: resolver}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	account, err := h.accounts.GetByUID(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	ident := models.Identity{
		UID:         account.UID,
		Email:       &account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   account.CreatedAt,
	}
	ident.Normalize()

	c.JSON(http.StatusOK, ident)
}

// ResolveUsers answers ?q=<free text>&limit=<n> with sanitized identity
// candidates. Empty queries return an empty result without a lookup.
func (h *UserHandler) ResolveUsers(c *gin.Context) {
	uid, exists := auth.GetUserUID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	results, err := h.resolver.Resolve(c.Request.Context(), uid, c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if results == nil {
		results = []models.ResolvedUser{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
