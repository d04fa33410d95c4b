package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"grocery-share/internal/apperr"
	"grocery-share/internal/auth"
	"grocery-share/internal/directory"
	"grocery-share/internal/identity"
	"grocery-share/internal/logging"
	"grocery-share/internal/models"
)

type AuthHandler struct {
	accounts   identity.Accounts
	dir        directory.Store
	notifier   *identity.Notifier
	jwtManager *auth.JWTManager
	validator  *validator.Validate
	log        logging.Logger
}

func NewAuthHandler(accounts identity.Accounts, dir directory.Store, notifier *identity.Notifier, jwtManager *auth.JWTManager, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		dir:        dir,
		notifier:   notifier,
		jwtManager: jwtManager,
		validator:  validator.New(),
		log:        log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user already exists
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.accounts.GetByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	} else if !errors.Is(err, apperr.ErrNotFound) {
		respondError(c, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// Account email comparisons are case-insensitive
	account := &models.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if req.DisplayName != "" {
		account.DisplayName = &req.DisplayName
	}

	if err := h.accounts.Create(c.Request.Context(), account); err != nil {
		respondError(c, err)
		return
	}

	ident := h.identityOf(account)
	h.onSignIn(c.Request.Context(), ident)

	token, err := h.jwtManager.GenerateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: *ident})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if !auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ident := h.identityOf(account)
	h.onSignIn(c.Request.Context(), ident)

	token, err := h.jwtManager.GenerateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: *ident})
}

// onSignIn merges the identity into the directory projection and notifies
// subscribers. A directory failure is logged, not surfaced: sign-in must
// not fail because the search projection lagged.
func (h *AuthHandler) onSignIn(ctx context.Context, ident *models.Identity) {
	if err := h.dir.Upsert(ctx, ident); err != nil {
		h.log.Warn(ctx, "directory upsert on sign-in failed", "uid", ident.UID, "error", err)
	}
	h.notifier.Notify(ident)
}

func (h *AuthHandler) identityOf(account *models.Account) *models.Identity {
	ident := &models.Identity{
		UID:         account.UID,
		Email:       &account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   account.CreatedAt,
	}
	ident.Normalize()
	return ident
}
