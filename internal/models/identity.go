package models

import (
	"strings"
	"time"
)

// Identity is the directory projection of a user: the denormalized,
// searchable copy of the identity-provider record.
type Identity struct {
	UID              string     `json:"uid" db:"uid"`
	Email            *string    `json:"email" db:"email"`
	DisplayName      *string    `json:"display_name" db:"display_name"`
	DisplayNameLower *string    `json:"-" db:"display_name_lower"`
	PhotoURL         *string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Normalize lowercases the email and rederives DisplayNameLower from
// DisplayName. Every write path must call it; a stale DisplayNameLower
// silently breaks prefix search.
func (i *Identity) Normalize() {
	if i.Email != nil {
		lower := strings.ToLower(strings.TrimSpace(*i.Email))
		if lower == "" {
			i.Email = nil
		} else {
			i.Email = &lower
		}
	}
	if i.DisplayName == nil || *i.DisplayName == "" {
		i.DisplayName = nil
		i.DisplayNameLower = nil
		return
	}
	lower := strings.ToLower(*i.DisplayName)
	i.DisplayNameLower = &lower
}

// ResolvedUser is the sanitized identity shape returned by user search.
// Never carries credentials or internal tokens.
type ResolvedUser struct {
	UID         string  `json:"uid"`
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
}

// Account is the identity provider's own record. PasswordHash never leaves
// the auth layer.
type Account struct {
	UID          string    `json:"uid" db:"uid"`
	Email        string    `json:"email" db:"email"`
	DisplayName  *string   `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"omitempty,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}
