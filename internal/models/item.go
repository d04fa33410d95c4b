package models

import "time"

// GroceryItem is one entry on a user's list. Owned exclusively by OwnerUID
// and mutated only by its owner. OriginMessageID/OriginFromUID are set when
// the item was created by accepting a transfer.
type GroceryItem struct {
	ID              string    `json:"id" db:"id"`
	OwnerUID        string    `json:"owner_uid" db:"owner_uid"`
	Name            string    `json:"name" db:"name"`
	ImageURL        *string   `json:"image_url,omitempty" db:"image_url"`
	WebsiteURL      *string   `json:"website_url,omitempty" db:"website_url"`
	Completed       bool      `json:"completed" db:"completed"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	OriginMessageID *string   `json:"origin_message_id,omitempty" db:"origin_message_id"`
	OriginFromUID   *string   `json:"origin_from_uid,omitempty" db:"origin_from_uid"`
}

type CreateItemRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	ImageURL   *string `json:"image_url" validate:"omitempty,url"`
	WebsiteURL *string `json:"website_url" validate:"omitempty,url"`
}

type UpdateItemRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ImageURL   *string `json:"image_url,omitempty" validate:"omitempty,url"`
	WebsiteURL *string `json:"website_url,omitempty" validate:"omitempty,url"`
	Completed  *bool   `json:"completed,omitempty"`
}
