// Package items persists the per-user grocery lists. Items are owned
// exclusively by their owner uid; every mutating operation is owner-scoped.
package items

import (
	"context"

	"grocery-share/internal/models"
)

type Repository interface {
	// Create assigns an id and creation timestamp and stores the item.
	Create(ctx context.Context, item *models.GroceryItem) error

	// Get returns the item or apperr.ErrNotFound. Caller checks ownership.
	Get(ctx context.Context, id string) (*models.GroceryItem, error)

	// ListByOwner returns every item owned by ownerUID, oldest first.
	ListByOwner(ctx context.Context, ownerUID string) ([]models.GroceryItem, error)

	// Update applies the non-nil fields of req to the owner's item and
	// returns the updated row, or apperr.ErrNotFound.
	Update(ctx context.Context, ownerUID, id string, req models.UpdateItemRequest) (*models.GroceryItem, error)

	// Delete removes the owner's item, or returns apperr.ErrNotFound.
	Delete(ctx context.Context, ownerUID, id string) error
}
