// Package transfer implements the item-transfer handshake: an append-only
// message store and the pending → accepted | rejected state machine on top
// of it.
package transfer

import (
	"context"

	"grocery-share/internal/models"
)

// Store is the pure persistence surface for transfer messages. It owns no
// business logic; the Protocol validates transitions before calling in.
// Messages are never physically deleted.
type Store interface {
	// Create assigns an id, sets status pending and the creation timestamp,
	// and returns the id.
	Create(ctx context.Context, msg *models.ItemMessage) (string, error)

	// ListPending returns every pending message addressed to toUID,
	// oldest first.
	ListPending(ctx context.Context, toUID string) ([]models.ItemMessage, error)

	// Get returns the message or apperr.ErrNotFound.
	Get(ctx context.Context, id string) (*models.ItemMessage, error)

	// MarkRejected transitions pending → rejected and stamps rejected_at.
	// Returns false without writing when the message is no longer pending.
	// The check and the write are a single conditional update.
	MarkRejected(ctx context.Context, id string) (bool, error)

	// AcceptAndCopy transitions pending → accepted, stamps accepted_at and
	// inserts newItem, all as one atomic unit. Returns false without any
	// write when the message is no longer pending. A failed item insert
	// must leave the message pending so the accept can be retried.
	AcceptAndCopy(ctx context.Context, id string, newItem *models.GroceryItem) (bool, error)
}
