// Package snapshot copies a user's entire list into the append-only archive
// namespace. Originals are never modified; each run is an independent,
// auditable backup generation.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"grocery-share/internal/apperr"
	"grocery-share/internal/items"
	"grocery-share/internal/logging"
	"grocery-share/internal/models"
)

// Archive is the write-once storage for snapshot records.
type Archive interface {
	Append(ctx context.Context, rec *models.SnapshotRecord) error
}

type Archiver struct {
	items   items.Repository
	archive Archive
	log     logging.Logger
}

func NewArchiver(items items.Repository, archive Archive, log logging.Logger) *Archiver {
	return &Archiver{items: items, archive: archive, log: log}
}

// SnapshotAll copies every item owned by ownerUID into the archive,
// sequentially and in list order, and returns the number copied. progress
// (optional) is invoked after each successful copy with the running count.
// A failure on one record is logged and skipped; one bad record must not
// abort the whole backup. Re-running appends a fresh generation rather than
// deduplicating.
func (a *Archiver) SnapshotAll(ctx context.Context, ownerUID string, progress func(copied int)) (int, error) {
	if ownerUID == "" {
		return 0, fmt.Errorf("%w: owner uid is required", apperr.ErrInvalidArgument)
	}

	list, err := a.items.ListByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, item := range list {
		payload, err := json.Marshal(item)
		if err != nil {
			a.log.Warn(ctx, "snapshot skipped item", "item_id", item.ID, "error", err)
			continue
		}
		rec := &models.SnapshotRecord{
			ID:             uuid.NewString(),
			OriginalItemID: item.ID,
			OwnerUID:       ownerUID,
			Payload:        payload,
		}
		if err := a.archive.Append(ctx, rec); err != nil {
			a.log.Warn(ctx, "snapshot skipped item", "item_id", item.ID, "error", err)
			continue
		}
		copied++
		if progress != nil {
			progress(copied)
		}
	}

	a.log.Info(ctx, "snapshot complete", "owner_uid", ownerUID, "copied", copied, "total", len(list))
	return copied, nil
}
