package snapshot

import (
	"context"

	"grocery-share/internal/apperr"
	"grocery-share/internal/database"
	"grocery-share/internal/models"
)

type PostgresArchive struct {
	db *database.DB
}

func NewPostgresArchive(db *database.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

func (a *PostgresArchive) Append(ctx context.Context, rec *models.SnapshotRecord) error {
	err := a.db.QueryRow(ctx,
		`INSERT INTO item_snapshots (id, original_item_id, owner_uid, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING migrated_at`,
		rec.ID, rec.OriginalItemID, rec.OwnerUID, rec.Payload).Scan(&rec.MigratedAt)
	if err != nil {
		return apperr.Transient("append snapshot record", err)
	}
	return nil
}
