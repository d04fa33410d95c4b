package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-share/internal/apperr"
	"grocery-share/internal/database"
	"grocery-share/internal/models"
)

const messageColumns = `id, from_uid, to_uid, name, image_url, website_url, original_item_id,
	 status, created_at, accepted_at, rejected_at`

type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, msg *models.ItemMessage) (string, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.Status = models.StatusPending

	err := s.db.QueryRow(ctx,
		`INSERT INTO item_messages (id, from_uid, to_uid, name, image_url, website_url, original_item_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		 RETURNING created_at`,
		msg.ID, msg.FromUID, msg.ToUID, msg.Payload.Name, msg.Payload.ImageURL,
		msg.Payload.WebsiteURL, msg.Payload.OriginalItemID).Scan(&msg.CreatedAt)
	if err != nil {
		return "", apperr.Transient("insert message", err)
	}
	return msg.ID, nil
}

func (s *PostgresStore) ListPending(ctx context.Context, toUID string) ([]models.ItemMessage, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+messageColumns+`
		 FROM item_messages
		 WHERE to_uid = $1 AND status = 'pending'
		 ORDER BY created_at, id`,
		toUID)
	if err != nil {
		return nil, apperr.Transient("list pending messages", err)
	}
	defer rows.Close()

	var msgs []models.ItemMessage
	for rows.Next() {
		var msg models.ItemMessage
		if err := scanMessage(rows.Scan, &msg); err != nil {
			return nil, apperr.Transient("scan message", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Transient("list pending messages", err)
	}
	return msgs, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.ItemMessage, error) {
	var msg models.ItemMessage
	err := scanMessage(s.db.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM item_messages WHERE id = $1`, id).Scan, &msg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: message %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, apperr.Transient("select message", err)
	}
	return &msg, nil
}

// MarkRejected is a compare-and-swap on the stored status: the WHERE clause
// makes the read-modify-write a single conditional update, so two racing
// terminal transitions cannot both succeed.
func (s *PostgresStore) MarkRejected(ctx context.Context, id string) (bool, error) {
	result, err := s.db.Exec(ctx,
		`UPDATE item_messages
		 SET status = 'rejected', rejected_at = now()
		 WHERE id = $1 AND status = 'pending'`,
		id)
	if err != nil {
		return false, apperr.Transient("reject message", err)
	}
	return result.RowsAffected() > 0, nil
}

// AcceptAndCopy runs the status CAS and the recipient item insert in one
// transaction. The CAS goes first so the row lock serializes concurrent
// accepts; an insert failure rolls the status back to pending.
func (s *PostgresStore) AcceptAndCopy(ctx context.Context, id string, newItem *models.GroceryItem) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, apperr.Transient("begin accept transaction", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE item_messages
		 SET status = 'accepted', accepted_at = now()
		 WHERE id = $1 AND status = 'pending'`,
		id)
	if err != nil {
		return false, apperr.Transient("accept message", err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if newItem.ID == "" {
		newItem.ID = uuid.NewString()
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO grocery_items (id, owner_uid, name, image_url, website_url, completed, origin_message_id, origin_from_uid)
		 VALUES ($1, $2, $3, $4, $5, false, $6, $7)
		 RETURNING created_at`,
		newItem.ID, newItem.OwnerUID, newItem.Name, newItem.ImageURL,
		newItem.WebsiteURL, newItem.OriginMessageID, newItem.OriginFromUID).Scan(&newItem.CreatedAt)
	if err != nil {
		return false, apperr.Transient("copy item to recipient", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, apperr.Transient("commit accept transaction", err)
	}
	return true, nil
}

func scanMessage(scan func(dest ...any) error, msg *models.ItemMessage) error {
	return scan(
		&msg.ID, &msg.FromUID, &msg.ToUID,
		&msg.Payload.Name, &msg.Payload.ImageURL, &msg.Payload.WebsiteURL,
		&msg.Payload.OriginalItemID,
		&msg.Status, &msg.CreatedAt, &msg.AcceptedAt, &msg.RejectedAt)
}
