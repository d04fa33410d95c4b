package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-share/internal/apperr"
	"grocery-share/internal/database"
	"grocery-share/internal/models"
)

const itemColumns = `id, owner_uid, name, image_url, website_url, completed, created_at, origin_message_id, origin_from_uid`

type PostgresRepository struct {
	db *database.DB
}

func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.GroceryItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", apperr.ErrInvalidArgument)
	}
	if item.OwnerUID == "" {
		return fmt.Errorf("%w: item owner is required", apperr.ErrInvalidArgument)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO grocery_items (id, owner_uid, name, image_url, website_url, completed, origin_message_id, origin_from_uid)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		item.ID, item.OwnerUID, item.Name, item.ImageURL, item.WebsiteURL,
		item.Completed, item.OriginMessageID, item.OriginFromUID).Scan(&item.CreatedAt)
	if err != nil {
		return apperr.Transient("insert item", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.GroceryItem, error) {
	var item models.GroceryItem
	err := r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM grocery_items WHERE id = $1`,
		id).Scan(
		&item.ID, &item.OwnerUID, &item.Name, &item.ImageURL, &item.WebsiteURL,
		&item.Completed, &item.CreatedAt, &item.OriginMessageID, &item.OriginFromUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, apperr.Transient("select item", err)
	}
	return &item, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerUID string) ([]models.GroceryItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM grocery_items WHERE owner_uid = $1 ORDER BY created_at, id`,
		ownerUID)
	if err != nil {
		return nil, apperr.Transient("list items", err)
	}
	defer rows.Close()

	var list []models.GroceryItem
	for rows.Next() {
		var item models.GroceryItem
		if err := rows.Scan(
			&item.ID, &item.OwnerUID, &item.Name, &item.ImageURL, &item.WebsiteURL,
			&item.Completed, &item.CreatedAt, &item.OriginMessageID, &item.OriginFromUID); err != nil {
			return nil, apperr.Transient("scan item", err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Transient("list items", err)
	}
	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerUID, id string, req models.UpdateItemRequest) (*models.GroceryItem, error) {
	updates := []string{}
	args := []any{}
	argCount := 1

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: item name cannot be empty", apperr.ErrInvalidArgument)
		}
		updates = append(updates, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *req.Name)
		argCount++
	}
	if req.ImageURL != nil {
		updates = append(updates, fmt.Sprintf("image_url = $%d", argCount))
		args = append(args, *req.ImageURL)
		argCount++
	}
	if req.WebsiteURL != nil {
		updates = append(updates, fmt.Sprintf("website_url = $%d", argCount))
		args = append(args, *req.WebsiteURL)
		argCount++
	}
	if req.Completed != nil {
		updates = append(updates, fmt.Sprintf("completed = $%d", argCount))
		args = append(args, *req.Completed)
		argCount++
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", apperr.ErrInvalidArgument)
	}

	args = append(args, id, ownerUID)
	query := fmt.Sprintf(
		`UPDATE grocery_items SET %s WHERE id = $%d AND owner_uid = $%d RETURNING `+itemColumns,
		strings.Join(updates, ", "), argCount, argCount+1)

	var item models.GroceryItem
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&item.ID, &item.OwnerUID, &item.Name, &item.ImageURL, &item.WebsiteURL,
		&item.Completed, &item.CreatedAt, &item.OriginMessageID, &item.OriginFromUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, apperr.Transient("update item", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerUID, id string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM grocery_items WHERE id = $1 AND owner_uid = $2`,
		id, ownerUID)
	if err != nil {
		return apperr.Transient("delete item", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", apperr.ErrNotFound, id)
	}
	return nil
}
