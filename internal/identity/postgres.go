package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"grocery-share/internal/apperr"
	"grocery-share/internal/database"
	"grocery-share/internal/models"
)

type PostgresAccounts struct {
	db *database.DB
}

func NewPostgresAccounts(db *database.DB) *PostgresAccounts {
	return &PostgresAccounts{db: db}
}

func (r *PostgresAccounts) Create(ctx context.Context, account *models.Account) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts (uid, email, display_name, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		account.UID, account.Email, account.DisplayName, account.PasswordHash).Scan(
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return apperr.Transient("insert account", err)
	}
	return nil
}

func (r *PostgresAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.get(ctx, "email = $1", email)
}

func (r *PostgresAccounts) GetByUID(ctx context.Context, uid string) (*models.Account, error) {
	return r.get(ctx, "uid = $1", uid)
}

func (r *PostgresAccounts) get(ctx context.Context, where string, arg string) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRow(ctx,
		`SELECT uid, email, display_name, password_hash, created_at, updated_at
		 FROM accounts WHERE `+where,
		arg).Scan(
		&account.UID, &account.Email, &account.DisplayName,
		&account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: account", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, apperr.Transient("select account", err)
	}
	return &account, nil
}

func (r *PostgresAccounts) LookupByEmail(ctx context.Context, email string) (*models.Identity, error) {
	account, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ident := &models.Identity{
		UID:         account.UID,
		Email:       &account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   account.CreatedAt,
	}
	ident.Normalize()
	return ident, nil
}

func (r *PostgresAccounts) List(ctx context.Context, afterUID string, limit int) ([]models.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT uid, email, display_name, password_hash, created_at, updated_at
		 FROM accounts WHERE uid > $1 ORDER BY uid LIMIT $2`,
		afterUID, limit)
	if err != nil {
		return nil, apperr.Transient("list accounts", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.UID, &account.Email, &account.DisplayName,
			&account.PasswordHash, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, apperr.Transient("scan account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Transient("list accounts", err)
	}
	return accounts, nil
}
