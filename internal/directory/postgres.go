package directory

import (
	"context"

	"grocery-share/internal/apperr"
	"grocery-share/internal/database"
	"grocery-share/internal/models"
)

// prefixSentinel closes the half-open range [prefix, prefix+sentinel) used
// for prefix scans on display_name_lower. U+F8FF sorts after every
// realistic string in the collation the index uses.
const prefixSentinel = ""

type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, ident *models.Identity) error {
	ident.Normalize()

	// COALESCE keeps fields the current write did not supply, so repeated
	// writes from different clients converge instead of clobbering.
	_, err := s.db.Exec(ctx,
		`INSERT INTO directory (uid, email, display_name, display_name_lower, photo_url, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (uid) DO UPDATE SET
		     email = COALESCE(EXCLUDED.email, directory.email),
		     display_name = COALESCE(EXCLUDED.display_name, directory.display_name),
		     display_name_lower = COALESCE(EXCLUDED.display_name_lower, directory.display_name_lower),
		     photo_url = COALESCE(EXCLUDED.photo_url, directory.photo_url),
		     updated_at = now()`,
		ident.UID, ident.Email, ident.DisplayName, ident.DisplayNameLower, ident.PhotoURL)
	if err != nil {
		return apperr.Transient("upsert directory record", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string, limit int) ([]models.Identity, error) {
	return s.find(ctx,
		`SELECT uid, email, display_name, display_name_lower, created_at, updated_at
		 FROM directory WHERE email = $1 LIMIT $2`,
		email, limit)
}

func (s *PostgresStore) FindByNamePrefix(ctx context.Context, prefix string, limit int) ([]models.Identity, error) {
	return s.find(ctx,
		`SELECT uid, email, display_name, display_name_lower, created_at, updated_at
		 FROM directory
		 WHERE display_name_lower >= $1 AND display_name_lower < $2
		 ORDER BY display_name_lower LIMIT $3`,
		prefix, prefix+prefixSentinel, limit)
}

func (s *PostgresStore) find(ctx context.Context, query string, args ...any) ([]models.Identity, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Transient("query directory", err)
	}
	defer rows.Close()

	var idents []models.Identity
	for rows.Next() {
		var ident models.Identity
		if err := rows.Scan(
			&ident.UID, &ident.Email, &ident.DisplayName,
			&ident.DisplayNameLower, &ident.CreatedAt, &ident.UpdatedAt); err != nil {
			return nil, apperr.Transient("scan directory record", err)
		}
		idents = append(idents, ident)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Transient("query directory", err)
	}
	return idents, nil
}
