package catalogrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyidea/anyidea-api/internal/domain/catalog"
)

// PostgresRepository implements catalog.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new custom category row.
func (r *PostgresRepository) Insert(ctx context.Context, rec catalog.CategoryRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO custom_categories (id, session_id, category_id, name, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.RowID, rec.SessionID, rec.CategoryID, rec.Name, rec.Description, rec.Active, rec.CreatedAt)
	return err
}

// FindActive fetches the active category with the given normalized ID, if any.
func (r *PostgresRepository) FindActive(ctx context.Context, sessionID, categoryID string) (catalog.CategoryRecord, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, category_id, name, description, is_active, created_at
		FROM custom_categories
		WHERE session_id = $1 AND category_id = $2 AND is_active
		LIMIT 1
	`, sessionID, categoryID)
	if err != nil {
		return catalog.CategoryRecord{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return catalog.CategoryRecord{}, false, rows.Err()
	}
	rec, err := scanCategory(rows)
	if err != nil {
		return catalog.CategoryRecord{}, false, err
	}
	return rec, true, rows.Err()
}

// ListActive returns the session's active categories, newest first.
func (r *PostgresRepository) ListActive(ctx context.Context, sessionID string) ([]catalog.CategoryRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, category_id, name, description, is_active, created_at
		FROM custom_categories
		WHERE session_id = $1 AND is_active
		ORDER BY created_at DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.CategoryRecord
	for rows.Next() {
		rec, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Deactivate soft-deletes a category; reports whether a row was touched.
func (r *PostgresRepository) Deactivate(ctx context.Context, sessionID, categoryID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE custom_categories
		SET is_active = FALSE
		WHERE session_id = $1 AND category_id = $2 AND is_active
	`, sessionID, categoryID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (catalog.CategoryRecord, error) {
	var rec catalog.CategoryRecord
	if err := row.Scan(&rec.RowID, &rec.SessionID, &rec.CategoryID, &rec.Name, &rec.Description, &rec.Active, &rec.CreatedAt); err != nil {
		return catalog.CategoryRecord{}, err
	}
	return rec, nil
}

var _ catalog.Repository = (*PostgresRepository)(nil)
