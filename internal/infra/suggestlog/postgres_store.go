package suggestlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyidea/anyidea-api/internal/domain/suggest"
)

// PostgresStore persists suggestion exchanges for later inspection.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// SaveSuggestionLog implements suggest.LogStore.
func (s *PostgresStore) SaveSuggestionLog(ctx context.Context, rec suggest.LogRecord) error {
	reqJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	respJSON, err := json.Marshal(rec.Response)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO suggestion_logs (id, session_id, request_id, request, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), rec.SessionID, rec.RequestID, reqJSON, respJSON, time.Now().UTC())
	return err
}

var _ suggest.LogStore = (*PostgresStore)(nil)
