package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nusfitness/fitness-bot/internal/token"
)

// PostgresStore keeps menu history in a local Postgres table instead of the
// booking backend. Used for self-hosted deployments where the bot owns its
// own navigation state.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed history store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Record appends the token as the chat's current menu.
func (s *PostgresStore) Record(ctx context.Context, chatID int64, tok string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO menu_history (chat_id, token) VALUES ($1, $2)`,
		chatID, tok)
	if err != nil {
		return fmt.Errorf("record menu: %w", err)
	}
	return nil
}

// Resolve returns the token skip positions back from the most recent entry
// for the chat, or the Start anchor once history runs out.
func (s *PostgresStore) Resolve(ctx context.Context, chatID int64, skip int) (string, error) {
	var tok string
	err := s.pool.QueryRow(ctx,
		`SELECT token FROM menu_history
		 WHERE chat_id = $1
		 ORDER BY id DESC
		 OFFSET $2 LIMIT 1`,
		chatID, skip).Scan(&tok)
	if errors.Is(err, pgx.ErrNoRows) {
		return token.Start, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve menu: %w", err)
	}
	return tok, nil
}
