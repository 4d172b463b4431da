// Package storage persists batch results to PostgreSQL. It is optional:
// the CLI only opens a store when a database URL is configured.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS batches (
    id         UUID PRIMARY KEY,
    base_seed  BIGINT NOT NULL,
    runs       INT NOT NULL,
    elapsed_ms BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS game_results (
    batch_id        UUID NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
    run_index       INT NOT NULL,
    seed            BIGINT NOT NULL,
    won             BOOLEAN NOT NULL,
    win_turn        INT NOT NULL,
    on_play         BOOLEAN NOT NULL,
    combat_damage   INT NOT NULL,
    combo_damage    INT NOT NULL,
    first_blue_turn INT NOT NULL,
    first_black_turn INT NOT NULL,
    first_red_turn  INT NOT NULL,
    all_colors_turn INT NOT NULL,
    PRIMARY KEY (batch_id, run_index)
);
`

// Store is a pgx-backed results sink.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New connects to the database and verifies the connection.
func New(ctx context.Context, url string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the result tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveBatch writes the batch header and one row per game inside a single
// transaction. Seeds are stored as signed 64-bit values; readers reinterpret
// the bit pattern.
func (s *Store) SaveBatch(ctx context.Context, batch *sim.Batch) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO batches (id, base_seed, runs, elapsed_ms) VALUES ($1, $2, $3, $4)`,
		batch.ID, int64(batch.BaseSeed), len(batch.Results), batch.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting batch %s: %w", batch.ID, err)
	}

	rows := make([][]any, 0, len(batch.Results))
	for i, r := range batch.Results {
		rows = append(rows, []any{
			batch.ID, i, int64(r.Seed), r.Won, r.WinTurn, r.OnPlay,
			r.CombatDamage, r.ComboDamage,
			r.FirstBlueTurn, r.FirstBlackTurn, r.FirstRedTurn, r.AllColorsTurn,
		})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"game_results"},
		[]string{
			"batch_id", "run_index", "seed", "won", "win_turn", "on_play",
			"combat_damage", "combo_damage",
			"first_blue_turn", "first_black_turn", "first_red_turn", "all_colors_turn",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying results for batch %s: %w", batch.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing batch %s: %w", batch.ID, err)
	}
	s.logger.Info("batch persisted",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("games", len(batch.Results)),
	)
	return nil
}
