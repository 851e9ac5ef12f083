package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgxSchema = `
CREATE TABLE IF NOT EXISTS iaww_games (
	id          UUID PRIMARY KEY,
	state       TEXT NOT NULL,
	phase       TEXT NOT NULL,
	round       INTEGER NOT NULL,
	players     INTEGER NOT NULL,
	snapshot    JSONB NOT NULL,
	checksum    TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
)`

// PgxStore keeps games in PostgreSQL through a pgx connection pool.
type PgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore connects, pings and creates the table if needed.
func NewPgxStore(ctx context.Context, dsn string) (*PgxStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, pgxSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create games table: %w", err)
	}
	return &PgxStore{pool: pool}, nil
}

func (s *PgxStore) Get(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT snapshot FROM iaww_games WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}
	return game.Decode(data)
}

func (s *PgxStore) Put(ctx context.Context, g *game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return err
	}
	sum := summarize(g)
	_, err = s.pool.Exec(ctx, `
		INSERT INTO iaww_games (id, state, phase, round, players, snapshot, checksum, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			phase = EXCLUDED.phase,
			round = EXCLUDED.round,
			players = EXCLUDED.players,
			snapshot = EXCLUDED.snapshot,
			checksum = EXCLUDED.checksum,
			updated_at = EXCLUDED.updated_at`,
		g.ID, sum.State, sum.Phase, sum.Round, sum.Players, data, sum.Checksum, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (s *PgxStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM iaww_games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgxStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, state, phase, round, players, checksum, updated_at
		FROM iaww_games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.State, &sum.Phase, &sum.Round, &sum.Players, &sum.Checksum, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	sortSummaries(out)
	return out, nil
}

func (s *PgxStore) Close() error {
	s.pool.Close()
	return nil
}
