package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/config"
	"github.com/iaww/iaww-server-go/internal/game"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no game is stored under an ID.
var ErrNotFound = errors.New("game not found")

// Store keeps games between actions. Every Get returns an independent copy;
// changes are only visible to others after Put.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*game.Game, error)
	Put(ctx context.Context, g *game.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

// Summary describes a stored game without decoding it.
type Summary struct {
	ID        uuid.UUID
	State     string
	Phase     string
	Round     int
	Players   int
	Checksum  string
	UpdatedAt time.Time
}

func summarize(g *game.Game) Summary {
	return Summary{
		ID:        g.ID,
		State:     g.State.String(),
		Phase:     g.CurrentPhase.String(),
		Round:     g.CurrentRound,
		Players:   len(g.Players),
		Checksum:  game.Checksum(g),
		UpdatedAt: g.UpdatedAt,
	}
}

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "memory":
		s = NewMemoryStore()
	case "sqlite", "postgres":
		s, err = OpenGormStore(cfg)
	case "pgx":
		s, err = NewPgxStore(ctx, cfg.DSN)
	case "redis":
		s, err = NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("store opened", zap.String("driver", cfg.Driver))
	return s, nil
}
