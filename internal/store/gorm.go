package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/config"
	"github.com/iaww/iaww-server-go/internal/game"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GameModel represents the games table.
type GameModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	State     string    `gorm:"column:state;not null;index"`
	Phase     string    `gorm:"column:phase;not null"`
	Round     int       `gorm:"column:round;not null"`
	Players   int       `gorm:"column:players;not null"`
	Snapshot  string    `gorm:"column:snapshot;type:text;not null"` // JSON as text
	Checksum  string    `gorm:"column:checksum;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GameModel) TableName() string {
	return "games"
}

// GormStore keeps games in a SQL database through gorm.
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore connects to sqlite or postgres and migrates the games table.
func OpenGormStore(cfg config.StoreConfig) (*GormStore, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = ":memory:"
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// Each sqlite connection to :memory: is its own database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an open connection and migrates the games table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&GameModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate games table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	var model GameModel
	result := s.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}
	return game.Decode([]byte(model.Snapshot))
}

func (s *GormStore) Put(ctx context.Context, g *game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return err
	}
	sum := summarize(g)
	model := &GameModel{
		ID:        g.ID.String(),
		State:     sum.State,
		Phase:     sum.Phase,
		Round:     sum.Round,
		Players:   sum.Players,
		Snapshot:  string(data),
		Checksum:  sum.Checksum,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}

	// Upsert: create or update
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&GameModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]Summary, error) {
	var models []GameModel
	result := s.db.WithContext(ctx).
		Select("id", "state", "phase", "round", "players", "checksum", "updated_at").
		Order("updated_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list games: %w", result.Error)
	}

	out := make([]Summary, 0, len(models))
	for _, m := range models {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			continue // Skip rows not written by this store
		}
		out = append(out, Summary{
			ID:        id,
			State:     m.State,
			Phase:     m.Phase,
			Round:     m.Round,
			Players:   m.Players,
			Checksum:  m.Checksum,
			UpdatedAt: m.UpdatedAt,
		})
	}
	sortSummaries(out)
	return out, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
