package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/iaww/iaww-server-go/internal/game/deck"
	"github.com/iaww/iaww-server-go/internal/game/resources"
	"github.com/iaww/iaww-server-go/internal/metrics"
	"github.com/iaww/iaww-server-go/internal/store"
	"go.uber.org/zap"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// CreateRequest names the seats of a new game, host first.
type CreateRequest struct {
	Players []string `validate:"min=1,dive,required,max=40"`
}

// PlayerAction identifies a player of a game.
type PlayerAction struct {
	GameID   uuid.UUID `validate:"required"`
	PlayerID uuid.UUID `validate:"required"`
}

// CardAction identifies one of a player's cards.
type CardAction struct {
	PlayerAction
	CardID uuid.UUID `validate:"required"`
}

// InvestAction places one unit of Resource, by name or symbol, on a card.
type InvestAction struct {
	CardAction
	Resource string `validate:"required"`
}

// Manager serializes actions per game. Each action loads the game from the
// store, applies it and writes it back, all under the game's lock; a failed
// action writes nothing. Different games proceed in parallel.
type Manager struct {
	engine   *game.Engine
	store    store.Store
	metrics  metrics.Recorder
	validate *validator.Validate
	logger   *zap.Logger
	replays  *ReplayRecorder

	locks map[uuid.UUID]*sync.Mutex
	mu    sync.RWMutex
}

// NewManager creates a match manager. A nil recorder disables metrics.
func NewManager(engine *game.Engine, s store.Store, recorder metrics.Recorder, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Manager{
		engine:   engine,
		store:    s,
		metrics:  recorder,
		validate: validator.New(),
		logger:   logger,
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// Engine returns the engine the manager applies actions with.
func (m *Manager) Engine() *game.Engine {
	return m.engine
}

// RecordReplays records every game created from now on into rr.
func (m *Manager) RecordReplays(rr *ReplayRecorder) {
	m.replays = rr
}

func (m *Manager) lockFor(id uuid.UUID) *sync.Mutex {
	m.mu.RLock()
	lock, ok := m.locks[id]
	m.mu.RUnlock()
	if ok {
		return lock
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lock, ok = m.locks[id]; !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

func (m *Manager) check(req interface{}) error {
	if err := m.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func (m *Manager) load(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	g, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	return g, nil
}

// update runs apply against a fresh copy of the game and stores the result.
func (m *Manager) update(ctx context.Context, action string, id uuid.UUID, apply func(*game.Game) error) (err error) {
	start := time.Now()
	defer func() {
		m.metrics.RecordAction(action, time.Since(start), err)
	}()

	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	if err = apply(g); err != nil {
		m.logger.Debug("action rejected",
			zap.String("game_id", id.String()),
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}
	if err = m.store.Put(ctx, g); err != nil {
		return err
	}
	if m.replays != nil {
		m.replays.Record(action, g)
	}
	return nil
}

// Create seats the named players in a new lobby game and stores it.
func (m *Manager) Create(ctx context.Context, host string, others ...string) (*game.Game, error) {
	req := CreateRequest{Players: append([]string{host}, others...)}
	if err := m.check(req); err != nil {
		return nil, err
	}

	g, err := m.engine.NewGame(host, others...)
	if err != nil {
		return nil, err
	}
	if err := m.store.Put(ctx, g); err != nil {
		return nil, err
	}
	if m.replays != nil {
		m.replays.StartRecording(g.ID)
		m.replays.Record("create", g)
	}

	m.logger.Info("match created",
		zap.String("game_id", g.ID.String()),
		zap.Int("players", len(g.Players)),
	)
	return g, nil
}

// Start generates a deck from seed and starts the game.
func (m *Manager) Start(ctx context.Context, id uuid.UUID, seed uint64) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: game id is required", ErrInvalidRequest)
	}
	err := m.update(ctx, "start", id, func(g *game.Game) error {
		cards := deck.NewGenerator(seed).Generate(m.engine.Rules().DeckSize)
		return m.engine.StartGame(g, cards)
	})
	if err == nil {
		m.metrics.RecordGameStarted()
	}
	return err
}

// Draft keeps a card from the player's hand.
func (m *Manager) Draft(ctx context.Context, a CardAction) error {
	if err := m.check(a); err != nil {
		return err
	}
	return m.update(ctx, "draft", a.GameID, func(g *game.Game) error {
		return m.engine.DraftCard(g, a.PlayerID, a.CardID)
	})
}

// MoveToConstruction starts building a drafted card.
func (m *Manager) MoveToConstruction(ctx context.Context, a CardAction) error {
	if err := m.check(a); err != nil {
		return err
	}
	return m.update(ctx, "construct", a.GameID, func(g *game.Game) error {
		return m.engine.MoveToConstruction(g, a.PlayerID, a.CardID)
	})
}

// Discard recycles a drafted card and returns its recycling bonus.
func (m *Manager) Discard(ctx context.Context, a CardAction) (resources.Amounts, error) {
	if err := m.check(a); err != nil {
		return nil, err
	}
	var bonus resources.Amounts
	err := m.update(ctx, "discard", a.GameID, func(g *game.Game) error {
		var err error
		bonus, err = m.engine.DiscardCard(g, a.PlayerID, a.CardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bonus, nil
}

// AddResource invests one unit in a card under construction.
func (m *Manager) AddResource(ctx context.Context, a InvestAction) error {
	if err := m.check(a); err != nil {
		return err
	}
	r, err := resources.ParseResourceType(a.Resource)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return m.update(ctx, "invest", a.GameID, func(g *game.Game) error {
		return m.engine.AddResourceToCard(g, a.PlayerID, a.CardID, r)
	})
}

// SetReady marks the player ready for the current phase or production step.
func (m *Manager) SetReady(ctx context.Context, a PlayerAction) (game.RoundResult, error) {
	if err := m.check(a); err != nil {
		return game.RoundResult{}, err
	}
	var result game.RoundResult
	err := m.update(ctx, "ready", a.GameID, func(g *game.Game) error {
		var err error
		result, err = m.engine.SetPlayerReady(g, a.PlayerID)
		return err
	})
	if err != nil {
		return game.RoundResult{}, err
	}

	switch result.Outcome {
	case game.RoundStarted:
		m.metrics.RecordRoundStarted(result.Round)
	case game.GameOver:
		m.metrics.RecordGameFinished(result.Round)
		m.logger.Info("match finished",
			zap.String("game_id", a.GameID.String()),
			zap.Int("rounds", result.Round),
		)
	}
	return result, nil
}

// Scores returns the final scores of a finished game.
func (m *Manager) Scores(ctx context.Context, id uuid.UUID) (map[uuid.UUID]int, error) {
	g, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.engine.CalculateFinalScores(g)
}

// Status projects the game for a viewer; uuid.Nil is a spectator.
func (m *Manager) Status(ctx context.Context, id, viewerID uuid.UUID) (*game.GameStatus, error) {
	g, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.Status(g, viewerID)
}

// List summarizes every stored game, most recent first.
func (m *Manager) List(ctx context.Context) ([]store.Summary, error) {
	return m.store.List(ctx)
}

// Remove deletes a game and forgets its lock.
func (m *Manager) Remove(ctx context.Context, id uuid.UUID) error {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}

	m.mu.Lock()
	delete(m.locks, id)
	m.mu.Unlock()

	m.logger.Info("match removed", zap.String("game_id", id.String()))
	return nil
}
