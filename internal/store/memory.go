package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game"
)

// MemoryStore keeps encoded snapshots in a map. Storing bytes rather than
// pointers keeps callers from sharing a game by accident.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[uuid.UUID][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*game.Game, error) {
	s.mu.RLock()
	data, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return game.Decode(data)
}

func (s *MemoryStore) Put(_ context.Context, g *game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.games[g.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrNotFound
	}
	delete(s.games, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.games))
	for _, data := range s.games {
		g, err := game.Decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(g))
	}
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// sortSummaries orders most recently updated first.
func sortSummaries(out []Summary) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
}
