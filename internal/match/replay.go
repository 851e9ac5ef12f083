package match

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game"
	"go.uber.org/zap"
)

const replayVersion = 1

// Frame is the state of a game right after one action.
type Frame struct {
	Action   string `json:"action"`
	Snapshot []byte `json:"snapshot"`
}

// Game decodes the frame's snapshot.
func (f *Frame) Game() (*game.Game, error) {
	return game.Decode(f.Snapshot)
}

// Replay is a recorded game as a sequence of frames.
type Replay struct {
	GameID       uuid.UUID
	Frames       []*Frame
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay
func NewReplay(gameID uuid.UUID) *Replay {
	return &Replay{
		GameID: gameID,
		Frames: make([]*Frame, 0),
	}
}

// Record appends the current state of g.
func (r *Replay) Record(action string, g *game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Frames = append(r.Frames, &Frame{Action: action, Snapshot: data})
	return nil
}

// Start rewinds to the first frame.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the frame at the cursor and advances it, or nil at the end.
func (r *Replay) Next() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.Frames) {
		frame := r.Frames[r.CurrentIndex]
		r.CurrentIndex++
		return frame
	}
	return nil
}

// Previous steps the cursor back and returns that frame, or nil at the start.
func (r *Replay) Previous() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.Frames[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count frames, clamped to the recording.
func (r *Replay) Skip(count int) *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Frames) == 0 {
		return nil
	}
	r.CurrentIndex = min(max(r.CurrentIndex+count, 0), len(r.Frames)-1)
	return r.Frames[r.CurrentIndex]
}

// Size returns the number of recorded frames
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.Frames)
}

// FrameAt returns the frame at index, or nil when out of range.
func (r *Replay) FrameAt(index int) *Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.Frames) {
		return r.Frames[index]
	}
	return nil
}

// replayFile is the on-disk layout of a replay.
type replayFile struct {
	Version   int       `json:"version"`
	GameID    uuid.UUID `json:"game_id"`
	Timestamp time.Time `json:"timestamp"`
	Frames    []*Frame  `json:"frames"`
}

func replayPath(directory string, gameID uuid.UUID) string {
	return filepath.Join(directory, fmt.Sprintf("%s.replay", gameID))
}

// SaveToFile writes the replay to <directory>/<game id>.replay, gzipped.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(replayPath(directory, r.GameID))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	content := replayFile{
		Version:   replayVersion,
		GameID:    r.GameID,
		Timestamp: time.Now(),
		Frames:    r.Frames,
	}
	if err := json.NewEncoder(gzipWriter).Encode(&content); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	return file.Close()
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(directory string, gameID uuid.UUID) (*Replay, error) {
	file, err := os.Open(replayPath(directory, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var content replayFile
	if err := json.NewDecoder(gzipReader).Decode(&content); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if content.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", content.Version)
	}

	replay := NewReplay(content.GameID)
	replay.Frames = append(replay.Frames, content.Frames...)
	return replay, nil
}

// ReplayRecorder keeps a replay per game while recording is enabled.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	replays map[uuid.UUID]*Replay
	enabled map[uuid.UUID]bool
	saveDir string
}

// NewReplayRecorder creates a recorder saving into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[uuid.UUID]*Replay),
		enabled: make(map[uuid.UUID]bool),
		saveDir: saveDir,
	}
}

// StartRecording begins recording a game
func (rr *ReplayRecorder) StartRecording(gameID uuid.UUID) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.replays[gameID] = NewReplay(gameID)
	rr.enabled[gameID] = true

	rr.logger.Debug("started replay recording", zap.String("game_id", gameID.String()))
}

// StopRecording stops recording a game and keeps what was recorded.
func (rr *ReplayRecorder) StopRecording(gameID uuid.UUID) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.enabled[gameID] = false
}

// Record appends g to its replay if recording is enabled for it.
func (rr *ReplayRecorder) Record(action string, g *game.Game) {
	rr.mu.RLock()
	enabled := rr.enabled[g.ID]
	replay := rr.replays[g.ID]
	rr.mu.RUnlock()

	if !enabled || replay == nil {
		return
	}
	if err := replay.Record(action, g); err != nil {
		rr.logger.Warn("failed to record replay frame",
			zap.String("game_id", g.ID.String()),
			zap.Error(err),
		)
	}
}

// IsRecording returns whether recording is enabled for a game
func (rr *ReplayRecorder) IsRecording(gameID uuid.UUID) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	return rr.enabled[gameID]
}

// Replay returns the replay recorded for a game.
func (rr *ReplayRecorder) Replay(gameID uuid.UUID) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	replay, ok := rr.replays[gameID]
	return replay, ok
}

// SaveReplay writes a replay to disk and forgets it.
func (rr *ReplayRecorder) SaveReplay(gameID uuid.UUID) error {
	rr.mu.Lock()
	replay, ok := rr.replays[gameID]
	if !ok {
		rr.mu.Unlock()
		return fmt.Errorf("no replay found for game %s", gameID)
	}
	delete(rr.replays, gameID)
	delete(rr.enabled, gameID)
	rr.mu.Unlock()

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}

	rr.logger.Info("saved replay to disk",
		zap.String("game_id", gameID.String()),
		zap.Int("frames", replay.Size()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// LoadReplay reads a saved replay from the recorder's directory.
func (rr *ReplayRecorder) LoadReplay(gameID uuid.UUID) (*Replay, error) {
	return LoadReplayFromFile(rr.saveDir, gameID)
}
