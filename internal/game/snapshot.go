package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/game/resources"
)

// SnapshotVersion is bumped whenever the encoded layout changes.
const SnapshotVersion = 1

type snapshotEnvelope struct {
	Version int   `json:"version"`
	Game    *Game `json:"game"`
}

// Encode serializes a game for storage.
func Encode(g *Game) ([]byte, error) {
	data, err := json.Marshal(snapshotEnvelope{Version: SnapshotVersion, Game: g})
	if err != nil {
		return nil, fmt.Errorf("failed to encode game %s: %w", g.ID, err)
	}
	return data, nil
}

// Decode restores a game written by Encode.
func Decode(data []byte) (*Game, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}
	if env.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	if env.Game == nil {
		return nil, fmt.Errorf("snapshot has no game")
	}
	env.Game.normalize()
	return env.Game, nil
}

// Clone returns a deep copy of the game.
func Clone(g *Game) (*Game, error) {
	data, err := Encode(g)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Checksum returns a SHA-256 digest of the game's rule state. Timestamps are
// excluded, so two games that went through the same actions agree.
func Checksum(g *Game) string {
	sum := sha256.Sum256(canonical(g))
	return hex.EncodeToString(sum[:])
}

func canonical(g *Game) []byte {
	var buf bytes.Buffer

	step := "-"
	if s, ok := g.ProductionStep(); ok {
		step = s.String()
	}
	fmt.Fprintf(&buf, "GAME:%s|%s|%s|%s|%d|%s|%s|%t\n",
		g.ID, g.HostID, g.State, g.CurrentPhase, g.CurrentRound,
		g.CurrentDraftDirection, step, g.ShouldPassHands)

	fmt.Fprintf(&buf, "DRAFTED:%s\n", sortedIDs(g.PlayersDrafted))

	for _, p := range g.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%s|%v|%d|%t|%t\n",
			p.ID, p.Name, p.Resources, [resources.NumCharacters]int(p.Characters),
			p.DiscardedResourcePool, p.IsReady, p.HasDraftedThisRound)
		writeZone(&buf, "HAND", p.Hand)
		writeZone(&buf, "DRAFTING", p.DraftingArea)
		writeZone(&buf, "CONSTRUCTION", p.ConstructionArea)
		writeZone(&buf, "EMPIRE", p.Empire)
	}
	writeZone(&buf, "DECK", g.DevelopmentDeck)
	writeZone(&buf, "DISCARD", g.DiscardPile)

	if g.WinnerID != nil {
		fmt.Fprintf(&buf, "WINNER:%s\n", *g.WinnerID)
	}
	if g.FinalScores != nil {
		ids := make([]uuid.UUID, 0, len(g.FinalScores))
		for id := range g.FinalScores {
			ids = append(ids, id)
		}
		sortUUIDs(ids)
		for _, id := range ids {
			fmt.Fprintf(&buf, "SCORE:%s=%d\n", id, g.FinalScores[id])
		}
	}
	return buf.Bytes()
}

// writeZone keeps zone order; the order of a hand is part of the state.
func writeZone(buf *bytes.Buffer, label string, cards []*Card) {
	fmt.Fprintf(buf, "%s:%d\n", label, len(cards))
	for _, c := range cards {
		fmt.Fprintf(buf, "  %s|%s|%s|%s|%s|%d|%d|%d|%d|%s|%s|%s\n",
			c.ID, c.Name, c.Type, c.ConstructionCost, c.Production,
			c.VictoryPoints, c.ComboVictoryPoints, c.GeneralBonus, c.FinancierBonus,
			c.RecyclingBonus, c.SpecialAbility, c.InvestedResources)
	}
}

func sortedIDs(set map[uuid.UUID]bool) []string {
	ids := make([]string, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id.String())
		}
	}
	sort.Strings(ids)
	return ids
}

func sortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
