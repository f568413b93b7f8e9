package gameday

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Tracker remembers which games and players the store already holds so
// workers can skip redundant fetch/parse/commit work. It is a best-effort
// hint shared across workers: the store's uniqueness constraints remain the
// arbiter of already-present, and commit-time conflicts stay expected.
type Tracker struct {
	mu         sync.RWMutex
	gamedayIDs map[string]struct{}
	playerIDs  map[int64]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		gamedayIDs: make(map[string]struct{}),
		playerIDs:  make(map[int64]struct{}),
	}
}

// Seed loads the sets of already-stored game and player ids. Called once at
// the start of a run.
func (t *Tracker) Seed(ctx context.Context, gw Gateway) error {
	gamedayIDs, err := gw.ExistingGameIDs(ctx)
	if err != nil {
		return fmt.Errorf("loading existing game ids: %w", err)
	}
	playerIDs, err := gw.ExistingPlayerIDs(ctx)
	if err != nil {
		return fmt.Errorf("loading existing player ids: %w", err)
	}

	t.mu.Lock()
	t.gamedayIDs = gamedayIDs
	t.playerIDs = playerIDs
	t.mu.Unlock()

	log.Printf("[dedup] %d games and %d players already in the database",
		len(gamedayIDs), len(playerIDs))
	return nil
}

// HasGame reports whether a gameday id is known to be stored.
func (t *Tracker) HasGame(gamedayID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.gamedayIDs[gamedayID]
	return ok
}

// AddGame records a committed gameday id.
func (t *Tracker) AddGame(gamedayID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gamedayIDs[gamedayID] = struct{}{}
}

// HasPlayer reports whether a player id is known to be stored.
func (t *Tracker) HasPlayer(playerID int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.playerIDs[playerID]
	return ok
}

// AddPlayer records a committed player id.
func (t *Tracker) AddPlayer(playerID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playerIDs[playerID] = struct{}{}
}
