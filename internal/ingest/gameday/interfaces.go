package gameday

import (
	"context"
	"time"

	"github.com/chrander/gameday/internal/store"
)

// Fetcher retrieves GameDay resources. Implementations return ErrUnavailable
// (wrapped) for ordinary HTTP-level failures so callers can degrade to an
// empty result set; only genuine transport errors surface as-is.
type Fetcher interface {
	// Scoreboard returns the master scoreboard document for one date.
	Scoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error)
	// InningAll returns the full inning-by-inning event feed for a game.
	InningAll(ctx context.Context, gameDir string) ([]byte, error)
	// HitChart returns the ball-in-play chart for a game.
	HitChart(ctx context.Context, gameDir string) ([]byte, error)
	// Players returns the roster listing for a game.
	Players(ctx context.Context, gameDir string) ([]byte, error)
}

// Gateway is the storage session a single worker owns for its lifetime.
// Insert methods report natural-key conflicts as store.ErrDuplicate; callers
// decide with errors.Is, never by inspecting message text.
type Gateway interface {
	ExistingGameIDs(ctx context.Context) (map[string]struct{}, error)
	ExistingPlayerIDs(ctx context.Context) (map[int64]struct{}, error)
	InsertGame(ctx context.Context, game *store.Game) error
	InsertPlayer(ctx context.Context, player *store.Player) error
	Close() error
}
