package gameday

import (
	"context"
	"errors"
	"log"

	"github.com/chrander/gameday/internal/store"
)

// Outcome classifies what happened to one game so callers can aggregate a
// run summary without inspecting errors.
type Outcome int

const (
	// OutcomeIngested means the game aggregate was committed.
	OutcomeIngested Outcome = iota
	// OutcomeAlreadyPresent means the game was in the store before this
	// attempt, found either via the dedup cache or a commit-time conflict.
	OutcomeAlreadyPresent
	// OutcomeNotFinal means the game's status has no box score yet.
	OutcomeNotFinal
	// OutcomeExhibition means a spring training or exhibition game was
	// skipped because the caller did not opt in.
	OutcomeExhibition
	// OutcomeFailed means the game commit failed; the game stays absent and
	// is retried by re-running the date range.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIngested:
		return "ingested"
	case OutcomeAlreadyPresent:
		return "already present"
	case OutcomeNotFinal:
		return "not final"
	case OutcomeExhibition:
		return "exhibition skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Processor ingests single games. Each worker builds its own Processor
// around its own storage session; only the Tracker is shared.
type Processor struct {
	fetcher               Fetcher
	gw                    Gateway
	tracker               *Tracker
	includeSpringTraining bool
}

// NewProcessor creates a processor bound to one storage session.
func NewProcessor(fetcher Fetcher, gw Gateway, tracker *Tracker, includeSpringTraining bool) *Processor {
	return &Processor{
		fetcher:               fetcher,
		gw:                    gw,
		tracker:               tracker,
		includeSpringTraining: includeSpringTraining,
	}
}

// ProcessGame ingests one game from its scoreboard descriptor: eligibility
// checks, resource fetches, parsing, and commits. Failures are contained at
// the smallest unit possible; nothing here aborts the surrounding run.
// Every step runs at most once — recoverability comes from re-running the
// date range, which the idempotent skip/conflict handling makes safe.
func (p *Processor) ProcessGame(ctx context.Context, desc GameDescriptor) Outcome {
	if p.tracker.HasGame(desc.GamedayID) {
		log.Printf("[ingest] Skipping game %s: already ingested", desc.GamedayID)
		return OutcomeAlreadyPresent
	}

	game := ParseGame(desc)
	if game == nil {
		log.Printf("[ingest] Skipping game %s: status %q has no box score yet",
			desc.GamedayID, desc.Status)
		return OutcomeNotFinal
	}

	if !p.includeSpringTraining && practiceGameTypes[desc.GameType] {
		log.Printf("[ingest] Skipping game %s: spring training or exhibition game", desc.GamedayID)
		return OutcomeExhibition
	}

	log.Printf("[ingest] Processing game %s", desc.GamedayID)

	// The three per-game resources are fetched independently: a missing hit
	// chart must not keep pitch and at-bat data out of the store.
	hitChartData := p.fetchResource(ctx, "hit chart", desc, p.fetcher.HitChart)
	playersData := p.fetchResource(ctx, "players", desc, p.fetcher.Players)
	inningData := p.fetchResource(ctx, "inning feed", desc, p.fetcher.InningAll)

	var atBats []*store.AtBat
	if inningData != nil {
		parsed, err := ParseInningAll(inningData)
		if err != nil {
			log.Printf("[ingest] Error parsing inning feed for game %s: %v", desc.GamedayID, err)
		} else {
			atBats = parsed
		}
	}

	var players []*store.Player
	if playersData != nil {
		parsed, err := ParsePlayers(playersData)
		if err != nil {
			log.Printf("[ingest] Error parsing players for game %s: %v", desc.GamedayID, err)
		} else {
			players = parsed
		}
	}

	var hips []*store.HitInPlay
	if hitChartData != nil {
		parsed, err := ParseHitChart(hitChartData)
		if err != nil {
			log.Printf("[ingest] Error parsing hit chart for game %s: %v", desc.GamedayID, err)
		} else {
			hips = parsed
		}
	}

	game.AtBats = atBats
	game.HitsInPlay = hips

	p.commitPlayers(ctx, players)

	return p.commitGame(ctx, game)
}

// commitPlayers inserts players one at a time so a conflict on one id cannot
// keep the remaining players in the same game out of the store.
func (p *Processor) commitPlayers(ctx context.Context, players []*store.Player) {
	for _, player := range players {
		if p.tracker.HasPlayer(player.PlayerID) {
			continue
		}

		if err := p.gw.InsertPlayer(ctx, player); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				// Another worker or a previous run got there first.
				log.Printf("[ingest] Player %d already in the database", player.PlayerID)
			} else {
				log.Printf("[ingest] Error inserting player %d: %v", player.PlayerID, err)
			}
			continue
		}

		p.tracker.AddPlayer(player.PlayerID)
	}
}

func (p *Processor) commitGame(ctx context.Context, game *store.Game) Outcome {
	if err := p.gw.InsertGame(ctx, game); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Printf("[ingest] Game %s already in the database", game.GamedayID)
			return OutcomeAlreadyPresent
		}
		// Left out of the tracker on purpose: a re-run of the same date
		// range retries the game.
		log.Printf("[ingest] Error inserting game %s: %v", game.GamedayID, err)
		return OutcomeFailed
	}

	p.tracker.AddGame(game.GamedayID)
	log.Printf("[ingest] ✓ Ingested game %s (%d at-bats, %d hits in play)",
		game.GamedayID, len(game.AtBats), len(game.HitsInPlay))
	return OutcomeIngested
}

func (p *Processor) fetchResource(ctx context.Context, name string, desc GameDescriptor,
	fetch func(context.Context, string) ([]byte, error)) []byte {

	data, err := fetch(ctx, desc.DataDirectory)
	if err != nil {
		log.Printf("[ingest] Error fetching %s for game %s: %v", name, desc.GamedayID, err)
		return nil
	}
	return data
}
