package backfill

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chrander/gameday/internal/ingest/gameday"
)

// GatewayFactory opens a storage session for one worker. Every worker owns
// its session for the lifetime of a date's pool; no session or transaction
// ever crosses a worker boundary.
type GatewayFactory func(ctx context.Context) (gameday.Gateway, error)

// Runner walks a date range and fans each date's games out to a bounded
// worker pool. Dates are strictly sequential: a date's pool is drained
// before the next date's scoreboard is fetched.
type Runner struct {
	fetcher     gameday.Fetcher
	openGateway GatewayFactory
	tracker     *gameday.Tracker
}

// NewRunner constructs a runner. The tracker is created empty and seeded
// from storage when Run starts.
func NewRunner(fetcher gameday.Fetcher, openGateway GatewayFactory) *Runner {
	return &Runner{
		fetcher:     fetcher,
		openGateway: openGateway,
		tracker:     gameday.NewTracker(),
	}
}

// Run executes the job spec. The returned Summary is valid even when err is
// non-nil. The only errors that abort a run are context cancellation and
// failure to reach storage at seed time; every per-game failure degrades to
// a Summary entry instead.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (Summary, error) {
	var summary Summary

	if reporter != nil {
		reporter.OnRunStart(spec)
	}

	if spec.DryRun {
		log.Println("[backfill] Dry-run mode: no data will be written")
		if reporter != nil {
			reporter.OnRunComplete(summary)
		}
		return summary, nil
	}

	gw, err := r.openGateway(ctx)
	if err != nil {
		return summary, fmt.Errorf("opening storage session: %w", err)
	}
	err = r.tracker.Seed(ctx, gw)
	gw.Close()
	if err != nil {
		return summary, fmt.Errorf("seeding dedup tracker: %w", err)
	}

	dates := enumerateDates(spec.Start, spec.End)
	log.Printf("[backfill] Ingesting GameDay data from %s to %s (%d days)",
		dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"), len(dates))

	for idx, date := range dates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if reporter != nil {
			reporter.OnDateStart(date, idx, len(dates))
		}
		r.processDate(ctx, date, spec, reporter, &summary)
		summary.Dates++
	}

	log.Printf("[backfill] ✓ Run complete: %d ingested, %d already present, %d not final, %d exhibition skipped, %d failed",
		summary.Ingested, summary.AlreadyPresent, summary.NotFinal, summary.ExhibitionSkipped, summary.Failed)
	if reporter != nil {
		reporter.OnRunComplete(summary)
	}

	return summary, nil
}

// processDate fetches one date's scoreboard and drains its games through the
// worker pool. Scoreboard unavailability or an empty listing is logged and
// skipped, not an error.
func (r *Runner) processDate(ctx context.Context, date time.Time, spec JobSpec,
	reporter Reporter, summary *Summary) {

	dateStr := date.Format("2006-01-02")

	scoreboard, err := r.fetcher.Scoreboard(ctx, date)
	if err != nil {
		log.Printf("[backfill] Error fetching scoreboard for %s: %v", dateStr, err)
		return
	}

	descriptors := gameday.ParseScoreboard(scoreboard)
	if len(descriptors) == 0 {
		log.Printf("[backfill] No games found on %s", dateStr)
		return
	}

	log.Printf("[backfill] Processing %d games on %s", len(descriptors), dateStr)

	workers := spec.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(descriptors) {
		workers = len(descriptors)
	}

	jobs := make(chan gameday.GameDescriptor)

	var wg sync.WaitGroup
	var mu sync.Mutex // guards summary and reporter
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			gw, err := r.openGateway(ctx)
			if err != nil {
				log.Printf("[backfill] Error opening storage session: %v", err)
				for desc := range jobs {
					mu.Lock()
					summary.record(gameday.OutcomeFailed)
					if reporter != nil {
						reporter.OnGameDone(desc.GamedayID, gameday.OutcomeFailed)
					}
					mu.Unlock()
				}
				return
			}
			defer gw.Close()

			proc := gameday.NewProcessor(r.fetcher, gw, r.tracker, spec.IncludeSpringTraining)
			for desc := range jobs {
				outcome := proc.ProcessGame(ctx, desc)
				mu.Lock()
				summary.record(outcome)
				if reporter != nil {
					reporter.OnGameDone(desc.GamedayID, outcome)
				}
				mu.Unlock()
			}
		}()
	}

	for _, desc := range descriptors {
		jobs <- desc
	}
	close(jobs)
	wg.Wait()
}

// enumerateDates yields every calendar date between start and end inclusive,
// in ascending order, swapping the bounds when they arrive reversed.
func enumerateDates(start, end time.Time) []time.Time {
	if end.Before(start) {
		start, end = end, start
	}

	var dates []time.Time
	current := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	final := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	for !current.After(final) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 1)
	}

	return dates
}
