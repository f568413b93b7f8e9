package backfill

import (
	"time"

	"github.com/chrander/gameday/internal/ingest/gameday"
)

// JobSpec describes one ingestion run.
type JobSpec struct {
	// Start and End bound the date range, inclusive. A reversed range is
	// swapped before iteration, never rejected.
	Start time.Time
	End   time.Time
	// Workers is the number of concurrent game workers per date. Values
	// below 1 run serially.
	Workers int
	// IncludeSpringTraining opts in to spring training and exhibition games.
	IncludeSpringTraining bool
	// DryRun parses the spec and exits without touching storage.
	DryRun bool
}

// Summary aggregates per-game outcomes across a run.
type Summary struct {
	Dates             int
	Games             int
	Ingested          int
	AlreadyPresent    int
	NotFinal          int
	ExhibitionSkipped int
	Failed            int
}

func (s *Summary) record(outcome gameday.Outcome) {
	s.Games++
	switch outcome {
	case gameday.OutcomeIngested:
		s.Ingested++
	case gameday.OutcomeAlreadyPresent:
		s.AlreadyPresent++
	case gameday.OutcomeNotFinal:
		s.NotFinal++
	case gameday.OutcomeExhibition:
		s.ExhibitionSkipped++
	case gameday.OutcomeFailed:
		s.Failed++
	}
}

// Reporter receives progress callbacks from the runner. A nil Reporter is
// valid; the runner still logs errors and the final summary itself.
type Reporter interface {
	OnRunStart(spec JobSpec)
	OnDateStart(date time.Time, index int, total int)
	OnGameDone(gamedayID string, outcome gameday.Outcome)
	OnRunComplete(summary Summary)
}
