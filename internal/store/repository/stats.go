package repository

import (
	"context"
	"fmt"

	"github.com/chrander/gameday/internal/store"
)

// TableCounts reports the number of stored rows per entity kind.
type TableCounts struct {
	Games      int64
	AtBats     int64
	Pitches    int64
	Players    int64
	HitsInPlay int64
}

// StatsRepository reads aggregate row counts for operator visibility.
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts returns the current row count of every GameDay table.
func (r *StatsRepository) Counts(ctx context.Context) (*TableCounts, error) {
	counts := &TableCounts{}

	tables := []struct {
		name string
		dest *int64
	}{
		{"games", &counts.Games},
		{"at_bats", &counts.AtBats},
		{"pitches", &counts.Pitches},
		{"players", &counts.Players},
		{"hits_in_play", &counts.HitsInPlay},
	}

	for _, table := range tables {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table.name)
		if err := r.db.DB().QueryRowContext(ctx, query).Scan(table.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table.name, err)
		}
	}

	return counts, nil
}
