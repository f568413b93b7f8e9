package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/chrander/gameday/internal/store"
)

func TestTranslateInsertErr(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantDuplicate bool
	}{
		{
			name:          "unique violation",
			err:           &pq.Error{Code: "23505", Constraint: "games_gameday_id_key"},
			wantDuplicate: true,
		},
		{
			name:          "wrapped unique violation",
			err:           fmt.Errorf("inserting: %w", &pq.Error{Code: "23505"}),
			wantDuplicate: true,
		},
		{
			name:          "other pq error",
			err:           &pq.Error{Code: "23503", Constraint: "at_bats_game_id_fkey"},
			wantDuplicate: false,
		},
		{
			name:          "plain error",
			err:           errors.New("connection reset"),
			wantDuplicate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateInsertErr(tt.err)
			if dup := errors.Is(got, store.ErrDuplicate); dup != tt.wantDuplicate {
				t.Errorf("errors.Is(ErrDuplicate) = %v, want %v (err: %v)",
					dup, tt.wantDuplicate, got)
			}
			if !tt.wantDuplicate && got != tt.err {
				t.Errorf("non-duplicate errors must pass through unchanged, got %v", got)
			}
		})
	}
}
