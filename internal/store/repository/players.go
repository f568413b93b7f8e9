package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrander/gameday/internal/store"
)

// PlayerRepository handles player data access.
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ExistingIDs returns the set of player ids already in the store.
func (r *PlayerRepository) ExistingIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT player_id FROM players`)
	if err != nil {
		return nil, fmt.Errorf("querying player ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning player id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading player ids: %w", err)
	}

	return ids, nil
}

// Insert stores a single player row. Players are inserted one at a time so a
// conflict on one id cannot keep the rest of a game's roster out of the
// store. A conflict on the player id returns store.ErrDuplicate.
func (r *PlayerRepository) Insert(ctx context.Context, player *store.Player) error {
	const insert = `
		INSERT INTO players (player_id, first_name, last_name, boxname, throws, bats)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.DB().ExecContext(ctx, insert,
		player.PlayerID, player.FirstName, player.LastName,
		player.BoxName, player.Throws, player.Bats,
	)
	if err != nil {
		if err := translateInsertErr(err); errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("inserting player %d: %w", player.PlayerID, store.ErrDuplicate)
		}
		return fmt.Errorf("inserting player %d: %w", player.PlayerID, err)
	}

	return nil
}
