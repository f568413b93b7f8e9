package repository

import (
	"context"
	"database/sql"

	"github.com/chrander/gameday/internal/store"
)

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Session bundles the repositories behind one database handle so a single
// ingest worker can own its storage connection for its lifetime. It satisfies
// the ingest package's Gateway interface.
type Session struct {
	db      *store.Database
	games   *GameRepository
	players *PlayerRepository
}

// OpenSession connects to the database and wires up the repositories.
func OpenSession(dsn string) (*Session, error) {
	db, err := store.Connect(dsn)
	if err != nil {
		return nil, err
	}
	return NewSession(db), nil
}

// NewSession wraps an existing database handle.
func NewSession(db *store.Database) *Session {
	return &Session{
		db:      db,
		games:   NewGameRepository(db),
		players: NewPlayerRepository(db),
	}
}

// ExistingGameIDs returns the gameday ids already present in the store.
func (s *Session) ExistingGameIDs(ctx context.Context) (map[string]struct{}, error) {
	return s.games.ExistingGamedayIDs(ctx)
}

// ExistingPlayerIDs returns the player ids already present in the store.
func (s *Session) ExistingPlayerIDs(ctx context.Context) (map[int64]struct{}, error) {
	return s.players.ExistingIDs(ctx)
}

// InsertGame stores a game aggregate in one transaction.
func (s *Session) InsertGame(ctx context.Context, game *store.Game) error {
	return s.games.Insert(ctx, game)
}

// InsertPlayer stores a single player row.
func (s *Session) InsertPlayer(ctx context.Context, player *store.Player) error {
	return s.players.Insert(ctx, player)
}

// Close releases the underlying database connection.
func (s *Session) Close() error {
	return s.db.Close()
}
