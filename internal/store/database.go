package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrDuplicate reports a unique-constraint conflict on a natural key
// (gameday_id or player_id). Concurrent workers and repeat runs race on the
// same keys, so callers treat this as already-present rather than failure.
var ErrDuplicate = errors.New("store: duplicate key")

// Database wraps the GameDay PostgreSQL connection.
type Database struct {
	conn *sql.DB
	dsn  string
}

// Connect opens a database connection and verifies it with a ping.
func Connect(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// DSN returns the connection string the database was opened with.
func (db *Database) DSN() string {
	return db.dsn
}

// EnsureSchema creates the GameDay tables if they do not already exist.
// Safe to call on every startup.
func (db *Database) EnsureSchema() error {
	log.Println("[store] Ensuring database schema")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id             SERIAL PRIMARY KEY,
			gameday_id          TEXT NOT NULL UNIQUE,
			venue               TEXT,
			start_time          TIMESTAMPTZ,
			game_data_directory TEXT,
			game_type           TEXT,
			home_name_abbrev    VARCHAR(3),
			home_team_city      TEXT,
			home_team_name      TEXT,
			away_name_abbrev    VARCHAR(3),
			away_team_city      TEXT,
			away_team_name      TEXT,
			home_team_runs      INTEGER,
			away_team_runs      INTEGER,
			league              TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS at_bats (
			at_bat_id     SERIAL PRIMARY KEY,
			game_id       INTEGER NOT NULL REFERENCES games(game_id),
			inning        INTEGER,
			inning_half   VARCHAR(1),
			n_pitches     INTEGER,
			n_balls       INTEGER,
			n_strikes     INTEGER,
			n_outs        INTEGER,
			batter_id     BIGINT,
			pitcher_id    BIGINT,
			batter_stance VARCHAR(1),
			des           TEXT,
			event         TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS pitches (
			pitch_id         SERIAL PRIMARY KEY,
			at_bat_id        INTEGER NOT NULL REFERENCES at_bats(at_bat_id),
			at_bat_pitch_num INTEGER NOT NULL,
			inning           INTEGER,
			inning_half      VARCHAR(1),
			des              TEXT,
			result_type      TEXT,
			gameday_sv_id    TEXT,
			x                DOUBLE PRECISION,
			y                DOUBLE PRECISION,
			start_speed      DOUBLE PRECISION,
			end_speed        DOUBLE PRECISION,
			sz_top           DOUBLE PRECISION,
			sz_bot           DOUBLE PRECISION,
			pfx_x            DOUBLE PRECISION,
			pfx_z            DOUBLE PRECISION,
			px               DOUBLE PRECISION,
			pz               DOUBLE PRECISION,
			x0               DOUBLE PRECISION,
			y0               DOUBLE PRECISION,
			z0               DOUBLE PRECISION,
			vx0              DOUBLE PRECISION,
			vy0              DOUBLE PRECISION,
			vz0              DOUBLE PRECISION,
			ax               DOUBLE PRECISION,
			ay               DOUBLE PRECISION,
			az               DOUBLE PRECISION,
			break_y          DOUBLE PRECISION,
			break_angle      DOUBLE PRECISION,
			break_length     DOUBLE PRECISION,
			pitch_type       TEXT,
			type_conf        DOUBLE PRECISION,
			zone             INTEGER,
			nasty            INTEGER,
			spin_dir         DOUBLE PRECISION,
			spin_rate        DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			player_id  BIGINT PRIMARY KEY,
			first_name TEXT,
			last_name  TEXT,
			boxname    TEXT,
			throws     VARCHAR(1),
			bats       VARCHAR(1)
		)`,
		`CREATE TABLE IF NOT EXISTS hits_in_play (
			hip_id     SERIAL PRIMARY KEY,
			game_id    INTEGER NOT NULL REFERENCES games(game_id),
			batter_id  BIGINT,
			pitcher_id BIGINT,
			des        TEXT,
			hip_type   TEXT,
			team       TEXT,
			inning     INTEGER,
			x          DOUBLE PRECISION,
			y          DOUBLE PRECISION
		)`,
		`CREATE INDEX IF NOT EXISTS idx_at_bats_game_id ON at_bats(game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pitches_at_bat_id ON pitches(at_bat_id)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_in_play_game_id ON hits_in_play(game_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
