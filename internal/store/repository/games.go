package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/chrander/gameday/internal/store"
)

// pqUniqueViolation is the PostgreSQL error code for unique-constraint
// conflicts. It is the authoritative already-present signal; the in-memory
// dedup cache is only a hint.
const pqUniqueViolation = "23505"

func translateInsertErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return store.ErrDuplicate
	}
	return err
}

// GameRepository handles game aggregate data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// ExistingGamedayIDs returns the set of gameday ids already in the store.
func (r *GameRepository) ExistingGamedayIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT gameday_id FROM games`)
	if err != nil {
		return nil, fmt.Errorf("querying gameday ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning gameday id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading gameday ids: %w", err)
	}

	return ids, nil
}

// Insert stores a game and all of its at-bats, pitches, and hits in play in a
// single transaction. Child rows are inserted in slice order so that the
// serial primary keys preserve the source document's walk order. A conflict
// on the gameday id rolls the whole aggregate back and returns
// store.ErrDuplicate.
func (r *GameRepository) Insert(ctx context.Context, game *store.Game) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const insertGame = `
		INSERT INTO games (
			gameday_id, venue, start_time, game_data_directory, game_type,
			home_name_abbrev, home_team_city, home_team_name,
			away_name_abbrev, away_team_city, away_team_name,
			home_team_runs, away_team_runs, league
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING game_id
	`

	err = tx.QueryRowContext(ctx, insertGame,
		game.GamedayID, game.Venue, game.StartTime, game.DataDirectory, game.GameType,
		game.HomeNameAbbrev, game.HomeTeamCity, game.HomeTeamName,
		game.AwayNameAbbrev, game.AwayTeamCity, game.AwayTeamName,
		game.HomeTeamRuns, game.AwayTeamRuns, game.League,
	).Scan(&game.GameID)
	if err != nil {
		if err := translateInsertErr(err); errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("inserting game %s: %w", game.GamedayID, store.ErrDuplicate)
		}
		return fmt.Errorf("inserting game %s: %w", game.GamedayID, err)
	}

	for _, atBat := range game.AtBats {
		atBat.GameID = game.GameID
		if err := insertAtBat(ctx, tx, atBat); err != nil {
			return fmt.Errorf("inserting at-bat for game %s: %w", game.GamedayID, err)
		}
	}

	for _, hip := range game.HitsInPlay {
		hip.GameID = game.GameID
		if err := insertHitInPlay(ctx, tx, hip); err != nil {
			return fmt.Errorf("inserting hit in play for game %s: %w", game.GamedayID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing game %s: %w", game.GamedayID, translateInsertErr(err))
	}

	return nil
}

func insertAtBat(ctx context.Context, tx queryRower, atBat *store.AtBat) error {
	const insert = `
		INSERT INTO at_bats (
			game_id, inning, inning_half, n_pitches, n_balls, n_strikes, n_outs,
			batter_id, pitcher_id, batter_stance, des, event
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING at_bat_id
	`

	err := tx.QueryRowContext(ctx, insert,
		atBat.GameID, atBat.Inning, atBat.InningHalf, atBat.PitchCount,
		atBat.Balls, atBat.Strikes, atBat.Outs,
		atBat.BatterID, atBat.PitcherID, atBat.BatterStance,
		atBat.Description, atBat.Event,
	).Scan(&atBat.AtBatID)
	if err != nil {
		return err
	}

	for _, pitch := range atBat.Pitches {
		pitch.AtBatID = atBat.AtBatID
		if err := insertPitch(ctx, tx, pitch); err != nil {
			return err
		}
	}

	return nil
}

func insertPitch(ctx context.Context, tx queryRower, pitch *store.Pitch) error {
	const insert = `
		INSERT INTO pitches (
			at_bat_id, at_bat_pitch_num, inning, inning_half, des, result_type,
			gameday_sv_id, x, y, start_speed, end_speed, sz_top, sz_bot,
			pfx_x, pfx_z, px, pz, x0, y0, z0, vx0, vy0, vz0, ax, ay, az,
			break_y, break_angle, break_length, pitch_type, type_conf,
			zone, nasty, spin_dir, spin_rate
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, $35
		)
		RETURNING pitch_id
	`

	return tx.QueryRowContext(ctx, insert,
		pitch.AtBatID, pitch.AtBatPitchNum, pitch.Inning, pitch.InningHalf,
		pitch.Description, pitch.ResultType, pitch.GamedaySvID,
		pitch.X, pitch.Y, pitch.StartSpeed, pitch.EndSpeed, pitch.SzTop, pitch.SzBot,
		pitch.PfxX, pitch.PfxZ, pitch.Px, pitch.Pz,
		pitch.X0, pitch.Y0, pitch.Z0, pitch.Vx0, pitch.Vy0, pitch.Vz0,
		pitch.Ax, pitch.Ay, pitch.Az,
		pitch.BreakY, pitch.BreakAngle, pitch.BreakLength,
		pitch.PitchType, pitch.TypeConf, pitch.Zone, pitch.Nasty,
		pitch.SpinDir, pitch.SpinRate,
	).Scan(&pitch.PitchID)
}

func insertHitInPlay(ctx context.Context, tx queryRower, hip *store.HitInPlay) error {
	const insert = `
		INSERT INTO hits_in_play (
			game_id, batter_id, pitcher_id, des, hip_type, team, inning, x, y
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING hip_id
	`

	return tx.QueryRowContext(ctx, insert,
		hip.GameID, hip.BatterID, hip.PitcherID, hip.Description,
		hip.HipType, hip.Team, hip.Inning, hip.X, hip.Y,
	).Scan(&hip.HipID)
}
