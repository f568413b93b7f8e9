package store

import (
	"database/sql"
)

// Game is one MLB game as listed on the GameDay scoreboard, together with the
// at-bats and hits in play that belong to it. A game row is written exactly
// once; attributes the source did not supply stay NULL rather than defaulting
// to zero so downstream aggregates are not skewed.
type Game struct {
	GameID         int
	GamedayID      string
	Venue          sql.NullString
	StartTime      sql.NullTime
	DataDirectory  string
	GameType       sql.NullString
	HomeNameAbbrev sql.NullString
	HomeTeamCity   sql.NullString
	HomeTeamName   sql.NullString
	AwayNameAbbrev sql.NullString
	AwayTeamCity   sql.NullString
	AwayTeamName   sql.NullString
	HomeTeamRuns   sql.NullInt32
	AwayTeamRuns   sql.NullInt32
	League         sql.NullString

	// Insertion order is the source document's walk order and is authoritative.
	AtBats     []*AtBat
	HitsInPlay []*HitInPlay
}

// AtBat is a single plate appearance within a game.
type AtBat struct {
	AtBatID      int
	GameID       int
	Inning       sql.NullInt32
	InningHalf   string
	PitchCount   int
	Balls        sql.NullInt32
	Strikes      sql.NullInt32
	Outs         sql.NullInt32
	BatterID     sql.NullInt64
	PitcherID    sql.NullInt64
	BatterStance sql.NullString
	Description  sql.NullString
	Event        sql.NullString

	Pitches []*Pitch
}

// Pitch is one pitch thrown during an at-bat. AtBatPitchNum is the zero-based
// position of the pitch within its at-bat as it appeared in the source feed,
// so consumers do not need to rely on storage insertion order.
type Pitch struct {
	PitchID       int
	AtBatID       int
	AtBatPitchNum int
	Inning        sql.NullInt32
	InningHalf    string
	Description   sql.NullString
	ResultType    sql.NullString
	GamedaySvID   sql.NullString
	X             sql.NullFloat64
	Y             sql.NullFloat64
	StartSpeed    sql.NullFloat64
	EndSpeed      sql.NullFloat64
	SzTop         sql.NullFloat64
	SzBot         sql.NullFloat64
	PfxX          sql.NullFloat64
	PfxZ          sql.NullFloat64
	Px            sql.NullFloat64
	Pz            sql.NullFloat64
	X0            sql.NullFloat64
	Y0            sql.NullFloat64
	Z0            sql.NullFloat64
	Vx0           sql.NullFloat64
	Vy0           sql.NullFloat64
	Vz0           sql.NullFloat64
	Ax            sql.NullFloat64
	Ay            sql.NullFloat64
	Az            sql.NullFloat64
	BreakY        sql.NullFloat64
	BreakAngle    sql.NullFloat64
	BreakLength   sql.NullFloat64
	PitchType     sql.NullString
	TypeConf      sql.NullFloat64
	Zone          sql.NullInt32
	Nasty         sql.NullInt32
	SpinDir       sql.NullFloat64
	SpinRate      sql.NullFloat64
}

// Player is keyed by the GameDay player id, independent of any single game.
// Rows are created once and never updated.
type Player struct {
	PlayerID  int64
	FirstName sql.NullString
	LastName  sql.NullString
	BoxName   sql.NullString
	Throws    sql.NullString
	Bats      sql.NullString
}

// HitInPlay is a batted ball that stayed in the field of play, with the field
// coordinates from the GameDay hit chart.
type HitInPlay struct {
	HipID       int
	GameID      int
	BatterID    sql.NullInt64
	PitcherID   sql.NullInt64
	Description sql.NullString
	HipType     sql.NullString
	Team        sql.NullString
	Inning      sql.NullInt32
	X           sql.NullFloat64
	Y           sql.NullFloat64
}
