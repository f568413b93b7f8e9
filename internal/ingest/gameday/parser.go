package gameday

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chrander/gameday/internal/store"
)

// Inning half labels. The source document only expresses the half through
// element nesting, so it is attached explicitly to every at-bat and pitch.
const (
	InningTop    = "T"
	InningBottom = "B"
)

// completedStatuses are the upstream statuses that mean box-score data is
// finalized and safe to ingest.
var completedStatuses = map[string]bool{
	"Final":           true,
	"Completed Early": true,
}

// practiceGameTypes are spring training ("S") and exhibition ("E") games,
// skipped unless the caller opts in.
var practiceGameTypes = map[string]bool{
	"S": true,
	"E": true,
}

// ParseScoreboard extracts the game descriptors from a master scoreboard
// document. An empty result means no games were played that day, which is
// normal, not an error.
func ParseScoreboard(doc map[string]interface{}) []GameDescriptor {
	games := extractMap(extractMap(doc, "data"), "games")

	// A day with one game carries a bare object instead of an array.
	var entries []interface{}
	switch v := games["game"].(type) {
	case []interface{}:
		entries = v
	case map[string]interface{}:
		entries = []interface{}{v}
	}

	var descriptors []GameDescriptor
	for _, entry := range entries {
		game, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		descriptors = append(descriptors, GameDescriptor{
			GamedayID:     extractString(game, "id"),
			DataDirectory: extractString(game, "game_data_directory"),
			Status:        extractString(extractMap(game, "status"), "status"),
			GameType:      extractString(game, "game_type"),
			Raw:           game,
		})
	}

	return descriptors
}

// ParseGame builds a game row from a scoreboard descriptor. It returns nil
// when the game's status is not a completed one; the caller treats that as
// not-yet-ingestable, not as an error.
func ParseGame(desc GameDescriptor) *store.Game {
	if !completedStatuses[desc.Status] {
		return nil
	}

	raw := desc.Raw
	game := &store.Game{
		GamedayID:      desc.GamedayID,
		DataDirectory:  desc.DataDirectory,
		GameType:       nullString(desc.GameType),
		Venue:          nullString(extractString(raw, "venue")),
		League:         nullString(extractString(raw, "league")),
		HomeNameAbbrev: nullString(extractString(raw, "home_name_abbrev")),
		HomeTeamCity:   nullString(extractString(raw, "home_team_city")),
		HomeTeamName:   nullString(extractString(raw, "home_team_name")),
		AwayNameAbbrev: nullString(extractString(raw, "away_name_abbrev")),
		AwayTeamCity:   nullString(extractString(raw, "away_team_city")),
		AwayTeamName:   nullString(extractString(raw, "away_team_name")),
		StartTime: parseStartTime(
			extractString(raw, "time_date_hm_lg"),
			extractString(raw, "time_zone_hm_lg"),
			extractString(raw, "hm_lg_ampm"),
		),
	}

	runs := extractMap(extractMap(raw, "linescore"), "r")
	game.HomeTeamRuns = nullInt32(extractString(runs, "home"))
	game.AwayTeamRuns = nullInt32(extractString(runs, "away"))

	return game
}

// ParseInningAll extracts the at-bats (with nested pitches) from an inning
// feed. At-bats are walked in document order, top half before bottom half of
// each inning, and each at-bat and pitch carries its inning number and half.
func ParseInningAll(data []byte) ([]*store.AtBat, error) {
	var doc inningAllDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding inning feed: %w", err)
	}

	var atBats []*store.AtBat
	for _, inning := range doc.Innings {
		if inning.Top != nil {
			for _, node := range inning.Top.AtBats {
				atBats = append(atBats, parseAtBat(node, inning.Num, InningTop))
			}
		}
		if inning.Bottom != nil {
			for _, node := range inning.Bottom.AtBats {
				atBats = append(atBats, parseAtBat(node, inning.Num, InningBottom))
			}
		}
	}

	return atBats, nil
}

func parseAtBat(node atBatNode, inningNum, half string) *store.AtBat {
	atBat := &store.AtBat{
		Inning:       nullInt32(inningNum),
		InningHalf:   half,
		PitchCount:   len(node.Pitches),
		Balls:        nullInt32(node.Balls),
		Strikes:      nullInt32(node.Strikes),
		Outs:         nullInt32(node.Outs),
		BatterID:     nullInt64(node.Batter),
		PitcherID:    nullInt64(node.Pitcher),
		BatterStance: nullString(node.Stand),
		Description:  nullString(node.Des),
		Event:        nullString(node.Event),
	}

	for i, pitch := range node.Pitches {
		atBat.Pitches = append(atBat.Pitches, parsePitch(pitch, inningNum, half, i))
	}

	return atBat
}

func parsePitch(node pitchNode, inningNum, half string, index int) *store.Pitch {
	return &store.Pitch{
		AtBatPitchNum: index,
		Inning:        nullInt32(inningNum),
		InningHalf:    half,
		Description:   nullString(node.Des),
		ResultType:    nullString(node.Type),
		GamedaySvID:   nullString(node.SvID),
		X:             nullFloat(node.X),
		Y:             nullFloat(node.Y),
		StartSpeed:    nullFloat(node.StartSpeed),
		EndSpeed:      nullFloat(node.EndSpeed),
		SzTop:         nullFloat(node.SzTop),
		SzBot:         nullFloat(node.SzBot),
		PfxX:          nullFloat(node.PfxX),
		PfxZ:          nullFloat(node.PfxZ),
		Px:            nullFloat(node.Px),
		Pz:            nullFloat(node.Pz),
		X0:            nullFloat(node.X0),
		Y0:            nullFloat(node.Y0),
		Z0:            nullFloat(node.Z0),
		Vx0:           nullFloat(node.Vx0),
		Vy0:           nullFloat(node.Vy0),
		Vz0:           nullFloat(node.Vz0),
		Ax:            nullFloat(node.Ax),
		Ay:            nullFloat(node.Ay),
		Az:            nullFloat(node.Az),
		BreakY:        nullFloat(node.BreakY),
		BreakAngle:    nullFloat(node.BreakAngle),
		BreakLength:   nullFloat(node.BreakLength),
		PitchType:     nullString(node.PitchType),
		TypeConf:      nullFloat(node.TypeConf),
		Zone:          nullInt32(node.Zone),
		Nasty:         nullInt32(node.Nasty),
		SpinDir:       nullFloat(node.SpinDir),
		SpinRate:      nullFloat(node.SpinRate),
	}
}

// ParsePlayers extracts every player on either roster. A player whose id
// attribute does not parse yields no record, since there is nothing to key
// the row on.
func ParsePlayers(data []byte) ([]*store.Player, error) {
	var doc playersDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding players: %w", err)
	}

	var players []*store.Player
	for _, team := range doc.Teams {
		for _, node := range team.Players {
			id, err := strconv.ParseInt(strings.TrimSpace(node.ID), 10, 64)
			if err != nil {
				continue
			}
			players = append(players, &store.Player{
				PlayerID:  id,
				FirstName: nullString(node.First),
				LastName:  nullString(node.Last),
				BoxName:   nullString(node.BoxName),
				Throws:    nullString(node.RL),
				Bats:      nullString(node.Bats),
			})
		}
	}

	return players, nil
}

// ParseHitChart extracts the balls in play from a hit chart document.
func ParseHitChart(data []byte) ([]*store.HitInPlay, error) {
	var doc hitChartDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding hit chart: %w", err)
	}

	var hips []*store.HitInPlay
	for _, node := range doc.Hips {
		hips = append(hips, &store.HitInPlay{
			BatterID:    nullInt64(node.Batter),
			PitcherID:   nullInt64(node.Pitcher),
			Description: nullString(node.Des),
			HipType:     nullString(node.Type),
			Team:        nullString(node.Team),
			Inning:      nullInt32(node.Inning),
			X:           nullFloat(node.X),
			Y:           nullFloat(node.Y),
		})
	}

	return hips, nil
}

// parseStartTime combines the scoreboard's 12-hour clock timestamp, its
// AM/PM marker, and its UTC offset into the scheduled start. Any piece that
// fails to parse leaves the start time NULL rather than guessing.
func parseStartTime(dateStr, tzOffset, ampm string) sql.NullTime {
	if dateStr == "" {
		return sql.NullTime{}
	}

	loc := time.UTC
	if offset, err := strconv.Atoi(strings.TrimSpace(tzOffset)); err == nil {
		loc = time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*60*60)
	}

	t, err := time.ParseInLocation("2006/01/02 3:04", dateStr, loc)
	if err != nil {
		return sql.NullTime{}
	}

	// Game times use a 12-hour clock without a trustworthy AM/PM on the
	// timestamp itself; an evening game would otherwise land in the morning.
	if strings.EqualFold(ampm, "PM") && t.Hour() < 12 {
		t = t.Add(12 * time.Hour)
	}

	return sql.NullTime{Time: t, Valid: true}
}

// JSON extract helpers. The scoreboard document is deeply nested and
// inconsistently typed; these degrade to zero values instead of panicking on
// a missing or oddly-shaped field.

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	if value, ok := m[key].(map[string]interface{}); ok {
		return value
	}
	return nil
}

func extractString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	switch value := m[key].(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return ""
}

// Field coercion helpers: absent or malformed attributes become invalid
// (NULL) values, never zero.

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt32(s string) sql.NullInt32 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

func nullInt64(s string) sql.NullInt64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullFloat(s string) sql.NullFloat64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
