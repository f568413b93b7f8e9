package gameday

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return data
}

func loadScoreboardFixture(t *testing.T) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	if err := json.Unmarshal(loadFixture(t, "master_scoreboard.json"), &doc); err != nil {
		t.Fatalf("failed to decode scoreboard fixture: %v", err)
	}
	return doc
}

func TestParseScoreboard(t *testing.T) {
	descriptors := ParseScoreboard(loadScoreboardFixture(t))

	if len(descriptors) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(descriptors))
	}

	first := descriptors[0]
	if first.GamedayID != "2015/05/29/bosmlb-nyamlb-1" {
		t.Errorf("unexpected gameday id %q", first.GamedayID)
	}
	if first.Status != "Final" {
		t.Errorf("expected status Final, got %q", first.Status)
	}
	if first.GameType != "R" {
		t.Errorf("expected game type R, got %q", first.GameType)
	}
	if first.DataDirectory != "/components/game/mlb/year_2015/month_05/day_29/gid_2015_05_29_bosmlb_nyamlb_1" {
		t.Errorf("unexpected data directory %q", first.DataDirectory)
	}

	if descriptors[1].Status != "In Progress" {
		t.Errorf("expected second game status In Progress, got %q", descriptors[1].Status)
	}
}

func TestParseScoreboardSingleGameObject(t *testing.T) {
	// A day with exactly one game carries a bare object instead of an array.
	doc := map[string]interface{}{
		"data": map[string]interface{}{
			"games": map[string]interface{}{
				"game": map[string]interface{}{
					"id":        "2015/07/04/solo-1",
					"game_type": "R",
					"status":    map[string]interface{}{"status": "Final"},
				},
			},
		},
	}

	descriptors := ParseScoreboard(doc)
	if len(descriptors) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(descriptors))
	}
	if descriptors[0].GamedayID != "2015/07/04/solo-1" {
		t.Errorf("unexpected gameday id %q", descriptors[0].GamedayID)
	}
}

func TestParseScoreboardEmpty(t *testing.T) {
	for name, doc := range map[string]map[string]interface{}{
		"nil doc":      nil,
		"no data":      {},
		"no games":     {"data": map[string]interface{}{}},
		"no game list": {"data": map[string]interface{}{"games": map[string]interface{}{}}},
	} {
		t.Run(name, func(t *testing.T) {
			if descriptors := ParseScoreboard(doc); len(descriptors) != 0 {
				t.Errorf("expected no descriptors, got %d", len(descriptors))
			}
		})
	}
}

func TestParseGameStatusFilter(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Final", true},
		{"Completed Early", true},
		{"In Progress", false},
		{"Preview", false},
		{"Postponed", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			desc := GameDescriptor{
				GamedayID: "2015/05/29/test-1",
				Status:    tt.status,
				Raw:       map[string]interface{}{},
			}
			game := ParseGame(desc)
			if got := game != nil; got != tt.want {
				t.Errorf("ParseGame with status %q: got record=%v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestParseGameFields(t *testing.T) {
	descriptors := ParseScoreboard(loadScoreboardFixture(t))
	game := ParseGame(descriptors[0])
	if game == nil {
		t.Fatal("expected a game record for a Final game")
	}

	if game.GamedayID != "2015/05/29/bosmlb-nyamlb-1" {
		t.Errorf("unexpected gameday id %q", game.GamedayID)
	}
	if !game.Venue.Valid || game.Venue.String != "Yankee Stadium" {
		t.Errorf("unexpected venue %+v", game.Venue)
	}
	if !game.HomeTeamRuns.Valid || game.HomeTeamRuns.Int32 != 2 {
		t.Errorf("unexpected home runs %+v", game.HomeTeamRuns)
	}
	if !game.AwayTeamRuns.Valid || game.AwayTeamRuns.Int32 != 6 {
		t.Errorf("unexpected away runs %+v", game.AwayTeamRuns)
	}
	if !game.HomeNameAbbrev.Valid || game.HomeNameAbbrev.String != "NYY" {
		t.Errorf("unexpected home abbrev %+v", game.HomeNameAbbrev)
	}

	// 7:05 PM at UTC-4.
	if !game.StartTime.Valid {
		t.Fatal("expected a start time")
	}
	want := time.Date(2015, 5, 29, 19, 5, 0, 0, time.FixedZone("UTC-4", -4*60*60))
	if !game.StartTime.Time.Equal(want) {
		t.Errorf("start time = %v, want %v", game.StartTime.Time, want)
	}
}

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		tz      string
		ampm    string
		valid   bool
		hour    int
	}{
		{"evening game", "2015/05/29 7:05", "-4", "PM", true, 19},
		{"day game", "2015/05/29 11:35", "-4", "AM", true, 11},
		{"noon stays noon", "2015/05/29 12:05", "-4", "PM", true, 12},
		{"missing timestamp", "", "-4", "PM", false, 0},
		{"malformed timestamp", "May 29", "-4", "PM", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseStartTime(tt.dateStr, tt.tz, tt.ampm)
			if got.Valid != tt.valid {
				t.Fatalf("valid = %v, want %v", got.Valid, tt.valid)
			}
			if tt.valid && got.Time.Hour() != tt.hour {
				t.Errorf("hour = %d, want %d", got.Time.Hour(), tt.hour)
			}
		})
	}
}

func TestParseInningAllOrdering(t *testing.T) {
	atBats, err := ParseInningAll(loadFixture(t, "inning_all.xml"))
	if err != nil {
		t.Fatalf("ParseInningAll failed: %v", err)
	}

	if len(atBats) != 4 {
		t.Fatalf("expected 4 at-bats, got %d", len(atBats))
	}

	// Document order: top 1 (two at-bats), bottom 1, top 2.
	wantOrder := []struct {
		inning  int32
		half    string
		batter  int64
		pitches int
	}{
		{1, InningTop, 456030, 3},
		{1, InningTop, 519048, 1},
		{1, InningBottom, 458731, 1},
		{2, InningTop, 523253, 1},
	}

	for i, want := range wantOrder {
		atBat := atBats[i]
		if !atBat.Inning.Valid || atBat.Inning.Int32 != want.inning {
			t.Errorf("at-bat %d: inning = %+v, want %d", i, atBat.Inning, want.inning)
		}
		if atBat.InningHalf != want.half {
			t.Errorf("at-bat %d: half = %q, want %q", i, atBat.InningHalf, want.half)
		}
		if !atBat.BatterID.Valid || atBat.BatterID.Int64 != want.batter {
			t.Errorf("at-bat %d: batter = %+v, want %d", i, atBat.BatterID, want.batter)
		}
		if len(atBat.Pitches) != want.pitches {
			t.Errorf("at-bat %d: %d pitches, want %d", i, len(atBat.Pitches), want.pitches)
		}
		if atBat.PitchCount != want.pitches {
			t.Errorf("at-bat %d: pitch count %d, want %d", i, atBat.PitchCount, want.pitches)
		}

		for j, pitch := range atBat.Pitches {
			if pitch.AtBatPitchNum != j {
				t.Errorf("at-bat %d pitch %d: position %d, want %d", i, j, pitch.AtBatPitchNum, j)
			}
			if pitch.InningHalf != want.half {
				t.Errorf("at-bat %d pitch %d: half %q, want %q", i, j, pitch.InningHalf, want.half)
			}
		}
	}
}

func TestParseInningAllAtBatFields(t *testing.T) {
	atBats, err := ParseInningAll(loadFixture(t, "inning_all.xml"))
	if err != nil {
		t.Fatalf("ParseInningAll failed: %v", err)
	}

	first := atBats[0]
	if !first.Balls.Valid || first.Balls.Int32 != 1 {
		t.Errorf("balls = %+v, want 1", first.Balls)
	}
	if !first.Strikes.Valid || first.Strikes.Int32 != 2 {
		t.Errorf("strikes = %+v, want 2", first.Strikes)
	}
	if !first.Outs.Valid || first.Outs.Int32 != 1 {
		t.Errorf("outs = %+v, want 1", first.Outs)
	}
	if !first.Event.Valid || first.Event.String != "Groundout" {
		t.Errorf("event = %+v, want Groundout", first.Event)
	}
	if !first.BatterStance.Valid || first.BatterStance.String != "L" {
		t.Errorf("stance = %+v, want L", first.BatterStance)
	}

	pitch := first.Pitches[0]
	if !pitch.StartSpeed.Valid || pitch.StartSpeed.Float64 != 93.2 {
		t.Errorf("start speed = %+v, want 93.2", pitch.StartSpeed)
	}
	if !pitch.PitchType.Valid || pitch.PitchType.String != "FF" {
		t.Errorf("pitch type = %+v, want FF", pitch.PitchType)
	}
	if !pitch.Zone.Valid || pitch.Zone.Int32 != 9 {
		t.Errorf("zone = %+v, want 9", pitch.Zone)
	}
	if !pitch.SpinRate.Valid || pitch.SpinRate.Float64 != 2086.888 {
		t.Errorf("spin rate = %+v, want 2086.888", pitch.SpinRate)
	}
}

func TestParseInningAllMissingVelocity(t *testing.T) {
	atBats, err := ParseInningAll(loadFixture(t, "inning_all.xml"))
	if err != nil {
		t.Fatalf("ParseInningAll failed: %v", err)
	}

	// The strikeout pitch in the top of the 2nd has no velocity or break
	// attributes; those fields must come back unknown, not zero, while the
	// rest of the record survives.
	pitch := atBats[3].Pitches[0]
	if pitch.StartSpeed.Valid {
		t.Errorf("expected unknown start speed, got %v", pitch.StartSpeed.Float64)
	}
	if pitch.SpinRate.Valid {
		t.Errorf("expected unknown spin rate, got %v", pitch.SpinRate.Float64)
	}
	if pitch.BreakY.Valid {
		t.Errorf("expected unknown break_y, got %v", pitch.BreakY.Float64)
	}
	if !pitch.PitchType.Valid || pitch.PitchType.String != "SL" {
		t.Errorf("pitch type = %+v, want SL", pitch.PitchType)
	}
	if !pitch.Description.Valid || pitch.Description.String != "Swinging Strike" {
		t.Errorf("description = %+v, want Swinging Strike", pitch.Description)
	}
	if !pitch.Zone.Valid || pitch.Zone.Int32 != 5 {
		t.Errorf("zone = %+v, want 5", pitch.Zone)
	}
}

func TestParsePlayers(t *testing.T) {
	players, err := ParsePlayers(loadFixture(t, "players.xml"))
	if err != nil {
		t.Fatalf("ParsePlayers failed: %v", err)
	}

	// Four valid players across both teams; the one with an empty id
	// attribute has no natural key and yields no record.
	if len(players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(players))
	}

	byID := make(map[int64]int)
	for i, player := range players {
		byID[player.PlayerID] = i
	}
	idx, ok := byID[458731]
	if !ok {
		t.Fatal("expected player 458731 to be present")
	}

	ellsbury := players[idx]
	if !ellsbury.FirstName.Valid || ellsbury.FirstName.String != "Jacoby" {
		t.Errorf("first name = %+v, want Jacoby", ellsbury.FirstName)
	}
	if !ellsbury.Throws.Valid || ellsbury.Throws.String != "L" {
		t.Errorf("throws = %+v, want L", ellsbury.Throws)
	}
	if !ellsbury.Bats.Valid || ellsbury.Bats.String != "L" {
		t.Errorf("bats = %+v, want L", ellsbury.Bats)
	}
}

func TestParseHitChart(t *testing.T) {
	hips, err := ParseHitChart(loadFixture(t, "inning_hit.xml"))
	if err != nil {
		t.Fatalf("ParseHitChart failed: %v", err)
	}

	if len(hips) != 3 {
		t.Fatalf("expected 3 hits in play, got %d", len(hips))
	}

	first := hips[0]
	if !first.BatterID.Valid || first.BatterID.Int64 != 456030 {
		t.Errorf("batter = %+v, want 456030", first.BatterID)
	}
	if !first.X.Valid || first.X.Float64 != 115.23 {
		t.Errorf("x = %+v, want 115.23", first.X)
	}
	if !first.Inning.Valid || first.Inning.Int32 != 1 {
		t.Errorf("inning = %+v, want 1", first.Inning)
	}
	if !first.HipType.Valid || first.HipType.String != "O" {
		t.Errorf("type = %+v, want O", first.HipType)
	}
}

func TestCoercionHelpers(t *testing.T) {
	if v := nullInt32("7"); !v.Valid || v.Int32 != 7 {
		t.Errorf("nullInt32(7) = %+v", v)
	}
	if v := nullInt32("seven"); v.Valid {
		t.Errorf("nullInt32(seven) should be unknown, got %+v", v)
	}
	if v := nullInt32(""); v.Valid {
		t.Errorf("nullInt32 empty should be unknown, got %+v", v)
	}
	if v := nullFloat("93.2"); !v.Valid || v.Float64 != 93.2 {
		t.Errorf("nullFloat(93.2) = %+v", v)
	}
	if v := nullFloat("n/a"); v.Valid {
		t.Errorf("nullFloat(n/a) should be unknown, got %+v", v)
	}
	if v := nullString(""); v.Valid {
		t.Errorf("nullString empty should be unknown, got %+v", v)
	}
}
