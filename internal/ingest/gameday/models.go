package gameday

// GameDescriptor is the scoreboard listing for one game: the fields the
// eligibility checks need, plus the raw scoreboard entry the full game row is
// parsed from once the game passes them.
type GameDescriptor struct {
	GamedayID     string
	DataDirectory string
	Status        string
	GameType      string
	Raw           map[string]interface{}
}

// XML shapes for the per-game documents. Every attribute is decoded as a
// string and coerced afterwards so one malformed field degrades to NULL
// instead of failing the record.

type inningAllDoc struct {
	Innings []inningNode `xml:"inning"`
}

type inningNode struct {
	Num    string    `xml:"num,attr"`
	Top    *halfNode `xml:"top"`
	Bottom *halfNode `xml:"bottom"`
}

type halfNode struct {
	AtBats []atBatNode `xml:"atbat"`
}

type atBatNode struct {
	Balls   string      `xml:"b,attr"`
	Strikes string      `xml:"s,attr"`
	Outs    string      `xml:"o,attr"`
	Batter  string      `xml:"batter,attr"`
	Pitcher string      `xml:"pitcher,attr"`
	Stand   string      `xml:"stand,attr"`
	Des     string      `xml:"des,attr"`
	Event   string      `xml:"event,attr"`
	Pitches []pitchNode `xml:"pitch"`
}

type pitchNode struct {
	Des         string `xml:"des,attr"`
	Type        string `xml:"type,attr"`
	SvID        string `xml:"sv_id,attr"`
	X           string `xml:"x,attr"`
	Y           string `xml:"y,attr"`
	StartSpeed  string `xml:"start_speed,attr"`
	EndSpeed    string `xml:"end_speed,attr"`
	SzTop       string `xml:"sz_top,attr"`
	SzBot       string `xml:"sz_bot,attr"`
	PfxX        string `xml:"pfx_x,attr"`
	PfxZ        string `xml:"pfx_z,attr"`
	Px          string `xml:"px,attr"`
	Pz          string `xml:"pz,attr"`
	X0          string `xml:"x0,attr"`
	Y0          string `xml:"y0,attr"`
	Z0          string `xml:"z0,attr"`
	Vx0         string `xml:"vx0,attr"`
	Vy0         string `xml:"vy0,attr"`
	Vz0         string `xml:"vz0,attr"`
	Ax          string `xml:"ax,attr"`
	Ay          string `xml:"ay,attr"`
	Az          string `xml:"az,attr"`
	BreakY      string `xml:"break_y,attr"`
	BreakAngle  string `xml:"break_angle,attr"`
	BreakLength string `xml:"break_length,attr"`
	PitchType   string `xml:"pitch_type,attr"`
	TypeConf    string `xml:"type_conf,attr"`
	Zone        string `xml:"zone,attr"`
	Nasty       string `xml:"nasty,attr"`
	SpinDir     string `xml:"spin_dir,attr"`
	SpinRate    string `xml:"spin_rate,attr"`
}

type playersDoc struct {
	Teams []teamNode `xml:"team"`
}

type teamNode struct {
	Players []playerNode `xml:"player"`
}

type playerNode struct {
	ID      string `xml:"id,attr"`
	First   string `xml:"first,attr"`
	Last    string `xml:"last,attr"`
	BoxName string `xml:"boxname,attr"`
	RL      string `xml:"rl,attr"`
	Bats    string `xml:"bats,attr"`
}

type hitChartDoc struct {
	Hips []hipNode `xml:"hip"`
}

type hipNode struct {
	Batter  string `xml:"batter,attr"`
	Pitcher string `xml:"pitcher,attr"`
	Des     string `xml:"des,attr"`
	Type    string `xml:"type,attr"`
	Team    string `xml:"team,attr"`
	Inning  string `xml:"inning,attr"`
	X       string `xml:"x,attr"`
	Y       string `xml:"y,attr"`
}
