package domain

import (
	"time"
)

type StartPosition string

const (
	StartSide   StartPosition = "side"
	StartMiddle StartPosition = "middle"
)

const MaxCommentLength = 150

type Team struct {
	TeamNumber string
	TeamName   string
	Ranking    *int // derived from the overall ranking, nil when the team has no forms
	CreatedAt  time.Time
}

type MatchForm struct {
	ID            string // nanoid
	ScouterName   string
	MatchNumber   int
	TeamNumber    string
	StartPosition StartPosition
	PassedLine    bool

	L1CoralsAuto int
	L2CoralsAuto int
	L3CoralsAuto int
	L4CoralsAuto int
	NetAuto      int

	L1CoralsTele int
	L2CoralsTele int
	L3CoralsTele int
	L4CoralsTele int
	NetTele      int
	Processor    int

	HighClimb bool
	LowClimb  bool

	Comments  string
	CreatedAt time.Time
}

type Score struct {
	Auto    int `json:"autoScore" yaml:"auto"`
	Teleop  int `json:"teleopScore" yaml:"teleop"`
	Endgame int `json:"endgameScore" yaml:"endgame"`
	Total   int `json:"totalScore" yaml:"total"`
}

// enriched
type ScoredForm struct {
	Form  MatchForm
	Score Score
}

type FormFilter struct {
	TeamPrefix    string
	MatchNumber   int // 0 means any match
	ScouterPrefix string
}

// Averages holds per-team means of the raw form fields. Booleans average as 0/1.
type Averages struct {
	TeamNumber    string
	TeamName      string
	MatchesPlayed int

	PassedLine float64
	StartSide  float64

	L1CoralsAuto float64
	L2CoralsAuto float64
	L3CoralsAuto float64
	L4CoralsAuto float64
	NetAuto      float64

	L1CoralsTele float64
	L2CoralsTele float64
	L3CoralsTele float64
	L4CoralsTele float64
	NetTele      float64
	Processor    float64

	HighClimb float64
	LowClimb  float64
}

type RankingRow struct {
	Rank          int      `json:"rank" yaml:"rank"`
	TeamNumber    string   `json:"teamNumber" yaml:"team_number"`
	TeamName      string   `json:"teamName" yaml:"team_name"`
	MatchesPlayed int      `json:"matchesPlayed" yaml:"matches_played"`
	AutoAvg       float64  `json:"autoAvg" yaml:"auto_avg"`
	TeleopAvg     float64  `json:"teleopAvg" yaml:"teleop_avg"`
	EndgameAvg    float64  `json:"endgameAvg" yaml:"endgame_avg"`
	OverallAvg    float64  `json:"overallAvg" yaml:"overall_avg"`
	Averages      Averages `json:"-" yaml:"-"`
}

type CoralPoint struct {
	Match int `json:"match"`
	L1    int `json:"l1"`
	L2    int `json:"l2"`
	L3    int `json:"l3"`
	L4    int `json:"l4"`
}

type PhasePoint struct {
	Match  int `json:"match"`
	Auto   int `json:"auto"`
	Teleop int `json:"teleop"`
}

type MatchScore struct {
	Match int   `json:"match"`
	Score Score `json:"score"`
}

type ClimbCounts struct {
	High int `json:"high"`
	Low  int `json:"low"`
	None int `json:"none"`
}

type TeamStatistics struct {
	TeamNumber   string       `json:"teamNumber"`
	TotalMatches int          `json:"totalMatches"`
	AvgProcessor float64      `json:"avgProcessor"`
	CoralData    []CoralPoint `json:"coralData"`
	AutoVsTeleop []PhasePoint `json:"autoVsTeleop"`
	Scores       []MatchScore `json:"scores"`
	Climbing     ClimbCounts  `json:"climbing"`
}
