package db

type Team struct {
	TeamNumber string
	TeamName   string
	CreatedAt  int64
}

type Form struct {
	ID            string
	ScouterName   string
	MatchNumber   int64
	TeamNumber    string
	StartPosition string
	PassedLine    bool
	L1CoralsAuto  int64
	L2CoralsAuto  int64
	L3CoralsAuto  int64
	L4CoralsAuto  int64
	NetAuto       int64
	L1CoralsTele  int64
	L2CoralsTele  int64
	L3CoralsTele  int64
	L4CoralsTele  int64
	NetTele       int64
	Processor     int64
	HighClimb     bool
	LowClimb      bool
	Comments      string
	CreatedAt     int64
}

type TeamAverage struct {
	TeamNumber      string
	TeamName        string
	MatchesPlayed   int64
	AvgPassedLine   float64
	AvgStartSide    float64
	AvgL1CoralsAuto float64
	AvgL2CoralsAuto float64
	AvgL3CoralsAuto float64
	AvgL4CoralsAuto float64
	AvgNetAuto      float64
	AvgL1CoralsTele float64
	AvgL2CoralsTele float64
	AvgL3CoralsTele float64
	AvgL4CoralsTele float64
	AvgNetTele      float64
	AvgProcessor    float64
	AvgHighClimb    float64
	AvgLowClimb     float64
}
