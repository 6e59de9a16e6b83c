package server

import (
	"roboscout/internal/domain"
	"time"
)

type Team struct {
	TeamNumber string `json:"teamNumber"`
	TeamName   string `json:"teamName"`
	Ranking    *int   `json:"ranking,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type CreateTeamRequest struct {
	TeamNumber string `json:"teamNumber"`
	TeamName   string `json:"teamName"`
}

type CreateTeamResponse struct {
	Team    Team `json:"team"`
	Created bool `json:"created"`
}

type GetTeamRequest struct {
	TeamNumber string `json:"teamNumber"`
}

type ListTeamsRequest struct {
	Prefix string `json:"prefix"`
}

type ListTeamsResponse struct {
	Teams []Team `json:"teams"`
}

type SyncEventTeamsRequest struct {
	EventKeys []string `json:"eventKeys"`
}

type SyncEventTeamsResponse struct {
	Events   int `json:"events"`
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Form mirrors the scouting sheet field for field.
type Form struct {
	ID            string `json:"id,omitempty"`
	ScouterName   string `json:"scouterName"`
	MatchNumber   int    `json:"matchNumber"`
	TeamNumber    string `json:"teamNumber"`
	StartPosition string `json:"startPosition"`
	PassedLine    bool   `json:"passedLine"`

	L1CoralsAuto int `json:"l1CoralsAuto"`
	L2CoralsAuto int `json:"l2CoralsAuto"`
	L3CoralsAuto int `json:"l3CoralsAuto"`
	L4CoralsAuto int `json:"l4CoralsAuto"`
	NetAuto      int `json:"netAuto"`

	L1CoralsTele int `json:"l1CoralsTele"`
	L2CoralsTele int `json:"l2CoralsTele"`
	L3CoralsTele int `json:"l3CoralsTele"`
	L4CoralsTele int `json:"l4CoralsTele"`
	NetTele      int `json:"netTele"`
	Processor    int `json:"processor"`

	HighClimb bool `json:"highClimb"`
	LowClimb  bool `json:"lowClimb"`

	Comments  string `json:"comments"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type ScoredForm struct {
	Form  Form         `json:"form"`
	Score domain.Score `json:"score"`
}

type SubmitFormRequest struct {
	Form Form `json:"form"`
	// CreateTeam registers the team in the same transaction when it is unknown.
	CreateTeam bool   `json:"createTeam"`
	TeamName   string `json:"teamName"`
}

type SubmitFormResponse struct {
	ScoredForm
	Inserted     bool `json:"inserted"`
	TeamInserted bool `json:"teamInserted"`
}

type GetFormRequest struct {
	TeamNumber  string `json:"teamNumber"`
	MatchNumber int    `json:"matchNumber"`
}

type SearchFormsRequest struct {
	TeamNumber  string `json:"teamNumber"`
	MatchNumber int    `json:"matchNumber"`
	ScouterName string `json:"scouterName"`
}

type SearchFormsResponse struct {
	Forms []ScoredForm `json:"forms"`
}

type GetRankingsRequest struct {
	SortField string `json:"sortField"`
}

type GetRankingsResponse struct {
	SortField string              `json:"sortField"`
	Rankings  []domain.RankingRow `json:"rankings"`
}

type GetTeamStatisticsRequest struct {
	TeamNumber string `json:"teamNumber"`
}

func toTeamMessage(t *domain.Team) Team {
	msg := Team{
		TeamNumber: t.TeamNumber,
		TeamName:   t.TeamName,
		Ranking:    t.Ranking,
	}
	if !t.CreatedAt.IsZero() {
		msg.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	return msg
}

func toDomainForm(f *Form) domain.MatchForm {
	return domain.MatchForm{
		ScouterName:   f.ScouterName,
		MatchNumber:   f.MatchNumber,
		TeamNumber:    f.TeamNumber,
		StartPosition: domain.StartPosition(f.StartPosition),
		PassedLine:    f.PassedLine,
		L1CoralsAuto:  f.L1CoralsAuto,
		L2CoralsAuto:  f.L2CoralsAuto,
		L3CoralsAuto:  f.L3CoralsAuto,
		L4CoralsAuto:  f.L4CoralsAuto,
		NetAuto:       f.NetAuto,
		L1CoralsTele:  f.L1CoralsTele,
		L2CoralsTele:  f.L2CoralsTele,
		L3CoralsTele:  f.L3CoralsTele,
		L4CoralsTele:  f.L4CoralsTele,
		NetTele:       f.NetTele,
		Processor:     f.Processor,
		HighClimb:     f.HighClimb,
		LowClimb:      f.LowClimb,
		Comments:      f.Comments,
	}
}

func toScoredFormMessage(sf *domain.ScoredForm) ScoredForm {
	f := &sf.Form
	return ScoredForm{
		Form: Form{
			ID:            f.ID,
			ScouterName:   f.ScouterName,
			MatchNumber:   f.MatchNumber,
			TeamNumber:    f.TeamNumber,
			StartPosition: string(f.StartPosition),
			PassedLine:    f.PassedLine,
			L1CoralsAuto:  f.L1CoralsAuto,
			L2CoralsAuto:  f.L2CoralsAuto,
			L3CoralsAuto:  f.L3CoralsAuto,
			L4CoralsAuto:  f.L4CoralsAuto,
			NetAuto:       f.NetAuto,
			L1CoralsTele:  f.L1CoralsTele,
			L2CoralsTele:  f.L2CoralsTele,
			L3CoralsTele:  f.L3CoralsTele,
			L4CoralsTele:  f.L4CoralsTele,
			NetTele:       f.NetTele,
			Processor:     f.Processor,
			HighClimb:     f.HighClimb,
			LowClimb:      f.LowClimb,
			Comments:      f.Comments,
			CreatedAt:     f.CreatedAt.Format(time.RFC3339),
		},
		Score: sf.Score,
	}
}
