package scoring

import (
	"math"
	"sort"
	"strings"

	"roboscout/internal/domain"
	"roboscout/internal/errs"
)

type RankField string

const (
	RankOverall RankField = "overall"
	RankAuto    RankField = "auto"
	RankTeleop  RankField = "teleop"
	RankEndgame RankField = "endgame"
)

var rankFieldAliases = map[string]RankField{
	"":               RankOverall,
	"overall":        RankOverall,
	"overall_points": RankOverall,
	"auto":           RankAuto,
	"auto_points":    RankAuto,
	"teleop":         RankTeleop,
	"teleop_points":  RankTeleop,
	"endgame":        RankEndgame,
	"climb_points":   RankEndgame,
}

// ParseRankField accepts both the short names and the column names of the
// rankings view. An empty string selects the overall average.
func ParseRankField(s string) (RankField, error) {
	if f, ok := rankFieldAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", errs.NewValidationError("sortField", s, "must be one of overall, auto, teleop, endgame")
}

func (f RankField) value(r *domain.RankingRow) float64 {
	switch f {
	case RankAuto:
		return r.AutoAvg
	case RankTeleop:
		return r.TeleopAvg
	case RankEndgame:
		return r.EndgameAvg
	default:
		return r.OverallAvg
	}
}

type group struct {
	teamNumber string
	forms      []*domain.MatchForm
}

// Aggregate averages the raw fields of every team's forms. Teams appear in the
// order of their first form; teams without forms are absent.
//
// Standings are served from the team_averages view. Aggregate is the in-memory
// computation that view must agree with, and the repository tests hold the
// two to the same result.
func Aggregate(forms []domain.MatchForm, teams []domain.Team) []domain.Averages {
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.TeamNumber] = t.TeamName
	}

	index := make(map[string]int)
	var groups []group
	for i := range forms {
		f := &forms[i]
		gi, ok := index[f.TeamNumber]
		if !ok {
			gi = len(groups)
			index[f.TeamNumber] = gi
			groups = append(groups, group{teamNumber: f.TeamNumber})
		}
		groups[gi].forms = append(groups[gi].forms, f)
	}

	result := make([]domain.Averages, 0, len(groups))
	for _, g := range groups {
		n := float64(len(g.forms))
		a := domain.Averages{
			TeamNumber:    g.teamNumber,
			TeamName:      names[g.teamNumber],
			MatchesPlayed: len(g.forms),
		}
		for _, f := range g.forms {
			a.PassedLine += float64(flag(f.PassedLine))
			a.StartSide += float64(flag(f.StartPosition == domain.StartSide))
			a.L1CoralsAuto += float64(f.L1CoralsAuto)
			a.L2CoralsAuto += float64(f.L2CoralsAuto)
			a.L3CoralsAuto += float64(f.L3CoralsAuto)
			a.L4CoralsAuto += float64(f.L4CoralsAuto)
			a.NetAuto += float64(f.NetAuto)
			a.L1CoralsTele += float64(f.L1CoralsTele)
			a.L2CoralsTele += float64(f.L2CoralsTele)
			a.L3CoralsTele += float64(f.L3CoralsTele)
			a.L4CoralsTele += float64(f.L4CoralsTele)
			a.NetTele += float64(f.NetTele)
			a.Processor += float64(f.Processor)
			a.HighClimb += float64(flag(f.HighClimb))
			a.LowClimb += float64(flag(f.LowClimb))
		}
		for _, p := range []*float64{
			&a.PassedLine, &a.StartSide,
			&a.L1CoralsAuto, &a.L2CoralsAuto, &a.L3CoralsAuto, &a.L4CoralsAuto, &a.NetAuto,
			&a.L1CoralsTele, &a.L2CoralsTele, &a.L3CoralsTele, &a.L4CoralsTele, &a.NetTele, &a.Processor,
			&a.HighClimb, &a.LowClimb,
		} {
			*p /= n
		}
		result = append(result, a)
	}
	return result
}

// Rank turns per-team averages into standings sorted by field, descending.
// Ties keep the input order and ranks are 1-based positions.
func Rank(averages []domain.Averages, field RankField) []domain.RankingRow {
	rows := make([]domain.RankingRow, 0, len(averages))
	for _, a := range averages {
		if a.MatchesPlayed == 0 {
			continue
		}
		auto, teleop, endgame := PhaseAverages(&a)
		rows = append(rows, domain.RankingRow{
			TeamNumber:    a.TeamNumber,
			TeamName:      a.TeamName,
			MatchesPlayed: a.MatchesPlayed,
			AutoAvg:       auto,
			TeleopAvg:     teleop,
			EndgameAvg:    endgame,
			OverallAvg:    auto + teleop + endgame,
			Averages:      a,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return field.value(&rows[i]) > field.value(&rows[j])
	})

	for i := range rows {
		r := &rows[i]
		r.Rank = i + 1
		r.AutoAvg = round3(r.AutoAvg)
		r.TeleopAvg = round3(r.TeleopAvg)
		r.EndgameAvg = round3(r.EndgameAvg)
		r.OverallAvg = round3(r.OverallAvg)
	}
	return rows
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
