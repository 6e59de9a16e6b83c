package scoring

import (
	"sort"

	"roboscout/internal/domain"
	"roboscout/internal/errs"
)

// Statistics summarizes one team's forms match by match. A team with no forms
// yields a NotFoundError instead of dividing by zero.
func Statistics(teamNumber string, forms []domain.MatchForm) (domain.TeamStatistics, error) {
	var own []domain.MatchForm
	for _, f := range forms {
		if f.TeamNumber == teamNumber {
			own = append(own, f)
		}
	}
	if len(own) == 0 {
		return domain.TeamStatistics{}, errs.NewNotFoundError("statistics for team", teamNumber)
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].MatchNumber < own[j].MatchNumber })

	stats := domain.TeamStatistics{
		TeamNumber:   teamNumber,
		TotalMatches: len(own),
		CoralData:    make([]domain.CoralPoint, 0, len(own)),
		AutoVsTeleop: make([]domain.PhasePoint, 0, len(own)),
		Scores:       make([]domain.MatchScore, 0, len(own)),
	}

	processor := 0
	for i := range own {
		f := &own[i]
		score, err := Calculate(f)
		if err != nil {
			return domain.TeamStatistics{}, err
		}

		stats.CoralData = append(stats.CoralData, domain.CoralPoint{
			Match: f.MatchNumber,
			L1:    f.L1CoralsAuto + f.L1CoralsTele,
			L2:    f.L2CoralsAuto + f.L2CoralsTele,
			L3:    f.L3CoralsAuto + f.L3CoralsTele,
			L4:    f.L4CoralsAuto + f.L4CoralsTele,
		})
		stats.AutoVsTeleop = append(stats.AutoVsTeleop, domain.PhasePoint{
			Match:  f.MatchNumber,
			Auto:   f.L1CoralsAuto + f.L2CoralsAuto + f.L3CoralsAuto + f.L4CoralsAuto + f.NetAuto,
			Teleop: f.L1CoralsTele + f.L2CoralsTele + f.L3CoralsTele + f.L4CoralsTele + f.NetTele,
		})
		stats.Scores = append(stats.Scores, domain.MatchScore{Match: f.MatchNumber, Score: score})

		if f.HighClimb {
			stats.Climbing.High++
		}
		if f.LowClimb {
			stats.Climbing.Low++
		}
		if !f.HighClimb && !f.LowClimb {
			stats.Climbing.None++
		}
		processor += f.Processor
	}
	stats.AvgProcessor = float64(processor) / float64(len(own))
	return stats, nil
}
