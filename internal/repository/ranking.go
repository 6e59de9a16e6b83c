package repository

import (
	"context"
	"roboscout/internal/db"
	"roboscout/internal/domain"

	"github.com/rs/zerolog"
)

type RankingRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewRankingRepository(queries *db.Queries, logger zerolog.Logger) *RankingRepository {
	return &RankingRepository{
		queries: queries,
		logger:  logger,
	}
}

// TeamAverages reads the team_averages view: raw field means for every team
// with at least one form, in order of each team's first form.
func (r *RankingRepository) TeamAverages(ctx context.Context) ([]domain.Averages, error) {
	rows, err := r.queries.ListTeamAverages(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read team averages")
		return nil, classify("list team averages", err)
	}

	result := make([]domain.Averages, len(rows))
	for i, row := range rows {
		result[i] = domain.Averages{
			TeamNumber:    row.TeamNumber,
			TeamName:      row.TeamName,
			MatchesPlayed: int(row.MatchesPlayed),
			PassedLine:    row.AvgPassedLine,
			StartSide:     row.AvgStartSide,
			L1CoralsAuto:  row.AvgL1CoralsAuto,
			L2CoralsAuto:  row.AvgL2CoralsAuto,
			L3CoralsAuto:  row.AvgL3CoralsAuto,
			L4CoralsAuto:  row.AvgL4CoralsAuto,
			NetAuto:       row.AvgNetAuto,
			L1CoralsTele:  row.AvgL1CoralsTele,
			L2CoralsTele:  row.AvgL2CoralsTele,
			L3CoralsTele:  row.AvgL3CoralsTele,
			L4CoralsTele:  row.AvgL4CoralsTele,
			NetTele:       row.AvgNetTele,
			Processor:     row.AvgProcessor,
			HighClimb:     row.AvgHighClimb,
			LowClimb:      row.AvgLowClimb,
		}
	}
	return result, nil
}
