package service

import (
	"context"
	"roboscout/internal/cache"
	"roboscout/internal/constants"
	"roboscout/internal/domain"
	"roboscout/internal/repository"
	"roboscout/internal/scoring"

	"github.com/rs/zerolog"
)

type RankingService struct {
	rankingRepo *repository.RankingRepository
	formRepo    *repository.FormRepository
	cache       *cache.RankingCache
	logger      zerolog.Logger
}

func NewRankingService(rankingRepo *repository.RankingRepository, formRepo *repository.FormRepository, cache *cache.RankingCache, logger zerolog.Logger) *RankingService {
	return &RankingService{rankingRepo: rankingRepo, formRepo: formRepo, cache: cache, logger: logger}
}

// GetRankings returns the standings sorted by the named field. sortField
// accepts the short names (overall, auto, teleop, endgame) and the
// *_points aliases; empty means overall.
func (s *RankingService) GetRankings(ctx context.Context, sortField string) ([]domain.RankingRow, error) {
	field, err := scoring.ParseRankField(sortField)
	if err != nil {
		return nil, err
	}
	return s.rankBy(ctx, field)
}

func (s *RankingService) rankBy(ctx context.Context, field scoring.RankField) ([]domain.RankingRow, error) {
	if rows, ok := s.cache.Get(string(field)); ok {
		s.logger.Debug().Str("field", string(field)).Msg("returning cached rankings")
		return rows, nil
	}

	gen := s.cache.Generation()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	averages, err := s.rankingRepo.TeamAverages(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load team averages")
		return nil, err
	}

	rows := scoring.Rank(averages, field)
	if !s.cache.SetIfGeneration(string(field), gen, rows) {
		s.logger.Debug().Str("field", string(field)).Msg("forms changed while ranking, not caching")
	}

	s.logger.Debug().Str("field", string(field)).Int("teams", len(rows)).Msg("rankings computed")
	return rows, nil
}

// overallRanks maps team number to its position in the overall standings.
func (s *RankingService) overallRanks(ctx context.Context) (map[string]int, error) {
	rows, err := s.rankBy(ctx, scoring.RankOverall)
	if err != nil {
		return nil, err
	}
	ranks := make(map[string]int, len(rows))
	for _, r := range rows {
		ranks[r.TeamNumber] = r.Rank
	}
	return ranks, nil
}

func (s *RankingService) TeamStatistics(ctx context.Context, teamNumber string) (*domain.TeamStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	forms, err := s.formRepo.ListByTeam(ctx, teamNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("team_number", teamNumber).Msg("failed to load forms for statistics")
		return nil, err
	}

	stats, err := scoring.Statistics(teamNumber, forms)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
