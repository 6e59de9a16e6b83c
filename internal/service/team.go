package service

import (
	"context"
	"fmt"
	"roboscout/internal/api"
	"roboscout/internal/constants"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"roboscout/internal/repository"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type TeamService struct {
	tba      *api.TBAClient
	repo     *repository.TeamRepository
	rankings *RankingService
	logger   zerolog.Logger
}

func NewTeamService(tba *api.TBAClient, repo *repository.TeamRepository, rankings *RankingService, logger zerolog.Logger) *TeamService {
	return &TeamService{tba: tba, repo: repo, rankings: rankings, logger: logger}
}

// CreateTeam registers a team. An existing team keeps its name and the
// returned bool is false.
func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team) (*domain.Team, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	team.TeamNumber = strings.TrimSpace(team.TeamNumber)
	team.TeamName = strings.TrimSpace(team.TeamName)

	inserted, err := s.repo.Insert(ctx, &team)
	if err != nil {
		s.logger.Error().Err(err).Str("team_number", team.TeamNumber).Msg("failed to create team")
		return nil, false, fmt.Errorf("failed to create team: %w", err)
	}
	if !inserted {
		s.logger.Debug().Str("team_number", team.TeamNumber).Msg("team already registered")
		existing, err := s.repo.Get(ctx, team.TeamNumber)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	s.logger.Info().Str("team_number", team.TeamNumber).Str("team_name", team.TeamName).Msg("team created")
	return &team, true, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamNumber string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	team, err := s.repo.Get(ctx, teamNumber)
	if err != nil {
		return nil, err
	}

	ranks, err := s.rankings.overallRanks(ctx)
	if err != nil {
		return nil, err
	}
	if r, ok := ranks[team.TeamNumber]; ok {
		team.Ranking = &r
	}
	return team, nil
}

// ListTeams returns teams whose number or name starts with prefix, each with
// its overall rank when it has forms.
func (s *TeamService) ListTeams(ctx context.Context, prefix string) ([]domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	teams, err := s.repo.Search(ctx, strings.TrimSpace(prefix))
	if err != nil {
		s.logger.Error().Err(err).Str("prefix", prefix).Msg("failed to list teams")
		return nil, err
	}

	ranks, err := s.rankings.overallRanks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if r, ok := ranks[teams[i].TeamNumber]; ok {
			teams[i].Ranking = &r
		}
	}
	return teams, nil
}

type SyncResult struct {
	Events   int
	Fetched  int
	Inserted int
	Skipped  int
}

// SyncEventTeams fetches the rosters of the given events from The Blue
// Alliance and registers every team not yet known.
func (s *TeamService) SyncEventTeams(ctx context.Context, eventKeys ...string) (*SyncResult, error) {
	if len(eventKeys) == 0 {
		return nil, errs.NewValidationError("eventKeys", eventKeys, "at least one event key is required")
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	rosters := make([][]api.TBATeam, len(eventKeys))
	g, gctx := errgroup.WithContext(apiCtx)
	for i, key := range eventKeys {
		g.Go(func() error {
			teams, err := s.tba.GetEventTeams(gctx, key)
			if err != nil {
				s.logger.Error().Err(err).Str("event", key).Msg("failed to fetch event teams")
				return fmt.Errorf("event %s: %w", key, err)
			}
			s.logger.Debug().Str("event", key).Int("teams", len(teams)).Msg("fetched event teams")
			rosters[i] = teams
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var teams []domain.Team
	for _, roster := range rosters {
		for _, t := range roster {
			number := strconv.Itoa(t.TeamNumber)
			if seen[number] {
				continue
			}
			seen[number] = true
			teams = append(teams, domain.Team{TeamNumber: number, TeamName: t.Nickname})
		}
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()

	inserted, err := s.repo.InsertBatch(dbCtx, teams)
	if err != nil {
		s.logger.Error().Err(err).Int("teams", len(teams)).Msg("failed to store synced teams")
		return nil, fmt.Errorf("failed to store synced teams: %w", err)
	}

	result := &SyncResult{
		Events:   len(eventKeys),
		Fetched:  len(teams),
		Inserted: inserted,
		Skipped:  len(teams) - inserted,
	}
	s.logger.Info().
		Strs("events", eventKeys).
		Int("fetched", result.Fetched).
		Int("inserted", result.Inserted).
		Msg("event teams synced")
	return result, nil
}
