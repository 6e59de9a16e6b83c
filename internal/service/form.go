package service

import (
	"context"
	"fmt"
	"roboscout/internal/cache"
	"roboscout/internal/constants"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"roboscout/internal/repository"
	"roboscout/internal/scoring"
	"strings"

	"github.com/rs/zerolog"
)

type FormService struct {
	repo   *repository.FormRepository
	cache  *cache.RankingCache
	logger zerolog.Logger
}

func NewFormService(repo *repository.FormRepository, cache *cache.RankingCache, logger zerolog.Logger) *FormService {
	return &FormService{repo: repo, cache: cache, logger: logger}
}

type SubmitResult struct {
	Form         domain.ScoredForm
	Inserted     bool
	TeamInserted bool
}

// SubmitForm stores a scouting form for an already registered team. A second
// form for the same team and match is ignored and Inserted is false.
func (s *FormService) SubmitForm(ctx context.Context, form domain.MatchForm) (*SubmitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	score, err := s.prepare(&form)
	if err != nil {
		return nil, err
	}

	inserted, err := s.repo.Insert(ctx, &form)
	if err != nil {
		s.logger.Error().Err(err).Str("team_number", form.TeamNumber).Int("match_number", form.MatchNumber).Msg("failed to store form")
		return nil, fmt.Errorf("failed to store form: %w", err)
	}

	return s.finish(form, score, inserted, false), nil
}

// SubmitWithTeam registers the team when needed and stores the form atomically.
func (s *FormService) SubmitWithTeam(ctx context.Context, team domain.Team, form domain.MatchForm) (*SubmitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	score, err := s.prepare(&form)
	if err != nil {
		return nil, err
	}
	team.TeamNumber = strings.TrimSpace(team.TeamNumber)
	team.TeamName = strings.TrimSpace(team.TeamName)
	if team.TeamNumber == "" {
		team.TeamNumber = form.TeamNumber
	}

	teamInserted, inserted, err := s.repo.InsertWithTeam(ctx, &team, &form)
	if err != nil {
		s.logger.Error().Err(err).Str("team_number", form.TeamNumber).Int("match_number", form.MatchNumber).Msg("failed to store team and form")
		return nil, fmt.Errorf("failed to store team and form: %w", err)
	}

	return s.finish(form, score, inserted, teamInserted), nil
}

// prepare normalizes the team number the way CreateTeam stores it, then
// validates and scores the form.
func (s *FormService) prepare(form *domain.MatchForm) (domain.Score, error) {
	form.TeamNumber = strings.TrimSpace(form.TeamNumber)
	if err := scoring.ValidateForm(form); err != nil {
		s.logger.Debug().Err(err).Str("team_number", form.TeamNumber).Msg("rejected form")
		return domain.Score{}, err
	}
	if form.HighClimb && form.LowClimb {
		s.logger.Warn().
			Str("team_number", form.TeamNumber).
			Int("match_number", form.MatchNumber).
			Str("scouter", form.ScouterName).
			Msg("form reports both high and low climb, scoring both")
	}
	return scoring.Calculate(form)
}

func (s *FormService) finish(form domain.MatchForm, score domain.Score, inserted, teamInserted bool) *SubmitResult {
	if inserted {
		s.cache.Invalidate()
		s.logger.Info().
			Str("form_id", form.ID).
			Str("team_number", form.TeamNumber).
			Int("match_number", form.MatchNumber).
			Int("total_score", score.Total).
			Msg("form stored")
	} else {
		s.logger.Info().
			Str("team_number", form.TeamNumber).
			Int("match_number", form.MatchNumber).
			Msg("form already recorded for this team and match, ignoring")
	}
	return &SubmitResult{
		Form:         domain.ScoredForm{Form: form, Score: score},
		Inserted:     inserted,
		TeamInserted: teamInserted,
	}
}

func (s *FormService) GetForm(ctx context.Context, teamNumber string, matchNumber int) (*domain.ScoredForm, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	form, err := s.repo.Get(ctx, teamNumber, matchNumber)
	if err != nil {
		return nil, err
	}
	score, err := scoring.Calculate(form)
	if err != nil {
		return nil, err
	}
	return &domain.ScoredForm{Form: *form, Score: score}, nil
}

// SearchForms applies the filter conjunctively; zero-valued fields are ignored.
func (s *FormService) SearchForms(ctx context.Context, filter domain.FormFilter) ([]domain.ScoredForm, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if filter.MatchNumber < 0 {
		return nil, errs.NewValidationError("matchNumber", filter.MatchNumber, "must not be negative")
	}

	s.logger.Debug().Interface("filter", filter).Msg("searching forms")

	forms, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ScoredForm, 0, len(forms))
	for _, f := range forms {
		score, err := scoring.Calculate(&f)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.ScoredForm{Form: f, Score: score})
	}
	return result, nil
}
