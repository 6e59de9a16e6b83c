package repository

import (
	"context"
	"database/sql"
	"errors"
	"roboscout/internal/constants"
	"roboscout/internal/db"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"time"

	"github.com/rs/zerolog"
)

type TeamRepository struct {
	queries *db.Queries
	store   *Store
	logger  zerolog.Logger
}

func NewTeamRepository(store *Store, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		store:   store,
		logger:  logger,
	}
}

// Insert adds the team unless its number is already registered. The returned
// bool reports whether a row was written.
func (r *TeamRepository) Insert(ctx context.Context, team *domain.Team) (bool, error) {
	return insertTeam(ctx, r.queries, team)
}

func insertTeam(ctx context.Context, q *db.Queries, team *domain.Team) (bool, error) {
	if team.TeamNumber == "" {
		return false, errs.NewValidationError("teamNumber", team.TeamNumber, "is required")
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}

	n, err := q.InsertTeam(ctx, db.InsertTeamParams{
		TeamNumber: team.TeamNumber,
		TeamName:   team.TeamName,
		CreatedAt:  team.CreatedAt.UnixMilli(),
	})
	if err != nil {
		return false, classify("insert team", err)
	}
	return n > 0, nil
}

// InsertBatch inserts teams in a single transaction and returns how many were new.
func (r *TeamRepository) InsertBatch(ctx context.Context, teams []domain.Team) (int, error) {
	inserted := 0
	err := r.store.InTx(ctx, func(q *db.Queries) error {
		for i := 0; i < len(teams); i += constants.DBBatchSize {
			end := i + constants.DBBatchSize
			if end > len(teams) {
				end = len(teams)
			}

			for j := range teams[i:end] {
				ok, err := insertTeam(ctx, q, &teams[i+j])
				if err != nil {
					return err
				}
				if ok {
					inserted++
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *TeamRepository) Get(ctx context.Context, teamNumber string) (*domain.Team, error) {
	row, err := r.queries.GetTeam(ctx, teamNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFoundError("team", teamNumber)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("team_number", teamNumber).Msg("failed to get team")
		return nil, classify("get team", err)
	}

	team := toDomainTeam(row)
	return &team, nil
}

// Search returns teams whose number or name starts with prefix; an empty prefix matches all.
func (r *TeamRepository) Search(ctx context.Context, prefix string) ([]domain.Team, error) {
	pattern := db.PrefixPattern(prefix)
	rows, err := r.queries.SearchTeams(ctx, db.SearchTeamsParams{
		TeamNumber: pattern,
		TeamName:   pattern,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("prefix", prefix).Msg("failed to search teams")
		return nil, classify("search teams", err)
	}

	result := make([]domain.Team, len(rows))
	for i, row := range rows {
		result[i] = toDomainTeam(row)
	}
	return result, nil
}

func toDomainTeam(row db.Team) domain.Team {
	return domain.Team{
		TeamNumber: row.TeamNumber,
		TeamName:   row.TeamName,
		CreatedAt:  time.UnixMilli(row.CreatedAt).UTC(),
	}
}
