package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"roboscout/internal/db"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type FormRepository struct {
	queries *db.Queries
	store   *Store
	logger  zerolog.Logger
}

func NewFormRepository(store *Store, queries *db.Queries, logger zerolog.Logger) *FormRepository {
	return &FormRepository{
		queries: queries,
		store:   store,
		logger:  logger,
	}
}

// Insert stores the form unless one already exists for the same team and
// match; the first submission wins and the returned bool is false.
func (r *FormRepository) Insert(ctx context.Context, form *domain.MatchForm) (bool, error) {
	return insertForm(ctx, r.queries, form)
}

// InsertWithTeam registers the team (if absent) and stores the form in one
// transaction, so neither is written when the other fails.
func (r *FormRepository) InsertWithTeam(ctx context.Context, team *domain.Team, form *domain.MatchForm) (teamInserted, formInserted bool, err error) {
	if team.TeamNumber != form.TeamNumber {
		return false, false, errs.NewValidationError("teamNumber", form.TeamNumber, "form and team disagree on the team number")
	}

	err = r.store.InTx(ctx, func(q *db.Queries) error {
		var err error
		if teamInserted, err = insertTeam(ctx, q, team); err != nil {
			return err
		}
		formInserted, err = insertForm(ctx, q, form)
		return err
	})
	if err != nil {
		return false, false, err
	}
	return teamInserted, formInserted, nil
}

func insertForm(ctx context.Context, q *db.Queries, form *domain.MatchForm) (bool, error) {
	if form.TeamNumber == "" {
		return false, errs.NewValidationError("teamNumber", form.TeamNumber, "is required")
	}
	if form.MatchNumber <= 0 {
		return false, errs.NewValidationError("matchNumber", form.MatchNumber, "is required")
	}

	if form.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return false, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		form.ID = id
	}
	if form.CreatedAt.IsZero() {
		form.CreatedAt = time.Now().UTC()
	}

	params := db.InsertFormParams(toDBForm(form))
	n, err := q.InsertForm(ctx, params)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, errs.NewReferenceError("team", form.TeamNumber, err)
		}
		return false, classify("insert form", err)
	}
	return n > 0, nil
}

func (r *FormRepository) Get(ctx context.Context, teamNumber string, matchNumber int) (*domain.MatchForm, error) {
	row, err := r.queries.GetForm(ctx, db.GetFormParams{
		TeamNumber:  teamNumber,
		MatchNumber: int64(matchNumber),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFoundError("form", teamNumber+"-"+strconv.Itoa(matchNumber))
	}
	if err != nil {
		r.logger.Error().Err(err).Str("team_number", teamNumber).Int("match_number", matchNumber).Msg("failed to get form")
		return nil, classify("get form", err)
	}

	form := toDomainForm(row)
	return &form, nil
}

func (r *FormRepository) Search(ctx context.Context, filter domain.FormFilter) ([]domain.MatchForm, error) {
	rows, err := r.queries.SearchForms(ctx, db.SearchFormsParams{
		TeamPrefix:    filter.TeamPrefix,
		MatchNumber:   int64(filter.MatchNumber),
		ScouterPrefix: filter.ScouterPrefix,
	})
	if err != nil {
		r.logger.Error().Err(err).Interface("filter", filter).Msg("failed to search forms")
		return nil, classify("search forms", err)
	}
	return toDomainForms(rows), nil
}

// List returns every form in insertion order, the input scoring.Aggregate
// expects when checking it against the team_averages view.
func (r *FormRepository) List(ctx context.Context) ([]domain.MatchForm, error) {
	rows, err := r.queries.ListForms(ctx)
	if err != nil {
		return nil, classify("list forms", err)
	}
	return toDomainForms(rows), nil
}

func (r *FormRepository) ListByTeam(ctx context.Context, teamNumber string) ([]domain.MatchForm, error) {
	rows, err := r.queries.ListFormsByTeam(ctx, teamNumber)
	if err != nil {
		return nil, classify("list forms by team", err)
	}
	return toDomainForms(rows), nil
}

func toDBForm(f *domain.MatchForm) db.Form {
	return db.Form{
		ID:            f.ID,
		ScouterName:   f.ScouterName,
		MatchNumber:   int64(f.MatchNumber),
		TeamNumber:    f.TeamNumber,
		StartPosition: string(f.StartPosition),
		PassedLine:    f.PassedLine,
		L1CoralsAuto:  int64(f.L1CoralsAuto),
		L2CoralsAuto:  int64(f.L2CoralsAuto),
		L3CoralsAuto:  int64(f.L3CoralsAuto),
		L4CoralsAuto:  int64(f.L4CoralsAuto),
		NetAuto:       int64(f.NetAuto),
		L1CoralsTele:  int64(f.L1CoralsTele),
		L2CoralsTele:  int64(f.L2CoralsTele),
		L3CoralsTele:  int64(f.L3CoralsTele),
		L4CoralsTele:  int64(f.L4CoralsTele),
		NetTele:       int64(f.NetTele),
		Processor:     int64(f.Processor),
		HighClimb:     f.HighClimb,
		LowClimb:      f.LowClimb,
		Comments:      f.Comments,
		CreatedAt:     f.CreatedAt.UnixMilli(),
	}
}

func toDomainForm(row db.Form) domain.MatchForm {
	return domain.MatchForm{
		ID:            row.ID,
		ScouterName:   row.ScouterName,
		MatchNumber:   int(row.MatchNumber),
		TeamNumber:    row.TeamNumber,
		StartPosition: domain.StartPosition(row.StartPosition),
		PassedLine:    row.PassedLine,
		L1CoralsAuto:  int(row.L1CoralsAuto),
		L2CoralsAuto:  int(row.L2CoralsAuto),
		L3CoralsAuto:  int(row.L3CoralsAuto),
		L4CoralsAuto:  int(row.L4CoralsAuto),
		NetAuto:       int(row.NetAuto),
		L1CoralsTele:  int(row.L1CoralsTele),
		L2CoralsTele:  int(row.L2CoralsTele),
		L3CoralsTele:  int(row.L3CoralsTele),
		L4CoralsTele:  int(row.L4CoralsTele),
		NetTele:       int(row.NetTele),
		Processor:     int(row.Processor),
		HighClimb:     row.HighClimb,
		LowClimb:      row.LowClimb,
		Comments:      row.Comments,
		CreatedAt:     time.UnixMilli(row.CreatedAt).UTC(),
	}
}

func toDomainForms(rows []db.Form) []domain.MatchForm {
	result := make([]domain.MatchForm, len(rows))
	for i, row := range rows {
		result[i] = toDomainForm(row)
	}
	return result
}
