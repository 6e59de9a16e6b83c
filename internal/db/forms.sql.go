package db

import (
	"context"
	"database/sql"
)

const formColumns = `id, scouter_name, match_number, team_number, start_position, passed_line,
    l1_corals_auto, l2_corals_auto, l3_corals_auto, l4_corals_auto, net_auto,
    l1_corals_tele, l2_corals_tele, l3_corals_tele, l4_corals_tele, net_tele, processor,
    high_climb, low_climb, comments, created_at`

const insertForm = `-- name: InsertForm :execrows
INSERT INTO forms (` + formColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (match_number, team_number) DO NOTHING
`

type InsertFormParams Form

func (q *Queries) InsertForm(ctx context.Context, arg InsertFormParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertForm,
		arg.ID,
		arg.ScouterName,
		arg.MatchNumber,
		arg.TeamNumber,
		arg.StartPosition,
		arg.PassedLine,
		arg.L1CoralsAuto,
		arg.L2CoralsAuto,
		arg.L3CoralsAuto,
		arg.L4CoralsAuto,
		arg.NetAuto,
		arg.L1CoralsTele,
		arg.L2CoralsTele,
		arg.L3CoralsTele,
		arg.L4CoralsTele,
		arg.NetTele,
		arg.Processor,
		arg.HighClimb,
		arg.LowClimb,
		arg.Comments,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getForm = `-- name: GetForm :one
SELECT ` + formColumns + ` FROM forms
WHERE team_number = ? AND match_number = ?
`

type GetFormParams struct {
	TeamNumber  string
	MatchNumber int64
}

func (q *Queries) GetForm(ctx context.Context, arg GetFormParams) (Form, error) {
	row := q.db.QueryRowContext(ctx, getForm, arg.TeamNumber, arg.MatchNumber)
	return scanForm(row)
}

const listForms = `-- name: ListForms :many
SELECT ` + formColumns + ` FROM forms
ORDER BY rowid
`

// ListForms returns every form in insertion order.
func (q *Queries) ListForms(ctx context.Context) ([]Form, error) {
	rows, err := q.db.QueryContext(ctx, listForms)
	if err != nil {
		return nil, err
	}
	return collectForms(rows)
}

const listFormsByTeam = `-- name: ListFormsByTeam :many
SELECT ` + formColumns + ` FROM forms
WHERE team_number = ?
ORDER BY match_number
`

func (q *Queries) ListFormsByTeam(ctx context.Context, teamNumber string) ([]Form, error) {
	rows, err := q.db.QueryContext(ctx, listFormsByTeam, teamNumber)
	if err != nil {
		return nil, err
	}
	return collectForms(rows)
}

type SearchFormsParams struct {
	TeamPrefix    string
	MatchNumber   int64
	ScouterPrefix string
}

// SearchForms returns the forms matching every non-zero filter.
func (q *Queries) SearchForms(ctx context.Context, arg SearchFormsParams) ([]Form, error) {
	b := NewSelect(`SELECT ` + formColumns + ` FROM forms`)
	if arg.TeamPrefix != "" {
		b.WherePrefix("team_number", arg.TeamPrefix)
	}
	if arg.MatchNumber != 0 {
		b.WhereEq("match_number", arg.MatchNumber)
	}
	if arg.ScouterPrefix != "" {
		b.WherePrefix("scouter_name", arg.ScouterPrefix)
	}
	b.OrderBy("match_number", "team_number")

	query, args := b.Build()
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectForms(rows)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanForm(row scanner) (Form, error) {
	var i Form
	err := row.Scan(
		&i.ID,
		&i.ScouterName,
		&i.MatchNumber,
		&i.TeamNumber,
		&i.StartPosition,
		&i.PassedLine,
		&i.L1CoralsAuto,
		&i.L2CoralsAuto,
		&i.L3CoralsAuto,
		&i.L4CoralsAuto,
		&i.NetAuto,
		&i.L1CoralsTele,
		&i.L2CoralsTele,
		&i.L3CoralsTele,
		&i.L4CoralsTele,
		&i.NetTele,
		&i.Processor,
		&i.HighClimb,
		&i.LowClimb,
		&i.Comments,
		&i.CreatedAt,
	)
	return i, err
}

func collectForms(rows *sql.Rows) ([]Form, error) {
	defer rows.Close()
	var items []Form
	for rows.Next() {
		i, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
