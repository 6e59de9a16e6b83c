package db

import (
	"context"
)

const insertTeam = `-- name: InsertTeam :execrows
INSERT INTO teams (team_number, team_name, created_at)
VALUES (?, ?, ?)
ON CONFLICT (team_number) DO NOTHING
`

type InsertTeamParams struct {
	TeamNumber string
	TeamName   string
	CreatedAt  int64
}

func (q *Queries) InsertTeam(ctx context.Context, arg InsertTeamParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertTeam, arg.TeamNumber, arg.TeamName, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getTeam = `-- name: GetTeam :one
SELECT team_number, team_name, created_at FROM teams
WHERE team_number = ?
`

func (q *Queries) GetTeam(ctx context.Context, teamNumber string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, teamNumber)
	var i Team
	err := row.Scan(&i.TeamNumber, &i.TeamName, &i.CreatedAt)
	return i, err
}

const searchTeams = `-- name: SearchTeams :many
SELECT team_number, team_name, created_at FROM teams
WHERE team_number LIKE ? ESCAPE '\' OR team_name LIKE ? ESCAPE '\'
ORDER BY CAST(team_number AS INTEGER), team_number
`

type SearchTeamsParams struct {
	TeamNumber string
	TeamName   string
}

func (q *Queries) SearchTeams(ctx context.Context, arg SearchTeamsParams) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, searchTeams, arg.TeamNumber, arg.TeamName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.TeamNumber, &i.TeamName, &i.CreatedAt); err != nil {
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
