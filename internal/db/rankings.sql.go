package db

import (
	"context"
)

const listTeamAverages = `-- name: ListTeamAverages :many
SELECT team_number, team_name, matches_played,
    avg_passed_line, avg_start_side,
    avg_l1_corals_auto, avg_l2_corals_auto, avg_l3_corals_auto, avg_l4_corals_auto, avg_net_auto,
    avg_l1_corals_tele, avg_l2_corals_tele, avg_l3_corals_tele, avg_l4_corals_tele, avg_net_tele, avg_processor,
    avg_high_climb, avg_low_climb
FROM team_averages
ORDER BY first_seen
`

// ListTeamAverages returns one row per team with at least one form, in order
// of each team's first form.
func (q *Queries) ListTeamAverages(ctx context.Context) ([]TeamAverage, error) {
	rows, err := q.db.QueryContext(ctx, listTeamAverages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TeamAverage
	for rows.Next() {
		var i TeamAverage
		if err := rows.Scan(
			&i.TeamNumber,
			&i.TeamName,
			&i.MatchesPlayed,
			&i.AvgPassedLine,
			&i.AvgStartSide,
			&i.AvgL1CoralsAuto,
			&i.AvgL2CoralsAuto,
			&i.AvgL3CoralsAuto,
			&i.AvgL4CoralsAuto,
			&i.AvgNetAuto,
			&i.AvgL1CoralsTele,
			&i.AvgL2CoralsTele,
			&i.AvgL3CoralsTele,
			&i.AvgL4CoralsTele,
			&i.AvgNetTele,
			&i.AvgProcessor,
			&i.AvgHighClimb,
			&i.AvgLowClimb,
		); err != nil {
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
