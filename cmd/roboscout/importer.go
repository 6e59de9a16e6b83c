package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"strconv"
	"strings"
)

type importRow struct {
	Line     int
	TeamName string
	Form     domain.MatchForm
}

type columnSetter func(row *importRow, value string) error

func intColumn(name string, dst func(*domain.MatchForm) *int) columnSetter {
	return func(row *importRow, value string) error {
		if value == "" {
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return errs.NewValidationError(name, value, fmt.Sprintf("line %d: not a whole number", row.Line))
		}
		*dst(&row.Form) = n
		return nil
	}
}

func boolColumn(name string, dst func(*domain.MatchForm) *bool) columnSetter {
	return func(row *importRow, value string) error {
		switch strings.ToLower(value) {
		case "", "0", "false", "no", "n":
			*dst(&row.Form) = false
		case "1", "true", "yes", "y", "x":
			*dst(&row.Form) = true
		default:
			return errs.NewValidationError(name, value, fmt.Sprintf("line %d: not a yes/no value", row.Line))
		}
		return nil
	}
}

func stringColumn(dst func(*importRow) *string) columnSetter {
	return func(row *importRow, value string) error {
		*dst(row) = value
		return nil
	}
}

// Header names match the JSON field names of a submitted form, compared
// case-insensitively. teamName is optional and only used with --create-teams.
var formColumns = map[string]columnSetter{
	"scoutername":   stringColumn(func(r *importRow) *string { return &r.Form.ScouterName }),
	"teamnumber":    stringColumn(func(r *importRow) *string { return &r.Form.TeamNumber }),
	"teamname":      stringColumn(func(r *importRow) *string { return &r.TeamName }),
	"comments":      stringColumn(func(r *importRow) *string { return &r.Form.Comments }),
	"matchnumber":   intColumn("matchNumber", func(f *domain.MatchForm) *int { return &f.MatchNumber }),
	"l1coralsauto":  intColumn("l1CoralsAuto", func(f *domain.MatchForm) *int { return &f.L1CoralsAuto }),
	"l2coralsauto":  intColumn("l2CoralsAuto", func(f *domain.MatchForm) *int { return &f.L2CoralsAuto }),
	"l3coralsauto":  intColumn("l3CoralsAuto", func(f *domain.MatchForm) *int { return &f.L3CoralsAuto }),
	"l4coralsauto":  intColumn("l4CoralsAuto", func(f *domain.MatchForm) *int { return &f.L4CoralsAuto }),
	"netauto":       intColumn("netAuto", func(f *domain.MatchForm) *int { return &f.NetAuto }),
	"l1coralstele":  intColumn("l1CoralsTele", func(f *domain.MatchForm) *int { return &f.L1CoralsTele }),
	"l2coralstele":  intColumn("l2CoralsTele", func(f *domain.MatchForm) *int { return &f.L2CoralsTele }),
	"l3coralstele":  intColumn("l3CoralsTele", func(f *domain.MatchForm) *int { return &f.L3CoralsTele }),
	"l4coralstele":  intColumn("l4CoralsTele", func(f *domain.MatchForm) *int { return &f.L4CoralsTele }),
	"nettele":       intColumn("netTele", func(f *domain.MatchForm) *int { return &f.NetTele }),
	"processor":     intColumn("processor", func(f *domain.MatchForm) *int { return &f.Processor }),
	"passedline":    boolColumn("passedLine", func(f *domain.MatchForm) *bool { return &f.PassedLine }),
	"highclimb":     boolColumn("highClimb", func(f *domain.MatchForm) *bool { return &f.HighClimb }),
	"lowclimb":      boolColumn("lowClimb", func(f *domain.MatchForm) *bool { return &f.LowClimb }),
	"startposition": stringColumn(func(r *importRow) *string { return (*string)(&r.Form.StartPosition) }),
}

// parseForms reads a CSV export of scouting sheets. The first record is the
// header; every later record becomes one form. Nothing is returned unless the
// whole file parses.
func parseForms(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.NewValidationError("input", "", "file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	setters := make([]columnSetter, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		setter, ok := formColumns[key]
		if !ok {
			return nil, errs.NewValidationError("header", name, "unknown column")
		}
		setters[i] = setter
		seen[key] = true
	}
	for _, required := range []string{"teamnumber", "matchnumber"} {
		if !seen[required] {
			return nil, errs.NewValidationError("header", required, "required column is missing")
		}
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read forms: %w", err)
		}

		line, _ := reader.FieldPos(0)
		row := importRow{Line: line}
		for i, value := range record {
			if err := setters[i](&row, strings.TrimSpace(value)); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
