package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"roboscout/internal/domain"
	fxmodules "roboscout/internal/fx"
	"roboscout/internal/logger"
	"roboscout/internal/scoring"
	"roboscout/internal/service"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

const (
	inputFlag       = "input"
	outputFlag      = "output"
	createTeamsFlag = "create-teams"
	sortFlag        = "sort"
	eventFlag       = "event"
	logLevelFlag    = "log-level"
	stdoutName      = "-"
)

type services struct {
	teams    *service.TeamService
	forms    *service.FormService
	rankings *service.RankingService
	db       *sql.DB
}

// withServices builds the application graph without the RPC server and
// closes the database when fn returns. Logs go to stderr so stdout stays
// usable for command output.
func withServices(c *cli.Context, fn func(svc *services) error) error {
	level, err := zerolog.ParseLevel(c.String(logLevelFlag))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var svc services
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() zerolog.Logger { return logger.SetLevel(os.Stderr, level) }),
		fxmodules.Core,
		fx.Populate(&svc.teams, &svc.forms, &svc.rankings, &svc.db),
	)
	if err := app.Err(); err != nil {
		return err
	}
	defer svc.db.Close()

	return fn(&svc)
}

func importForms(c *cli.Context) error {
	f, err := os.Open(c.String(inputFlag))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	rows, err := parseForms(f)
	if err != nil {
		return err
	}

	createTeams := c.Bool(createTeamsFlag)
	return withServices(c, func(svc *services) error {
		var inserted, duplicates, teamsCreated int
		for _, row := range rows {
			var (
				res *service.SubmitResult
				err error
			)
			if createTeams {
				res, err = svc.forms.SubmitWithTeam(c.Context, domain.Team{TeamNumber: row.Form.TeamNumber, TeamName: row.TeamName}, row.Form)
			} else {
				res, err = svc.forms.SubmitForm(c.Context, row.Form)
			}
			if err != nil {
				return fmt.Errorf("line %d: %w", row.Line, err)
			}
			if res.Inserted {
				inserted++
			} else {
				duplicates++
			}
			if res.TeamInserted {
				teamsCreated++
			}
		}

		fmt.Fprintf(c.App.Writer, "imported %d forms (%d duplicates skipped, %d teams created)\n", inserted, duplicates, teamsCreated)
		return nil
	})
}

type rankingsExport struct {
	SortField   string              `yaml:"sort_field"`
	GeneratedAt time.Time           `yaml:"generated_at"`
	Rankings    []domain.RankingRow `yaml:"rankings"`
}

func writeRankings(w io.Writer, export rankingsExport) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&export); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}

func exportRankings(c *cli.Context) error {
	return withServices(c, func(svc *services) error {
		field, err := scoring.ParseRankField(c.String(sortFlag))
		if err != nil {
			return err
		}
		rows, err := svc.rankings.GetRankings(c.Context, string(field))
		if err != nil {
			return err
		}

		out := outputWriter(c.String(outputFlag), c.App.Writer)
		if err := writeRankings(out, rankingsExport{
			SortField:   string(field),
			GeneratedAt: time.Now().UTC().Truncate(time.Second),
			Rankings:    rows,
		}); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

func syncTeams(c *cli.Context) error {
	return withServices(c, func(svc *services) error {
		res, err := svc.teams.SyncEventTeams(c.Context, c.StringSlice(eventFlag)...)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "synced %d events: %d teams fetched, %d new, %d already known\n",
			res.Events, res.Fetched, res.Inserted, res.Skipped)
		return nil
	})
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "roboscout",
		Usage: "Operator tools for the RoboScout scouting database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "zerolog level for diagnostics written to stderr",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "import-forms",
				Usage: "Import scouting forms from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     inputFlag,
						Aliases:  []string{"i"},
						Usage:    "Path to the CSV file; the header row names the form fields",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  createTeamsFlag,
						Usage: "Register unknown teams instead of rejecting their forms",
					},
				},
				Action: importForms,
			},
			{
				Name:  "rankings",
				Usage: "Export team rankings as YAML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  sortFlag,
						Usage: "overall, auto, teleop or endgame",
						Value: "overall",
					},
					&cli.StringFlag{
						Name:    outputFlag,
						Aliases: []string{"o"},
						Usage:   "The location to write the YAML result. Can be a file path or \"-\" (for stdout).",
						Value:   stdoutName,
					},
				},
				Action: exportRankings,
			},
			{
				Name:  "sync-teams",
				Usage: "Register the teams of one or more events from The Blue Alliance",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     eventFlag,
						Aliases:  []string{"e"},
						Usage:    "Event key such as 2025casj; repeat for several events",
						Required: true,
					},
				},
				Action: syncTeams,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
