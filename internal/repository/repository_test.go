package repository

import (
	"context"
	"path/filepath"
	"testing"

	"roboscout/internal/config"
	"roboscout/internal/database"
	"roboscout/internal/db"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"roboscout/internal/scoring"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *Store
	teams    *TeamRepository
	forms    *FormRepository
	rankings *RankingRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{DBDriver: config.DriverPureGo, DBPath: filepath.Join(t.TempDir(), "scout.db")}
	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := zerolog.Nop()
	queries := db.New(sqlDB)
	store := NewStore(sqlDB, queries, logger)
	return &fixture{
		store:    store,
		teams:    NewTeamRepository(store, queries, logger),
		forms:    NewFormRepository(store, queries, logger),
		rankings: NewRankingRepository(queries, logger),
	}
}

func (f *fixture) seedTeams(t *testing.T, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		_, err := f.teams.Insert(context.Background(), &domain.Team{TeamNumber: n, TeamName: "Team " + n})
		require.NoError(t, err)
	}
}

func form(team string, match int, scouter string) *domain.MatchForm {
	return &domain.MatchForm{
		ScouterName:   scouter,
		MatchNumber:   match,
		TeamNumber:    team,
		StartPosition: domain.StartMiddle,
	}
}

func TestTeamRepository_Insert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inserted, err := f.teams.Insert(ctx, &domain.Team{TeamNumber: "254", TeamName: "The Cheesy Poofs"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = f.teams.Insert(ctx, &domain.Team{TeamNumber: "254", TeamName: "Renamed"})
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := f.teams.Get(ctx, "254")
	require.NoError(t, err)
	assert.Equal(t, "The Cheesy Poofs", got.TeamName)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = f.teams.Insert(ctx, &domain.Team{})
	assert.True(t, errs.IsValidation(err))
}

func TestTeamRepository_GetMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.teams.Get(context.Background(), "9999")
	assert.True(t, errs.IsNotFound(err))
}

func TestTeamRepository_InsertBatch(t *testing.T) {
	f := newFixture(t)
	f.seedTeams(t, "1678")

	n, err := f.teams.InsertBatch(context.Background(), []domain.Team{
		{TeamNumber: "1678"},
		{TeamNumber: "254"},
		{TeamNumber: "1114"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := f.teams.Search(context.Background(), "")
	require.NoError(t, err)
	numbers := make([]string, len(all))
	for i, team := range all {
		numbers[i] = team.TeamNumber
	}
	assert.Equal(t, []string{"254", "1114", "1678"}, numbers)
}

func TestTeamRepository_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedTeams(t, "1234", "1290", "5000")
	_, err := f.teams.Insert(ctx, &domain.Team{TeamNumber: "50", TeamName: "12% Club"})
	require.NoError(t, err)

	got, err := f.teams.Search(ctx, "12")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "50", got[0].TeamNumber)

	got, err = f.teams.Search(ctx, "12%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12% Club", got[0].TeamName)
}

func TestFormRepository_FirstWriteWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedTeams(t, "1234")

	first := form("1234", 7, "Alice")
	first.NetTele = 3
	inserted, err := f.forms.Insert(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, first.ID)

	second := form("1234", 7, "Bob")
	second.NetTele = 9
	inserted, err = f.forms.Insert(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := f.forms.Get(ctx, "1234", 7)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.ScouterName)
	assert.Equal(t, 3, got.NetTele)
	assert.Equal(t, first.ID, got.ID)
}

func TestFormRepository_UnknownTeam(t *testing.T) {
	f := newFixture(t)

	_, err := f.forms.Insert(context.Background(), form("9999", 1, "Alice"))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidReference(err))
	assert.True(t, errs.IsValidation(err))
}

func TestFormRepository_CheckConstraint(t *testing.T) {
	f := newFixture(t)
	f.seedTeams(t, "1234")

	bad := form("1234", 1, "Alice")
	bad.Processor = -1
	_, err := f.forms.Insert(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, errs.IsDataAccess(err))
}

func TestFormRepository_GetMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.forms.Get(context.Background(), "1234", 1)
	assert.True(t, errs.IsNotFound(err))
}

func TestFormRepository_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedTeams(t, "1234")

	in := &domain.MatchForm{
		ScouterName:   "Alice",
		MatchNumber:   3,
		TeamNumber:    "1234",
		StartPosition: domain.StartSide,
		PassedLine:    true,
		L1CoralsAuto:  1,
		L2CoralsAuto:  2,
		L3CoralsAuto:  3,
		L4CoralsAuto:  4,
		NetAuto:       5,
		L1CoralsTele:  6,
		L2CoralsTele:  7,
		L3CoralsTele:  8,
		L4CoralsTele:  9,
		NetTele:       10,
		Processor:     11,
		HighClimb:     true,
		Comments:      "fast cycles",
	}
	_, err := f.forms.Insert(ctx, in)
	require.NoError(t, err)

	got, err := f.forms.Get(ctx, "1234", 3)
	require.NoError(t, err)
	assert.Equal(t, in.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
	got.CreatedAt = in.CreatedAt
	assert.Equal(t, *in, *got)
}

func TestFormRepository_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedTeams(t, "1234", "1290", "5000")

	for _, fm := range []*domain.MatchForm{
		form("1234", 3, "Alice"),
		form("1290", 3, "Bob"),
		form("5000", 3, "Alice"),
		form("1234", 4, "Albert"),
		form("1290", 1, "Carol"),
	} {
		_, err := f.forms.Insert(ctx, fm)
		require.NoError(t, err)
	}

	t.Run("match number is exact", func(t *testing.T) {
		got, err := f.forms.Search(ctx, domain.FormFilter{MatchNumber: 3})
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, fm := range got {
			assert.Equal(t, 3, fm.MatchNumber)
		}
	})

	t.Run("prefixes combine", func(t *testing.T) {
		got, err := f.forms.Search(ctx, domain.FormFilter{TeamPrefix: "12", ScouterPrefix: "Al"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 3, got[0].MatchNumber)
		assert.Equal(t, 4, got[1].MatchNumber)
	})

	t.Run("empty filter returns all ordered by match", func(t *testing.T) {
		got, err := f.forms.Search(ctx, domain.FormFilter{})
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, 1, got[0].MatchNumber)
		assert.Equal(t, 4, got[4].MatchNumber)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := f.forms.Search(ctx, domain.FormFilter{ScouterPrefix: "Zed"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFormRepository_InsertWithTeamIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := form("4414", 2, "Alice")
	bad.NetAuto = -1
	_, _, err := f.forms.InsertWithTeam(ctx, &domain.Team{TeamNumber: "4414"}, bad)
	require.Error(t, err)

	_, err = f.teams.Get(ctx, "4414")
	assert.True(t, errs.IsNotFound(err), "team must be rolled back with the failed form")

	teamInserted, formInserted, err := f.forms.InsertWithTeam(ctx, &domain.Team{TeamNumber: "4414", TeamName: "HighTide"}, form("4414", 2, "Alice"))
	require.NoError(t, err)
	assert.True(t, teamInserted)
	assert.True(t, formInserted)

	teamInserted, formInserted, err = f.forms.InsertWithTeam(ctx, &domain.Team{TeamNumber: "4414"}, form("4414", 3, "Bob"))
	require.NoError(t, err)
	assert.False(t, teamInserted)
	assert.True(t, formInserted)
}

func TestRankingRepository_MatchesInMemoryAggregate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedTeams(t, "1234", "5678", "1111")

	a := form("5678", 1, "Alice")
	a.L4CoralsTele, a.NetAuto, a.HighClimb, a.PassedLine = 3, 2, true, true
	b := form("1234", 1, "Bob")
	b.StartPosition, b.Processor, b.LowClimb = domain.StartSide, 5, true
	c := form("5678", 2, "Alice")
	c.L1CoralsAuto, c.L2CoralsTele = 1, 4
	for _, fm := range []*domain.MatchForm{a, b, c} {
		_, err := f.forms.Insert(ctx, fm)
		require.NoError(t, err)
	}

	fromView, err := f.rankings.TeamAverages(ctx)
	require.NoError(t, err)

	forms, err := f.forms.List(ctx)
	require.NoError(t, err)
	teams, err := f.teams.Search(ctx, "")
	require.NoError(t, err)
	inMemory := scoring.Aggregate(forms, teams)

	require.Len(t, fromView, 2, "teams without forms are absent")
	assert.Equal(t, "5678", fromView[0].TeamNumber)
	assert.Equal(t, "1234", fromView[1].TeamNumber)
	for i := range inMemory {
		assert.Equal(t, inMemory[i].TeamNumber, fromView[i].TeamNumber)
		assert.Equal(t, inMemory[i].MatchesPlayed, fromView[i].MatchesPlayed)
		assert.InDelta(t, inMemory[i].StartSide, fromView[i].StartSide, 1e-9)
		assert.InDelta(t, inMemory[i].L4CoralsTele, fromView[i].L4CoralsTele, 1e-9)
		assert.InDelta(t, inMemory[i].HighClimb, fromView[i].HighClimb, 1e-9)
		assert.InDelta(t, inMemory[i].Processor, fromView[i].Processor, 1e-9)
	}

	rows := scoring.Rank(fromView, scoring.RankOverall)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
}
