package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"roboscout/internal/api"
	"roboscout/internal/cache"
	"roboscout/internal/config"
	"roboscout/internal/database"
	"roboscout/internal/db"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"roboscout/internal/repository"
	"roboscout/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		DBDriver:        config.DriverPureGo,
		DBPath:          filepath.Join(t.TempDir(), "scout.db"),
		RankingCacheTTL: time.Minute,
	}
	logger := zerolog.Nop()
	sqlDB, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	store := repository.NewStore(sqlDB, queries, logger)
	formRepo := repository.NewFormRepository(store, queries, logger)
	rankingCache := cache.NewFromConfig(cfg)
	rankings := service.NewRankingService(repository.NewRankingRepository(queries, logger), formRepo, rankingCache, logger)
	teams := service.NewTeamService(api.NewTBAClient(cfg), repository.NewTeamRepository(store, queries, logger), rankings, logger)
	forms := service.NewFormService(formRepo, rankingCache, logger)

	scouting := NewScoutingServer(teams, forms, rankings, store, logger)
	mux := http.NewServeMux()
	path, handler := NewScoutingServiceHandler(scouting)
	mux.Handle(path, handler)
	mux.HandleFunc("/healthz", scouting.Health)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call[Req, Res any](t *testing.T, srv *httptest.Server, procedure string, msg *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](srv.Client(), srv.URL+procedure, WithJSON())
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func sheet(team string, match int) Form {
	return Form{
		ScouterName:   "Alex Johnson",
		MatchNumber:   match,
		TeamNumber:    team,
		StartPosition: "side",
		PassedLine:    true,
		L1CoralsAuto:  3,
		L2CoralsAuto:  2,
		L3CoralsAuto:  1,
		NetAuto:       2,
		L1CoralsTele:  8,
		L2CoralsTele:  6,
		L3CoralsTele:  4,
		L4CoralsTele:  2,
		NetTele:       5,
		Processor:     3,
		HighClimb:     true,
	}
}

func TestScoutingService_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	created, err := call[CreateTeamRequest, CreateTeamResponse](t, srv, CreateTeamProcedure, &CreateTeamRequest{TeamNumber: "1234", TeamName: "Robo Raiders"})
	require.NoError(t, err)
	assert.True(t, created.Created)
	assert.Nil(t, created.Team.Ranking)

	submitted, err := call[SubmitFormRequest, SubmitFormResponse](t, srv, SubmitFormProcedure, &SubmitFormRequest{Form: sheet("1234", 1)})
	require.NoError(t, err)
	assert.True(t, submitted.Inserted)
	assert.NotEmpty(t, submitted.Form.ID)
	assert.Equal(t, domain.Score{Auto: 33, Teleop: 86, Endgame: 6, Total: 125}, submitted.Score)

	withTeam, err := call[SubmitFormRequest, SubmitFormResponse](t, srv, SubmitFormProcedure, &SubmitFormRequest{
		Form:       Form{TeamNumber: "5678", MatchNumber: 1, LowClimb: true},
		CreateTeam: true,
		TeamName:   "Climbers",
	})
	require.NoError(t, err)
	assert.True(t, withTeam.TeamInserted)
	assert.Equal(t, "middle", withTeam.Form.StartPosition)

	rankings, err := call[GetRankingsRequest, GetRankingsResponse](t, srv, GetRankingsProcedure, &GetRankingsRequest{SortField: "overall"})
	require.NoError(t, err)
	require.Len(t, rankings.Rankings, 2)
	assert.Equal(t, "1234", rankings.Rankings[0].TeamNumber)
	assert.Equal(t, "Robo Raiders", rankings.Rankings[0].TeamName)
	assert.Equal(t, 125.0, rankings.Rankings[0].OverallAvg)

	team, err := call[GetTeamRequest, Team](t, srv, GetTeamProcedure, &GetTeamRequest{TeamNumber: "5678"})
	require.NoError(t, err)
	require.NotNil(t, team.Ranking)
	assert.Equal(t, 2, *team.Ranking)

	list, err := call[ListTeamsRequest, ListTeamsResponse](t, srv, ListTeamsProcedure, &ListTeamsRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Teams, 2)

	form, err := call[GetFormRequest, ScoredForm](t, srv, GetFormProcedure, &GetFormRequest{TeamNumber: "1234", MatchNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", form.Form.ScouterName)

	search, err := call[SearchFormsRequest, SearchFormsResponse](t, srv, SearchFormsProcedure, &SearchFormsRequest{ScouterName: "Alex"})
	require.NoError(t, err)
	require.Len(t, search.Forms, 1)
	assert.Equal(t, "1234", search.Forms[0].Form.TeamNumber)

	stats, err := call[GetTeamStatisticsRequest, domain.TeamStatistics](t, srv, GetTeamStatisticsProcedure, &GetTeamStatisticsRequest{TeamNumber: "1234"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMatches)
	assert.Equal(t, 1, stats.Climbing.High)
}

func TestScoutingService_ErrorCodes(t *testing.T) {
	srv := newTestServer(t)

	_, err := call[SubmitFormRequest, SubmitFormResponse](t, srv, SubmitFormProcedure, &SubmitFormRequest{Form: sheet("9999", 1)})
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	bad := sheet("9999", 1)
	bad.StartPosition = "corner"
	_, err = call[SubmitFormRequest, SubmitFormResponse](t, srv, SubmitFormProcedure, &SubmitFormRequest{Form: bad})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[GetTeamRequest, Team](t, srv, GetTeamProcedure, &GetTeamRequest{TeamNumber: "9999"})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = call[GetRankingsRequest, GetRankingsResponse](t, srv, GetRankingsProcedure, &GetRankingsRequest{SortField: "defense"})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[SyncEventTeamsRequest, SyncEventTeamsResponse](t, srv, SyncEventTeamsProcedure, &SyncEventTeamsRequest{EventKeys: []string{"2025casj"}})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err), "sync is rejected without an API key")
}

func TestScoutingService_EmptyRankings(t *testing.T) {
	srv := newTestServer(t)

	rankings, err := call[GetRankingsRequest, GetRankingsResponse](t, srv, GetRankingsProcedure, &GetRankingsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, rankings.Rankings)
	assert.Empty(t, rankings.Rankings)
	assert.Equal(t, "overall", rankings.SortField)

	rankings, err = call[GetRankingsRequest, GetRankingsResponse](t, srv, GetRankingsProcedure, &GetRankingsRequest{SortField: " Climb_Points"})
	require.NoError(t, err)
	assert.Equal(t, "endgame", rankings.SortField)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{errs.NewValidationError("matchNumber", 0, "is required"), connect.CodeInvalidArgument},
		{errs.NewReferenceError("team", "9999", errors.New("fk")), connect.CodeFailedPrecondition},
		{errs.NewNotFoundError("team", "9999"), connect.CodeNotFound},
		{fmt.Errorf("wrapped: %w", errs.NewNotFoundError("form", "1-1")), connect.CodeNotFound},
		{errs.NewDataAccessError("insert form", errors.New("disk full")), connect.CodeInternal},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codeOf(tt.err), tt.err.Error())
	}
}
