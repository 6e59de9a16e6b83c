package server

import (
	"context"
	"errors"
	"net/http"
	"roboscout/internal/domain"
	"roboscout/internal/errs"
	"roboscout/internal/repository"
	"roboscout/internal/scoring"
	"roboscout/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type ScoutingServer struct {
	teamSvc    *service.TeamService
	formSvc    *service.FormService
	rankingSvc *service.RankingService
	store      *repository.Store
	logger     zerolog.Logger
}

func NewScoutingServer(teamSvc *service.TeamService, formSvc *service.FormService, rankingSvc *service.RankingService, store *repository.Store, logger zerolog.Logger) *ScoutingServer {
	return &ScoutingServer{teamSvc: teamSvc, formSvc: formSvc, rankingSvc: rankingSvc, store: store, logger: logger}
}

func (s *ScoutingServer) CreateTeam(ctx context.Context, req *connect.Request[CreateTeamRequest]) (*connect.Response[CreateTeamResponse], error) {
	team, created, err := s.teamSvc.CreateTeam(ctx, domain.Team{
		TeamNumber: req.Msg.TeamNumber,
		TeamName:   req.Msg.TeamName,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&CreateTeamResponse{Team: toTeamMessage(team), Created: created}), nil
}

func (s *ScoutingServer) GetTeam(ctx context.Context, req *connect.Request[GetTeamRequest]) (*connect.Response[Team], error) {
	team, err := s.teamSvc.GetTeam(ctx, req.Msg.TeamNumber)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	msg := toTeamMessage(team)
	return connect.NewResponse(&msg), nil
}

func (s *ScoutingServer) ListTeams(ctx context.Context, req *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	teams, err := s.teamSvc.ListTeams(ctx, req.Msg.Prefix)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	resp := &ListTeamsResponse{Teams: make([]Team, len(teams))}
	for i := range teams {
		resp.Teams[i] = toTeamMessage(&teams[i])
	}
	return connect.NewResponse(resp), nil
}

func (s *ScoutingServer) SyncEventTeams(ctx context.Context, req *connect.Request[SyncEventTeamsRequest]) (*connect.Response[SyncEventTeamsResponse], error) {
	res, err := s.teamSvc.SyncEventTeams(ctx, req.Msg.EventKeys...)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&SyncEventTeamsResponse{
		Events:   res.Events,
		Fetched:  res.Fetched,
		Inserted: res.Inserted,
		Skipped:  res.Skipped,
	}), nil
}

func (s *ScoutingServer) SubmitForm(ctx context.Context, req *connect.Request[SubmitFormRequest]) (*connect.Response[SubmitFormResponse], error) {
	form := toDomainForm(&req.Msg.Form)

	var (
		res *service.SubmitResult
		err error
	)
	if req.Msg.CreateTeam {
		res, err = s.formSvc.SubmitWithTeam(ctx, domain.Team{TeamNumber: form.TeamNumber, TeamName: req.Msg.TeamName}, form)
	} else {
		res, err = s.formSvc.SubmitForm(ctx, form)
	}
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	return connect.NewResponse(&SubmitFormResponse{
		ScoredForm:   toScoredFormMessage(&res.Form),
		Inserted:     res.Inserted,
		TeamInserted: res.TeamInserted,
	}), nil
}

func (s *ScoutingServer) GetForm(ctx context.Context, req *connect.Request[GetFormRequest]) (*connect.Response[ScoredForm], error) {
	sf, err := s.formSvc.GetForm(ctx, req.Msg.TeamNumber, req.Msg.MatchNumber)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	msg := toScoredFormMessage(sf)
	return connect.NewResponse(&msg), nil
}

func (s *ScoutingServer) SearchForms(ctx context.Context, req *connect.Request[SearchFormsRequest]) (*connect.Response[SearchFormsResponse], error) {
	forms, err := s.formSvc.SearchForms(ctx, domain.FormFilter{
		TeamPrefix:    req.Msg.TeamNumber,
		MatchNumber:   req.Msg.MatchNumber,
		ScouterPrefix: req.Msg.ScouterName,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	resp := &SearchFormsResponse{Forms: make([]ScoredForm, len(forms))}
	for i := range forms {
		resp.Forms[i] = toScoredFormMessage(&forms[i])
	}
	return connect.NewResponse(resp), nil
}

func (s *ScoutingServer) GetRankings(ctx context.Context, req *connect.Request[GetRankingsRequest]) (*connect.Response[GetRankingsResponse], error) {
	field, err := scoring.ParseRankField(req.Msg.SortField)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	rows, err := s.rankingSvc.GetRankings(ctx, string(field))
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	if rows == nil {
		rows = []domain.RankingRow{}
	}
	return connect.NewResponse(&GetRankingsResponse{SortField: string(field), Rankings: rows}), nil
}

func (s *ScoutingServer) GetTeamStatistics(ctx context.Context, req *connect.Request[GetTeamStatisticsRequest]) (*connect.Response[domain.TeamStatistics], error) {
	stats, err := s.rankingSvc.TeamStatistics(ctx, req.Msg.TeamNumber)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(stats), nil
}

// Health answers ok once the database responds.
func (s *ScoutingServer) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *ScoutingServer) toConnectError(ctx context.Context, err error) error {
	code := codeOf(err)
	if code == connect.CodeInternal {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	}
	return connect.NewError(code, err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errs.IsInvalidReference(err):
		return connect.CodeFailedPrecondition
	case errs.IsValidation(err):
		return connect.CodeInvalidArgument
	case errs.IsNotFound(err):
		return connect.CodeNotFound
	default:
		return connect.CodeInternal
	}
}
