package server

import (
	"net/http"
	"roboscout/internal/constants"

	"connectrpc.com/connect"
)

const (
	CreateTeamProcedure        = constants.ServicePath + "CreateTeam"
	GetTeamProcedure           = constants.ServicePath + "GetTeam"
	ListTeamsProcedure         = constants.ServicePath + "ListTeams"
	SyncEventTeamsProcedure    = constants.ServicePath + "SyncEventTeams"
	SubmitFormProcedure        = constants.ServicePath + "SubmitForm"
	GetFormProcedure           = constants.ServicePath + "GetForm"
	SearchFormsProcedure       = constants.ServicePath + "SearchForms"
	GetRankingsProcedure       = constants.ServicePath + "GetRankings"
	GetTeamStatisticsProcedure = constants.ServicePath + "GetTeamStatistics"
)

// NewScoutingServiceHandler builds the HTTP handler serving every scouting
// procedure and returns the path to mount it on.
func NewScoutingServiceHandler(svc *ScoutingServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateTeamProcedure, connect.NewUnaryHandler(CreateTeamProcedure, svc.CreateTeam, opts...))
	mux.Handle(GetTeamProcedure, connect.NewUnaryHandler(GetTeamProcedure, svc.GetTeam, opts...))
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, svc.ListTeams, opts...))
	mux.Handle(SyncEventTeamsProcedure, connect.NewUnaryHandler(SyncEventTeamsProcedure, svc.SyncEventTeams, opts...))
	mux.Handle(SubmitFormProcedure, connect.NewUnaryHandler(SubmitFormProcedure, svc.SubmitForm, opts...))
	mux.Handle(GetFormProcedure, connect.NewUnaryHandler(GetFormProcedure, svc.GetForm, opts...))
	mux.Handle(SearchFormsProcedure, connect.NewUnaryHandler(SearchFormsProcedure, svc.SearchForms, opts...))
	mux.Handle(GetRankingsProcedure, connect.NewUnaryHandler(GetRankingsProcedure, svc.GetRankings, opts...))
	mux.Handle(GetTeamStatisticsProcedure, connect.NewUnaryHandler(GetTeamStatisticsProcedure, svc.GetTeamStatistics, opts...))
	return constants.ServicePath, mux
}
