package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	agreementtracker "comunidad/contexts/governance/agreement-tracker"
	assemblylifecycle "comunidad/contexts/governance/assembly-lifecycle"
	committeemeeting "comunidad/contexts/governance/committee-meeting"
	meetingscheduler "comunidad/contexts/governance/meeting-scheduler"
	memberregistry "comunidad/contexts/governance/member-registry"
	pollengine "comunidad/contexts/governance/poll-engine"
	votingengine "comunidad/contexts/governance/voting-engine"
	"comunidad/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "comunidad/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	members    memberregistry.Module
	agreements agreementtracker.Module
	voting     votingengine.Module
	assemblies assemblylifecycle.Module
	meetings   committeemeeting.Module
	schedules  meetingscheduler.Module
	polls      pollengine.Module
	registry   *metrics.Registry
}

func New(
	members memberregistry.Module,
	agreements agreementtracker.Module,
	voting votingengine.Module,
	assemblies assemblylifecycle.Module,
	meetings committeemeeting.Module,
	schedules meetingscheduler.Module,
	polls pollengine.Module,
	registry *metrics.Registry,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		members:    members,
		agreements: agreements,
		voting:     voting,
		assemblies: assemblies,
		meetings:   meetings,
		schedules:  schedules,
		polls:      polls,
		registry:   registry,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.registry != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry.Gatherer, promhttp.HandlerOpts{}))
	}

	s.mux.HandleFunc("POST /api/governance/v1/members", s.handleCreateMember)
	s.mux.HandleFunc("POST /api/governance/v1/members/{member_id}/role", s.handleUpdateMemberRole)
	s.mux.HandleFunc("POST /api/governance/v1/members/{member_id}/deactivate", s.handleDeactivateMember)
	s.mux.HandleFunc("GET /api/governance/v1/members/active", s.handleActiveMembers)
	s.mux.HandleFunc("GET /api/governance/v1/members/by-role/{role}", s.handleMembersByRole)

	s.mux.HandleFunc("POST /api/governance/v1/agreements", s.handleCreateAgreement)
	s.mux.HandleFunc("POST /api/governance/v1/agreements/{agreement_id}/progress", s.handleAgreementProgress)
	s.mux.HandleFunc("POST /api/governance/v1/agreements/{agreement_id}/complete", s.handleAgreementComplete)
	s.mux.HandleFunc("GET /api/governance/v1/agreements/pending", s.handleAgreementsPending)
	s.mux.HandleFunc("GET /api/governance/v1/agreements/overdue", s.handleAgreementsOverdue)
	s.mux.HandleFunc("GET /api/governance/v1/agreements/due-soon", s.handleAgreementsDueSoon)
	s.mux.HandleFunc("GET /api/governance/v1/agreements/statistics", s.handleAgreementStatistics)

	s.mux.HandleFunc("POST /api/governance/v1/voting/sessions", s.handleCreateVotingSession)
	s.mux.HandleFunc("POST /api/governance/v1/voting/sessions/{session_id}/open", s.handleOpenVotingSession)
	s.mux.HandleFunc("POST /api/governance/v1/voting/sessions/{session_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/governance/v1/voting/sessions/{session_id}/close", s.handleCloseVotingSession)
	s.mux.HandleFunc("POST /api/governance/v1/voting/sessions/{session_id}/submit", s.handleSubmitVotingSession)
	s.mux.HandleFunc("GET /api/governance/v1/voting/sessions/{session_id}/breakdown", s.handleVotingBreakdown)
	s.mux.HandleFunc("GET /api/governance/v1/assemblies/{assembly_id}/voting-sessions", s.handleVotingSessionsByAssembly)

	s.mux.HandleFunc("POST /api/governance/v1/assemblies", s.handlePlanAssembly)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/agenda", s.handleAssemblyAgendaItem)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/convene", s.handleConveneAssembly)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/attendance", s.handleAssemblyAttendance)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/start-session", s.handleAssemblyStartSession)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/complete", s.handleCompleteAssembly)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/submit", s.handleSubmitAssembly)
	s.mux.HandleFunc("POST /api/governance/v1/assemblies/{assembly_id}/cancel", s.handleCancelAssembly)
	s.mux.HandleFunc("GET /api/governance/v1/assemblies/{assembly_id}/quorum", s.handleAssemblyQuorum)
	s.mux.HandleFunc("GET /api/governance/v1/assemblies/{assembly_id}", s.handleGetAssembly)
	s.mux.HandleFunc("GET /api/governance/v1/assemblies", s.handleListAssemblies)

	s.mux.HandleFunc("POST /api/governance/v1/meetings", s.handleScheduleMeeting)
	s.mux.HandleFunc("POST /api/governance/v1/meetings/{meeting_id}/start", s.handleStartMeeting)
	s.mux.HandleFunc("POST /api/governance/v1/meetings/{meeting_id}/attendees", s.handleMeetingAttendee)
	s.mux.HandleFunc("POST /api/governance/v1/meetings/{meeting_id}/agenda/{item_id}/decision", s.handleMeetingDecision)
	s.mux.HandleFunc("POST /api/governance/v1/meetings/{meeting_id}/complete", s.handleCompleteMeeting)
	s.mux.HandleFunc("POST /api/governance/v1/meetings/{meeting_id}/submit", s.handleSubmitMeeting)
	s.mux.HandleFunc("POST /api/governance/v1/meetings/{meeting_id}/cancel", s.handleCancelMeeting)
	s.mux.HandleFunc("GET /api/governance/v1/meetings/{meeting_id}", s.handleGetMeeting)
	s.mux.HandleFunc("GET /api/governance/v1/meetings", s.handleListMeetings)

	s.mux.HandleFunc("POST /api/governance/v1/schedules", s.handleGenerateSchedule)
	s.mux.HandleFunc("POST /api/governance/v1/schedules/{schedule_id}/entries", s.handleAddScheduleEntry)
	s.mux.HandleFunc("POST /api/governance/v1/schedules/{schedule_id}/submit", s.handleSubmitSchedule)
	s.mux.HandleFunc("GET /api/governance/v1/schedules/{schedule_id}", s.handleGetSchedule)
	s.mux.HandleFunc("GET /api/governance/v1/schedules", s.handleListSchedules)

	s.mux.HandleFunc("POST /api/governance/v1/polls", s.handleCreatePoll)
	s.mux.HandleFunc("POST /api/governance/v1/polls/{poll_id}/open", s.handleOpenPoll)
	s.mux.HandleFunc("POST /api/governance/v1/polls/{poll_id}/responses", s.handlePollResponse)
	s.mux.HandleFunc("POST /api/governance/v1/polls/{poll_id}/close", s.handleClosePoll)
	s.mux.HandleFunc("POST /api/governance/v1/polls/{poll_id}/cancel", s.handleCancelPoll)
	s.mux.HandleFunc("GET /api/governance/v1/polls/{poll_id}/results", s.handlePollResults)
	s.mux.HandleFunc("GET /api/governance/v1/polls/{poll_id}", s.handleGetPoll)
	s.mux.HandleFunc("GET /api/governance/v1/polls", s.handleListPolls)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
