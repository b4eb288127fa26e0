package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	votinghttp "comunidad/contexts/governance/voting-engine/transport/http"
)

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Code: code, Message: message})
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidSessionInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_session_input", err.Error())
	case errors.Is(err, votingerrors.ErrSessionNotFound),
		errors.Is(err, votingerrors.ErrVoteNotFound):
		writeVotingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, votingerrors.ErrSessionNotOpen),
		errors.Is(err, votingerrors.ErrSessionNotClosed),
		errors.Is(err, votingerrors.ErrNotSubmittable),
		errors.Is(err, votingerrors.ErrTerminalState):
		writeVotingError(w, http.StatusConflict, "invalid_session_state", err.Error())
	case errors.Is(err, votingerrors.ErrDoubleVote):
		writeVotingError(w, http.StatusConflict, "double_vote", err.Error())
	case errors.Is(err, votingerrors.ErrNotEligible):
		writeVotingError(w, http.StatusForbidden, "not_eligible", err.Error())
	case errors.Is(err, votingerrors.ErrIntegrityBroken):
		writeVotingError(w, http.StatusUnprocessableEntity, "integrity_broken", err.Error())
	case errors.Is(err, votingerrors.ErrAssemblyUnavailable):
		writeVotingError(w, http.StatusFailedDependency, "assembly_unavailable", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateVotingSession(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CreateSessionHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleOpenVotingSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.OpenSessionHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), r.PathValue("session_id"), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	if s.registry != nil {
		s.registry.VotesCast.Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseVotingSession(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CloseSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CloseSessionHandler(r.Context(), r.PathValue("session_id"), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitVotingSession(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.SubmitSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.SubmitSessionHandler(r.Context(), r.PathValue("session_id"), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingBreakdown(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.BreakdownHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingSessionsByAssembly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.SessionsByAssemblyHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
