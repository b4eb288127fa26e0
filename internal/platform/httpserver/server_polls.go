package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pollerrors "comunidad/contexts/governance/poll-engine/domain/errors"
	pollhttp "comunidad/contexts/governance/poll-engine/transport/http"
)

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{Code: code, Message: message})
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrInvalidPollInput):
		writePollError(w, http.StatusBadRequest, "invalid_poll_input", err.Error())
	case errors.Is(err, pollerrors.ErrOptionsInsufficient):
		writePollError(w, http.StatusBadRequest, "options_insufficient", err.Error())
	case errors.Is(err, pollerrors.ErrOptionsDuplicate):
		writePollError(w, http.StatusBadRequest, "options_duplicate", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotFound):
		writePollError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrUnknownOption):
		writePollError(w, http.StatusNotFound, "unknown_option", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotOpen),
		errors.Is(err, pollerrors.ErrInvalidTransition),
		errors.Is(err, pollerrors.ErrTerminalState):
		writePollError(w, http.StatusConflict, "invalid_poll_state", err.Error())
	case errors.Is(err, pollerrors.ErrOutsideWindow):
		writePollError(w, http.StatusConflict, "outside_window", err.Error())
	case errors.Is(err, pollerrors.ErrAudienceMismatch):
		writePollError(w, http.StatusForbidden, "audience_mismatch", err.Error())
	case errors.Is(err, pollerrors.ErrDuplicateResponse):
		writePollError(w, http.StatusConflict, "duplicate_response", err.Error())
	case errors.Is(err, pollerrors.ErrAudienceUnresolvable):
		writePollError(w, http.StatusFailedDependency, "audience_unresolvable", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.CreatePollHandler(r.Context(), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleOpenPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.OpenPollHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollResponse(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.SubmitResponseHandler(r.Context(), r.PathValue("poll_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.ClosePollHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.CancelPollHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.PollResultsHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.GetPollHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPolls(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.ListPollsHandler(r.Context())
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
