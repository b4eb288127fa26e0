package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	meetingerrors "comunidad/contexts/governance/committee-meeting/domain/errors"
	meetinghttp "comunidad/contexts/governance/committee-meeting/transport/http"
)

func writeMeetingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, meetinghttp.ErrorResponse{Code: code, Message: message})
}

func writeMeetingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, meetingerrors.ErrInvalidMeetingInput):
		writeMeetingError(w, http.StatusBadRequest, "invalid_meeting_input", err.Error())
	case errors.Is(err, meetingerrors.ErrMeetingNotFound):
		writeMeetingError(w, http.StatusNotFound, "meeting_not_found", err.Error())
	case errors.Is(err, meetingerrors.ErrAgendaItemNotFound):
		writeMeetingError(w, http.StatusNotFound, "agenda_item_not_found", err.Error())
	case errors.Is(err, meetingerrors.ErrInvalidTransition),
		errors.Is(err, meetingerrors.ErrTerminalState):
		writeMeetingError(w, http.StatusConflict, "invalid_meeting_state", err.Error())
	case errors.Is(err, meetingerrors.ErrCriticalUndecided):
		writeMeetingError(w, http.StatusConflict, "critical_undecided", err.Error())
	case errors.Is(err, meetingerrors.ErrNoAttendees):
		writeMeetingError(w, http.StatusConflict, "no_attendees", err.Error())
	default:
		writeMeetingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetinghttp.ScheduleMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeetingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.meetings.Handler.ScheduleMeetingHandler(r.Context(), req)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleStartMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := s.meetings.Handler.StartMeetingHandler(r.Context(), r.PathValue("meeting_id"))
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMeetingAttendee(w http.ResponseWriter, r *http.Request) {
	var req meetinghttp.RegisterAttendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeetingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.meetings.Handler.RegisterAttendeeHandler(r.Context(), r.PathValue("meeting_id"), req)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMeetingDecision(w http.ResponseWriter, r *http.Request) {
	var req meetinghttp.RecordDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeetingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.meetings.Handler.RecordDecisionHandler(
		r.Context(),
		r.PathValue("meeting_id"),
		r.PathValue("item_id"),
		req,
	)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := s.meetings.Handler.CompleteMeetingHandler(r.Context(), r.PathValue("meeting_id"))
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := s.meetings.Handler.SubmitMeetingHandler(r.Context(), r.PathValue("meeting_id"))
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := s.meetings.Handler.CancelMeetingHandler(r.Context(), r.PathValue("meeting_id"))
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := s.meetings.Handler.GetMeetingHandler(r.Context(), r.PathValue("meeting_id"))
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.meetings.Handler.ListMeetingsHandler(r.Context())
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
