package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	scheduleerrors "comunidad/contexts/governance/meeting-scheduler/domain/errors"
	schedulehttp "comunidad/contexts/governance/meeting-scheduler/transport/http"
)

func writeScheduleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, schedulehttp.ErrorResponse{Code: code, Message: message})
}

func writeScheduleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduleerrors.ErrInvalidScheduleInput):
		writeScheduleError(w, http.StatusBadRequest, "invalid_schedule_input", err.Error())
	case errors.Is(err, scheduleerrors.ErrScheduleNotFound):
		writeScheduleError(w, http.StatusNotFound, "schedule_not_found", err.Error())
	case errors.Is(err, scheduleerrors.ErrDuplicateDate):
		writeScheduleError(w, http.StatusConflict, "duplicate_schedule_date", err.Error())
	case errors.Is(err, scheduleerrors.ErrDateOutsideYear):
		writeScheduleError(w, http.StatusBadRequest, "date_outside_year", err.Error())
	case errors.Is(err, scheduleerrors.ErrAlreadyApproved),
		errors.Is(err, scheduleerrors.ErrNotApproved):
		writeScheduleError(w, http.StatusConflict, "invalid_schedule_state", err.Error())
	default:
		writeScheduleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedulehttp.GenerateStandardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeScheduleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.schedules.Handler.GenerateStandardHandler(r.Context(), req)
	if err != nil {
		writeScheduleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAddScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req schedulehttp.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeScheduleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.schedules.Handler.AddEntryHandler(r.Context(), r.PathValue("schedule_id"), req)
	if err != nil {
		writeScheduleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitSchedule(w http.ResponseWriter, r *http.Request) {
	resp, err := s.schedules.Handler.SubmitScheduleHandler(r.Context(), r.PathValue("schedule_id"))
	if err != nil {
		writeScheduleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	resp, err := s.schedules.Handler.GetScheduleHandler(r.Context(), r.PathValue("schedule_id"))
	if err != nil {
		writeScheduleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	resp, err := s.schedules.Handler.ListSchedulesHandler(r.Context())
	if err != nil {
		writeScheduleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
