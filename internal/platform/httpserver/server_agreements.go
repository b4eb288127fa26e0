package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	agreementerrors "comunidad/contexts/governance/agreement-tracker/domain/errors"
	agreementhttp "comunidad/contexts/governance/agreement-tracker/transport/http"
)

func writeAgreementError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, agreementhttp.ErrorResponse{Code: code, Message: message})
}

func writeAgreementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, agreementerrors.ErrInvalidAgreementInput),
		errors.Is(err, agreementerrors.ErrInvalidProgressInput),
		errors.Is(err, agreementerrors.ErrDateOrder):
		writeAgreementError(w, http.StatusBadRequest, "invalid_agreement_input", err.Error())
	case errors.Is(err, agreementerrors.ErrAgreementNotFound):
		writeAgreementError(w, http.StatusNotFound, "agreement_not_found", err.Error())
	case errors.Is(err, agreementerrors.ErrTerminalState):
		writeAgreementError(w, http.StatusConflict, "terminal_state", err.Error())
	default:
		writeAgreementError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateAgreement(w http.ResponseWriter, r *http.Request) {
	var req agreementhttp.CreateAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAgreementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.agreements.Handler.CreateAgreementHandler(r.Context(), req)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAgreementProgress(w http.ResponseWriter, r *http.Request) {
	var req agreementhttp.ProgressUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAgreementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.agreements.Handler.AddProgressUpdateHandler(r.Context(), r.PathValue("agreement_id"), req)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgreementComplete(w http.ResponseWriter, r *http.Request) {
	var req agreementhttp.MarkCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAgreementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.agreements.Handler.MarkCompletedHandler(r.Context(), r.PathValue("agreement_id"), req)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgreementsPending(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeAgreementError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}
	resp, err := s.agreements.Handler.PendingHandler(r.Context(), r.URL.Query().Get("responsible_id"), limit)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgreementsOverdue(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeAgreementError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}
	resp, err := s.agreements.Handler.OverdueHandler(r.Context(), limit)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgreementsDueSoon(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", 7)
	if !ok {
		writeAgreementError(w, http.StatusBadRequest, "invalid_days", "days must be a non-negative integer")
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeAgreementError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}
	resp, err := s.agreements.Handler.DueSoonHandler(r.Context(), days, limit)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgreementStatistics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.agreements.Handler.StatisticsHandler(
		r.Context(),
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"),
	)
	if err != nil {
		writeAgreementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
