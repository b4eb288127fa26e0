package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	assemblyerrors "comunidad/contexts/governance/assembly-lifecycle/domain/errors"
	assemblyhttp "comunidad/contexts/governance/assembly-lifecycle/transport/http"
)

func writeAssemblyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, assemblyhttp.ErrorResponse{Code: code, Message: message})
}

func writeAssemblyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assemblyerrors.ErrInvalidAssemblyInput):
		writeAssemblyError(w, http.StatusBadRequest, "invalid_assembly_input", err.Error())
	case errors.Is(err, assemblyerrors.ErrAssemblyNotFound):
		writeAssemblyError(w, http.StatusNotFound, "assembly_not_found", err.Error())
	case errors.Is(err, assemblyerrors.ErrUnknownProperty):
		writeAssemblyError(w, http.StatusNotFound, "unknown_property", err.Error())
	case errors.Is(err, assemblyerrors.ErrInvalidTransition),
		errors.Is(err, assemblyerrors.ErrTerminalState):
		writeAssemblyError(w, http.StatusConflict, "invalid_assembly_state", err.Error())
	case errors.Is(err, assemblyerrors.ErrProxyRequired):
		writeAssemblyError(w, http.StatusBadRequest, "proxy_required", err.Error())
	case errors.Is(err, assemblyerrors.ErrQuorumNotReached):
		writeAssemblyError(w, http.StatusConflict, "quorum_not_reached", err.Error())
	case errors.Is(err, assemblyerrors.ErrAgendaNotReady):
		writeAssemblyError(w, http.StatusConflict, "agenda_not_ready", err.Error())
	case errors.Is(err, assemblyerrors.ErrNotOnAssemblyDay):
		writeAssemblyError(w, http.StatusConflict, "not_on_assembly_day", err.Error())
	default:
		writeAssemblyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handlePlanAssembly(w http.ResponseWriter, r *http.Request) {
	var req assemblyhttp.PlanAssemblyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssemblyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.assemblies.Handler.PlanAssemblyHandler(r.Context(), req)
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAssemblyAgendaItem(w http.ResponseWriter, r *http.Request) {
	var req assemblyhttp.AgendaItemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssemblyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.assemblies.Handler.AddAgendaItemHandler(r.Context(), r.PathValue("assembly_id"), req)
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConveneAssembly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.ConveneHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssemblyAttendance(w http.ResponseWriter, r *http.Request) {
	var req assemblyhttp.RegisterAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssemblyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.assemblies.Handler.RegisterAttendanceHandler(r.Context(), r.PathValue("assembly_id"), req)
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssemblyStartSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.StartSessionHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteAssembly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.CompleteHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitAssembly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.SubmitHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelAssembly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.CancelHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssemblyQuorum(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.QuorumHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAssembly(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.GetHandler(r.Context(), r.PathValue("assembly_id"))
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAssemblies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assemblies.Handler.ListHandler(r.Context())
	if err != nil {
		writeAssemblyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
