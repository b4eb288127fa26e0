package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	memberrors "comunidad/contexts/governance/member-registry/domain/errors"
	memberhttp "comunidad/contexts/governance/member-registry/transport/http"
)

func writeMemberError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, memberhttp.ErrorResponse{Code: code, Message: message})
}

func writeMemberDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, memberrors.ErrInvalidMemberInput),
		errors.Is(err, memberrors.ErrDateOrder):
		writeMemberError(w, http.StatusBadRequest, "invalid_member_input", err.Error())
	case errors.Is(err, memberrors.ErrMemberNotFound):
		writeMemberError(w, http.StatusNotFound, "member_not_found", err.Error())
	case errors.Is(err, memberrors.ErrRoleConflict):
		writeMemberError(w, http.StatusConflict, "role_conflict", err.Error())
	case errors.Is(err, memberrors.ErrPropertyInactive):
		writeMemberError(w, http.StatusUnprocessableEntity, "property_inactive", err.Error())
	case errors.Is(err, memberrors.ErrMemberInactive):
		writeMemberError(w, http.StatusConflict, "member_inactive", err.Error())
	default:
		writeMemberError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberhttp.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMemberError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.members.Handler.CreateMemberHandler(r.Context(), req)
	if err != nil {
		writeMemberDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req memberhttp.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMemberError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.members.Handler.UpdateRoleHandler(r.Context(), r.PathValue("member_id"), req)
	if err != nil {
		writeMemberDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateMember(w http.ResponseWriter, r *http.Request) {
	resp, err := s.members.Handler.DeactivateHandler(r.Context(), r.PathValue("member_id"))
	if err != nil {
		writeMemberDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActiveMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.members.Handler.ActiveMembersHandler(r.Context())
	if err != nil {
		writeMemberDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMembersByRole(w http.ResponseWriter, r *http.Request) {
	resp, err := s.members.Handler.ByRoleHandler(r.Context(), r.PathValue("role"))
	if err != nil {
		writeMemberDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
