package web

import (
	"net/http"

	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/models"
)

// ============================================================================
// Clubs and events
// ============================================================================

// handleListClubsEvents returns a bare JSON array; it is public.
func (s *Server) handleListClubsEvents(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListClubsEvents(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.ClubEvent{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddClubEvent(w http.ResponseWriter, r *http.Request) {
	var in core.ClubEventInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.service.AddClubEvent(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed(core.AddedMessage(in.Type)))
}

func (s *Server) handleUpdateClubEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in core.ClubEventInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.UpdateClubEvent(r.Context(), id, in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Updated successfully"))
}

func (s *Server) handleDeleteClubEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeleteClubEvent(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Deleted successfully"))
}

// ============================================================================
// Permissions and attendance
// ============================================================================

func (s *Server) handleAddPermission(w http.ResponseWriter, r *http.Request) {
	var in core.PermissionRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.service.RequestPermission(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Permission request submitted successfully"))
}

func (s *Server) handleUpdatePermissionStatus(w http.ResponseWriter, r *http.Request) {
	var in core.PermissionReview
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.ReviewPermission(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Permission updated successfully"))
}

type attendanceRequest struct {
	Attendance map[string]models.AttendanceStatus `json:"attendance"`
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var in attendanceRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.service.MarkAttendance(r.Context(), in.Attendance); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Attendance marked successfully"))
}

// ============================================================================
// Operations
// ============================================================================

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
