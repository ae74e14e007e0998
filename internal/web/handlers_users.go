package web

import (
	"net/http"

	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/models"
)

func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	var in core.NewStudent
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.service.AddStudent(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Student added successfully"))
}

func (s *Server) handleAddFaculty(w http.ResponseWriter, r *http.Request) {
	var in core.NewFaculty
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.service.AddFaculty(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Faculty added successfully"))
}

type userResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	u, err := s.service.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: u})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in core.UserUpdate
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.UpdateUser(r.Context(), id, in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("User updated successfully"))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.DeleteUser(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("User deleted successfully"))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in core.PasswordChange
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.ChangePassword(r.Context(), in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed("Password changed successfully"))
}
