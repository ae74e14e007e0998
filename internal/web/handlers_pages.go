package web

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/web/templates"
)

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.AdminDashboard(r.Context())
	if err != nil {
		pageError(w, r, err)
		return
	}
	render(w, r, templates.AdminDashboard(d))
}

func (s *Server) handleFacultyDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.FacultyDashboard(r.Context())
	if err != nil {
		pageError(w, r, err)
		return
	}
	render(w, r, templates.FacultyDashboard(d))
}

func (s *Server) handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.StudentDashboard(r.Context())
	if err != nil {
		pageError(w, r, err)
		return
	}
	render(w, r, templates.StudentDashboard(d))
}

// pageError sends users without the right role back to the login page.
func pageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrUnauthenticated) || errors.Is(err, core.ErrForbidden) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	msg := core.MapError(err)
	logging.FromContext(r.Context()).Error("page error", "path", r.URL.Path, "error", err, "code", msg.Code)
	http.Error(w, msg.Message+" ("+msg.Code+")", http.StatusInternalServerError)
}

func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error", "path", r.URL.Path, "error", err)
	}
}
