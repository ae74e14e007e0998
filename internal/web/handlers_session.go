package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/portal/internal/auth"
	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/web/templates"
)

const flashInvalidCredentials = "invalid"

type loginRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type loginResponse struct {
	Response
	Redirect string `json:"redirect,omitempty"`
}

func dashboardPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleFaculty:
		return "/faculty/dashboard"
	default:
		return "/student/dashboard"
	}
}

// handleLoginPage renders the sign-in form, or sends a signed-in user to
// their dashboard.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if p, ok := core.PrincipalFromContext(r.Context()); ok {
		http.Redirect(w, r, dashboardPath(p.Role), http.StatusSeeOther)
		return
	}

	var flash string
	if r.URL.Query().Get("error") == flashInvalidCredentials {
		flash = core.MapError(core.ErrInvalidCredentials).Message
	}
	render(w, r, templates.Login(flash))
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?error="+flashInvalidCredentials, http.StatusSeeOther)
		return
	}

	p, err := s.login(w, r, loginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		Role:     models.Role(r.PostForm.Get("role")),
	})
	if errors.Is(err, core.ErrInvalidCredentials) {
		http.Redirect(w, r, "/?error="+flashInvalidCredentials, http.StatusSeeOther)
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	http.Redirect(w, r, dashboardPath(p.Role), http.StatusSeeOther)
}

func (s *Server) handleLoginJSON(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	p, err := s.login(w, r, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Response: succeed("Login successful"),
		Redirect: dashboardPath(p.Role),
	})
}

// login checks the credentials and sets the session cookie.
func (s *Server) login(w http.ResponseWriter, r *http.Request, req loginRequest) (core.Principal, error) {
	p, err := s.service.Login(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return core.Principal{}, err
	}

	token, err := s.sessions.Issue(p)
	if err != nil {
		return core.Principal{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return p, nil
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
