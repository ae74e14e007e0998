package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/core/roster"
	"github.com/JonMunkholm/portal/internal/models"
)

func (s *Server) handleUploadStudents(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, roster.KindStudent)
}

func (s *Server) handleUploadFaculty(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, roster.KindFaculty)
}

// handleUpload imports the spreadsheet in the "file" form field. The file is
// streamed to the importer; nothing is kept after the request.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, kind roster.Kind) {
	// Role is checked before the body is read.
	if _, err := core.Authorize(r.Context(), models.RoleAdmin); err != nil {
		respondError(w, r, err)
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			respondError(w, r, errFileTooLarge)
			return
		}
		respondError(w, r, errNoFile)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file part sent with an empty filename arrives as a plain value.
		if _, sent := r.MultipartForm.Value["file"]; sent {
			respondError(w, r, errNoFileName)
			return
		}
		respondError(w, r, errNoFile)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, r, errNoFileName)
		return
	}

	report, err := s.service.ImportRoster(r.Context(), kind, header.Filename, file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, succeed(report.Message()))
}

func (s *Server) handleUploadTemplate(w http.ResponseWriter, r *http.Request) {
	if _, err := core.Authorize(r.Context(), models.RoleAdmin); err != nil {
		respondError(w, r, err)
		return
	}

	kind, err := roster.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, r, &core.PublicError{Msg: "Invalid roster kind", Code: "VAL006", Err: err})
		return
	}

	data, name, err := core.RosterTemplate(kind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

type importStatusResponse struct {
	Response
	Status core.ImportLimiterStatus `json:"status"`
}

func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	if _, err := core.Authorize(r.Context(), models.RoleAdmin); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importStatusResponse{
		Response: Response{Success: true},
		Status:   s.service.ImportLimiterStatus(),
	})
}
