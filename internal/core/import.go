package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/portal/internal/core/roster"
	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/metrics"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/observability"
	"github.com/JonMunkholm/portal/internal/spreadsheet"
)

// TemplateSheet names the worksheet of downloadable roster templates.
const TemplateSheet = "Roster"

// ImportRoster provisions one user per row of the uploaded spreadsheet.
//
// The whole import is refused with a *roster.RejectError when the file
// cannot be read or a required column is missing. When the batch cannot be
// opened or committed the returned *PublicError reads
// "Error processing file: ..." and nothing is written. Row failures are only
// reported in the returned Report.
func (s *Service) ImportRoster(ctx context.Context, kind roster.Kind, filename string, r io.Reader) (*roster.Report, error) {
	admin, err := requireRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log := logging.WithFields(ctx,
		"import_id", uuid.NewString(),
		"kind", string(kind),
		"file", filename,
		"admin", admin.Username,
	)
	log.Debug("import phase", "phase", roster.PhaseParsingFile)

	if !spreadsheet.Allowed(filename) {
		metrics.ObserveImport(string(kind), "rejected", time.Since(start))
		return nil, roster.NewFileRejected("Invalid file type", spreadsheet.ErrUnsupportedType)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		log.Warn("import refused", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	if s.importTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.importTimeout)
		defer cancel()
	}

	sheet, err := spreadsheet.Read(filename, r)
	if err != nil {
		log.Info("import rejected", "reason", roster.FileRejected, "error", err)
		metrics.ObserveImport(string(kind), "rejected", time.Since(start))
		return nil, roster.NewFileRejected("Error processing file: "+err.Error(), err)
	}

	importer := roster.NewImporter(s.store, roster.WithPhaseFunc(func(_ roster.Kind, p roster.Phase) {
		log.Debug("import phase", "phase", p)
	}))

	report, err := importer.Import(ctx, kind, sheet.Headers, sheet.Rows)
	if err != nil {
		var rejected *roster.RejectError
		if errors.As(err, &rejected) {
			log.Info("import rejected", "reason", rejected.Reason, "missing", rejected.Missing)
			metrics.ObserveImport(string(kind), "rejected", time.Since(start))
			return nil, err
		}

		log.Error("import failed", "error", err)
		metrics.ObserveImport(string(kind), "error", time.Since(start))
		observability.CaptureErrWithTags(ctx, err, map[string]string{"kind": string(kind)})

		msg := MapError(err)
		return nil, &PublicError{
			Msg:  fmt.Sprintf("Error processing file: %s", msg.Message),
			Code: msg.Code,
			Err:  err,
		}
	}

	for outcome, n := range report.Counts() {
		metrics.AddImportRows(string(kind), outcome.String(), n)
	}
	metrics.ObserveImport(string(kind), "ok", time.Since(start))
	log.Info("import finished",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// RosterTemplate renders an empty xlsx whose header row holds the preferred
// header of every required column. It returns the file and a download name.
func RosterTemplate(kind roster.Kind) ([]byte, string, error) {
	data, err := spreadsheet.Encode(TemplateSheet, roster.SchemaFor(kind).Headers(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("render %s template: %w", kind, err)
	}
	return data, fmt.Sprintf("%s_template.xlsx", kind), nil
}
