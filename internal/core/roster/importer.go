package roster

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/portal/internal/models"
)

// Phase is a step of the import state machine. Transitions only move forward.
type Phase string

const (
	PhaseParsingFile       Phase = "parsing_file"
	PhaseResolvingColumns  Phase = "resolving_columns"
	PhaseValidatingColumns Phase = "validating_columns"
	PhaseProcessingRows    Phase = "processing_rows"
	PhaseCommitting        Phase = "committing"
	PhaseDone              Phase = "done"
)

// ContextCheckInterval is how many rows are processed between cancellation checks.
var ContextCheckInterval = 100

// Store opens the transaction an import writes through.
type Store interface {
	BeginImport(ctx context.Context) (Batch, error)
}

// Batch is one open import transaction.
//
// FindByUsername sees rows inserted earlier in the same batch and returns
// nil, nil when the username is free. Insert must leave the batch usable when
// it fails. Rollback after Commit is a no-op.
type Batch interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, u models.User) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PhaseFunc observes state transitions, for logging and metrics.
type PhaseFunc func(kind Kind, phase Phase)

// Importer runs roster imports against a Store.
type Importer struct {
	store   Store
	onPhase PhaseFunc
}

// Option configures an Importer.
type Option func(*Importer)

// WithPhaseFunc registers an observer for phase transitions.
func WithPhaseFunc(fn PhaseFunc) Option {
	return func(im *Importer) { im.onPhase = fn }
}

// NewImporter creates an Importer writing through store.
func NewImporter(store Store, opts ...Option) *Importer {
	im := &Importer{store: store}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

func (im *Importer) enter(kind Kind, p Phase) {
	if im.onPhase != nil {
		im.onPhase(kind, p)
	}
}

// Import provisions one user per data row.
//
// A *RejectError is returned when required columns are missing; nothing is
// written in that case. Errors opening or committing the batch are returned
// wrapped and leave nothing behind. Every other problem is recorded per row
// in the Report.
func (im *Importer) Import(ctx context.Context, kind Kind, headers []string, rows [][]string) (*Report, error) {
	schema := SchemaFor(kind)

	im.enter(kind, PhaseResolvingColumns)
	res := Resolve(headers, schema)

	im.enter(kind, PhaseValidatingColumns)
	if err := res.Err(); err != nil {
		return nil, err
	}

	im.enter(kind, PhaseProcessingRows)
	batch, err := im.store.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = batch.Rollback(ctx) }()

	report := &Report{Kind: kind}
	for i, row := range rows {
		if i%ContextCheckInterval == 0 && ctx.Err() != nil {
			return nil, fmt.Errorf("import interrupted at row %d: %w", i+2, ctx.Err())
		}
		if isEmptyRow(row) {
			continue
		}
		report.add(im.importRow(ctx, batch, schema, res, i, row))
	}

	im.enter(kind, PhaseCommitting)
	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	im.enter(kind, PhaseDone)
	return report, nil
}

func (im *Importer) importRow(ctx context.Context, batch Batch, schema Schema, res Resolution, index int, row []string) RowResult {
	user, failed := Normalize(schema, res, index, row)
	if failed != nil {
		return *failed
	}

	existing, err := batch.FindByUsername(ctx, user.Username)
	if err != nil {
		return RowResult{Index: index, Outcome: PersistenceError, Username: user.Username, Err: err}
	}
	if existing != nil {
		return RowResult{Index: index, Outcome: Duplicate, Username: user.Username}
	}

	id, err := batch.Insert(ctx, user)
	if err != nil {
		return RowResult{Index: index, Outcome: PersistenceError, Username: user.Username, Err: err}
	}
	return RowResult{Index: index, Outcome: Inserted, Username: user.Username, UserID: id}
}
