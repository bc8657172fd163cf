package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/crmimport/internal/logging"
)

// ImporterConfig holds the tunables of an Importer.
type ImporterConfig struct {
	BatchSize   int           // contacts per CreateMany call, capped at MaxBatchSize
	MaxFileSize int64         // bytes; zero disables the limit
	Timeout     time.Duration // whole-import deadline; zero disables it
}

// ImportResult summarizes one import run. It is built once and not changed
// after Import returns.
type ImportResult struct {
	ID             string            `json:"id"`
	FileName       string            `json:"fileName,omitempty"`
	TotalRows      int               `json:"totalRows"`
	Imported       int               `json:"imported"`
	Rejected       int               `json:"rejected"`
	NotSubmitted   int               `json:"notSubmitted"`
	Batches        int               `json:"batches"`
	Errors         []ValidationError `json:"errors"`
	UnknownHeaders []string          `json:"unknownHeaders,omitempty"`
	Created        []Contact         `json:"created,omitempty"`
	BatchError     string            `json:"batchError,omitempty"`
	Duration       time.Duration     `json:"durationNs"`
}

// Failed returns the number of rows that were not imported.
func (r *ImportResult) Failed() int {
	return r.Rejected + r.NotSubmitted
}

// Summary returns the post-import message shown to users.
func (r *ImportResult) Summary() string {
	msg := fmt.Sprintf("Imported %d contacts, %d failed", r.Imported, r.Failed())
	if r.NotSubmitted > 0 {
		msg += fmt.Sprintf(" (%d not submitted after a batch error)", r.NotSubmitted)
	}
	return msg + "."
}

// PreviewRow is one candidate row as it would be imported.
type PreviewRow struct {
	Row     int              `json:"row"`
	Contact CandidateContact `json:"contact"`
	Errors  []string         `json:"errors"`
}

// Preview is the read-only analysis of a file shown before committing.
type Preview struct {
	TotalRows      int          `json:"totalRows"`
	ValidRows      int          `json:"validRows"`
	ErrorRows      int          `json:"errorRows"`
	Rows           []PreviewRow `json:"rows"`
	UnknownHeaders []string     `json:"unknownHeaders,omitempty"`
}

// Importer runs the CSV import pipeline against a ContactCreator and keeps
// the injected Collection in step with what was persisted.
type Importer struct {
	creator  ContactCreator
	contacts *Collection
	guard    *ImportGuard
	cfg      ImporterConfig
}

// NewImporter returns an Importer. A nil collection gets a fresh one.
func NewImporter(creator ContactCreator, contacts *Collection, cfg ImporterConfig) *Importer {
	if contacts == nil {
		contacts = NewCollection()
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > MaxBatchSize {
		cfg.BatchSize = MaxBatchSize
	}
	return &Importer{
		creator:  creator,
		contacts: contacts,
		guard:    NewImportGuard(1),
		cfg:      cfg,
	}
}

// Contacts returns the collection the importer appends to.
func (im *Importer) Contacts() *Collection {
	return im.contacts
}

// Guard returns the guard serializing imports.
func (im *Importer) Guard() *ImportGuard {
	return im.guard
}

// Import parses, validates and submits the CSV in r. File-level problems
// return an error and no result. A batch failure returns both the partial
// result and a *BatchError; the collection is appended to only when every
// batch succeeds. Only one import runs at a time; a concurrent call fails
// with ErrImportInProgress.
func (im *Importer) Import(ctx context.Context, fileName string, r io.Reader) (*ImportResult, error) {
	if !im.guard.TryAcquire() {
		return nil, ErrImportInProgress
	}
	defer im.guard.Release()

	// A started import is not canceled with its caller; only the configured
	// timeout bounds it.
	ctx = context.WithoutCancel(ctx)
	if im.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := &ImportResult{ID: uuid.NewString(), FileName: fileName}
	ctx = logging.WithImportID(ctx, result.ID)
	logger := logging.WithFields(ctx, "file", fileName)
	logger.Info("import started")

	a, err := im.readAndAnalyze(r)
	if err != nil {
		logger.Warn("import aborted", "error", err)
		return nil, err
	}
	if len(a.unknown) > 0 {
		logger.Warn("ignoring unrecognized headers", "headers", a.unknown)
	}

	result.TotalRows = len(a.rows)
	result.Errors = a.errors
	result.Rejected = len(a.errors)
	result.UnknownHeaders = a.unknown

	submitter := NewSubmitter(im.creator, im.cfg.BatchSize)
	sr, err := submitter.Submit(ctx, a.valid)

	result.Created = sr.Created
	result.Imported = len(sr.Created)
	result.Batches = sr.Batches

	if err != nil {
		var be *BatchError
		if errors.As(err, &be) {
			result.NotSubmitted = be.Remaining
		}
		result.BatchError = err.Error()
		result.Duration = time.Since(start)
		logger.Error("import failed",
			"imported", result.Imported,
			"not_submitted", result.NotSubmitted,
			"error", err,
		)
		return result, err
	}

	im.contacts.Append(sr.Created)
	result.Duration = time.Since(start)
	logger.Info("import completed",
		"rows", result.TotalRows,
		"imported", result.Imported,
		"rejected", result.Rejected,
		"batches", result.Batches,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// Preview parses and validates the CSV in r without submitting anything.
func (im *Importer) Preview(ctx context.Context, r io.Reader) (*Preview, error) {
	a, err := im.readAndAnalyze(r)
	if err != nil {
		return nil, err
	}

	p := &Preview{
		TotalRows:      len(a.rows),
		ValidRows:      len(a.valid),
		ErrorRows:      len(a.errors),
		Rows:           a.rows,
		UnknownHeaders: a.unknown,
	}
	logging.FromContext(ctx).Debug("preview built", "rows", p.TotalRows, "errors", p.ErrorRows)
	return p, nil
}

// analysis is the outcome of the parse, map and validate steps.
type analysis struct {
	rows    []PreviewRow
	valid   []CandidateContact
	errors  []ValidationError
	unknown []string
}

func (im *Importer) readAndAnalyze(r io.Reader) (*analysis, error) {
	data, err := ReadLimited(r, im.cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}
	rows, err := ParseCSVBytes(data)
	if err != nil {
		return nil, err
	}
	return analyzeRows(rows)
}

// analyzeRows maps and validates parsed rows. The first row is the header.
func analyzeRows(rows []RawRow) (*analysis, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	mapper := NewRowMapper(rows[0])
	data := rows[1:]
	a := &analysis{
		rows:    make([]PreviewRow, 0, len(data)),
		errors:  []ValidationError{},
		unknown: mapper.UnknownHeaders(),
	}

	for i, raw := range data {
		rowNum := i + 1
		c := mapper.Map(raw)
		verr := ValidateContact(c, rowNum)

		a.rows = append(a.rows, PreviewRow{Row: rowNum, Contact: c, Errors: verr.Messages})
		if verr.Valid() {
			a.valid = append(a.valid, c)
		} else {
			a.errors = append(a.errors, verr)
		}
	}

	return a, nil
}
