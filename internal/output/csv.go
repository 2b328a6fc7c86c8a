/*
PURPOSE:
  Writes MIC predictions to a tab-delimited file, one row per isolate.

REQUIREMENTS:
  User-specified:
  - Header: ID, PBP, TET, EC, FQ, OTHER.
  - Within a category, components are comma-joined; categories are tab-separated.
  - No partial output on failure.

  Implementation-discovered:
  - Rows are written to a temp file beside the target and renamed on Commit.
  - Close without Commit discards the temp file.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.PredictionRecord

ERROR HANDLING:
  - Returns error on file creation, write or rename failure.

IMPLEMENTATION RULES:
  - Use encoding/csv with a tab delimiter.
  - Mutex so the runner may write from several goroutines.

USAGE:
  w, err := output.NewCSVWriter("mic_predictions.tsv")
  defer w.Close()
  w.Write(rec)
  w.Commit()

RELATED FILES:
  - internal/model/prediction.go
*/

package output

import (
	"encoding/csv"
	"fmt"
	"sync"

	"github.com/daryltucker/target2mic/internal/model"
)

// CSVWriter handles writing predictions to a delimited file.
type CSVWriter struct {
	out    *pendingFile
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter targeting path and writes the header.
// Nothing appears at path until Commit.
func NewCSVWriter(path string) (*CSVWriter, error) {
	out, err := createPending(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(out.file)
	w.Comma = '\t'

	if err := w.Write(model.OutputHeader); err != nil {
		out.discard()
		return nil, err
	}

	return &CSVWriter{
		out:    out,
		writer: w,
	}, nil
}

// Write writes a single prediction row.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.PredictionRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if err := cw.writer.Write(r.Row()); err != nil {
		return fmt.Errorf("failed to write row for %s: %w", r.SampleID, err)
	}
	return nil
}

// Commit flushes and moves the file into place.
func (cw *CSVWriter) Commit() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		cw.out.discard()
		return err
	}
	return cw.out.commit()
}

// Close discards the output unless it was committed.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	return cw.out.discard()
}
