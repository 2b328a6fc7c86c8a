/*
PURPOSE:
  Writes MIC predictions to a JSON Lines file (NDJSON).
  Optimized for machine parsing by downstream pipeline steps.

REQUIREMENTS:
  Implementation-discovered:
  - JSON Lines streams well and diffs cleanly between runs.
  - Each line carries the run id so merged outputs stay traceable.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.PredictionRecord

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("predictions.jsonl", runID)
  defer w.Close()
  w.Write(rec)
  w.Commit()

RELATED FILES:
  - internal/model/prediction.go
*/

package output

import (
	"encoding/json"
	"sync"

	"github.com/daryltucker/target2mic/internal/model"
)

// JSONCategory is one category in a JSON line.
type JSONCategory struct {
	Evidence  string                              `json:"evidence,omitempty"`
	Drugs     map[model.Drug]model.Interpretation `json:"drugs"`
	Inducible model.InducibleStatus               `json:"ery_cli,omitempty"`
}

// JSONRecord is one isolate in the JSON Lines output.
type JSONRecord struct {
	RunID      string                          `json:"run_id"`
	ID         string                          `json:"id"`
	Categories map[model.Category]JSONCategory `json:"categories"`
}

// NewJSONRecord converts a prediction record.
func NewJSONRecord(runID string, r model.PredictionRecord) JSONRecord {
	out := JSONRecord{
		RunID:      runID,
		ID:         r.SampleID,
		Categories: make(map[model.Category]JSONCategory, len(r.Categories)),
	}
	for _, c := range r.Categories {
		jc := JSONCategory{
			Drugs:     make(map[model.Drug]model.Interpretation, len(c.Calls)),
			Inducible: c.Inducible,
		}
		if c.Category != model.CategoryPBP {
			jc.Evidence = c.Evidence
		}
		for _, call := range c.Calls {
			jc.Drugs[call.Drug] = call.Interpretation
		}
		out.Categories[c.Category] = jc
	}
	return out
}

// JSONWriter handles writing predictions to a JSON Lines file.
type JSONWriter struct {
	runID   string
	out     *pendingFile
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter targeting path.
func NewJSONWriter(path, runID string) (*JSONWriter, error) {
	out, err := createPending(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		runID:   runID,
		out:     out,
		encoder: json.NewEncoder(out.file),
	}, nil
}

// Write writes a single prediction as a JSON line.
func (jw *JSONWriter) Write(r model.PredictionRecord) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(NewJSONRecord(jw.runID, r))
}

// Commit moves the file into place.
func (jw *JSONWriter) Commit() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.out.commit()
}

// Close discards the output unless it was committed.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.out.discard()
}
