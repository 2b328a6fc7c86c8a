/*
PURPOSE:
  High-level runner that orchestrates a prediction batch.
  Reads inputs -> resolves PBP references -> predicts every isolate -> writes outputs.

REQUIREMENTS:
  User-specified:
  - One output row per isolate, in input order.
  - Missing PBP entries degrade to NA with a warning.
  - Malformed headers and I/O failures abort with no partial output.

  Implementation-discovered:
  - Isolates are independent, so predictions run on a bounded worker pool.
  - Every run gets a uuid that tags logs and JSON output.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/config, internal/input, internal/matcher, internal/output

ERROR HANDLING:
  - Input/format errors are returned before any output file is created.
  - Output is committed only after every row is written.

USAGE:
  summary, err := engine.Run(ctx, cfg)

RELATED FILES:
  - internal/engine/predictor.go
*/

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/daryltucker/target2mic/internal/config"
	"github.com/daryltucker/target2mic/internal/input"
	"github.com/daryltucker/target2mic/internal/matcher"
	"github.com/daryltucker/target2mic/internal/model"
	"github.com/daryltucker/target2mic/internal/output"
)

// Summary describes a finished run.
type Summary struct {
	RunID      string
	Samples    int
	MissingPBP int
	Output     string
	JSONOutput string
}

// Run executes a full prediction batch.
func Run(ctx context.Context, cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	summary := &Summary{RunID: uuid.NewString(), Output: cfg.Output, JSONOutput: cfg.JSONOutput}
	log := output.Logger.With("run_id", summary.RunID)

	// 1. Inputs
	samples, err := input.ReadResistanceFile(cfg.ResFile)
	if err != nil {
		return nil, err
	}
	log.Info("Read resistance file", "path", cfg.ResFile, "samples", len(samples))

	var alleles map[string]string
	if cfg.PBPFile != "" {
		alleles, err = input.ReadPBPFile(cfg.PBPFile)
		if err != nil {
			return nil, err
		}
		log.Info("Read PBP file", "path", cfg.PBPFile, "entries", len(alleles))
		summary.MissingPBP = ResolvePBPReferences(samples, alleles, log)
	} else {
		log.Info("No PBP file given, PBP references set to NA")
		summary.MissingPBP = len(samples)
	}

	// 2. Prediction
	m, err := matcher.New(cfg.PatternCacheSize)
	if err != nil {
		return nil, err
	}
	records, err := PredictAll(ctx, NewPredictor(m, log), samples, cfg.Workers)
	if err != nil {
		return nil, err
	}
	summary.Samples = len(records)

	// 3. Outputs
	if err := writeOutputs(cfg, summary.RunID, records); err != nil {
		return nil, err
	}
	log.Info("Predictions written", "output", cfg.Output, "json_output", cfg.JSONOutput, "samples", len(records))

	return summary, nil
}

// ResolvePBPReferences sets each sample's PBP reference from the allele table
// and returns how many fell back to NA.
func ResolvePBPReferences(samples []model.Sample, alleles map[string]string, log *slog.Logger) int {
	missing := 0
	for i := range samples {
		field, ok := alleles[samples[i].ID]
		if !ok {
			log.Warn("Cannot find PBP allele for sample", "sample", samples[i].ID)
			samples[i].PBP = model.NoReference
			missing++
			continue
		}
		ref, ok := input.ExtractPBPReference(field)
		if !ok {
			log.Warn("Malformed PBP allele, using NA", "sample", samples[i].ID, "field", field)
			missing++
		}
		samples[i].PBP = ref
	}
	return missing
}

// PredictAll predicts every sample on up to workers goroutines.
// Records come back in sample order.
func PredictAll(ctx context.Context, p *Predictor, samples []model.Sample, workers int) ([]model.PredictionRecord, error) {
	records := make([]model.PredictionRecord, len(samples))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, s := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = p.Predict(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

type recordWriter interface {
	Write(model.PredictionRecord) error
	Commit() error
	Close() error
}

func writeOutputs(cfg *config.Config, runID string, records []model.PredictionRecord) error {
	var writers []recordWriter

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", cfg.Output, err)
	}
	csvWriter, err := output.NewCSVWriter(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to init prediction writer at %s: %w", cfg.Output, err)
	}
	defer csvWriter.Close()
	writers = append(writers, csvWriter)

	if cfg.JSONOutput != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.JSONOutput), 0755); err != nil {
			return fmt.Errorf("failed to create output directory for %s: %w", cfg.JSONOutput, err)
		}
		jsonWriter, err := output.NewJSONWriter(cfg.JSONOutput, runID)
		if err != nil {
			return fmt.Errorf("failed to init JSON writer at %s: %w", cfg.JSONOutput, err)
		}
		defer jsonWriter.Close()
		writers = append(writers, jsonWriter)
	}

	for _, rec := range records {
		for _, w := range writers {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	for _, w := range writers {
		if err := w.Commit(); err != nil {
			return err
		}
	}
	return nil
}
