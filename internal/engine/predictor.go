/*
PURPOSE:
  Prediction orchestrator. Runs the five category rule engines for one
  isolate and assembles a PredictionRecord.

REQUIREMENTS:
  User-specified:
  - Categories run in the fixed order PBP, TET, EC, FQ, OTHER.
  - Each engine starts from freshly initialised defaults.

  Implementation-discovered:
  - Nothing per-isolate lives on the Predictor; it only holds the shared
    matcher and logger, so one Predictor serves any number of goroutines.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, internal/cli
  - Uses: internal/matcher, internal/model, internal/output

ERROR HANDLING:
  - None. Unexpected tokens fall through to defaults or Flag.

USAGE:
  p := engine.NewPredictor(nil, nil)
  rec := p.Predict(sample)

RELATED FILES:
  - internal/engine/pbp.go, macrolide.go, fluoroquinolone.go, tetracycline.go, other.go
*/

package engine

import (
	"log/slog"

	"github.com/daryltucker/target2mic/internal/matcher"
	"github.com/daryltucker/target2mic/internal/model"
	"github.com/daryltucker/target2mic/internal/output"
)

// Predictor turns resistance evidence into MIC interpretations.
type Predictor struct {
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// NewPredictor creates a Predictor. Nil arguments select the defaults.
func NewPredictor(m *matcher.Matcher, logger *slog.Logger) *Predictor {
	if m == nil {
		m = matcher.Default()
	}
	if logger == nil {
		logger = output.Logger
	}
	return &Predictor{matcher: m, logger: logger}
}

type categoryRule func(p *Predictor, s model.Sample, log *slog.Logger) model.CategoryPrediction

// rules is ordered as model.OutputOrder.
var rules = []struct {
	category model.Category
	rule     categoryRule
}{
	{model.CategoryPBP, func(p *Predictor, s model.Sample, log *slog.Logger) model.CategoryPrediction {
		return p.predictPBP(s.PBP, log)
	}},
	{model.CategoryTET, func(p *Predictor, s model.Sample, log *slog.Logger) model.CategoryPrediction {
		return p.predictTET(s.Profile.Evidence(model.CategoryTET), log)
	}},
	{model.CategoryEC, func(p *Predictor, s model.Sample, log *slog.Logger) model.CategoryPrediction {
		return p.predictEC(s.Profile.Evidence(model.CategoryEC), log)
	}},
	{model.CategoryFQ, func(p *Predictor, s model.Sample, log *slog.Logger) model.CategoryPrediction {
		return p.predictFQ(s.Profile.Evidence(model.CategoryFQ), log)
	}},
	{model.CategoryOTHER, func(p *Predictor, s model.Sample, log *slog.Logger) model.CategoryPrediction {
		return p.predictOTHER(s.Profile.Evidence(model.CategoryOTHER), log)
	}},
}

// Predict runs every category engine against one isolate.
func (p *Predictor) Predict(s model.Sample) model.PredictionRecord {
	rec := model.PredictionRecord{
		SampleID:   s.ID,
		Categories: make([]model.CategoryPrediction, 0, len(rules)),
	}
	for _, r := range rules {
		log := p.logger.With("sample", s.ID, "category", r.category)
		pred := r.rule(p, s, log)
		log.Debug("Category predicted", "result", pred.String())
		rec.Categories = append(rec.Categories, pred)
	}
	return rec
}

// Predict runs every category engine with the default matcher and logger.
func Predict(profile model.SampleResistanceProfile, ref model.PBPAlleleReference) model.PredictionRecord {
	return NewPredictor(nil, nil).Predict(model.Sample{Profile: profile, PBP: ref})
}

func (p *Predictor) matches(tokens []string, pattern string) bool {
	return p.matcher.Matches(tokens, pattern)
}

// callSet is an engine's working state for a single isolate.
type callSet struct {
	calls []model.DrugCall
}

func newCallSet(defaults []model.DrugCall) *callSet {
	return &callSet{calls: append([]model.DrugCall(nil), defaults...)}
}

func (c *callSet) set(d model.Drug, i model.Interpretation) {
	for n := range c.calls {
		if c.calls[n].Drug == d {
			c.calls[n].Interpretation = i
			return
		}
	}
	c.calls = append(c.calls, model.DrugCall{Drug: d, Interpretation: i})
}

func (c *callSet) setAll(i model.Interpretation) {
	for n := range c.calls {
		c.calls[n].Interpretation = i
	}
}

// DefaultPanel returns, per category in output order, each drug's
// interpretation when no resistance evidence is present.
func DefaultPanel() []model.CategoryPrediction {
	return []model.CategoryPrediction{
		{Category: model.CategoryPBP, Calls: newCallSet(pbpDefaults).calls},
		{Category: model.CategoryTET, Evidence: model.Negative, Calls: newCallSet(tetDefaults).calls},
		{Category: model.CategoryEC, Evidence: model.Negative, Calls: newCallSet(ecDefaults).calls, Inducible: model.InducibleNegative},
		{Category: model.CategoryFQ, Evidence: model.Negative, Calls: newCallSet(fqDefaults).calls},
		{Category: model.CategoryOTHER, Evidence: model.Negative, Calls: newCallSet(otherDefaults).calls},
	}
}
