package engine

import (
	"log/slog"

	"github.com/daryltucker/target2mic/internal/model"
)

const tetPattern = "TET"

var tetDefaults = []model.DrugCall{
	{Drug: model.DrugTET, Interpretation: model.Triple(model.OpLessEqual, "2.0", model.CodeSusceptible)},
}

// predictTET derives the tetracycline call. Evidence without a tet gene
// reports the bare "neg" rather than a triple.
func (p *Predictor) predictTET(evidence string, log *slog.Logger) model.CategoryPrediction {
	calls := newCallSet(tetDefaults)

	if evidence != model.Negative {
		if p.matches(model.Tokens(evidence), tetPattern) {
			log.Debug("Found TET")
			calls.set(model.DrugTET, model.Triple(model.OpGreaterEqual, "8", model.CodeResistant))
		} else {
			calls.set(model.DrugTET, model.Absent)
		}
	}

	return model.CategoryPrediction{Category: model.CategoryTET, Evidence: evidence, Calls: calls.calls}
}
