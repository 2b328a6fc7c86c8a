package engine

import (
	"log/slog"

	"github.com/daryltucker/target2mic/internal/model"
)

const (
	gyrasePattern           = "GYRA-S11L"
	parcResistantPattern    = "PARC-S6[FY]"
	parcIntermediatePattern = "PARC-D10[GY]|PARC-S6Y"
	parcSusceptiblePattern  = "PARC-D10[AN]|PARC-D5N|PARC-S6F|PARC-S7P"
)

var fqDefaults = []model.DrugCall{
	{Drug: model.DrugCIP, Interpretation: model.NotEvaluated},
	{Drug: model.DrugLFX, Interpretation: model.Triple(model.OpLessEqual, "2", model.CodeSusceptible)},
}

// predictFQ derives the levofloxacin call. Rules are tried in priority
// order and the first match wins. CIP is never evaluated.
func (p *Predictor) predictFQ(evidence string, log *slog.Logger) model.CategoryPrediction {
	calls := newCallSet(fqDefaults)

	if evidence != model.Negative {
		tokens := model.Tokens(evidence)

		switch {
		case p.matches(tokens, gyrasePattern) && p.matches(tokens, parcResistantPattern):
			log.Debug("Found GYRA-S11L with PARC-S6F/S6Y")
			calls.set(model.DrugLFX, model.Triple(model.OpGreaterEqual, "8", model.CodeResistant))
		case p.matches(tokens, parcIntermediatePattern):
			log.Debug("Found PARC-D10G/D10Y or PARC-S6Y")
			calls.set(model.DrugLFX, model.Triple(model.OpEqual, "4", model.CodeIntermediate))
		case p.matches(tokens, parcSusceptiblePattern):
			log.Debug("Found PARC-D10A/D10N/D5N/S6F/S7P")
			calls.set(model.DrugLFX, model.Triple(model.OpLessEqual, "2", model.CodeSusceptible))
		default:
			log.Debug("Unrecognised FQ determinants")
			calls.set(model.DrugLFX, model.Flagged)
		}
	}

	return model.CategoryPrediction{Category: model.CategoryFQ, Evidence: evidence, Calls: calls.calls}
}
