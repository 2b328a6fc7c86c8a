package engine

import (
	"log/slog"

	"github.com/daryltucker/target2mic/internal/model"
)

// pbpSusceptibleMax is the largest allele reference with a susceptible profile.
const pbpSusceptibleMax = 5

var pbpDefaults = []model.DrugCall{
	{Drug: model.DrugZOX, Interpretation: model.Flagged},
	{Drug: model.DrugFOX, Interpretation: model.Flagged},
	{Drug: model.DrugTAX, Interpretation: model.Flagged},
	{Drug: model.DrugCFT, Interpretation: model.Flagged},
	{Drug: model.DrugCPT, Interpretation: model.Flagged},
	{Drug: model.DrugCZL, Interpretation: model.NotEvaluated},
	{Drug: model.DrugAMP, Interpretation: model.Flagged},
	{Drug: model.DrugPEN, Interpretation: model.Flagged},
	{Drug: model.DrugMER, Interpretation: model.Flagged},
}

var pbpSusceptible = []model.DrugCall{
	{Drug: model.DrugZOX, Interpretation: model.Triple(model.OpLessEqual, "0.5", model.CodeUndetermined)},
	{Drug: model.DrugFOX, Interpretation: model.Triple(model.OpLessEqual, "8.0", model.CodeUndetermined)},
	{Drug: model.DrugTAX, Interpretation: model.Triple(model.OpLessEqual, "0.12", model.CodeSusceptible)},
	{Drug: model.DrugCFT, Interpretation: model.Triple(model.OpLessEqual, "0.12", model.CodeSusceptible)},
	{Drug: model.DrugCPT, Interpretation: model.Triple(model.OpLessEqual, "0.12", model.CodeSusceptible)},
	{Drug: model.DrugCZL, Interpretation: model.NotEvaluated},
	{Drug: model.DrugAMP, Interpretation: model.Triple(model.OpLessEqual, "0.25", model.CodeSusceptible)},
	{Drug: model.DrugPEN, Interpretation: model.Triple(model.OpLessEqual, "0.12", model.CodeSusceptible)},
	{Drug: model.DrugMER, Interpretation: model.Triple(model.OpLessEqual, "0.12", model.CodeSusceptible)},
}

// predictPBP derives beta-lactam calls from the PBP allele reference.
func (p *Predictor) predictPBP(ref model.PBPAlleleReference, log *slog.Logger) model.CategoryPrediction {
	calls := newCallSet(pbpDefaults)
	if v, ok := ref.Value(); ok && v <= pbpSusceptibleMax {
		log.Debug("Susceptible PBP profile", "reference", ref.String())
		calls = newCallSet(pbpSusceptible)
	}
	return model.CategoryPrediction{Category: model.CategoryPBP, Calls: calls.calls}
}
