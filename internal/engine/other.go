package engine

import (
	"log/slog"

	"github.com/daryltucker/target2mic/internal/model"
)

const (
	recognisedTargetPattern = "CAT|FOLA|FOLP|RPOB|VAN"
	catPattern              = "CAT"
	folatePattern           = "FOLA|FOLP"
	vanPattern              = "VAN"
	rpobPattern             = "RPOB"
)

// benignOtherEvidence are aminoglycoside/macrolide-efflux combinations that
// must not be blanket-flagged. Compared byte for byte.
var benignOtherEvidence = []string{
	"ant(6)-Ia:Ant6-Ia_AGly:aph(3')-III:Aph3-III_AGly:Sat4A_Agly",
	"aph(3')-III:Aph3-III_AGly:Sat4A_AGly",
	"msr(D):MsrD_MLS",
}

var otherDefaults = []model.DrugCall{
	{Drug: model.DrugDAP, Interpretation: model.Triple(model.OpLessEqual, "1", model.CodeSusceptible)},
	{Drug: model.DrugVAN, Interpretation: model.Triple(model.OpLessEqual, "1", model.CodeSusceptible)},
	{Drug: model.DrugRIF, Interpretation: model.Triple(model.OpLessEqual, "1", model.CodeUndetermined)},
	{Drug: model.DrugCHL, Interpretation: model.Triple(model.OpLessEqual, "4", model.CodeSusceptible)},
	{Drug: model.DrugCOT, Interpretation: model.Triple(model.OpLessEqual, "0.5", model.CodeUndetermined)},
}

func isBenignOtherEvidence(evidence string) bool {
	for _, e := range benignOtherEvidence {
		if evidence == e {
			return true
		}
	}
	return false
}

// predictOTHER derives daptomycin, vancomycin, rifampin, chloramphenicol and
// cotrimoxazole calls. Evidence with no recognised target flags everything,
// unless it is one of the known benign combinations.
func (p *Predictor) predictOTHER(evidence string, log *slog.Logger) model.CategoryPrediction {
	calls := newCallSet(otherDefaults)

	if evidence != model.Negative {
		tokens := model.Tokens(evidence)

		if !isBenignOtherEvidence(evidence) && !p.matches(tokens, recognisedTargetPattern) {
			log.Debug("Found an unrecognised target - flag everything")
			calls.setAll(model.Flagged)
		} else {
			if p.matches(tokens, catPattern) {
				log.Debug("Found CAT")
				calls.set(model.DrugCHL, model.Triple(model.OpGreaterEqual, "16", model.CodeResistant))
			}
			if p.matches(tokens, folatePattern) {
				log.Debug("Found FOLA/FOLP")
				calls.set(model.DrugCOT, model.Flagged)
			}
			if p.matches(tokens, vanPattern) {
				log.Debug("Found VAN")
				calls.set(model.DrugVAN, model.Triple(model.OpGreaterEqual, "2", model.CodeUndetermined))
			}
			if p.matches(tokens, rpobPattern) {
				log.Debug("Found RPOB")
				calls.set(model.DrugRIF, model.Flagged)
			}
		}
	}

	return model.CategoryPrediction{Category: model.CategoryOTHER, Evidence: evidence, Calls: calls.calls}
}
