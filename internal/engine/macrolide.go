package engine

import (
	"log/slog"

	"github.com/daryltucker/target2mic/internal/model"
)

const (
	ribosomalTargetPattern = "R23S1|RPLD1|RPLV"
	mefPattern             = "MEF"
	lsaPattern             = "LSA"
	lnuPattern             = "LNU"
	ermPattern             = "ERM"
)

var ecDefaults = []model.DrugCall{
	{Drug: model.DrugERY, Interpretation: model.Triple(model.OpLessEqual, "0.25", model.CodeSusceptible)},
	{Drug: model.DrugCLI, Interpretation: model.Triple(model.OpLessEqual, "0.25", model.CodeSusceptible)},
	{Drug: model.DrugLZO, Interpretation: model.Triple(model.OpLessEqual, "2.0", model.CodeSusceptible)},
	{Drug: model.DrugSYN, Interpretation: model.Triple(model.OpLessEqual, "1.0", model.CodeSusceptible)},
}

var macrolideResistant = model.Triple(model.OpGreaterEqual, "1", model.CodeResistant)

// predictEC derives macrolide, lincosamide, oxazolidinone and streptogramin
// calls. Every step runs in order; later steps overwrite earlier ones.
func (p *Predictor) predictEC(evidence string, log *slog.Logger) model.CategoryPrediction {
	calls := newCallSet(ecDefaults)
	inducible := model.InducibleNegative

	if evidence != model.Negative {
		tokens := model.Tokens(evidence)

		if p.matches(tokens, ribosomalTargetPattern) {
			log.Debug("Found 23S/ribosomal protein target")
			calls.setAll(model.Flagged)
			inducible = model.InducibleFlag
		}

		foundMEF := p.matches(tokens, mefPattern)
		if foundMEF {
			log.Debug("Found MEF")
			calls.set(model.DrugERY, macrolideResistant)
		}

		foundLSA := p.matches(tokens, lsaPattern)
		if foundLSA {
			log.Debug("Found LSA")
			calls.set(model.DrugCLI, macrolideResistant)
		}

		foundLNU := p.matches(tokens, lnuPattern)
		if foundLNU {
			log.Debug("Found LNU")
			calls.set(model.DrugCLI, model.Flagged)
		}

		foundERM := p.matches(tokens, ermPattern)
		if foundERM {
			log.Debug("Found ERM")
			calls.set(model.DrugERY, macrolideResistant)
			calls.set(model.DrugCLI, macrolideResistant)
			inducible = model.InduciblePositive
		}

		if foundMEF && (foundLSA || foundLNU) {
			log.Debug("Found both MEF and LSA/LNU")
			inducible = model.InduciblePositive
		}

		switch {
		case foundERM && foundLSA:
			log.Debug("Found both ERM and LSA")
			calls.set(model.DrugSYN, model.Flagged)
		case foundERM && foundLNU:
			log.Debug("Found both ERM and LNU")
			calls.set(model.DrugSYN, model.Triple(model.OpLessEqual, "1.0", model.CodeSusceptible))
		}
	}

	return model.CategoryPrediction{
		Category:  model.CategoryEC,
		Evidence:  evidence,
		Calls:     calls.calls,
		Inducible: inducible,
	}
}
