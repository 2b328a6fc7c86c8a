package model

import "strings"

// OutputHeader is the prediction table header.
var OutputHeader = []string{"ID", "PBP", "TET", "EC", "FQ", "OTHER"}

// DrugCall pairs a drug with its interpretation.
type DrugCall struct {
	Drug           Drug
	Interpretation Interpretation
}

// CategoryPrediction is one category's result for one isolate.
type CategoryPrediction struct {
	Category Category
	// Evidence is the raw evidence string. Unused for PBP.
	Evidence string
	Calls    []DrugCall
	// Inducible is only reported for EC.
	Inducible InducibleStatus
}

// Call returns the interpretation for a drug in this category.
func (c CategoryPrediction) Call(d Drug) (Interpretation, bool) {
	for _, call := range c.Calls {
		if call.Drug == d {
			return call.Interpretation, true
		}
	}
	return Interpretation{}, false
}

// Fields returns the serialized components: evidence (not for PBP), each
// call in drug order, then ERY_CLI for EC.
func (c CategoryPrediction) Fields() []string {
	var out []string
	if c.Category != CategoryPBP {
		out = append(out, c.Evidence)
	}
	for _, call := range c.Calls {
		out = append(out, call.Interpretation.Fields()...)
	}
	if c.Category == CategoryEC {
		out = append(out, string(c.Inducible))
	}
	return out
}

func (c CategoryPrediction) String() string {
	return strings.Join(c.Fields(), ",")
}

// PredictionRecord is the full result for one isolate, categories in OutputOrder.
type PredictionRecord struct {
	SampleID   string
	Categories []CategoryPrediction
}

// Category returns the prediction for a category.
func (r PredictionRecord) Category(c Category) (CategoryPrediction, bool) {
	for _, p := range r.Categories {
		if p.Category == c {
			return p, true
		}
	}
	return CategoryPrediction{}, false
}

// Row returns the record as a table row matching OutputHeader.
func (r PredictionRecord) Row() []string {
	row := make([]string, 0, len(r.Categories)+1)
	row = append(row, r.SampleID)
	for _, p := range r.Categories {
		row = append(row, p.String())
	}
	return row
}
