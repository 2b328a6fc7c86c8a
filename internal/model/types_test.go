package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretationFields(t *testing.T) {
	tests := []struct {
		name string
		in   Interpretation
		want string
	}{
		{"triple", Triple(OpLessEqual, "0.25", CodeSusceptible), "<=,0.25,S"},
		{"flagged", Flagged, "Flag,Flag,Flag"},
		{"not evaluated", NotEvaluated, "NA,NA,NA"},
		{"absent", Absent, "neg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
	assert.True(t, Absent.IsAbsent())
	assert.False(t, Flagged.IsAbsent())
}

func TestParsePBPAlleleReference(t *testing.T) {
	tests := []struct {
		in      string
		numeric bool
		value   float64
	}{
		{"5", true, 5},
		{" 3 ", true, 3},
		{"0.5", true, 0.5},
		{"NA", false, 0},
		{"NaN", false, 0},
		{"Inf", false, 0},
		{"", false, 0},
		{"12a", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, ok := ParsePBPAlleleReference(tt.in).Value()
			assert.Equal(t, tt.numeric, ok)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestPBPAlleleReferenceString(t *testing.T) {
	assert.Equal(t, "NA", NoReference.String())
	assert.Equal(t, "10", NumericReference(10).String())
	assert.Equal(t, "2.5", NumericReference(2.5).String())
}

func TestProfileFromMap(t *testing.T) {
	p, err := ProfileFromMap(map[string]string{"EC": "ermB", "FQ": "neg", "OTHER": "catP", "TET": "tetM"})
	require.NoError(t, err)
	assert.Equal(t, SampleResistanceProfile{EC: "ermB", FQ: "neg", OTHER: "catP", TET: "tetM"}, p)

	_, err = ProfileFromMap(map[string]string{"EC": "ermB", "FQ": "neg", "OTHER": "catP"})
	assert.True(t, errors.Is(err, ErrMissingCategory))
	assert.ErrorContains(t, err, "TET")
}

func TestProfileEvidence(t *testing.T) {
	p := SampleResistanceProfile{EC: "ermB", FQ: "  "}
	assert.Equal(t, "ermB", p.Evidence(CategoryEC))
	assert.Equal(t, Negative, p.Evidence(CategoryFQ))
	assert.Equal(t, Negative, p.Evidence(CategoryTET))
	assert.Equal(t, "", p.Evidence(CategoryPBP))
}

func TestTokens(t *testing.T) {
	assert.Nil(t, Tokens(Negative))
	assert.Nil(t, Tokens(""))
	assert.Equal(t, []string{"a", "b", "c"}, Tokens("a:b:c"))
}

func TestCategoryPredictionFields(t *testing.T) {
	ec := CategoryPrediction{
		Category: CategoryEC,
		Evidence: "ermB",
		Calls: []DrugCall{
			{Drug: DrugERY, Interpretation: Triple(OpGreaterEqual, "1", CodeResistant)},
		},
		Inducible: InduciblePositive,
	}
	assert.Equal(t, "ermB,>=,1,R,pos", ec.String())

	pbp := CategoryPrediction{
		Category: CategoryPBP,
		Evidence: "ignored",
		Calls:    []DrugCall{{Drug: DrugCZL, Interpretation: NotEvaluated}},
	}
	assert.Equal(t, "NA,NA,NA", pbp.String())

	_, ok := pbp.Call(DrugAMP)
	assert.False(t, ok)
}

func TestPredictionRecordRow(t *testing.T) {
	rec := PredictionRecord{
		SampleID: "s1",
		Categories: []CategoryPrediction{
			{Category: CategoryTET, Evidence: "neg", Calls: []DrugCall{{Drug: DrugTET, Interpretation: Absent}}},
		},
	}
	assert.Equal(t, []string{"s1", "neg,neg"}, rec.Row())

	_, ok := rec.Category(CategoryFQ)
	assert.False(t, ok)
}
