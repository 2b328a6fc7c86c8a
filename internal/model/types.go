/*
PURPOSE:
  Defines the core data structures used throughout target2mic.
  These models represent resistance evidence per isolate and the
  MIC interpretations predicted from it.

REQUIREMENTS:
  User-specified:
  - One evidence string per drug category (EC, FQ, OTHER, TET), "neg" when absent.
  - Interpretations are (operator, breakpoint, code) triples.
  - PBP allele reference is either numeric or NA.

  Implementation-discovered:
  - Breakpoints are kept as text: reports distinguish "2" from "2.0".
  - TET can report a bare "neg" instead of a triple.
  - The PBP reference must be a tagged value, not a string we sniff later.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/input, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - ProfileFromMap returns ErrMissingCategory for an incomplete mapping.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Values are isolate-scoped; nothing here holds cross-isolate state.

USAGE:
  p := model.NewProfile()
  p.TET = "tetM:tetO"

SELF-HEALING INSTRUCTIONS:
  - If a drug is added to a category, update the engine that owns it and DefaultPanel().

RELATED FILES:
  - internal/model/prediction.go
  - internal/engine/predictor.go

MAINTENANCE:
  - Update when the reported drug panel changes.
*/

package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is a drug category code.
type Category string

const (
	CategoryPBP   Category = "PBP"
	CategoryTET   Category = "TET"
	CategoryEC    Category = "EC"
	CategoryFQ    Category = "FQ"
	CategoryOTHER Category = "OTHER"
)

// OutputOrder is the fixed order categories are run and reported in.
var OutputOrder = []Category{CategoryPBP, CategoryTET, CategoryEC, CategoryFQ, CategoryOTHER}

// EvidenceCategories are the categories carried by a resistance evidence file.
var EvidenceCategories = []Category{CategoryEC, CategoryFQ, CategoryOTHER, CategoryTET}

const (
	// Negative is the sentinel for "no determinants detected".
	Negative = "neg"
	// EvidenceDelimiter separates determinant tokens in an evidence string.
	EvidenceDelimiter = ":"
)

// ErrMissingCategory is returned when a profile lacks a required category.
var ErrMissingCategory = errors.New("missing resistance category")

// Drug is an antibiotic code.
type Drug string

const (
	DrugZOX Drug = "ZOX"
	DrugFOX Drug = "FOX"
	DrugTAX Drug = "TAX"
	DrugCFT Drug = "CFT"
	DrugCPT Drug = "CPT"
	DrugCZL Drug = "CZL"
	DrugAMP Drug = "AMP"
	DrugPEN Drug = "PEN"
	DrugMER Drug = "MER"

	DrugERY Drug = "ERY"
	DrugCLI Drug = "CLI"
	DrugLZO Drug = "LZO"
	DrugSYN Drug = "SYN"

	DrugCIP Drug = "CIP"
	DrugLFX Drug = "LFX"

	DrugTET Drug = "TET"

	DrugDAP Drug = "DAP"
	DrugVAN Drug = "VAN"
	DrugRIF Drug = "RIF"
	DrugCHL Drug = "CHL"
	DrugCOT Drug = "COT"
)

// Operator qualifies a breakpoint.
type Operator string

const (
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "="
	OpNA           Operator = "NA"
	OpFlag         Operator = "Flag"
)

// Code is an interpretation code.
type Code string

const (
	CodeSusceptible  Code = "S"
	CodeIntermediate Code = "I"
	CodeResistant    Code = "R"
	CodeUndetermined Code = "U"
	CodeNA           Code = "NA"
	CodeFlag         Code = "Flag"
)

// Interpretation is one drug's (operator, breakpoint, code) call.
// The zero value is not meaningful; use Triple or the predefined values.
type Interpretation struct {
	Operator   Operator
	Breakpoint string
	Code       Code

	// absent marks "mechanism absent despite evidence", reported as a bare "neg".
	absent bool
}

var (
	// Flagged requires manual review.
	Flagged = Interpretation{Operator: OpFlag, Breakpoint: "Flag", Code: CodeFlag}
	// NotEvaluated is reported for reference only.
	NotEvaluated = Interpretation{Operator: OpNA, Breakpoint: "NA", Code: CodeNA}
	// Absent is the scalar "neg" call.
	Absent = Interpretation{absent: true}
)

// Triple builds an interpretation.
func Triple(op Operator, breakpoint string, code Code) Interpretation {
	return Interpretation{Operator: op, Breakpoint: breakpoint, Code: code}
}

// IsAbsent reports whether this is the scalar "neg" call.
func (i Interpretation) IsAbsent() bool {
	return i.absent
}

// Fields returns the serialized components in report order.
func (i Interpretation) Fields() []string {
	if i.absent {
		return []string{Negative}
	}
	return []string{string(i.Operator), i.Breakpoint, string(i.Code)}
}

func (i Interpretation) String() string {
	return strings.Join(i.Fields(), ",")
}

// MarshalText renders the interpretation as its report string.
func (i Interpretation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// InducibleStatus is the EC-only combined erythromycin/clindamycin flag.
type InducibleStatus string

const (
	InducibleNegative InducibleStatus = "neg"
	InduciblePositive InducibleStatus = "pos"
	InducibleFlag     InducibleStatus = "Flag"
)

// PBPAlleleReference is either a numeric allele identifier or NA.
// The zero value is NA.
type PBPAlleleReference struct {
	value   float64
	numeric bool
}

// NoReference is the NA sentinel.
var NoReference = PBPAlleleReference{}

// NumericReference wraps a numeric allele identifier.
func NumericReference(v float64) PBPAlleleReference {
	return PBPAlleleReference{value: v, numeric: true}
}

// ParsePBPAlleleReference returns a numeric reference for a decimal string
// and NoReference for anything else.
func ParsePBPAlleleReference(s string) PBPAlleleReference {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return NoReference
	}
	return NumericReference(v)
}

// Value returns the numeric value and whether there is one.
func (r PBPAlleleReference) Value() (float64, bool) {
	return r.value, r.numeric
}

func (r PBPAlleleReference) String() string {
	if !r.numeric {
		return "NA"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// SampleResistanceProfile is the per-isolate evidence, one string per category.
// An empty field reads as Negative.
type SampleResistanceProfile struct {
	EC    string
	FQ    string
	OTHER string
	TET   string
}

// NewProfile returns a profile with every category Negative.
func NewProfile() SampleResistanceProfile {
	return SampleResistanceProfile{EC: Negative, FQ: Negative, OTHER: Negative, TET: Negative}
}

// ProfileFromMap builds a profile from a category-keyed mapping.
// Every evidence category must be present.
func ProfileFromMap(m map[string]string) (SampleResistanceProfile, error) {
	p := NewProfile()
	for _, c := range EvidenceCategories {
		v, ok := m[string(c)]
		if !ok {
			return p, fmt.Errorf("%w: %s", ErrMissingCategory, c)
		}
		p.set(c, v)
	}
	return p, nil
}

func (p *SampleResistanceProfile) set(c Category, v string) {
	switch c {
	case CategoryEC:
		p.EC = v
	case CategoryFQ:
		p.FQ = v
	case CategoryOTHER:
		p.OTHER = v
	case CategoryTET:
		p.TET = v
	}
}

// Evidence returns the raw evidence string for an evidence category.
func (p SampleResistanceProfile) Evidence(c Category) string {
	var v string
	switch c {
	case CategoryEC:
		v = p.EC
	case CategoryFQ:
		v = p.FQ
	case CategoryOTHER:
		v = p.OTHER
	case CategoryTET:
		v = p.TET
	default:
		return ""
	}
	if strings.TrimSpace(v) == "" {
		return Negative
	}
	return v
}

// Tokens splits evidence into determinant tokens.
func Tokens(evidence string) []string {
	if evidence == Negative || evidence == "" {
		return nil
	}
	return strings.Split(evidence, EvidenceDelimiter)
}

// Sample is one isolate's input to the predictor.
type Sample struct {
	ID      string
	Profile SampleResistanceProfile
	PBP     PBPAlleleReference
}
