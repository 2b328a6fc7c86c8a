/*
PURPOSE:
  Reads the per-isolate input tables: resistance evidence (EC/FQ/OTHER/TET)
  and PBP allele assignments.

REQUIREMENTS:
  User-specified:
  - Tab-delimited, header row, first column is the isolate id.
  - Resistance header must be exactly {EC, FQ, OTHER, TET} in any order.
  - PBP header must be exactly {Contig, PBP_allele} in any order.

  Implementation-discovered:
  - Blank lines are skipped.
  - Every data row must carry the header's field count.
  - Isolate order is preserved; a repeated id replaces the earlier row.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Produces: []model.Sample, map[string]string

ERROR HANDLING:
  - Format problems return *FormatError (errors.Is(err, ErrInvalidFormat)).
  - I/O errors are wrapped and returned.

USAGE:
  samples, err := input.ReadResistanceFile("res.tsv")
  alleles, err := input.ReadPBPFile("pbp.tsv")
*/

package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/daryltucker/target2mic/internal/model"
	"github.com/daryltucker/target2mic/internal/output"
)

// Delimiter separates input columns.
const Delimiter = '\t'

// PBPAlleleColumn holds the compound allele field in the PBP file.
const PBPAlleleColumn = "PBP_allele"

// PBPColumns is the required PBP file header, after the id column.
var PBPColumns = []string{"Contig", PBPAlleleColumn}

// ErrInvalidFormat is the sentinel for malformed input tables.
var ErrInvalidFormat = errors.New("invalid file format")

// FormatError describes a malformed input table.
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s: %s", e.Path, e.Line, ErrInvalidFormat, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, ErrInvalidFormat, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

type row struct {
	id     string
	fields map[string]string
}

// ReadResistanceFile reads a resistance evidence table.
func ReadResistanceFile(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resistance file %s: %w", path, err)
	}
	defer f.Close()
	return ParseResistance(f, path)
}

// ParseResistance parses a resistance evidence table. name labels errors.
func ParseResistance(r io.Reader, name string) ([]model.Sample, error) {
	columns := make([]string, 0, len(model.EvidenceCategories))
	for _, c := range model.EvidenceCategories {
		columns = append(columns, string(c))
	}

	rows, err := parseTable(r, name, columns)
	if err != nil {
		return nil, err
	}

	samples := make([]model.Sample, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, rw := range rows {
		profile, err := model.ProfileFromMap(rw.fields)
		if err != nil {
			return nil, fmt.Errorf("%s: isolate %s: %w", name, rw.id, err)
		}
		s := model.Sample{ID: rw.id, Profile: profile, PBP: model.NoReference}
		if n, ok := index[rw.id]; ok {
			output.Logger.Warn("Duplicate isolate id, later row wins", "file", name, "sample", rw.id)
			samples[n] = s
			continue
		}
		index[rw.id] = len(samples)
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadPBPFile reads a PBP allele table into isolate id -> PBP_allele field.
func ReadPBPFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PBP file %s: %w", path, err)
	}
	defer f.Close()
	return ParsePBP(f, path)
}

// ParsePBP parses a PBP allele table. name labels errors.
func ParsePBP(r io.Reader, name string) (map[string]string, error) {
	rows, err := parseTable(r, name, PBPColumns)
	if err != nil {
		return nil, err
	}
	alleles := make(map[string]string, len(rows))
	for _, rw := range rows {
		alleles[rw.id] = rw.fields[PBPAlleleColumn]
	}
	return alleles, nil
}

// ExtractPBPReference pulls the allele reference out of a compound
// PBP_allele field such as "id||allele||ref" or "id:allele:ref".
// ok is false when the field is malformed.
func ExtractPBPReference(field string) (ref model.PBPAlleleReference, ok bool) {
	sep := ":"
	if strings.Contains(field, "||") {
		sep = "||"
	}
	parts := strings.Split(field, sep)
	if len(parts) < 3 {
		return model.NoReference, false
	}
	ref = model.ParsePBPAlleleReference(parts[2])
	_, numeric := ref.Value()
	return ref, numeric
}

func parseTable(r io.Reader, name string, columns []string) ([]row, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Path: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	header = trimAll(header)
	if len(header) != len(columns)+1 || !sameSet(header[1:], columns) {
		return nil, &FormatError{
			Path:   name,
			Line:   1,
			Reason: fmt.Sprintf("header %v does not match required columns %v", header[1:], columns),
		}
	}

	var rows []row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		line, _ := cr.FieldPos(0)
		rec = trimAll(rec)
		if len(rec) != len(header) {
			return nil, &FormatError{
				Path:   name,
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(rec)),
			}
		}
		fields := make(map[string]string, len(columns))
		for i, col := range header[1:] {
			fields[col] = rec[i+1]
		}
		rows = append(rows, row{id: rec[0], fields: fields})
	}
	return rows, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
