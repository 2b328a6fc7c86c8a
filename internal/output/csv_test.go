package output

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/target2mic/internal/model"
)

func testRecord(id string) model.PredictionRecord {
	return model.PredictionRecord{
		SampleID: id,
		Categories: []model.CategoryPrediction{
			{Category: model.CategoryPBP, Calls: []model.DrugCall{{Drug: model.DrugCZL, Interpretation: model.NotEvaluated}}},
			{Category: model.CategoryTET, Evidence: "tetM", Calls: []model.DrugCall{
				{Drug: model.DrugTET, Interpretation: model.Triple(model.OpGreaterEqual, "8", model.CodeResistant)},
			}},
			{Category: model.CategoryEC, Evidence: "neg", Inducible: model.InducibleNegative, Calls: []model.DrugCall{
				{Drug: model.DrugERY, Interpretation: model.Triple(model.OpLessEqual, "0.25", model.CodeSusceptible)},
			}},
		},
	}
}

func TestCSVWriterCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mic.tsv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	defer w.Close()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing at target before commit")

	require.NoError(t, w.Write(testRecord("s1")))
	require.NoError(t, w.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"ID\tPBP\tTET\tEC\tFQ\tOTHER\n"+
			"s1\tNA,NA,NA\ttetM,>=,8,R\tneg,<=,0.25,S,neg\n",
		string(data))

	assert.NoError(t, w.Close())
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCSVWriterCloseDiscards(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mic.tsv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(testRecord("s1")))
	require.NoError(t, w.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCSVWriterConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mic.tsv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	defer w.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Write(testRecord("s")))
		}()
	}
	wg.Wait()
	require.NoError(t, w.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, splitLines(string(data)), 21)
}

func TestNewCSVWriterBadDir(t *testing.T) {
	_, err := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "mic.tsv"))
	assert.Error(t, err)
}
