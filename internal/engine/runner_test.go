package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/target2mic/internal/config"
	"github.com/daryltucker/target2mic/internal/input"
	"github.com/daryltucker/target2mic/internal/model"
)

const resTable = "ID\tEC\tFQ\tOTHER\tTET\n" +
	"iso1\t*R23S1*:*RPLD1*:foobar\tfoobar:PARC-D10G\tneg\tfoobar1:*TET*:foobar2\n" +
	"iso2\tneg\tneg\tneg\tfoobar0:foobar1:foobar2\n" +
	"iso3\tneg\tneg\tneg\tneg\n"

const pbpTable = "ID\tContig\tPBP_allele\n" +
	"iso1\t.1\t1||2||10\n" +
	"iso2\t.1\t1||2||3\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ResFile = writeFile(t, dir, "res.tsv", resTable)
	cfg.PBPFile = writeFile(t, dir, "pbp.tsv", pbpTable)
	cfg.Output = filepath.Join(dir, "out", "mic.tsv")
	return cfg, dir
}

func TestRun(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.JSONOutput = filepath.Join(filepath.Dir(cfg.Output), "mic.jsonl")

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Samples)
	assert.Equal(t, 1, summary.MissingPBP)
	assert.NotEmpty(t, summary.RunID)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "ID\tPBP\tTET\tEC\tFQ\tOTHER", lines[0])
	assert.Equal(t, strings.Join([]string{
		"iso1",
		pbpFlaggedRow,
		"foobar1:*TET*:foobar2,>=,8,R",
		"*R23S1*:*RPLD1*:foobar," + flags(13),
		"foobar:PARC-D10G,NA,NA,NA,=,4,I",
		"neg," + otherDefaultRow,
	}, "\t"), lines[1])

	iso2 := strings.Split(lines[2], "\t")
	assert.Equal(t, "iso2", iso2[0])
	assert.Equal(t, pbpSusceptibleRow, iso2[1])
	assert.Equal(t, "foobar0:foobar1:foobar2,neg", iso2[2])

	iso3 := strings.Split(lines[3], "\t")
	assert.Equal(t, pbpFlaggedRow, iso3[1])

	jsonData, err := os.ReadFile(cfg.JSONOutput)
	require.NoError(t, err)
	jsonLines := strings.Split(strings.TrimSpace(string(jsonData)), "\n")
	require.Len(t, jsonLines, 3)

	var first struct {
		RunID      string `json:"run_id"`
		ID         string `json:"id"`
		Categories map[string]struct {
			Evidence string            `json:"evidence"`
			Drugs    map[string]string `json:"drugs"`
			ERYCLI   string            `json:"ery_cli"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal([]byte(jsonLines[0]), &first))
	assert.Equal(t, summary.RunID, first.RunID)
	assert.Equal(t, "iso1", first.ID)
	assert.Equal(t, "=,4,I", first.Categories["FQ"].Drugs["LFX"])
	assert.Equal(t, "Flag", first.Categories["EC"].ERYCLI)
}

func TestRunWithoutPBPFile(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.PBPFile = ""

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.MissingPBP)
}

func TestRunInvalidHeaderWritesNothing(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.ResFile = writeFile(t, dir, "bad.tsv", "ID\tEC\tFQ\tOTHER\tXYZ\niso1\tneg\tneg\tneg\tneg\n")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, input.ErrInvalidFormat))

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingFile(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.ResFile = filepath.Join(dir, "nope.tsv")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "res_file is required")
}

func TestResolvePBPReferences(t *testing.T) {
	samples := []model.Sample{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	alleles := map[string]string{
		"a": "x:y:4",
		"b": "x||y||12",
		"c": "garbage",
	}

	missing := ResolvePBPReferences(samples, alleles, discard)
	assert.Equal(t, 2, missing)

	v, ok := samples[0].PBP.Value()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	v, ok = samples[1].PBP.Value()
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	assert.Equal(t, model.NoReference, samples[2].PBP)
	assert.Equal(t, model.NoReference, samples[3].PBP)
}

func TestPredictAllKeepsOrder(t *testing.T) {
	var samples []model.Sample
	for _, id := range []string{"z", "a", "m", "b", "y", "c"} {
		samples = append(samples, model.Sample{ID: id, Profile: model.NewProfile()})
	}

	records, err := PredictAll(context.Background(), newTestPredictor(), samples, 3)
	require.NoError(t, err)
	require.Len(t, records, len(samples))
	for i, rec := range records {
		assert.Equal(t, samples[i].ID, rec.SampleID)
	}
}

func TestPredictAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PredictAll(ctx, newTestPredictor(), []model.Sample{{ID: "a"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
