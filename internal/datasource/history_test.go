package datasource_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/plotkit/internal/datasource"
	"github.com/wandb/wandb/plotkit/internal/plot"
)

func parse(t *testing.T, jsonl string) *datasource.History {
	t.Helper()
	h, err := datasource.ParseHistory(strings.NewReader(jsonl))
	require.NoError(t, err)
	return h
}

func TestParseHistory_UsesStepForX(t *testing.T) {
	h := parse(t, `{"_step": 10, "loss": 0.5, "acc": 1}
{"_step": 20, "loss": 0.25, "_runtime": 3.5, "note": "warmup"}
`)

	assert.True(t, h.HasSteps())
	assert.Equal(t, []string{"acc", "loss"}, h.Keys())
	assert.Equal(t,
		[]plot.Point{plot.Pt(10, 0.5), plot.Pt(20, 0.25)},
		h.Points("loss"))
	assert.Equal(t, []plot.Point{plot.Pt(10, 1)}, h.Points("acc"))
	assert.Nil(t, h.Points("note"))
}

func TestParseHistory_UsesLineNumberWithoutStep(t *testing.T) {
	h := parse(t, "{\"a\": 3}\n{\"b\": 1}\n{\"a\": 4}\n")

	assert.False(t, h.HasSteps())
	assert.Equal(t, []string{"a", "b"}, h.Keys())
	assert.Equal(t, []plot.Point{plot.Pt(0, 3), plot.Pt(2, 4)}, h.Points("a"))
	assert.Equal(t, []plot.Point{plot.Pt(1, 1)}, h.Points("b"))
}

func TestParseHistory_RejectsNonObjectLines(t *testing.T) {
	_, err := datasource.ParseHistory(strings.NewReader("{\"a\": 1}\n[1, 2]\n"))

	assert.Error(t, err)
}

func TestLoadHistory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/runs/history.jsonl",
		[]byte("{\"loss\": 2}\n{\"loss\": 1}\n"), 0o644))

	h, err := datasource.LoadHistory(fs, "/runs/history.jsonl")

	require.NoError(t, err)
	assert.Equal(t, []plot.Point{plot.Pt(0, 2), plot.Pt(1, 1)}, h.Points("loss"))
}

func TestLoadHistory_MissingFile(t *testing.T) {
	_, err := datasource.LoadHistory(afero.NewMemMapFs(), "/missing.jsonl")

	assert.Error(t, err)
}

func TestSync(t *testing.T) {
	stale := plot.NewSeries("stale", 1, 2)
	loss := plot.NewXYSeries("loss", plot.Pt(0, 2))
	collection := plot.NewSeriesCollection(stale, loss)

	var changes []plot.CollectionChange
	collection.Subscribe(func(c plot.CollectionChange) { changes = append(changes, c) })
	lossUpdates := 0
	loss.Subscribe(func() { lossUpdates++ })

	h := parse(t, "{\"loss\": 2, \"acc\": 0.1}\n{\"loss\": 1, \"acc\": 0.2}\n")
	h.Sync(collection)

	require.Len(t, changes, 2)
	assert.Equal(t, []*plot.Series{stale}, changes[0].Removed)
	require.Len(t, changes[1].Added, 1)
	assert.Equal(t, "acc", changes[1].Added[0].Title)

	assert.Equal(t, 1, lossUpdates)
	assert.Equal(t, []plot.Point{plot.Pt(0, 2), plot.Pt(1, 1)}, loss.Points())
	assert.Equal(t, 2, collection.Len())
}

func TestSync_UnchangedHistoryIsQuiet(t *testing.T) {
	h := parse(t, "{\"loss\": 2}\n{\"loss\": 1}\n")
	collection := plot.NewSeriesCollection()
	h.Sync(collection)

	notified := false
	collection.Subscribe(func(plot.CollectionChange) { notified = true })
	collection.At(0).Subscribe(func() { notified = true })

	h.Sync(collection)

	assert.False(t, notified)
}
