package wberrors_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
)

func TestNewfFormat(t *testing.T) {
	assert.Equal(t,
		"legend at diagonal",
		wberrors.Newf("legend at %s", "diagonal").Error())
}

func TestWrapNil_Panics(t *testing.T) {
	assert.Panics(t, func() { _ = wberrors.Enrichf(nil, "text") })
	assert.Panics(t, func() { _ = wberrors.Bubblef(nil, "text") })
}

func TestEnrichf(t *testing.T) {
	assert.Equal(t, "EOF", wberrors.Enrichf(io.EOF, "").Error())
	assert.Equal(t,
		"reading row 3: EOF",
		wberrors.Enrichf(io.EOF, "reading row %d", 3).Error())
	assert.NotErrorIs(t, wberrors.Enrichf(io.EOF, ""), io.EOF)
}

func TestBubblef(t *testing.T) {
	err := wberrors.Bubblef(io.EOF, "reading row %d", 3)

	assert.Equal(t, "reading row 3: EOF", err.Error())
	assert.ErrorIs(t, err, io.EOF)
}

func TestAttrsCarryOver(t *testing.T) {
	inner := wberrors.Newf("bad value").
		Attr(slog.String("field", "legend"))
	outer := wberrors.Enrichf(inner, "loading config").
		Attr(slog.Int("line", 4))

	assert.Empty(t, wberrors.Attrs(io.EOF))
	assert.ElementsMatch(t,
		[]slog.Attr{slog.String("field", "legend"), slog.Int("line", 4)},
		wberrors.Attrs(outer))
	assert.Equal(t,
		map[string]string{"field": "legend", "line": "4"},
		wberrors.Tags(outer))
}

func TestSkipSentry(t *testing.T) {
	assert.False(t, wberrors.SkipSentry(io.EOF))
	assert.False(t, wberrors.SkipSentry(wberrors.Newf("x").SkipSentryIf(false)))

	skipped := wberrors.Newf("x").SkipSentryIf(true)
	assert.True(t, wberrors.SkipSentry(skipped))
	assert.True(t, wberrors.SkipSentry(wberrors.Bubblef(skipped, "outer")))
}
