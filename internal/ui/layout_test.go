package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 22, NewLayout(80, 24).ContentHeight())
	assert.Equal(t, 0, NewLayout(80, 1).ContentHeight())
}

func TestSplitWidths(t *testing.T) {
	left, right := SplitWidths(120)
	assert.Equal(t, 40, left)
	assert.Equal(t, 80, right)

	left, right = SplitWidths(30)
	assert.Equal(t, 24, left)
	assert.Equal(t, 6, right)

	left, right = SplitWidths(10)
	assert.Equal(t, 10, left)
	assert.Equal(t, 0, right)
}

func TestRenderWithFrameClipsContent(t *testing.T) {
	l := NewLayout(40, 10)
	content := strings.Repeat("line\n", 50)

	out := l.RenderWithFrame("header", l.RenderErrorBanner("boom"), content, "status")

	assert.LessOrEqual(t, lipgloss.Height(out), 10)
	assert.Contains(t, out, "boom")
}

func TestEmptyBanner(t *testing.T) {
	assert.Empty(t, NewLayout(40, 10).RenderErrorBanner(""))
}
