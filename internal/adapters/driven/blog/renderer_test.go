package blog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermRenderer_Render(t *testing.T) {
	r := NewTermRenderer(StyleNoTTY)

	out, err := r.Render("# Master Numbers\n\nEleven is **intuitive**.", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Master Numbers")
	assert.Contains(t, out, "intuitive")
}

func TestTermRenderer_WrapsToWidth(t *testing.T) {
	r := NewTermRenderer(StyleNoTTY)
	long := strings.Repeat("seven ", 40)

	out, err := r.Render(long, 30)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Greater(t, len(lines), 5)
	for _, line := range lines {
		// Allow for the style's left margin.
		assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 34, line)
	}
}

func TestTermRenderer_ReusesPerWidth(t *testing.T) {
	r := NewTermRenderer(StyleNoTTY)
	_, err := r.Render("a", 40)
	require.NoError(t, err)
	_, err = r.Render("b", 40)
	require.NoError(t, err)
	_, err = r.Render("c", 80)
	require.NoError(t, err)
	assert.Len(t, r.renderers, 2)
}

func TestTermRenderer_Empty(t *testing.T) {
	out, err := NewTermRenderer(StyleNoTTY).Render("", 80)
	require.NoError(t, err)
	assert.Empty(t, out)
}
