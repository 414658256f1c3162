package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#F9FAFB"), GetTheme("light").Background)
	assert.Equal(t, lipgloss.Color("#F4ECD8"), GetTheme("sepia").Background)
	assert.Equal(t, lipgloss.Color("#111827"), GetTheme("dark").Background)
	assert.Equal(t, lipgloss.Color("#0F172A"), GetTheme("dark-blue").Background)
	assert.Equal(t, "light", GetTheme("neon").Name)
}

func TestSetCurrentTheme(t *testing.T) {
	t.Cleanup(func() { SetCurrentTheme("light") })

	SetCurrentTheme("sepia")
	assert.Equal(t, "sepia", CurrentTheme().Name)
	assert.Equal(t, lipgloss.Color("#F4ECD8"), Background)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "斗破苍穹", TruncateText("斗破苍穹", 8))
	assert.Equal(t, "斗破…", TruncateText("斗破苍穹", 6))
	assert.Equal(t, "abc", TruncateText("abc", 10))
	assert.Empty(t, TruncateText("abc", 0))
}
