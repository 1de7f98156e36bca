package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n  - Nested\n* Item 3\n• Item 4"
	result := CleanText(input)

	assert.Contains(t, result, "- Item 1")
	assert.Contains(t, result, "  - Nested")
	assert.Contains(t, result, "* Item 3")
	assert.Contains(t, result, "• Item 4")
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t multiple    spaces")

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_NonBreakingSpaces(t *testing.T) {
	result := CleanText("Data Analyst  Intern")

	assert.Equal(t, "Data Analyst Intern", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"

	assert.Equal(t, input, CleanText(input))
}

func TestNormalizeJobDescription_PlainText(t *testing.T) {
	input := "Data Analyst Intern at Acme Corp.   Responsibilities include dashboarding."

	assert.Equal(t, "Data Analyst Intern at Acme Corp. Responsibilities include dashboarding.", NormalizeJobDescription(input))
}

func TestNormalizeJobDescription_HTML(t *testing.T) {
	input := `<div><h2>Data Analyst Intern</h2><p>Acme Corp is hiring.</p><ul><li>SQL reporting</li><li>Dashboards</li></ul><script>track()</script></div>`

	result := NormalizeJobDescription(input)

	assert.Contains(t, result, "Data Analyst Intern")
	assert.Contains(t, result, "Acme Corp is hiring.")
	assert.Contains(t, result, "- SQL reporting")
	assert.Contains(t, result, "- Dashboards")
	assert.NotContains(t, result, "track()")
	assert.NotContains(t, result, "<p>")
}

func TestNormalizeJobDescription_AngleBracketsInText(t *testing.T) {
	input := "Requirements: <3 years experience, strong SQL"

	assert.Equal(t, input, NormalizeJobDescription(input))
}
