package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_GenerationPrompts(t *testing.T) {
	ClearCache()

	for _, key := range []string{KeyOptimizeResume, KeyGenerateCoverLetter, KeyGenerateEmail} {
		prompt, err := Get(GenerationFile, key)
		require.NoError(t, err, key)
		assert.Contains(t, prompt, "{{.OutputSchema}}", key)
		assert.Contains(t, prompt, "{{.JobDescription}}", key)
	}
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(GenerationFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_DoesNotExpandValues(t *testing.T) {
	template := "Skills: {{.Skills}} / Company: {{.Company}}"
	data := map[string]string{
		"Skills":  "Go, {{.Company}}",
		"Company": "Acme",
	}

	assert.Equal(t, "Skills: Go, {{.Company}} / Company: Acme", Format(template, data))
}

func TestPlaceholders(t *testing.T) {
	missing := Placeholders("{{.A}} {{.B}} {{.A}} {{.C}}", map[string]string{"B": "x"})

	assert.Equal(t, []string{"A", "C"}, missing)
}

func TestRender_MissingValues(t *testing.T) {
	ClearCache()

	_, err := Render(GenerationFile, KeyGenerateEmail, map[string]string{"Name": "Alex"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing values")
	assert.Contains(t, err.Error(), "JobDescription")
}

func TestRender_EmailPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Render(GenerationFile, KeyGenerateEmail, map[string]string{
		"OutputSchema":   "{}",
		"Name":           "Alex Lee",
		"Email":          "alex@example.com",
		"Phone":          "555-0100",
		"JobDescription": "Data Analyst Intern at Acme Corp.",
		"Resume":         "Alex Lee resume",
		"CoverLetter":    "Dear Hiring Manager,",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Applicant Name: Alex Lee")
	assert.Contains(t, prompt, "Data Analyst Intern at Acme Corp.")
	assert.NotContains(t, prompt, "{{.")
}
