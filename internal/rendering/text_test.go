package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocument(t *testing.T) {
	for _, d := range Documents() {
		got, ok := ParseDocument(string(d))
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	_, ok := ParseDocument("transcript")
	assert.False(t, ok)
}

func TestDocument_FileName(t *testing.T) {
	assert.Equal(t, "cover-letter.pdf", DocCoverLetter.FileName("pdf"))
	assert.Equal(t, "resume.txt", DocResume.FileName(".txt"))
}

func TestDocumentText(t *testing.T) {
	result := sampleResult(t)

	resume := DocumentText(DocResume, result)
	assert.Contains(t, resume, "Alex Lee")
	assert.Contains(t, resume, "SKILLS\nPython, SQL, Tableau")

	letter := DocumentText(DocCoverLetter, result)
	assert.Contains(t, letter, "Dear Hiring Manager,\n\nI am applying")
	assert.Contains(t, letter, "Sincerely,\n\nAlex Lee\n")

	assert.Equal(t, string(result.Email)+"\n", DocumentText(DocEmail, result))
}
