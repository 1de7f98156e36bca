// Package schemas embeds the JSON Schemas that generated documents must satisfy.
package schemas

import "embed"

// Schema file names
const (
	OptimizedResume = "optimized_resume.schema.json"
	CoverLetter     = "cover_letter.schema.json"
	Email           = "email.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw schema document.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// All lists every embedded schema file name.
func All() []string {
	return []string{OptimizedResume, CoverLetter, Email}
}
