package rendering

import (
	"strings"

	"github.com/jonathan/intern-ease/internal/types"
)

// Document identifies one of the three generated documents
type Document string

// Document kinds, also used as download file names
const (
	DocResume      Document = "resume"
	DocCoverLetter Document = "cover-letter"
	DocEmail       Document = "email"
)

// Documents lists every document in display order
func Documents() []Document {
	return []Document{DocResume, DocCoverLetter, DocEmail}
}

// ParseDocument maps a URL or file name segment to a Document
func ParseDocument(s string) (Document, bool) {
	switch d := Document(s); d {
	case DocResume, DocCoverLetter, DocEmail:
		return d, true
	default:
		return "", false
	}
}

// Title is the human-readable name
func (d Document) Title() string {
	switch d {
	case DocResume:
		return "Optimized Resume"
	case DocCoverLetter:
		return "Cover Letter"
	case DocEmail:
		return "Email"
	default:
		return string(d)
	}
}

// FileName returns the download name with the given extension
func (d Document) FileName(ext string) string {
	return string(d) + "." + strings.TrimPrefix(ext, ".")
}

// ResumeText renders the resume as plain text
func ResumeText(r *types.OptimizedResume) string {
	return r.Summary() + "\n"
}

// CoverLetterText renders the full letter for copying
func CoverLetterText(c *types.CoverLetter) string {
	return c.Text()
}

// DocumentText renders any document as plain text
func DocumentText(doc Document, result *types.GenerationResult) string {
	switch doc {
	case DocResume:
		return ResumeText(&result.OptimizedResume)
	case DocCoverLetter:
		return CoverLetterText(&result.CoverLetter) + "\n"
	default:
		return string(result.Email) + "\n"
	}
}
