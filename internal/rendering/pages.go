package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/jonathan/intern-ease/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Notice titles shown in the banner
const (
	NoticeErrorTitle   = "An error occurred"
	NoticeMissingTitle = "No data found"
	NoticeBrokenTitle  = "Error loading data"
)

// Notice is the notification banner at the top of a page
type Notice struct {
	Kind    string // "error" or "info"
	Title   string
	Message string
}

// ErrorNotice builds the banner for a failed submission
func ErrorNotice(message string) *Notice {
	return &Notice{Kind: "error", Title: NoticeErrorTitle, Message: message}
}

// Notice codes carried in the ?notice= query after a redirect to the form
const (
	NoticeCodeMissing = "missing"
	NoticeCodeBroken  = "broken"
)

// NoticeFor maps a redirect notice code to its banner. Unknown codes show nothing.
func NoticeFor(code string) *Notice {
	switch code {
	case NoticeCodeMissing:
		return &Notice{Kind: "error", Title: NoticeMissingTitle, Message: "Redirecting to homepage."}
	case NoticeCodeBroken:
		return &Notice{Kind: "error", Title: NoticeBrokenTitle, Message: "Could not parse results. Redirecting to homepage."}
	default:
		return nil
	}
}

// FormPage is the data for the applicant form
type FormPage struct {
	Values types.ApplicantInput
	Notice *Notice
}

// HasResume reports whether a resume is carried over from a previous submit
func (p FormPage) HasResume() bool {
	return p.Values.ResumeDataURI != ""
}

// ResultsPage is the data for the three-tab results view
type ResultsPage struct {
	Result          *types.GenerationResult
	CoverLetterText string
	Notice          *Notice
}

// NewResultsPage fills the derived text fields
func NewResultsPage(result *types.GenerationResult) ResultsPage {
	return ResultsPage{
		Result:          result,
		CoverLetterText: CoverLetterText(&result.CoverLetter),
	}
}

type documentPage struct {
	Title    string
	Kind     Document
	IsResume bool
	Result   *types.GenerationResult
}

// Renderer executes the embedded page templates
type Renderer struct {
	form     *template.Template
	results  *template.Template
	document *template.Template
}

// NewRenderer parses every embedded template
func NewRenderer() (*Renderer, error) {
	parse := func(name string, files ...string) (*template.Template, error) {
		tmpl, err := template.New(name).ParseFS(templateFS, files...)
		if err != nil {
			return nil, &TemplateError{Message: "failed to parse " + name, Cause: err}
		}
		return tmpl, nil
	}

	form, err := parse("form", "templates/layout.html", "templates/styles.html", "templates/form.html")
	if err != nil {
		return nil, err
	}
	results, err := parse("results", "templates/layout.html", "templates/styles.html", "templates/documents.html", "templates/results.html")
	if err != nil {
		return nil, err
	}
	document, err := parse("document", "templates/styles.html", "templates/documents.html", "templates/document.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{form: form, results: results, document: document}, nil
}

// MustNewRenderer is NewRenderer for callers that cannot recover
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Form writes the applicant form page
func (r *Renderer) Form(w io.Writer, page FormPage) error {
	return execute(w, r.form, "layout", page)
}

// Results writes the results page
func (r *Renderer) Results(w io.Writer, page ResultsPage) error {
	return execute(w, r.results, "layout", page)
}

// Document writes a standalone printable page for one document
func (r *Renderer) Document(w io.Writer, doc Document, result *types.GenerationResult) error {
	return execute(w, r.document, "document", documentPage{
		Title:    doc.Title(),
		Kind:     doc,
		IsResume: doc == DocResume,
		Result:   result,
	})
}

// DocumentHTML is Document rendered into a string
func (r *Renderer) DocumentHTML(doc Document, result *types.GenerationResult) (string, error) {
	var buf bytes.Buffer
	if err := r.Document(&buf, doc, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// execute renders into a buffer first so a failing template writes nothing
func execute(w io.Writer, tmpl *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return &TemplateError{Message: "failed to execute " + name, Cause: err}
	}
	_, err := buf.WriteTo(w)
	return err
}
