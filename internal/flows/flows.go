package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/intern-ease/internal/ingestion"
	"github.com/jonathan/intern-ease/internal/llm"
	"github.com/jonathan/intern-ease/internal/prompts"
	"github.com/jonathan/intern-ease/internal/schemas"
	"github.com/jonathan/intern-ease/internal/types"
	embedded "github.com/jonathan/intern-ease/schemas"
)

// DateLayout is how today's date appears on the cover letter
const DateLayout = "January 2, 2006"

// attachedResumeNote stands in for the resume text when the file goes as media
const attachedResumeNote = "The resume is attached as a file. Read it from the attachment."

// Flows runs the generation steps against one LLM client.
// It is safe for concurrent use if the client is.
type Flows struct {
	client llm.Client
	now    func() time.Time
}

// Option configures Flows
type Option func(*Flows)

// WithClock overrides the clock used for the cover letter date
func WithClock(now func() time.Time) Option {
	return func(f *Flows) {
		f.now = now
	}
}

// New creates Flows backed by client
func New(client llm.Client, opts ...Option) *Flows {
	f := &Flows{client: client, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ResumeInput is the input to OptimizeResume
type ResumeInput struct {
	Resume         *ingestion.Blob
	JobDescription string
	UserDetails    string
}

// CoverLetterInput is the input to GenerateCoverLetter
type CoverLetterInput struct {
	PersonalDetails types.PersonalDetails
	JobDescription  string
	Resume          *types.OptimizedResume
}

// EmailInput is the input to GenerateEmail
type EmailInput struct {
	JobDescription  string
	ResumeSummary   string
	CoverLetterText string
	Personal        types.PersonalDetails
}

// OptimizeResume tailors the uploaded resume to the job description.
// Extractable documents are sent as text; images and PDFs without a text
// layer are attached to the request.
func (f *Flows) OptimizeResume(ctx context.Context, in ResumeInput) (*types.OptimizedResume, error) {
	if in.Resume == nil {
		return nil, &GenerationError{Stage: StageResume, Cause: &ParseError{Message: "resume is missing"}}
	}

	resumeText, media, err := resumeMaterial(in.Resume)
	if err != nil {
		return nil, &GenerationError{Stage: StageResume, Cause: err}
	}

	var out types.OptimizedResume
	err = f.generate(ctx, call{
		stage:  StageResume,
		tier:   llm.TierStandard,
		key:    prompts.KeyOptimizeResume,
		schema: embedded.OptimizedResume,
		media:  media,
		data: map[string]string{
			"ResumeText":     resumeText,
			"JobDescription": in.JobDescription,
			"UserDetails":    in.UserDetails,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateCoverLetter writes a cover letter from the optimized resume
func (f *Flows) GenerateCoverLetter(ctx context.Context, in CoverLetterInput) (*types.CoverLetter, error) {
	if in.Resume == nil {
		return nil, &GenerationError{Stage: StageCoverLetter, Cause: &ParseError{Message: "optimized resume is missing"}}
	}

	resumeJSON, err := json.MarshalIndent(in.Resume, "", "  ")
	if err != nil {
		return nil, &GenerationError{Stage: StageCoverLetter, Cause: &ParseError{Message: "cannot encode resume", Cause: err}}
	}

	var out types.CoverLetter
	err = f.generate(ctx, call{
		stage:  StageCoverLetter,
		tier:   llm.TierStandard,
		key:    prompts.KeyGenerateCoverLetter,
		schema: embedded.CoverLetter,
		data: map[string]string{
			"Today":           f.now().Format(DateLayout),
			"PersonalDetails": personalLines(in.PersonalDetails),
			"JobDescription":  in.JobDescription,
			"Resume":          string(resumeJSON),
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateEmail writes the outreach email that accompanies the application
func (f *Flows) GenerateEmail(ctx context.Context, in EmailInput) (types.EmailContent, error) {
	var out struct {
		Email string `json:"email"`
	}
	err := f.generate(ctx, call{
		stage:  StageEmail,
		tier:   llm.TierLite,
		key:    prompts.KeyGenerateEmail,
		schema: embedded.Email,
		data: map[string]string{
			"Name":           in.Personal.Name,
			"Email":          in.Personal.Email,
			"Phone":          in.Personal.Phone,
			"JobDescription": in.JobDescription,
			"Resume":         in.ResumeSummary,
			"CoverLetter":    in.CoverLetterText,
		},
	}, &out)
	if err != nil {
		return "", err
	}

	email := strings.TrimSpace(out.Email)
	if email == "" {
		return "", &GenerationError{Stage: StageEmail, Cause: &ParseError{Message: "email is empty"}}
	}
	return types.EmailContent(email), nil
}

type call struct {
	stage  Stage
	tier   llm.ModelTier
	key    string
	schema string
	media  []llm.Media
	data   map[string]string
}

// generate renders the prompt, calls the model once, validates the JSON
// against the stage schema and decodes it into out.
func (f *Flows) generate(ctx context.Context, c call, out any) error {
	schemaDoc, err := embedded.Read(c.schema)
	if err != nil {
		return &GenerationError{Stage: c.stage, Cause: &schemas.SchemaLoadError{Path: c.schema, Message: "schema not embedded", Cause: err}}
	}

	data := make(map[string]string, len(c.data)+1)
	for k, v := range c.data {
		data[k] = v
	}
	data["OutputSchema"] = string(schemaDoc)

	prompt, err := prompts.Render(prompts.GenerationFile, c.key, data)
	if err != nil {
		return &GenerationError{Stage: c.stage, Cause: fmt.Errorf("failed to render prompt: %w", err)}
	}

	responseText, err := f.client.GenerateJSON(ctx, llm.Request{Prompt: prompt, Media: c.media, Tier: c.tier})
	if err != nil {
		return &GenerationError{Stage: c.stage, Cause: err}
	}

	responseText = llm.CleanJSONBlock(responseText)
	if err := schemas.Validate(c.schema, []byte(responseText)); err != nil {
		return &GenerationError{Stage: c.stage, Cause: err}
	}

	if err := json.Unmarshal([]byte(responseText), out); err != nil {
		return &GenerationError{Stage: c.stage, Cause: &ParseError{Message: "failed to decode response", Cause: err}}
	}
	return nil
}

// resumeMaterial decides whether the resume goes into the prompt as text or
// rides along as an attachment.
func resumeMaterial(blob *ingestion.Blob) (string, []llm.Media, error) {
	text, err := ingestion.ExtractText(blob)
	if err == nil && text != "" {
		return text, nil, nil
	}

	mimeType := blob.BaseType()
	if blob.IsImage() || mimeType == "application/pdf" {
		return attachedResumeNote, []llm.Media{{MIMEType: mimeType, Data: blob.Data}}, nil
	}
	if err == nil {
		err = &ParseError{Message: "resume contains no text"}
	}
	return "", nil, err
}

func personalLines(p types.PersonalDetails) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s", p.Name, p.Email, p.Phone)
}
