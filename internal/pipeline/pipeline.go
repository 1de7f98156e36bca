// Package pipeline runs a submission through validation and the three
// generation flows, strictly one stage at a time.
package pipeline

import (
	"context"
	"errors"

	"github.com/jonathan/intern-ease/internal/flows"
	"github.com/jonathan/intern-ease/internal/ingestion"
	"github.com/jonathan/intern-ease/internal/logging"
	"github.com/jonathan/intern-ease/internal/types"
	"github.com/jonathan/intern-ease/internal/validation"
)

// User-facing failure messages. Causes are logged, never shown.
const (
	MsgResumeFailed      = "resume generation failed"
	MsgCoverLetterFailed = "cover letter generation failed"
	MsgEmailFailed       = "email generation failed"
	MsgUnexpected        = "An unexpected error occurred while generating content."
)

// Step names reported through ProgressEvent
const (
	StepValidate    = "validate"
	StepResume      = string(flows.StageResume)
	StepCoverLetter = string(flows.StageCoverLetter)
	StepEmail       = string(flows.StageEmail)
	StepComplete    = "complete"
)

// Generator is the set of generation flows the orchestrator drives.
// *flows.Flows implements it.
type Generator interface {
	OptimizeResume(ctx context.Context, in flows.ResumeInput) (*types.OptimizedResume, error)
	GenerateCoverLetter(ctx context.Context, in flows.CoverLetterInput) (*types.CoverLetter, error)
	GenerateEmail(ctx context.Context, in flows.EmailInput) (types.EmailContent, error)
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds per-run settings
type RunOptions struct {
	RunID      string
	OnProgress ProgressCallback
}

// StageError is a failed generation stage. Error() is the fixed user-facing
// message for the stage; the cause is available through Unwrap.
type StageError struct {
	Stage flows.Stage
	Cause error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case flows.StageResume:
		return MsgResumeFailed
	case flows.StageCoverLetter:
		return MsgCoverLetterFailed
	case flows.StageEmail:
		return MsgEmailFailed
	default:
		return MsgUnexpected
	}
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Orchestrator sequences validation and the generation flows
type Orchestrator struct {
	gen Generator
	log *logging.Logger
}

// New creates an Orchestrator. A nil logger discards output.
func New(gen Generator, log *logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.NewNop()
	}
	return &Orchestrator{gen: gen, log: log}
}

// Run executes the pipeline and folds the outcome into the uniform result
func (o *Orchestrator) Run(ctx context.Context, form types.ApplicantInput) types.Result {
	return ResultOf(o.Execute(ctx, form, RunOptions{}))
}

// Execute validates the form and runs resume, cover letter and email in
// order. It stops at the first failure. Errors are *validation.ValidationError,
// *validation.Error or *StageError.
func (o *Orchestrator) Execute(ctx context.Context, form types.ApplicantInput, opts RunOptions) (*types.GenerationResult, error) {
	log := o.log
	if opts.RunID != "" {
		log = log.With("run_id", opts.RunID)
	}

	emitProgress(&opts, StepValidate, "validation", "Checking your details", nil)
	in, err := validation.ValidateApplicant(form)
	if err != nil {
		log.Info("submission rejected", "error", err)
		return nil, err
	}

	blob, err := ingestion.ParseDataURI(in.ResumeDataURI)
	if err != nil {
		// ValidateApplicant already parsed it; only reachable on a validator bug
		return nil, &StageError{Stage: flows.StageResume, Cause: err}
	}

	emitProgress(&opts, StepResume, "generation", "Optimizing your resume", nil)
	resume, err := o.gen.OptimizeResume(ctx, flows.ResumeInput{
		Resume:         blob,
		JobDescription: in.JobDescription,
		UserDetails:    in.UserDetails(),
	})
	if err != nil {
		return nil, o.stageFailed(log, flows.StageResume, err)
	}
	emitProgress(&opts, StepResume, "generation", "Resume optimized", resume)

	personal := in.PersonalDetails()

	emitProgress(&opts, StepCoverLetter, "generation", "Writing your cover letter", nil)
	letter, err := o.gen.GenerateCoverLetter(ctx, flows.CoverLetterInput{
		PersonalDetails: personal,
		JobDescription:  in.JobDescription,
		Resume:          resume,
	})
	if err != nil {
		return nil, o.stageFailed(log, flows.StageCoverLetter, err)
	}
	emitProgress(&opts, StepCoverLetter, "generation", "Cover letter written", letter)

	emitProgress(&opts, StepEmail, "generation", "Drafting your email", nil)
	email, err := o.gen.GenerateEmail(ctx, flows.EmailInput{
		JobDescription:  in.JobDescription,
		ResumeSummary:   resume.Summary(),
		CoverLetterText: letter.Text(),
		Personal:        personal,
	})
	if err != nil {
		return nil, o.stageFailed(log, flows.StageEmail, err)
	}

	result := &types.GenerationResult{
		OptimizedResume: *resume,
		CoverLetter:     *letter,
		Email:           email,
	}
	emitProgress(&opts, StepComplete, "generation", "All documents ready", nil)
	log.Info("generation complete", "name", in.Name)
	return result, nil
}

func (o *Orchestrator) stageFailed(log *logging.Logger, stage flows.Stage, cause error) error {
	log.Warn("generation stage failed", "stage", string(stage), "error", cause)
	return &StageError{Stage: stage, Cause: cause}
}

// ResultOf converts an Execute outcome into the uniform {data, error} shape
func ResultOf(data *types.GenerationResult, err error) types.Result {
	if err == nil {
		return types.Success(data)
	}

	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return types.Failure(verr.Error())
	}
	var vfail *validation.Error
	if errors.As(err, &vfail) {
		return types.Failure(validation.FallbackMessage)
	}
	var serr *StageError
	if errors.As(err, &serr) {
		return types.Failure(serr.Error())
	}
	return types.Failure(MsgUnexpected)
}

// emitProgress sends a progress event if a callback is configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    opts.RunID,
			Content:  content,
		})
	}
}
