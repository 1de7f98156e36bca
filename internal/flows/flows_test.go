package flows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/intern-ease/internal/flows/flowstest"
	"github.com/jonathan/intern-ease/internal/ingestion"
	"github.com/jonathan/intern-ease/internal/llm"
	"github.com/jonathan/intern-ease/internal/schemas"
	"github.com/jonathan/intern-ease/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }

func textResume() *ingestion.Blob {
	return &ingestion.Blob{MIMEType: "text/plain", Data: []byte("Alex Lee\nData Science student\nPython, SQL")}
}

func TestOptimizeResume_Success(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: "```json\n" + flowstest.ResumeJSON + "\n```"})
	f := New(client)

	resume, err := f.OptimizeResume(context.Background(), ResumeInput{
		Resume:         textResume(),
		JobDescription: "Data Analyst Intern at Acme Corp",
		UserDetails:    "Name: Alex Lee",
	})

	require.NoError(t, err)
	assert.Equal(t, "Alex Lee", resume.FullName)
	assert.Equal(t, []string{"Python", "SQL", "Tableau"}, resume.Skills)

	require.Len(t, client.Requests, 1)
	req := client.Requests[0]
	assert.Equal(t, llm.TierStandard, req.Tier)
	assert.Empty(t, req.Media)
	assert.Contains(t, req.Prompt, "Data Science student")
	assert.Contains(t, req.Prompt, "Data Analyst Intern at Acme Corp")
	assert.Contains(t, req.Prompt, "Name: Alex Lee")
	assert.Contains(t, req.Prompt, `"careerObjective"`)
	assert.NotContains(t, req.Prompt, "{{.")
}

func TestOptimizeResume_ReplyWithPreamble(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: "Here is the optimized resume:\n" + flowstest.ResumeJSON + "\nGood luck with the application!"})
	f := New(client)

	resume, err := f.OptimizeResume(context.Background(), ResumeInput{
		Resume:         textResume(),
		JobDescription: "Data Analyst Intern at Acme Corp",
	})

	require.NoError(t, err)
	assert.Equal(t, "Alex Lee", resume.FullName)
}

func TestOptimizeResume_ImageIsAttached(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: flowstest.ResumeJSON})
	f := New(client)
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	_, err := f.OptimizeResume(context.Background(), ResumeInput{
		Resume:         &ingestion.Blob{MIMEType: "image/png", Data: png},
		JobDescription: "Data Analyst Intern at Acme Corp",
	})

	require.NoError(t, err)
	require.Len(t, client.Requests[0].Media, 1)
	assert.Equal(t, "image/png", client.Requests[0].Media[0].MIMEType)
	assert.Contains(t, client.Requests[0].Prompt, attachedResumeNote)
}

func TestOptimizeResume_SchemaViolation(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: `{"fullName": "Alex Lee"}`})
	f := New(client)

	_, err := f.OptimizeResume(context.Background(), ResumeInput{Resume: textResume()})

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageResume, genErr.Stage)

	var schemaErr *schemas.ValidationError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestOptimizeResume_NotJSON(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: "I cannot help with that."})
	f := New(client)

	_, err := f.OptimizeResume(context.Background(), ResumeInput{Resume: textResume()})

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageResume, genErr.Stage)
}

func TestOptimizeResume_ModelError(t *testing.T) {
	apiErr := &llm.APICallError{Provider: llm.ProviderGemini, Message: "quota exceeded"}
	client := flowstest.NewClient(flowstest.Response{Err: apiErr})
	f := New(client)

	_, err := f.OptimizeResume(context.Background(), ResumeInput{Resume: textResume()})

	assert.ErrorIs(t, err, apiErr)
	assert.Equal(t, 1, client.Calls(), "flows never retry")
}

func TestOptimizeResume_UnsupportedResume(t *testing.T) {
	client := flowstest.NewClient()
	f := New(client)

	_, err := f.OptimizeResume(context.Background(), ResumeInput{
		Resume: &ingestion.Blob{MIMEType: "application/x-msdownload", Data: []byte("MZ")},
	})

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 0, client.Calls())
}

func TestGenerateCoverLetter_Success(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: flowstest.CoverLetterJSON})
	f := New(client, WithClock(fixedNow))
	resume := &types.OptimizedResume{FullName: "Alex Lee", CareerObjective: "Turn data into decisions"}

	letter, err := f.GenerateCoverLetter(context.Background(), CoverLetterInput{
		PersonalDetails: types.PersonalDetails{Name: "Alex Lee", Email: "alex@example.com", Phone: "555-0100"},
		JobDescription:  "Data Analyst Intern at Acme Corp",
		Resume:          resume,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", letter.Recipient.Company)
	assert.Len(t, letter.Body, 3)

	prompt := client.Requests[0].Prompt
	assert.Contains(t, prompt, "October 15, 2026")
	assert.Contains(t, prompt, "Turn data into decisions")
	assert.Contains(t, prompt, "Email: alex@example.com")
}

func TestGenerateCoverLetter_EmptyBody(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: `{
		"applicant": {"name": "Alex Lee", "address": "", "phone": "", "email": ""},
		"date": "October 15, 2026",
		"recipient": {"name": "Hiring Manager", "company": "Acme", "address": ""},
		"salutation": "Dear Hiring Manager,",
		"body": [],
		"closing": "Sincerely,"
	}`})
	f := New(client)

	_, err := f.GenerateCoverLetter(context.Background(), CoverLetterInput{Resume: &types.OptimizedResume{}})

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageCoverLetter, genErr.Stage)
}

func TestGenerateEmail_Success(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: flowstest.EmailJSON})
	f := New(client)

	email, err := f.GenerateEmail(context.Background(), EmailInput{
		JobDescription:  "Data Analyst Intern at Acme Corp",
		ResumeSummary:   "CAREER OBJECTIVE\nTurn data into decisions",
		CoverLetterText: "Dear Hiring Manager,",
		Personal:        types.PersonalDetails{Name: "Alex Lee", Email: "alex@example.com", Phone: "555-0100"},
	})

	require.NoError(t, err)
	assert.Contains(t, string(email), "Alex Lee")

	req := client.Requests[0]
	assert.Equal(t, llm.TierLite, req.Tier)
	assert.Contains(t, req.Prompt, "Applicant Phone: 555-0100")
	assert.Contains(t, req.Prompt, "Turn data into decisions")
}

func TestGenerateEmail_WhitespaceOnly(t *testing.T) {
	client := flowstest.NewClient(flowstest.Response{Text: `{"email": "   \n  "}`})
	f := New(client)

	email, err := f.GenerateEmail(context.Background(), EmailInput{})

	assert.Empty(t, email)
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageEmail, genErr.Stage)
}

func TestGenerationError_Message(t *testing.T) {
	err := &GenerationError{Stage: StageCoverLetter, Cause: errors.New("boom")}

	assert.Equal(t, "cover-letter generation failed: boom", err.Error())
}
