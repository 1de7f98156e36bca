// Package flowstest provides a scripted LLM client and canned model output
// for tests of code built on the generation flows.
package flowstest

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/jonathan/intern-ease/internal/llm"
	"github.com/jonathan/intern-ease/internal/types"
)

// ResumeJSON is a model answer that satisfies the optimized resume schema
const ResumeJSON = `{
  "fullName": "Alex Lee",
  "academicTitle": "B.S. Candidate, Data Science",
  "contact": {"phone": "555-0100", "email": "alex@example.com", "location": "Chicago, IL"},
  "education": {"degree": "B.S. Data Science", "graduationYear": "2026", "school": "University of Illinois Chicago", "location": "Chicago, IL"},
  "skills": ["Python", "SQL", "Tableau"],
  "awards": [{"date": "2024", "name": "Dean's List", "location": "UIC", "description": "Top 10% GPA"}],
  "careerObjective": "Data analyst intern who turns raw data into weekly decisions.",
  "experience": [{"title": "Student Analyst", "dateRange": "2024 - Present", "accomplishments": ["Built SQL reports for club budgets"]}],
  "projects": [{"name": "Sales Dashboard", "dateRange": "2025", "description": ["Tableau dashboard tracking club sales"]}]
}`

// CoverLetterJSON is a model answer that satisfies the cover letter schema
const CoverLetterJSON = `{
  "applicant": {"name": "Alex Lee", "address": "Chicago, IL", "phone": "555-0100", "email": "alex@example.com"},
  "date": "October 15, 2026",
  "recipient": {"name": "Hiring Manager", "company": "Acme Corp", "address": "Chicago, IL"},
  "salutation": "Dear Hiring Manager,",
  "body": [
    "I am applying for the Data Analyst Intern position at Acme Corp.",
    "At UIC I built a Tableau sales dashboard backed by SQL.",
    "Thank you for your time and consideration."
  ],
  "closing": "Sincerely,"
}`

// EmailJSON is a model answer that satisfies the email schema
const EmailJSON = `{"email": "Subject: Data Analyst Intern Application\n\nDear Hiring Team,\n\nPlease find my resume and cover letter attached.\n\nBest regards,\nAlex Lee"}`

// Applicant returns a submission that passes validation
func Applicant() types.ApplicantInput {
	return types.ApplicantInput{
		Name:           "Alex Lee",
		Email:          "alex@example.com",
		Phone:          "555-0100",
		GraduationYear: "2026",
		Region:         "Chicago, IL",
		Skills:         "Python, SQL, Tableau",
		Projects:       "Sales dashboard for a student club",
		ResumeDataURI:  "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("Alex Lee\nUIC Data Science\nPython SQL Tableau")),
		JobDescription: "Data Analyst Intern at Acme Corp. Build weekly SQL reports and dashboards.",
	}
}

// Client is an llm.Client that replays scripted answers in call order.
// A nil Err with an exhausted script is an error.
type Client struct {
	mu        sync.Mutex
	Responses []Response
	Requests  []llm.Request
}

// Response is one scripted answer
type Response struct {
	Text string
	Err  error
}

// NewClient scripts the answers in order
func NewClient(responses ...Response) *Client {
	return &Client{Responses: responses}
}

// Happy scripts a successful resume, cover letter and email
func Happy() *Client {
	return NewClient(Response{Text: ResumeJSON}, Response{Text: CoverLetterJSON}, Response{Text: EmailJSON})
}

// GenerateContent implements llm.Client
func (c *Client) GenerateContent(_ context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := len(c.Requests)
	c.Requests = append(c.Requests, req)
	if i >= len(c.Responses) {
		return "", fmt.Errorf("unexpected call %d", i+1)
	}
	return c.Responses[i].Text, c.Responses[i].Err
}

// GenerateJSON implements llm.Client
func (c *Client) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	text, err := c.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(text), nil
}

// GetModel implements llm.Client
func (c *Client) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close implements llm.Client
func (c *Client) Close() error {
	return nil
}

// Calls returns how many requests were made
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Requests)
}
