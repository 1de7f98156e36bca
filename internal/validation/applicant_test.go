package validation

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/jonathan/intern-ease/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() types.ApplicantInput {
	return types.ApplicantInput{
		Name:           "Alex Lee",
		Email:          "alex@example.com",
		Phone:          "555-0100",
		GraduationYear: "2026",
		Region:         "Chicago, IL",
		Skills:         "Python, SQL, Tableau",
		Projects:       "Built a sales dashboard for a student club",
		ResumeDataURI:  "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("Alex Lee\nData Science student")),
		JobDescription: "Data Analyst Intern at Acme Corp. Build weekly SQL reports.",
	}
}

func TestValidateApplicant_Valid(t *testing.T) {
	in, err := ValidateApplicant(validForm())

	require.NoError(t, err)
	assert.Equal(t, "Alex Lee", in.Name)
}

func TestValidateApplicant_TrimsValues(t *testing.T) {
	form := validForm()
	form.Name = "  Alex Lee \n"
	form.Email = " alex@example.com "

	in, err := ValidateApplicant(form)

	require.NoError(t, err)
	assert.Equal(t, "Alex Lee", in.Name)
	assert.Equal(t, "alex@example.com", in.Email)
}

func TestValidateApplicant_ShortJobDescription(t *testing.T) {
	form := validForm()
	form.JobDescription = "Intern"

	_, err := ValidateApplicant(form)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "jobDescription", verr.Fields[0].Field)
	assert.Equal(t, "Job description must be at least 20 characters long.", err.Error())
}

func TestValidateApplicant_WhitespaceOnlyIsMissing(t *testing.T) {
	form := validForm()
	form.Region = "   "

	_, err := ValidateApplicant(form)

	require.Error(t, err)
	assert.Equal(t, "Region is required.", err.Error())
}

func TestValidateApplicant_AggregatesInFieldOrder(t *testing.T) {
	form := validForm()
	form.Name = ""
	form.Email = "not-an-email"
	form.Skills = "Go"
	form.ResumeDataURI = ""

	_, err := ValidateApplicant(form)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"name", "email", "skills", "resumeDataUri"}, fields)
	assert.Equal(t,
		"Name is required. Invalid email address. Please describe your skills in at least 10 characters. Resume is required. Please upload your resume.",
		err.Error())
	assert.Equal(t, "Invalid email address.", verr.Messages()["email"])
}

func TestValidateApplicant_GraduationYearLength(t *testing.T) {
	form := validForm()
	form.GraduationYear = "26"

	_, err := ValidateApplicant(form)

	require.Error(t, err)
	assert.Equal(t, "Graduation year is required.", err.Error())
}

func TestValidateApplicant_UnreadableResume(t *testing.T) {
	form := validForm()
	form.ResumeDataURI = "data:application/pdf;base64,"
	form.Phone = ""

	_, err := ValidateApplicant(form)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "phone", verr.Fields[0].Field)
	assert.Equal(t, "resumeDataUri", verr.Fields[1].Field)
	assert.Equal(t, ResumeUnreadableMessage, verr.Fields[1].Message)
}

func TestValidationError_EmptyUsesFallback(t *testing.T) {
	err := &ValidationError{}

	assert.Equal(t, FallbackMessage, err.Error())
}
