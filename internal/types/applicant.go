// Package types provides type definitions for structured data used throughout the intern-ease system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ApplicantInput is a validated form submission.
type ApplicantInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	GraduationYear string `json:"graduationYear"`
	Region         string `json:"region"`
	Skills         string `json:"skills"`
	Projects       string `json:"projects"`
	ResumeDataURI  string `json:"resumeDataUri"`
	JobDescription string `json:"jobDescription"`
}

// PersonalDetails is the subset of the applicant passed to the email flow
type PersonalDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UserDetails flattens the personal fields into labelled lines for prompt input.
func (a *ApplicantInput) UserDetails() string {
	lines := []string{
		"Name: " + a.Name,
		"Email: " + a.Email,
		"Phone: " + a.Phone,
		"Graduation Year: " + a.GraduationYear,
		"Region: " + a.Region,
		"Skills: " + a.Skills,
		"Projects: " + a.Projects,
	}
	return strings.Join(lines, "\n")
}

// PersonalDetails returns the applicant's name, email and phone.
func (a *ApplicantInput) PersonalDetails() PersonalDetails {
	return PersonalDetails{Name: a.Name, Email: a.Email, Phone: a.Phone}
}
