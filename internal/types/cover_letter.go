// Package types provides type definitions for structured data used throughout the intern-ease system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CoverLetter is the structured letter produced by the cover letter flow
type CoverLetter struct {
	Applicant  LetterApplicant `json:"applicant"`
	Date       string          `json:"date"`
	Recipient  LetterRecipient `json:"recipient"`
	Salutation string          `json:"salutation"`
	Body       []string        `json:"body"`
	Closing    string          `json:"closing"`
}

// LetterApplicant is the sender block of a cover letter
type LetterApplicant struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// LetterRecipient is the recipient block of a cover letter
type LetterRecipient struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Address string `json:"address"`
}

// Text renders the full letter as plain text, blocks separated by blank lines.
func (c *CoverLetter) Text() string {
	blocks := []string{
		strings.Join([]string{c.Applicant.Name, c.Applicant.Address, c.Applicant.Phone, c.Applicant.Email}, "\n"),
		c.Date,
		strings.Join([]string{c.Recipient.Name, c.Recipient.Company, c.Recipient.Address}, "\n"),
		c.Salutation,
		strings.Join(c.Body, "\n\n"),
		c.Closing,
		c.Applicant.Name,
	}
	return strings.Join(blocks, "\n\n")
}
