// Package types provides type definitions for structured data used throughout the intern-ease system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// OptimizedResume is the structured resume produced by the resume flow
type OptimizedResume struct {
	FullName        string       `json:"fullName"`
	AcademicTitle   string       `json:"academicTitle"`
	Contact         Contact      `json:"contact"`
	Education       Education    `json:"education"`
	Skills          []string     `json:"skills"`
	Awards          []Award      `json:"awards"`
	CareerObjective string       `json:"careerObjective"`
	Experience      []Experience `json:"experience"`
	Projects        []Project    `json:"projects"`
}

// Contact holds the resume header contact block
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Education holds the single education entry shown on the resume
type Education struct {
	Degree         string `json:"degree"`
	GraduationYear string `json:"graduationYear"`
	School         string `json:"school"`
	Location       string `json:"location"`
}

// Award represents an honor or award entry
type Award struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Experience represents a role with its accomplishments
type Experience struct {
	Title           string   `json:"title"`
	DateRange       string   `json:"dateRange"`
	Accomplishments []string `json:"accomplishments"`
}

// Project represents a project entry
type Project struct {
	Name        string   `json:"name"`
	DateRange   string   `json:"dateRange"`
	Description []string `json:"description"`
}

// Summary flattens the resume into plain text. The email flow receives this
// instead of the structured record, and the plain-text download uses it too.
func (r *OptimizedResume) Summary() string {
	var sb strings.Builder

	sb.WriteString(r.FullName)
	sb.WriteString("\n")
	if r.AcademicTitle != "" {
		sb.WriteString(r.AcademicTitle)
		sb.WriteString("\n")
	}
	sb.WriteString(joinNonEmpty(" | ", r.Contact.Phone, r.Contact.Email, r.Contact.Location, r.Contact.LinkedIn))
	sb.WriteString("\n")

	if r.CareerObjective != "" {
		sb.WriteString("\nCAREER OBJECTIVE\n")
		sb.WriteString(r.CareerObjective)
		sb.WriteString("\n")
	}

	if r.Education.Degree != "" || r.Education.School != "" {
		sb.WriteString("\nEDUCATION\n")
		sb.WriteString(r.Education.Degree)
		sb.WriteString("\n")
		sb.WriteString(joinNonEmpty(", ", r.Education.School, r.Education.Location))
		sb.WriteString("\n")
		if r.Education.GraduationYear != "" {
			sb.WriteString(r.Education.GraduationYear)
			sb.WriteString("\n")
		}
	}

	if len(r.Skills) > 0 {
		sb.WriteString("\nSKILLS\n")
		sb.WriteString(strings.Join(r.Skills, ", "))
		sb.WriteString("\n")
	}

	if len(r.Experience) > 0 {
		sb.WriteString("\nEXPERIENCE\n")
		for _, exp := range r.Experience {
			fmt.Fprintf(&sb, "%s (%s)\n", exp.Title, exp.DateRange)
			for _, acc := range exp.Accomplishments {
				fmt.Fprintf(&sb, "- %s\n", acc)
			}
		}
	}

	if len(r.Projects) > 0 {
		sb.WriteString("\nPROJECTS\n")
		for _, proj := range r.Projects {
			fmt.Fprintf(&sb, "%s (%s)\n", proj.Name, proj.DateRange)
			for _, desc := range proj.Description {
				fmt.Fprintf(&sb, "- %s\n", desc)
			}
		}
	}

	if len(r.Awards) > 0 {
		sb.WriteString("\nAWARDS\n")
		for _, award := range r.Awards {
			fmt.Fprintf(&sb, "%s, %s (%s)\n", award.Name, award.Location, award.Date)
			if award.Description != "" {
				fmt.Fprintf(&sb, "  %s\n", award.Description)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
