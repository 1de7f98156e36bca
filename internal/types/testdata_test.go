//nolint:revive // types is a standard Go package name pattern
package types

func sampleResume() OptimizedResume {
	return OptimizedResume{
		FullName:      "Alex Lee",
		AcademicTitle: "B.S. Candidate, Data Science",
		Contact: Contact{
			Phone:    "555-0100",
			Email:    "alex@example.com",
			Location: "Seattle, WA",
		},
		Education: Education{
			Degree:         "B.S. Data Science",
			GraduationYear: "2026",
			School:         "University of Washington",
			Location:       "Seattle, WA",
		},
		Skills: []string{"Python", "SQL", "Data Visualization"},
		Awards: []Award{
			{Date: "2024", Name: "Dean's List", Location: "UW", Description: "Top 10% GPA"},
		},
		CareerObjective: "Data analyst intern eager to build dashboards.",
		Experience: []Experience{
			{Title: "Research Assistant", DateRange: "2024 - Present", Accomplishments: []string{"Cleaned survey data", "Built SQL reports"}},
		},
		Projects: []Project{
			{Name: "Campus Events App", DateRange: "2023", Description: []string{"Built with React and Firebase"}},
		},
	}
}

func sampleCoverLetter() CoverLetter {
	return CoverLetter{
		Applicant:  LetterApplicant{Name: "Alex Lee", Address: "Seattle, WA", Phone: "555-0100", Email: "alex@example.com"},
		Date:       "October 15, 2026",
		Recipient:  LetterRecipient{Name: "Hiring Manager", Company: "Acme Corp", Address: "Seattle, WA"},
		Salutation: "Dear Hiring Manager,",
		Body:       []string{"First paragraph.", "Second paragraph."},
		Closing:    "Sincerely,",
	}
}
