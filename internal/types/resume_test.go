//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizedResume_JSONFieldNames(t *testing.T) {
	r := sampleResume()

	jsonBytes, err := json.Marshal(r)
	require.NoError(t, err)
	s := string(jsonBytes)
	assert.Contains(t, s, `"fullName":"Alex Lee"`)
	assert.Contains(t, s, `"academicTitle":`)
	assert.Contains(t, s, `"careerObjective":`)
	assert.Contains(t, s, `"dateRange":"2024 - Present"`)
	assert.Contains(t, s, `"graduationYear":"2026"`)
	assert.NotContains(t, s, `"linkedin"`, "empty linkedin should be omitted")
}

func TestOptimizedResume_Summary(t *testing.T) {
	r := sampleResume()

	summary := r.Summary()

	assert.Contains(t, summary, "Alex Lee\n")
	assert.Contains(t, summary, "555-0100 | alex@example.com | Seattle, WA")
	assert.Contains(t, summary, "EDUCATION\nB.S. Data Science\nUniversity of Washington, Seattle, WA\n2026")
	assert.Contains(t, summary, "SKILLS\nPython, SQL, Data Visualization")
	assert.Contains(t, summary, "Research Assistant (2024 - Present)\n- Cleaned survey data\n- Built SQL reports")
	assert.Contains(t, summary, "Campus Events App (2023)\n- Built with React and Firebase")
	assert.Contains(t, summary, "Dean's List, UW (2024)")
	assert.NotContains(t, summary, "\n\n\n")
}

func TestOptimizedResume_SummaryOmitsEmptySections(t *testing.T) {
	r := OptimizedResume{FullName: "Sam Park", Contact: Contact{Email: "sam@example.com"}}

	summary := r.Summary()

	assert.Equal(t, "Sam Park\nsam@example.com", summary)
}
