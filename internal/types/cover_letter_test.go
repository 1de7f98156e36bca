//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverLetter_Text(t *testing.T) {
	c := sampleCoverLetter()

	expected := "Alex Lee\nSeattle, WA\n555-0100\nalex@example.com\n\n" +
		"October 15, 2026\n\n" +
		"Hiring Manager\nAcme Corp\nSeattle, WA\n\n" +
		"Dear Hiring Manager,\n\n" +
		"First paragraph.\n\nSecond paragraph.\n\n" +
		"Sincerely,\n\n" +
		"Alex Lee"
	assert.Equal(t, expected, c.Text())
}
