package service

import (
	"strings"
	"testing"

	"ai-advising-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestFormatIntakeContext(t *testing.T) {
	req := &dto.StudentInfoRequest{
		AcademicInterests: "computational biology",
		CareerPaths:       "research or biotech",
		CoursePreferences: "small seminars",
		Experience:        "wet lab internship",
		Skills:            "Python, R",
		Extracurriculars:  "iGEM team",
		DecisionFactors:   "mentorship quality",
		AdvisorNotes:      "considering a gap year",
	}

	got := formatIntakeContext(req)
	lines := strings.Split(got, "\n")

	assert.Len(t, lines, 8)
	assert.Equal(t, "Academic Interests: computational biology", lines[0])
	assert.Equal(t, "Advisor Notes: considering a gap year", lines[7])

	// Field order is fixed so identical forms produce identical prompts
	wantOrder := []string{
		"Academic Interests:",
		"Career Paths:",
		"Course Preferences:",
		"Experience:",
		"Skills:",
		"Extracurriculars:",
		"Decision Factors:",
		"Advisor Notes:",
	}
	for i, prefix := range wantOrder {
		assert.True(t, strings.HasPrefix(lines[i], prefix), "line %d should start with %q", i, prefix)
	}
}
