package dto

import "github.com/google/uuid"

// StudentInfoRequest is the eight-field intake form. Every field is free
// text and required; the advisor notes field carries anything that does not
// fit the others.
type StudentInfoRequest struct {
	AcademicInterests string `json:"academic_interests" validate:"required"`
	CareerPaths       string `json:"career_paths" validate:"required"`
	CoursePreferences string `json:"course_preferences" validate:"required"`
	Experience        string `json:"experience" validate:"required"`
	Skills            string `json:"skills" validate:"required"`
	Extracurriculars  string `json:"extracurriculars" validate:"required"`
	DecisionFactors   string `json:"decision_factors" validate:"required"`
	AdvisorNotes      string `json:"advisor_notes" validate:"required"`
}

type CreateProfileResponse struct {
	SessionId      uuid.UUID `json:"session_id"`
	ProfileSummary string    `json:"profile_summary"`
}
