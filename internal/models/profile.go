// internal/models/profile.go
package models

// EmploymentEntry is one job listed on a user's profile.
type EmploymentEntry struct {
	JobTitle           string  `json:"jobTitle,omitempty" yaml:"job_title,omitempty"`
	Company            string  `json:"company,omitempty" yaml:"company,omitempty"`
	YearsInCurrentRole float64 `json:"yearsInCurrentRole" yaml:"years_in_current_role"`
}

// EducationEntry is one degree or course listed on a user's profile.
type EducationEntry struct {
	DegreeOrCourseName string `json:"degreeOrCourseName" yaml:"degree_or_course_name"`
	Institution        string `json:"institution,omitempty" yaml:"institution,omitempty"`
	CompletionYear     int    `json:"completionYear,omitempty" yaml:"completion_year,omitempty"`
}

// UserProfile is the fully resolved view of a prospective migrant that the
// scoring engine reads. It is never mutated by the engine.
type UserProfile struct {
	UserID             string   `json:"userId,omitempty" yaml:"user_id,omitempty"`
	Skills             []string `json:"skills" yaml:"skills"`
	ExperienceYears    float64  `json:"experienceYears" yaml:"experience_years"`
	CompletedCourses   []string `json:"completedCourses" yaml:"completed_courses"`
	PreferredLocations []string `json:"preferredLocations" yaml:"preferred_locations"`
	PRPoints           int      `json:"prPoints" yaml:"pr_points"`
}

// NewUserProfile derives experience years and completed courses from the raw
// employment and education entries stored with the user record.
func NewUserProfile(userID string, skills []string, employment []EmploymentEntry, education []EducationEntry, locations []string, prPoints int) *UserProfile {
	var years float64
	for _, e := range employment {
		if e.YearsInCurrentRole > 0 {
			years += e.YearsInCurrentRole
		}
	}

	courses := make([]string, 0, len(education))
	for _, e := range education {
		if e.DegreeOrCourseName != "" {
			courses = append(courses, e.DegreeOrCourseName)
		}
	}

	if prPoints < 0 {
		prPoints = 0
	}

	return &UserProfile{
		UserID:             userID,
		Skills:             nonNil(skills),
		ExperienceYears:    years,
		CompletedCourses:   courses,
		PreferredLocations: nonNil(locations),
		PRPoints:           prPoints,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
