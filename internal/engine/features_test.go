// internal/engine/features_test.go
package engine

import (
	"testing"

	"pathway-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name     string
		user     []string
		pathway  []string
		expected float64
	}{
		{"all matched", []string{"IT", "Software Development"}, []string{"IT", "Software Development"}, 100},
		{"half matched", []string{"IT"}, []string{"IT", "Nursing"}, 50},
		{"none matched", []string{"Accounting"}, []string{"IT"}, 0},
		{"pathway requires nothing", []string{"IT", "Nursing"}, []string{}, 0},
		{"pathway nil", []string{"IT"}, nil, 0},
		{"user has nothing", nil, []string{"IT"}, 0},
		{"order independent", []string{"B", "A"}, []string{"A", "B"}, 100},
		{"case sensitive", []string{"it"}, []string{"IT"}, 0},
		{"duplicates count once", []string{"IT", "IT"}, []string{"IT", "IT", "Nursing"}, 50},
		{"extra user skills ignored", []string{"IT", "Nursing", "Cooking"}, []string{"IT"}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SkillMatch(tt.user, tt.pathway), 1e-9)
		})
	}
}

func TestLocationAndCourseMatch(t *testing.T) {
	assert.InDelta(t, 50.0, LocationMatch([]string{"Sydney"}, []string{"Sydney", "Melbourne"}), 1e-9)
	assert.Equal(t, 0.0, LocationMatch([]string{"Sydney"}, nil))
	assert.InDelta(t, 100.0/3, CourseCompletion([]string{"Bachelor of IT"}, []string{"Bachelor of IT", "MBA", "PhD"}), 1e-9)
	assert.Equal(t, 0.0, CourseCompletion(nil, []string{"Bachelor of IT"}))
	assert.Equal(t, 0.0, CourseCompletion([]string{"Bachelor of IT"}, []string{}))
}

func TestExperienceMatch(t *testing.T) {
	t.Run("zero requirement short-circuits", func(t *testing.T) {
		for _, years := range []float64{0, 0.5, 3, 40} {
			assert.Equal(t, 100.0, ExperienceMatch(years, 0))
		}
	})

	t.Run("capped at requirement", func(t *testing.T) {
		assert.Equal(t, 100.0, ExperienceMatch(3, 2))
		assert.Equal(t, 100.0, ExperienceMatch(25, 2))
		assert.Equal(t, 100.0, ExperienceMatch(2, 2))
	})

	t.Run("monotonic below requirement", func(t *testing.T) {
		prev := -1.0
		for years := 0.0; years <= 5; years += 0.25 {
			got := ExperienceMatch(years, 5)
			assert.GreaterOrEqual(t, got, prev)
			assert.LessOrEqual(t, got, 100.0)
			prev = got
		}
	})

	t.Run("partial", func(t *testing.T) {
		assert.InDelta(t, 50.0, ExperienceMatch(1, 2), 1e-9)
		assert.Equal(t, 0.0, ExperienceMatch(0, 4))
	})
}

func TestPRPointsMatch(t *testing.T) {
	assert.Equal(t, 100.0, PRPointsMatch(0, 0))
	assert.Equal(t, 100.0, PRPointsMatch(120, 0))
	assert.Equal(t, 100.0, PRPointsMatch(75, 70))
	assert.InDelta(t, 50.0, PRPointsMatch(35, 70), 1e-9)
}

func TestExtractFeatures_Defaults(t *testing.T) {
	profile := models.NewUserProfile("u1", []string{"IT"}, nil, nil, nil, 10)
	pathway := &models.Pathway{ID: "p1", Name: "Bare"}

	f := ExtractFeatures(profile, pathway)

	assert.Equal(t, 0.0, f.SkillMatch)
	assert.Equal(t, 100.0, f.ExperienceMatch)
	assert.Equal(t, 0.0, f.LocationMatch)
	assert.Equal(t, 100.0, f.PRPointsMatch)
	assert.Equal(t, 0.0, f.CourseCompletion)
	assert.Equal(t, 0.0, f.SuccessRate)
	assert.Equal(t, 10, f.DifficultyLevel)
	assert.Equal(t, 100000.0, f.EstimatedCost)
	assert.Equal(t, 60.0, f.EstimatedDuration)
}

func TestExtractFeatures_ExplicitZerosKept(t *testing.T) {
	profile := models.NewUserProfile("u1", nil, nil, nil, nil, 0)
	pathway := &models.Pathway{
		ID:                "p1",
		DifficultyLevel:   intPtr(0),
		SuccessRate:       floatPtr(0),
		EstimatedCost:     floatPtr(0),
		EstimatedDuration: floatPtr(0),
	}

	f := ExtractFeatures(profile, pathway)

	assert.Equal(t, 0, f.DifficultyLevel)
	assert.Equal(t, 0.0, f.EstimatedCost)
	assert.Equal(t, 0.0, f.EstimatedDuration)
}

func TestNewUserProfile_DerivesExperienceAndCourses(t *testing.T) {
	profile := models.NewUserProfile("u1",
		[]string{"IT"},
		[]models.EmploymentEntry{{YearsInCurrentRole: 1.5}, {YearsInCurrentRole: 2}, {YearsInCurrentRole: -1}},
		[]models.EducationEntry{{DegreeOrCourseName: "Bachelor of IT"}, {DegreeOrCourseName: ""}},
		nil,
		-5,
	)

	assert.InDelta(t, 3.5, profile.ExperienceYears, 1e-9)
	assert.Equal(t, []string{"Bachelor of IT"}, profile.CompletedCourses)
	assert.Equal(t, []string{}, profile.PreferredLocations)
	assert.Equal(t, 0, profile.PRPoints)
}
