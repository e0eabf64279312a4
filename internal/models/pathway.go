// internal/models/pathway.go
package models

// Defaults applied when a catalog entry omits an optional factor. Each is the
// worst case for its factor.
const (
	DefaultSuccessRate       = 0.0
	DefaultDifficultyLevel   = 10
	DefaultEstimatedCost     = 100000.0
	DefaultEstimatedDuration = 60.0
)

// Pathway is one permanent-residency route from the catalog. Optional factors
// are pointers so that "absent" can be told apart from an explicit zero.
type Pathway struct {
	ID                      string   `json:"id" yaml:"id"`
	Name                    string   `json:"name" yaml:"name"`
	RequiredSkills          []string `json:"requiredSkills" yaml:"required_skills"`
	RequiredExperienceYears float64  `json:"requiredExperienceYears" yaml:"required_experience_years"`
	PreferredLocations      []string `json:"preferredLocations" yaml:"preferred_locations"`
	PRPointsThreshold       float64  `json:"prPointsThreshold" yaml:"pr_points_threshold"`
	RecommendedCourses      []string `json:"recommendedCourses" yaml:"recommended_courses"`

	DifficultyLevel   *int     `json:"difficultyLevel,omitempty" yaml:"difficulty_level,omitempty"`
	SuccessRate       *float64 `json:"successRate,omitempty" yaml:"success_rate,omitempty"`
	EstimatedCost     *float64 `json:"estimatedCost,omitempty" yaml:"estimated_cost,omitempty"`
	EstimatedDuration *float64 `json:"estimatedDuration,omitempty" yaml:"estimated_duration,omitempty"`
}

// Difficulty returns the difficulty level or its default.
func (p *Pathway) Difficulty() int {
	if p.DifficultyLevel == nil {
		return DefaultDifficultyLevel
	}
	return *p.DifficultyLevel
}

// Success returns the success rate or its default.
func (p *Pathway) Success() float64 {
	if p.SuccessRate == nil {
		return DefaultSuccessRate
	}
	return *p.SuccessRate
}

// Cost returns the estimated cost or its default.
func (p *Pathway) Cost() float64 {
	if p.EstimatedCost == nil {
		return DefaultEstimatedCost
	}
	return *p.EstimatedCost
}

// Duration returns the estimated duration in months or its default.
func (p *Pathway) Duration() float64 {
	if p.EstimatedDuration == nil {
		return DefaultEstimatedDuration
	}
	return *p.EstimatedDuration
}
