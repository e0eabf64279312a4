// internal/models/recommendation.go
package models

// Tier is a qualification bucket assigned from the total score.
type Tier string

const (
	TierFullyQualified     Tier = "fully_qualified"
	TierPartiallyQualified Tier = "partially_qualified"
	TierPotentialInterest  Tier = "potential_interest"
)

// Tiers lists every tier in presentation order.
var Tiers = []Tier{TierFullyQualified, TierPartiallyQualified, TierPotentialInterest}

// MatchFactors is the per-factor breakdown behind a score.
type MatchFactors struct {
	SkillMatch       float64 `json:"skillMatch"`
	ExperienceMatch  float64 `json:"experienceMatch"`
	LocationMatch    float64 `json:"locationMatch"`
	PRPointsMatch    float64 `json:"prPointsMatch"`
	CourseCompletion float64 `json:"courseCompletion"`
}

// ScoredPathway is the engine's per-pathway output record.
type ScoredPathway struct {
	PathwayID               string       `json:"pathwayId"`
	PathwayName             string       `json:"pathwayName"`
	Score                   float64      `json:"score"`
	Tier                    Tier         `json:"tier"`
	Cost                    float64      `json:"cost"`
	Duration                float64      `json:"duration"`
	SuccessRate             float64      `json:"successRate"`
	DifficultyLevel         int          `json:"difficultyLevel"`
	RequiredExperienceYears float64      `json:"requiredExperienceYears"`
	PRPointsThreshold       float64      `json:"prPointsThreshold"`
	RequiredSkills          []string     `json:"requiredSkills"`
	RecommendedCourses      []string     `json:"recommendedCourses"`
	Locations               []string     `json:"locations"`
	Factors                 MatchFactors `json:"factors"`
}

// TierMap groups scored pathways by tier. All three keys are always present.
type TierMap map[Tier][]ScoredPathway

// NewTierMap returns a TierMap with every tier initialised to an empty list.
func NewTierMap() TierMap {
	tm := make(TierMap, len(Tiers))
	for _, t := range Tiers {
		tm[t] = []ScoredPathway{}
	}
	return tm
}

// Counts returns the number of pathways in each tier.
func (tm TierMap) Counts() map[Tier]int {
	counts := make(map[Tier]int, len(Tiers))
	for _, t := range Tiers {
		counts[t] = len(tm[t])
	}
	return counts
}

// Total returns the number of pathways across all tiers.
func (tm TierMap) Total() int {
	n := 0
	for _, t := range Tiers {
		n += len(tm[t])
	}
	return n
}

// Without returns a copy of the map with the given pathway ids removed.
func (tm TierMap) Without(ids map[string]bool) TierMap {
	out := NewTierMap()
	for _, t := range Tiers {
		for _, sp := range tm[t] {
			if ids[sp.PathwayID] {
				continue
			}
			out[t] = append(out[t], sp)
		}
	}
	return out
}
