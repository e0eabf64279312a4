// internal/engine/features.go
package engine

import "pathway-workers/internal/models"

// Features holds the comparable signals extracted for one profile/pathway pair.
// Match values are percentages in [0, 100]; the pass-through values are copied
// from the pathway with defaults applied.
type Features struct {
	SkillMatch       float64
	ExperienceMatch  float64
	LocationMatch    float64
	PRPointsMatch    float64
	CourseCompletion float64

	SuccessRate       float64
	DifficultyLevel   int
	EstimatedCost     float64
	EstimatedDuration float64
}

// Factors returns the match portion of f.
func (f Features) Factors() models.MatchFactors {
	return models.MatchFactors{
		SkillMatch:       f.SkillMatch,
		ExperienceMatch:  f.ExperienceMatch,
		LocationMatch:    f.LocationMatch,
		PRPointsMatch:    f.PRPointsMatch,
		CourseCompletion: f.CourseCompletion,
	}
}

// ExtractFeatures computes every factor for profile against pathway.
func ExtractFeatures(profile *models.UserProfile, pathway *models.Pathway) Features {
	return Features{
		SkillMatch:        SkillMatch(profile.Skills, pathway.RequiredSkills),
		ExperienceMatch:   ExperienceMatch(profile.ExperienceYears, pathway.RequiredExperienceYears),
		LocationMatch:     LocationMatch(profile.PreferredLocations, pathway.PreferredLocations),
		PRPointsMatch:     PRPointsMatch(float64(profile.PRPoints), pathway.PRPointsThreshold),
		CourseCompletion:  CourseCompletion(profile.CompletedCourses, pathway.RecommendedCourses),
		SuccessRate:       pathway.Success(),
		DifficultyLevel:   pathway.Difficulty(),
		EstimatedCost:     pathway.Cost(),
		EstimatedDuration: pathway.Duration(),
	}
}

// SkillMatch is the share of the pathway's required skills the user holds.
// It is 0 when the pathway requires none.
func SkillMatch(userSkills, pathwaySkills []string) float64 {
	return overlap(userSkills, pathwaySkills)
}

// LocationMatch is the share of the pathway's locations the user prefers.
func LocationMatch(userLocations, pathwayLocations []string) float64 {
	return overlap(userLocations, pathwayLocations)
}

// CourseCompletion is the share of the pathway's recommended courses the user
// has completed.
func CourseCompletion(userCourses, pathwayCourses []string) float64 {
	return overlap(userCourses, pathwayCourses)
}

// ExperienceMatch credits experience up to the requirement and no further.
func ExperienceMatch(userYears, requiredYears float64) float64 {
	return capped(userYears, requiredYears)
}

// PRPointsMatch credits points up to the threshold and no further.
func PRPointsMatch(userPoints, threshold float64) float64 {
	return capped(userPoints, threshold)
}

func capped(have, need float64) float64 {
	if need <= 0 {
		return 100
	}
	if have < 0 {
		have = 0
	}
	if have > need {
		have = need
	}
	return have / need * 100
}

// overlap returns |user ∩ pathway| / |pathway| * 100 treating both as sets.
func overlap(user, pathway []string) float64 {
	want := toSet(pathway)
	if len(want) == 0 {
		return 0
	}
	have := toSet(user)
	matched := 0
	for item := range want {
		if _, ok := have[item]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want)) * 100
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
