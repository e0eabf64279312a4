// internal/cli/input.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pathway-workers/internal/models"

	"gopkg.in/yaml.v3"
)

// readFile decodes path as JSON when it has a .json extension and as YAML
// otherwise.
func readFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, dst)
	} else {
		err = yaml.Unmarshal(data, dst)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// profileFile accepts either a resolved profile or the raw employment and
// education history it is derived from.
type profileFile struct {
	UserID             string                   `json:"userId" yaml:"user_id"`
	Skills             []string                 `json:"skills" yaml:"skills"`
	ExperienceYears    float64                  `json:"experienceYears" yaml:"experience_years"`
	CompletedCourses   []string                 `json:"completedCourses" yaml:"completed_courses"`
	PreferredLocations []string                 `json:"preferredLocations" yaml:"preferred_locations"`
	PRPoints           int                      `json:"prPoints" yaml:"pr_points"`
	Employment         []models.EmploymentEntry `json:"employment" yaml:"employment"`
	Education          []models.EducationEntry  `json:"education" yaml:"education"`
}

func readProfile(path string) (*models.UserProfile, error) {
	var pf profileFile
	if err := readFile(path, &pf); err != nil {
		return nil, err
	}

	if len(pf.Employment) > 0 || len(pf.Education) > 0 {
		p := models.NewUserProfile(pf.UserID, pf.Skills, pf.Employment, pf.Education, pf.PreferredLocations, pf.PRPoints)
		if len(pf.Employment) == 0 {
			p.ExperienceYears = pf.ExperienceYears
		}
		if len(pf.Education) == 0 && pf.CompletedCourses != nil {
			p.CompletedCourses = pf.CompletedCourses
		}
		return p, nil
	}

	p := models.NewUserProfile(pf.UserID, pf.Skills, nil, nil, pf.PreferredLocations, pf.PRPoints)
	p.ExperienceYears = pf.ExperienceYears
	if pf.CompletedCourses != nil {
		p.CompletedCourses = pf.CompletedCourses
	}
	return p, nil
}

func readCatalog(path string) ([]models.Pathway, error) {
	var catalog []models.Pathway
	if err := readFile(path, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func readWeights(path string) (models.WeightConfig, error) {
	if path == "" {
		return models.DefaultWeights(), nil
	}
	w := models.DefaultWeights()
	if err := readFile(path, &w); err != nil {
		return models.WeightConfig{}, err
	}
	if err := w.Validate(); err != nil {
		return models.WeightConfig{}, fmt.Errorf("weights in %s: %w", path, err)
	}
	return w, nil
}

// nameFile resolves display names from a local map keyed by lookup kind:
//
//	skills:    {sk-it: IT}
//	courses:   {c-bit: Bachelor of IT}
//	locations: {loc-syd: Sydney}
type nameFile map[models.NameKind]map[string]string

func (n nameFile) ResolveNames(_ context.Context, kind models.NameKind, ids []string) (map[string]string, error) {
	table := n[kind]
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := table[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func readNames(path string) (nameFile, error) {
	names := nameFile{}
	if err := readFile(path, &names); err != nil {
		return nil, err
	}
	return names, nil
}
