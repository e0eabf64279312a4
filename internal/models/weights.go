// internal/models/weights.go
package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// WeightConfig is the administrator-tunable weight vector. It is a plain value:
// callers pass it into every scoring call and the engine never stores it.
// Weights are not required to sum to 1.
type WeightConfig struct {
	Skill            float64 `json:"skill" yaml:"skill" mapstructure:"skill"`
	Experience       float64 `json:"experience" yaml:"experience" mapstructure:"experience"`
	CourseCompletion float64 `json:"course_completion" yaml:"course_completion" mapstructure:"course_completion"`
	Location         float64 `json:"location" yaml:"location" mapstructure:"location"`
	PRPoints         float64 `json:"pr_points" yaml:"pr_points" mapstructure:"pr_points"`
	SuccessRate      float64 `json:"success_rate" yaml:"success_rate" mapstructure:"success_rate"`
	Difficulty       float64 `json:"difficulty" yaml:"difficulty" mapstructure:"difficulty"`
	Cost             float64 `json:"cost" yaml:"cost" mapstructure:"cost"`
	Duration         float64 `json:"duration" yaml:"duration" mapstructure:"duration"`
}

// DefaultWeights returns the documented default weight vector.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Skill:            0.25,
		Experience:       0.20,
		CourseCompletion: 0.15,
		Location:         0.10,
		PRPoints:         0.10,
		SuccessRate:      0.10,
		Difficulty:       0.05,
		Cost:             0.05,
		Duration:         0.05,
	}
}

// UnmarshalJSON starts from DefaultWeights, so a document that names only
// some weights keeps the default for the rest. An explicit 0 is kept.
func (w *WeightConfig) UnmarshalJSON(data []byte) error {
	type plain WeightConfig
	p := plain(DefaultWeights())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*w = WeightConfig(p)
	return nil
}

// Named returns the weights keyed by their external names, in a fixed order.
func (w WeightConfig) Named() []NamedWeight {
	return []NamedWeight{
		{"skill", w.Skill},
		{"experience", w.Experience},
		{"course_completion", w.CourseCompletion},
		{"location", w.Location},
		{"pr_points", w.PRPoints},
		{"success_rate", w.SuccessRate},
		{"difficulty", w.Difficulty},
		{"cost", w.Cost},
		{"duration", w.Duration},
	}
}

// NamedWeight pairs a weight with its external name.
type NamedWeight struct {
	Name  string
	Value float64
}

// Validate reports the first weight that is not a finite number.
func (w WeightConfig) Validate() error {
	for _, nw := range w.Named() {
		if math.IsNaN(nw.Value) || math.IsInf(nw.Value, 0) {
			return fmt.Errorf("weight %s is not finite", nw.Name)
		}
	}
	return nil
}

// ValidateRange checks every weight is finite and within [min, max].
func (w WeightConfig) ValidateRange(min, max float64) error {
	if err := w.Validate(); err != nil {
		return err
	}
	for _, nw := range w.Named() {
		if nw.Value < min || nw.Value > max {
			return fmt.Errorf("weight %s=%.4f outside [%.2f, %.2f]", nw.Name, nw.Value, min, max)
		}
	}
	return nil
}
