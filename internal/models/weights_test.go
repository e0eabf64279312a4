// internal/models/weights_test.go
package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightConfig_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func() WeightConfig
	}{
		{"empty object", `{}`, DefaultWeights},
		{"one key", `{"skill":0.5}`, func() WeightConfig {
			w := DefaultWeights()
			w.Skill = 0.5
			return w
		}},
		{"explicit zero", `{"skill":0,"cost":0}`, func() WeightConfig {
			w := DefaultWeights()
			w.Skill = 0
			w.Cost = 0
			return w
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w WeightConfig
			require.NoError(t, json.Unmarshal([]byte(tt.body), &w))
			assert.Equal(t, tt.want(), w)
		})
	}
}

func TestWeightConfig_UnmarshalJSON_Nested(t *testing.T) {
	var in struct {
		Weights *WeightConfig `json:"weights"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"weights":{"skill":0.25}}`), &in))
	require.NotNil(t, in.Weights)
	assert.Equal(t, DefaultWeights(), *in.Weights)

	in.Weights = nil
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	assert.Nil(t, in.Weights, "absent weights stay unset")
}

func TestWeightConfig_UnmarshalJSON_BadType(t *testing.T) {
	var w WeightConfig
	assert.Error(t, json.Unmarshal([]byte(`{"skill":"high"}`), &w))
}

func TestWeightConfig_ValidateRange(t *testing.T) {
	assert.NoError(t, DefaultWeights().ValidateRange(0, 1))

	w := DefaultWeights()
	w.Location = 1.5
	assert.ErrorContains(t, w.ValidateRange(0, 1), "location")

	w = DefaultWeights()
	w.Duration = math.NaN()
	assert.ErrorContains(t, w.Validate(), "duration")
}
