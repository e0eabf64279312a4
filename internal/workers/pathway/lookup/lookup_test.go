// internal/workers/pathway/lookup/lookup_test.go
package lookup

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	apperrors "pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	profile      *models.UserProfile
	profileErr   error
	weights      *models.WeightConfig
	weightsErr   error
	profileCalls int
	weightsCalls int
}

func (s *stubStore) GetProfile(context.Context, string) (*models.UserProfile, error) {
	s.profileCalls++
	return s.profile, s.profileErr
}

func (s *stubStore) GetWeights(context.Context) (*models.WeightConfig, error) {
	s.weightsCalls++
	return s.weights, s.weightsErr
}

func newResolver(t *testing.T, st *stubStore, withCache bool) *Resolver {
	t.Helper()
	r := &Resolver{
		Profiles: st,
		Weights:  st,
		Defaults: models.DefaultWeights(),
		Logger:   logger.NewTestLogger(t),
	}
	if withCache {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { rdb.Close() })
		r.Cache = store.NewCache(rdb, time.Minute, time.Minute)
	}
	return r
}

func TestProfile_InlineTakesUserID(t *testing.T) {
	st := &stubStore{}
	r := newResolver(t, st, false)

	p, err := r.Profile(context.Background(), "user-9", &models.UserProfile{Skills: []string{"IT"}})
	require.NoError(t, err)
	assert.Equal(t, "user-9", p.UserID)
	assert.Zero(t, st.profileCalls)
}

func TestProfile_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"not found", store.ErrUserNotFound, apperrors.ErrCodeUserNotFound},
		{"wrapped not found", errors.Join(errors.New("query"), store.ErrUserNotFound), apperrors.ErrCodeUserNotFound},
		{"transport", errors.New("reset"), apperrors.ErrCodeProfileFetchFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t, &stubStore{profileErr: tt.err}, false)
			_, err := r.Profile(context.Background(), "user-1", nil)
			assert.Equal(t, tt.want, apperrors.AsStandard(err).Code)
		})
	}

	r := newResolver(t, &stubStore{}, false)
	_, err := r.Profile(context.Background(), "", nil)
	assert.Equal(t, apperrors.ErrCodeInputValidationFailed, apperrors.AsStandard(err).Code)
}

func TestProfile_ReadThroughCache(t *testing.T) {
	st := &stubStore{profile: models.NewUserProfile("user-1", []string{"IT"}, nil, nil, nil, 60)}
	r := newResolver(t, st, true)

	for i := 0; i < 3; i++ {
		p, err := r.Profile(context.Background(), "user-1", nil)
		require.NoError(t, err)
		assert.Equal(t, 60, p.PRPoints)
	}
	assert.Equal(t, 1, st.profileCalls)
}

func TestWeightConfig_Order(t *testing.T) {
	stored := models.WeightConfig{Skill: 1}

	r := newResolver(t, &stubStore{weightsErr: store.ErrWeightsNotSet}, false)
	w, err := r.WeightConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultWeights(), *w)

	st := &stubStore{weights: &stored}
	r = newResolver(t, st, true)
	for i := 0; i < 2; i++ {
		w, err = r.WeightConfig(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, stored, *w)
	}
	assert.Equal(t, 1, st.weightsCalls)

	inline := models.WeightConfig{Cost: 1}
	w, err = r.WeightConfig(context.Background(), &inline)
	require.NoError(t, err)
	assert.Equal(t, inline, *w)
}

func TestWeightConfig_Invalid(t *testing.T) {
	bad := models.WeightConfig{Skill: math.Inf(1)}

	r := newResolver(t, &stubStore{weights: &bad}, false)
	_, err := r.WeightConfig(context.Background(), nil)
	assert.Equal(t, apperrors.ErrCodeWeightsInvalid, apperrors.AsStandard(err).Code)

	_, err = r.WeightConfig(context.Background(), &bad)
	assert.Equal(t, apperrors.ErrCodeWeightsInvalid, apperrors.AsStandard(err).Code)

	r = newResolver(t, &stubStore{weightsErr: errors.New("timeout")}, false)
	_, err = r.WeightConfig(context.Background(), nil)
	assert.Equal(t, apperrors.ErrCodeWeightsFetchFailed, apperrors.AsStandard(err).Code)
}
