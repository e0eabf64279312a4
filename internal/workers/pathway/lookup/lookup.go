// internal/workers/pathway/lookup/lookup.go
package lookup

import (
	"context"
	stderrors "errors"

	"pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type WeightsStore interface {
	GetWeights(ctx context.Context) (*models.WeightConfig, error)
}

// Resolver finds the profile and weights a scoring job runs with. Cache is
// optional; cache failures are logged and fall through to the store.
type Resolver struct {
	Profiles ProfileStore
	Weights  WeightsStore
	Cache    *store.Cache
	Defaults models.WeightConfig
	Logger   logger.Logger
}

// Profile prefers the inline profile, then the cache, then the store. A user
// absent from the store is USER_NOT_FOUND.
func (r *Resolver) Profile(ctx context.Context, userID string, inline *models.UserProfile) (*models.UserProfile, error) {
	if inline != nil {
		p := *inline
		if p.UserID == "" {
			p.UserID = userID
		}
		return &p, nil
	}
	if userID == "" {
		return nil, errors.NewInputValidationError("userId or userProfile is required")
	}

	if r.Cache != nil {
		p, err := r.Cache.GetProfile(ctx, userID)
		if err != nil {
			r.Logger.Warn("profile cache unavailable", map[string]interface{}{"error": err})
		}
		if p != nil {
			return p, nil
		}
	}

	p, err := r.Profiles.GetProfile(ctx, userID)
	if stderrors.Is(err, store.ErrUserNotFound) {
		return nil, errors.NewUserNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewProfileFetchFailedError(userID, err)
	}

	if r.Cache != nil {
		if err := r.Cache.SetProfile(ctx, p); err != nil {
			r.Logger.Warn("failed to cache profile", map[string]interface{}{"error": err})
		}
	}
	return p, nil
}

// WeightConfig prefers inline weights, then the cache, then the stored
// administrator weights, then Defaults.
func (r *Resolver) WeightConfig(ctx context.Context, inline *models.WeightConfig) (*models.WeightConfig, error) {
	if inline != nil {
		if err := inline.Validate(); err != nil {
			return nil, errors.NewWeightsInvalidError(err.Error())
		}
		return inline, nil
	}

	if r.Cache != nil {
		w, err := r.Cache.GetWeights(ctx)
		if err != nil {
			r.Logger.Warn("weights cache unavailable", map[string]interface{}{"error": err})
		}
		if w != nil {
			return w, nil
		}
	}

	w, err := r.Weights.GetWeights(ctx)
	if stderrors.Is(err, store.ErrWeightsNotSet) {
		defaults := r.Defaults
		return &defaults, nil
	}
	if err != nil {
		return nil, errors.NewWeightsFetchFailedError(err)
	}
	if err := w.Validate(); err != nil {
		return nil, errors.NewWeightsInvalidError(err.Error())
	}

	if r.Cache != nil {
		if err := r.Cache.SetWeights(ctx, *w); err != nil {
			r.Logger.Warn("failed to cache weights", map[string]interface{}{"error": err})
		}
	}
	return w, nil
}
