// internal/engine/ranker.go
package engine

import (
	"context"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"

	"golang.org/x/sync/errgroup"
)

// Tier thresholds. Each lower bound is inclusive.
const (
	FullyQualifiedMin     = 80.0
	PartiallyQualifiedMin = 40.0
)

// TierFor maps a score to its tier.
func TierFor(score float64) models.Tier {
	switch {
	case score >= FullyQualifiedMin:
		return models.TierFullyQualified
	case score >= PartiallyQualifiedMin:
		return models.TierPartiallyQualified
	default:
		return models.TierPotentialInterest
	}
}

// NameResolver maps catalog identifiers to display names. Identifiers missing
// from the returned map are shown as models.UnknownName.
type NameResolver interface {
	ResolveNames(ctx context.Context, kind models.NameKind, ids []string) (map[string]string, error)
}

// Options tune a Ranker. The zero value scores sequentially and shows
// identifiers as their own display names.
type Options struct {
	// Resolver looks up display names. Nil means identifiers are already names.
	Resolver NameResolver
	// Concurrency bounds parallel scoring. Values below 2 score sequentially.
	Concurrency int
	Logger      logger.Logger
}

// Ranker scores a catalog against one profile and groups the results by tier.
// It keeps no state between calls.
type Ranker struct {
	resolver    NameResolver
	concurrency int
	logger      logger.Logger
}

func NewRanker(opts Options) *Ranker {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Ranker{
		resolver:    opts.Resolver,
		concurrency: opts.Concurrency,
		logger:      log,
	}
}

// Rank scores every pathway in catalog and partitions them into tiers. Nil
// weights select models.DefaultWeights. Within a tier, pathways keep catalog
// order. The only error is a done context.
func (r *Ranker) Rank(ctx context.Context, profile *models.UserProfile, catalog []models.Pathway, weights *models.WeightConfig) (models.TierMap, error) {
	w := models.DefaultWeights()
	if weights != nil {
		w = *weights
	}

	tiers := models.NewTierMap()
	if len(catalog) == 0 {
		return tiers, nil
	}

	names := r.resolveAll(ctx, catalog)

	scored := make([]models.ScoredPathway, len(catalog))
	if r.concurrency < 2 {
		for i := range catalog {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scored[i] = r.scoreOne(profile, &catalog[i], w, names)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i := range catalog {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				scored[i] = r.scoreOne(profile, &catalog[i], w, names)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for _, sp := range scored {
		tiers[sp.Tier] = append(tiers[sp.Tier], sp)
	}
	return tiers, nil
}

func (r *Ranker) scoreOne(profile *models.UserProfile, p *models.Pathway, w models.WeightConfig, names *nameTable) models.ScoredPathway {
	score, f := ScorePathway(profile, p, w)
	return models.ScoredPathway{
		PathwayID:               p.ID,
		PathwayName:             p.Name,
		Score:                   score,
		Tier:                    TierFor(score),
		Cost:                    f.EstimatedCost,
		Duration:                f.EstimatedDuration,
		SuccessRate:             f.SuccessRate,
		DifficultyLevel:         f.DifficultyLevel,
		RequiredExperienceYears: p.RequiredExperienceYears,
		PRPointsThreshold:       p.PRPointsThreshold,
		RequiredSkills:          names.lookup(models.NameKindSkill, p.RequiredSkills),
		RecommendedCourses:      names.lookup(models.NameKindCourse, p.RecommendedCourses),
		Locations:               names.lookup(models.NameKindLocation, p.PreferredLocations),
		Factors:                 f.Factors(),
	}
}

var nameKinds = []models.NameKind{models.NameKindSkill, models.NameKindCourse, models.NameKindLocation}

// nameTable is read-only once built, so scoring goroutines share it.
type nameTable struct {
	identity bool
	byKind   map[models.NameKind]map[string]string
}

func (n *nameTable) lookup(kind models.NameKind, ids []string) []string {
	out := make([]string, len(ids))
	if n.identity {
		copy(out, ids)
		return out
	}
	m := n.byKind[kind]
	for i, id := range ids {
		if name, ok := m[id]; ok && name != "" {
			out[i] = name
		} else {
			out[i] = models.UnknownName
		}
	}
	return out
}

// resolveAll batches one lookup per kind. A failed lookup leaves that kind
// unresolved rather than failing the batch.
func (r *Ranker) resolveAll(ctx context.Context, catalog []models.Pathway) *nameTable {
	if r.resolver == nil {
		return &nameTable{identity: true}
	}

	ids := map[models.NameKind][]string{}
	seen := map[models.NameKind]map[string]struct{}{}
	add := func(kind models.NameKind, values []string) {
		if seen[kind] == nil {
			seen[kind] = map[string]struct{}{}
		}
		for _, v := range values {
			if _, ok := seen[kind][v]; ok {
				continue
			}
			seen[kind][v] = struct{}{}
			ids[kind] = append(ids[kind], v)
		}
	}
	for i := range catalog {
		add(models.NameKindSkill, catalog[i].RequiredSkills)
		add(models.NameKindCourse, catalog[i].RecommendedCourses)
		add(models.NameKindLocation, catalog[i].PreferredLocations)
	}

	table := &nameTable{byKind: map[models.NameKind]map[string]string{}}
	for _, kind := range nameKinds {
		list := ids[kind]
		if len(list) == 0 {
			continue
		}
		resolved, err := r.resolver.ResolveNames(ctx, kind, list)
		if err != nil {
			r.logger.Warn("name resolution failed", map[string]interface{}{
				"kind":  string(kind),
				"count": len(list),
				"error": err.Error(),
			})
			continue
		}
		table.byKind[kind] = resolved
	}
	return table
}
