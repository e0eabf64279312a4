// internal/workers/pathway/recommend-pathways/handler.go
package recommendpathways

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/metrics"
	"pathway-workers/internal/common/observability"
	"pathway-workers/internal/common/validation"
	"pathway-workers/internal/engine"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"
	"pathway-workers/internal/workers/pathway/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "recommend-pathways"
)

// Store is the relational state the worker reads and writes.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	GetWeights(ctx context.Context) (*models.WeightConfig, error)
	SavedPathwayIDs(ctx context.Context, userID string) (map[string]bool, error)
	SaveScores(ctx context.Context, userID string, tiers models.TierMap) error
}

// Dependencies wires the handler. Cache, Validator and Observability are
// optional.
type Dependencies struct {
	Store         Store
	Catalog       store.Catalog
	Resolver      engine.NameResolver
	Cache         *store.Cache
	Validator     *validation.Validator
	Observability *observability.Observability
	Logger        logger.Logger
}

type Handler struct {
	config     *Config
	deps       Dependencies
	ranker     *engine.Ranker
	lookup     *lookup.Resolver
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		deps:   deps,
		ranker: engine.NewRanker(engine.Options{
			Resolver:    deps.Resolver,
			Concurrency: config.Concurrency,
			Logger:      log,
		}),
		lookup: &lookup.Resolver{
			Profiles: deps.Store,
			Weights:  deps.Store,
			Cache:    deps.Cache,
			Defaults: config.DefaultWeights,
			Logger:   log,
		},
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	vars := []byte(job.Variables)
	if err := h.deps.Validator.Validate(TaskType, vars); err != nil {
		h.failJob(client, job, err)
		return
	}

	var input Input
	if err := json.Unmarshal(vars, &input); err != nil {
		h.failJob(client, job, errors.NewInputValidationError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.lookup.Profile(ctx, input.UserID, input.UserProfile)
	if err != nil {
		return nil, err
	}

	weights, err := h.lookup.WeightConfig(ctx, input.Weights)
	if err != nil {
		return nil, err
	}

	catalog, err := h.deps.Catalog.ListPathways(ctx, h.config.MaxCatalogSize)
	if err != nil {
		return nil, h.catalogError(err)
	}
	h.deps.Observability.RecordCatalogSize(ctx, string(h.config.CatalogSource), len(catalog))

	start := time.Now()
	tiers, err := h.ranker.Rank(ctx, profile, catalog, weights)
	if err != nil {
		return nil, errors.AsStandard(err)
	}
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	for tier, n := range tiers.Counts() {
		metrics.PathwaysScored.WithLabelValues(string(tier)).Add(float64(n))
	}

	saved := map[string]bool{}
	if profile.UserID != "" {
		if saved, err = h.deps.Store.SavedPathwayIDs(ctx, profile.UserID); err != nil {
			h.logger.Warn("failed to load saved pathways", map[string]interface{}{
				"userId": profile.UserID,
				"error":  err,
			})
			saved = map[string]bool{}
		}
	}

	if boolOr(input.PersistScores, h.config.PersistScores) && profile.UserID != "" {
		if err := h.deps.Store.SaveScores(ctx, profile.UserID, tiers); err != nil {
			return nil, errors.NewScorePersistFailedError(err)
		}
	}

	if boolOr(input.ExcludeSaved, h.config.ExcludeSaved) && len(saved) > 0 {
		tiers = tiers.Without(saved)
	}

	counts := tiers.Counts()
	h.logger.Info("recommendations generated", map[string]interface{}{
		"userId":        profile.UserID,
		"catalogSize":   len(catalog),
		"fully":         counts[models.TierFullyQualified],
		"partially":     counts[models.TierPartiallyQualified],
		"potential":     counts[models.TierPotentialInterest],
		"savedExcluded": boolOr(input.ExcludeSaved, h.config.ExcludeSaved),
		"durationMs":    time.Since(start).Milliseconds(),
	})

	return &Output{
		Recommendations: tiers,
		Counts:          counts,
		TotalPathways:   tiers.Total(),
		SavedPathwayIDs: sortedKeys(saved),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// catalogError maps a catalog read failure to the code for its source.
func (h *Handler) catalogError(err error) error {
	if h.config.CatalogSource == models.CatalogSourceElasticsearch {
		return errors.NewSearchQueryFailedError(h.config.SearchIndex, err)
	}
	return errors.NewCatalogFetchFailedError(string(h.config.CatalogSource), err)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandard(err).Code)).Inc()
	h.errHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
