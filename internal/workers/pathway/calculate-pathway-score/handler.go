// internal/workers/pathway/calculate-pathway-score/handler.go
package calculatepathwayscore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/metrics"
	"pathway-workers/internal/common/validation"
	"pathway-workers/internal/engine"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"
	"pathway-workers/internal/workers/pathway/lookup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-pathway-score"
)

type Store interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	GetWeights(ctx context.Context) (*models.WeightConfig, error)
}

type Dependencies struct {
	Store     Store
	Catalog   store.Catalog
	Resolver  engine.NameResolver
	Cache     *store.Cache
	Validator *validation.Validator
	Logger    logger.Logger
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
		ranker: engine.NewRanker(engine.Options{Resolver: deps.Resolver, Logger: log}),
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	pathway, err := h.resolvePathway(ctx, input)
	if err != nil {
		return nil, err
	}

	profile, err := h.lookup.Profile(ctx, input.UserID, input.UserProfile)
	if err != nil {
		return nil, err
	}

	weights, err := h.lookup.WeightConfig(ctx, input.Weights)
	if err != nil {
		return nil, err
	}

	tiers, err := h.ranker.Rank(ctx, profile, []models.Pathway{*pathway}, weights)
	if err != nil {
		return nil, errors.AsStandard(err)
	}

	var scored models.ScoredPathway
	for _, tier := range models.Tiers {
		if len(tiers[tier]) > 0 {
			scored = tiers[tier][0]
		}
	}
	metrics.PathwaysScored.WithLabelValues(string(scored.Tier)).Inc()

	h.logger.Info("pathway score calculated", map[string]interface{}{
		"userId":    profile.UserID,
		"pathwayId": scored.PathwayID,
		"score":     scored.Score,
		"tier":      scored.Tier,
	})

	return &Output{
		PathwayID:     scored.PathwayID,
		Score:         scored.Score,
		Tier:          scored.Tier,
		MatchFactors:  scored.Factors,
		ScoredPathway: scored,
	}, nil
}

func (h *Handler) resolvePathway(ctx context.Context, input *Input) (*models.Pathway, error) {
	if input.Pathway != nil {
		if input.Pathway.ID == "" {
			return nil, errors.NewInputValidationError("pathway.id is required")
		}
		return input.Pathway, nil
	}
	if input.PathwayID == "" {
		return nil, errors.NewInputValidationError("pathwayId or pathway is required")
	}

	p, err := h.deps.Catalog.GetPathway(ctx, input.PathwayID)
	if stderrors.Is(err, store.ErrPathwayNotFound) {
		return nil, errors.NewPathwayNotFoundError(input.PathwayID)
	}
	if err != nil {
		return nil, h.catalogError(err)
	}
	return p, nil
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
