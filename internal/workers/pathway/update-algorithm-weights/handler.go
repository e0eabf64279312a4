// internal/workers/pathway/update-algorithm-weights/handler.go
package updatealgorithmweights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/metrics"
	"pathway-workers/internal/common/validation"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-algorithm-weights"
)

type Store interface {
	UpsertWeights(ctx context.Context, w models.WeightConfig, updatedBy string) (time.Time, error)
}

// Dependencies wires the handler. Cache and Validator are optional.
type Dependencies struct {
	Store     Store
	Cache     *store.Cache
	Validator *validation.Validator
	Logger    logger.Logger
}

type Handler struct {
	config     *Config
	deps       Dependencies
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		deps:       deps,
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
	if input.Weights == nil {
		return nil, errors.NewInputValidationError("weights is required")
	}
	if input.UpdatedBy == "" {
		return nil, errors.NewInputValidationError("updatedBy is required")
	}

	w := *input.Weights
	if err := w.ValidateRange(h.config.WeightMin, h.config.WeightMax); err != nil {
		return nil, errors.NewWeightsInvalidError(err.Error())
	}

	updatedAt, err := h.deps.Store.UpsertWeights(ctx, w, input.UpdatedBy)
	if err != nil {
		return nil, errors.NewWeightsUpdateFailedError(err)
	}

	// A stale cached vector expires on its own TTL if this fails.
	if h.deps.Cache != nil {
		if err := h.deps.Cache.InvalidateWeights(ctx); err != nil {
			h.logger.Warn("failed to invalidate cached weights", map[string]interface{}{
				"error": err,
			})
		}
	}

	sum := 0.0
	for _, nw := range w.Named() {
		sum += nw.Value
	}

	h.logger.Info("algorithm weights updated", map[string]interface{}{
		"updatedBy": input.UpdatedBy,
		"sum":       sum,
	})

	return &Output{
		Weights:   w,
		UpdatedBy: input.UpdatedBy,
		UpdatedAt: updatedAt.UTC(),
		Sum:       sum,
	}, nil
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
