// internal/workers/pathway/manage-saved-pathways/handler.go
package managesavedpathways

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

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
	TaskType = "manage-saved-pathways"
)

type Store interface {
	SavePathway(ctx context.Context, userID, pathwayID string, details *models.ScoredPathway) (*models.SavedPathway, error)
	RemoveSavedPathway(ctx context.Context, userID, pathwayID string) (bool, error)
	ListSavedPathways(ctx context.Context, userID string) ([]models.SavedPathway, error)
}

// Dependencies wires the handler. Catalog is only used to verify pathway ids
// on save and may be nil.
type Dependencies struct {
	Store     Store
	Catalog   store.Catalog
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
	if input.UserID == "" {
		return nil, errors.NewInputValidationError("userId is required")
	}

	switch input.Action {
	case ActionSave:
		return h.save(ctx, input)
	case ActionRemove:
		return h.remove(ctx, input)
	case ActionList:
		return h.list(ctx, input)
	default:
		return nil, errors.NewInputValidationError(fmt.Sprintf("unsupported action %q", input.Action))
	}
}

func (h *Handler) save(ctx context.Context, input *Input) (*Output, error) {
	pathwayID := input.PathwayID
	if pathwayID == "" && input.PathwayDetails != nil {
		pathwayID = input.PathwayDetails.PathwayID
	}
	if pathwayID == "" {
		return nil, errors.NewInputValidationError("pathwayId is required to save")
	}

	if h.config.VerifyPathway && h.deps.Catalog != nil {
		if _, err := h.deps.Catalog.GetPathway(ctx, pathwayID); err != nil {
			if stderrors.Is(err, store.ErrPathwayNotFound) {
				return nil, errors.NewPathwayNotFoundError(pathwayID)
			}
			return nil, errors.NewSavedPathwayFailedError("verify", err)
		}
	}

	saved, err := h.deps.Store.SavePathway(ctx, input.UserID, pathwayID, input.PathwayDetails)
	if err != nil {
		return nil, errors.NewSavedPathwayFailedError("save", err)
	}

	h.logger.Info("pathway saved", map[string]interface{}{
		"userId":    input.UserID,
		"pathwayId": pathwayID,
		"recordId":  saved.ID,
	})
	return &Output{Action: ActionSave, Success: true, SavedPathway: saved, Count: 1}, nil
}

func (h *Handler) remove(ctx context.Context, input *Input) (*Output, error) {
	if input.PathwayID == "" {
		return nil, errors.NewInputValidationError("pathwayId is required to remove")
	}

	removed, err := h.deps.Store.RemoveSavedPathway(ctx, input.UserID, input.PathwayID)
	if err != nil {
		return nil, errors.NewSavedPathwayFailedError("remove", err)
	}

	h.logger.Info("saved pathway removed", map[string]interface{}{
		"userId":    input.UserID,
		"pathwayId": input.PathwayID,
		"existed":   removed,
	})

	count := 0
	if removed {
		count = 1
	}
	return &Output{Action: ActionRemove, Success: true, Removed: removed, Count: count}, nil
}

func (h *Handler) list(ctx context.Context, input *Input) (*Output, error) {
	saved, err := h.deps.Store.ListSavedPathways(ctx, input.UserID)
	if err != nil {
		return nil, errors.NewSavedPathwayFailedError("list", err)
	}
	return &Output{Action: ActionList, Success: true, SavedPathways: saved, Count: len(saved)}, nil
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
