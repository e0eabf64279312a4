// internal/workers/pathway/send-recommendation-summary/handler.go
package sendrecommendationsummary

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"pathway-workers/internal/common/aws"
	"pathway-workers/internal/common/errors"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/metrics"
	"pathway-workers/internal/common/validation"
	"pathway-workers/internal/models"
	"pathway-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-recommendation-summary"
)

type ContactStore interface {
	GetContact(ctx context.Context, userID string) (*models.Contact, error)
}

type EmailSender interface {
	Send(ctx context.Context, email aws.Email) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

// Dependencies wires the handler. A nil Email or SMS sender disables that
// channel regardless of config.
type Dependencies struct {
	Store     ContactStore
	Email     EmailSender
	SMS       SMSSender
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

func (h *Handler) emailOn() bool { return h.config.EmailEnabled && h.deps.Email != nil }
func (h *Handler) smsOn() bool   { return h.config.SMSEnabled && h.deps.SMS != nil }

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, errors.NewInputValidationError("userId is required")
	}

	out := &Output{NotificationID: uuid.NewString(), SentAt: time.Now().UTC()}
	if !h.emailOn() && !h.smsOn() {
		out.Status = models.NotificationDisabled
		metrics.NotificationsSent.WithLabelValues("all", out.Status).Inc()
		h.logger.Info("notifications disabled", map[string]interface{}{"userId": input.UserID})
		return out, nil
	}

	contact, err := h.deps.Store.GetContact(ctx, input.UserID)
	if err != nil {
		if stderrors.Is(err, store.ErrUserNotFound) {
			return nil, errors.NewUserNotFoundError(input.UserID)
		}
		return nil, errors.NewProfileFetchFailedError(input.UserID, err)
	}

	counts := input.Counts
	if counts == nil {
		counts = map[models.Tier]int{}
		for _, p := range input.TopPathways {
			counts[p.Tier]++
		}
	}
	view := newSummaryView(counts, input.TopPathways, h.config.TopPathways)

	if h.emailOn() && contact.Email != "" {
		html, err := renderHTML(view)
		if err != nil {
			return nil, errors.NewNotificationSendFailedError("email", err)
		}
		id, err := h.deps.Email.Send(ctx, aws.Email{
			To:       contact.Email,
			Subject:  h.config.Subject,
			HTMLBody: html,
			TextBody: renderText(view),
		})
		if err != nil {
			metrics.NotificationsSent.WithLabelValues("email", models.NotificationFailed).Inc()
			return nil, errors.NewNotificationSendFailedError("email", err)
		}
		metrics.NotificationsSent.WithLabelValues("email", models.NotificationSent).Inc()
		out.EmailMessageID = id
	}

	if h.smsOn() && view.Fully > 0 && contact.Phone != "" {
		id, err := h.deps.SMS.SendSMS(ctx, contact.Phone, renderSMS(view))
		if err != nil {
			metrics.NotificationsSent.WithLabelValues("sms", models.NotificationFailed).Inc()
			// Retrying would resend the email.
			if out.EmailMessageID == "" {
				return nil, errors.NewNotificationSendFailedError("sms", err)
			}
			h.logger.Warn("sms delivery failed", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
			out.SMSError = err.Error()
		} else {
			metrics.NotificationsSent.WithLabelValues("sms", models.NotificationSent).Inc()
			out.SMSMessageID = id
		}
	}

	out.Status = models.NotificationSent
	if out.EmailMessageID == "" && out.SMSMessageID == "" {
		out.Status = models.NotificationFailed
	}

	h.logger.Info("recommendation summary processed", map[string]interface{}{
		"userId":         input.UserID,
		"notificationId": out.NotificationID,
		"status":         out.Status,
		"email":          out.EmailMessageID != "",
		"sms":            out.SMSMessageID != "",
	})
	return out, nil
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
