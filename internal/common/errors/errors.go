// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeProfileFetchFailed ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodeCatalogFetchFailed ErrorCode = "CATALOG_FETCH_FAILED"
	ErrCodePathwayNotFound    ErrorCode = "PATHWAY_NOT_FOUND"

	ErrCodeWeightsInvalid      ErrorCode = "WEIGHTS_INVALID"
	ErrCodeWeightsFetchFailed  ErrorCode = "WEIGHTS_FETCH_FAILED"
	ErrCodeWeightsUpdateFailed ErrorCode = "WEIGHTS_UPDATE_FAILED"

	ErrCodeSavedPathwayFailed ErrorCode = "SAVED_PATHWAY_FAILED"
	ErrCodeScorePersistFailed ErrorCode = "SCORE_PERSIST_FAILED"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeSearchQueryFailed     ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerTimeout     ErrorCode = "BROKER_TIMEOUT"
	ErrCodeBrokerRejected    ErrorCode = "BROKER_REJECTED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewUserNotFoundError(userID string) *StandardError {
	return newError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("userId: %s", userID), false, nil)
}

func NewProfileFetchFailedError(userID string, err error) *StandardError {
	return newError(ErrCodeProfileFetchFailed, "Failed to load user profile",
		fmt.Sprintf("userId: %s, error: %s", userID, err.Error()), true, err)
}

func NewCatalogFetchFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogFetchFailed, "Failed to load pathway catalog",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true, err)
}

func NewPathwayNotFoundError(pathwayID string) *StandardError {
	return newError(ErrCodePathwayNotFound, "Pathway not found", fmt.Sprintf("pathwayId: %s", pathwayID), false, nil)
}

func NewWeightsInvalidError(details string) *StandardError {
	return newError(ErrCodeWeightsInvalid, "Algorithm weights are invalid", details, false, nil)
}

func NewWeightsFetchFailedError(err error) *StandardError {
	return newError(ErrCodeWeightsFetchFailed, "Failed to load algorithm weights", err.Error(), true, err)
}

func NewWeightsUpdateFailedError(err error) *StandardError {
	return newError(ErrCodeWeightsUpdateFailed, "Failed to store algorithm weights", err.Error(), true, err)
}

func NewSavedPathwayFailedError(action string, err error) *StandardError {
	return newError(ErrCodeSavedPathwayFailed, "Saved pathway operation failed",
		fmt.Sprintf("action: %s, error: %s", action, err.Error()), true, err)
}

func NewScorePersistFailedError(err error) *StandardError {
	return newError(ErrCodeScorePersistFailed, "Failed to persist pathway scores", err.Error(), true, err)
}

func NewInputValidationError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Input validation failed", details, false, nil)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true, err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", channel, err.Error()), true, err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewBrokerError(code ErrorCode, operation string, err error) *StandardError {
	return newError(code, fmt.Sprintf("Zeebe operation '%s' failed", operation), err.Error(),
		code != ErrCodeBrokerRejected, err)
}

// BPMNErrorMapping lists the codes the process models catch by boundary event.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUserNotFound:             "USER_NOT_FOUND",
	ErrCodeProfileFetchFailed:       "PROFILE_FETCH_FAILED",
	ErrCodeCatalogFetchFailed:       "CATALOG_FETCH_FAILED",
	ErrCodePathwayNotFound:          "PATHWAY_NOT_FOUND",
	ErrCodeWeightsInvalid:           "WEIGHTS_INVALID",
	ErrCodeWeightsFetchFailed:       "WEIGHTS_FETCH_FAILED",
	ErrCodeWeightsUpdateFailed:      "WEIGHTS_UPDATE_FAILED",
	ErrCodeSavedPathwayFailed:       "SAVED_PATHWAY_FAILED",
	ErrCodeScorePersistFailed:       "SCORE_PERSIST_FAILED",
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileFetchFailed,
		ErrCodeCatalogFetchFailed,
		ErrCodeWeightsFetchFailed,
		ErrCodeWeightsUpdateFailed,
		ErrCodeSavedPathwayFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeSearchQueryFailed,
		ErrCodeScorePersistFailed,
		ErrCodeBrokerUnavailable,
		ErrCodeBrokerTimeout:
		return 2

	default:
		return 0 // business errors
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// AsStandard unwraps err to a StandardError, wrapping unknown errors as
// non-retryable internal errors.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "USER") || strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "PATHWAY"):
		return "CATALOG"
	case strings.Contains(codeStr, "WEIGHTS"):
		return "WEIGHTS"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "PERSIST"):
		return "DATABASE"
	case strings.Contains(codeStr, "BROKER"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
