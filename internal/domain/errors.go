package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
	CodeTooLong       ErrorCode = "TOO_LONG"

	// Gamification errors
	CodeDuplicateSession      ErrorCode = "DUPLICATE_SESSION"
	CodeInsufficientBalance   ErrorCode = "INSUFFICIENT_BALANCE"
	CodeConcurrencyConflict   ErrorCode = "CONCURRENCY_CONFLICT"
	CodeUnknownBadgeCriteria  ErrorCode = "UNKNOWN_BADGE_CRITERIA"
	CodeShieldCapReached      ErrorCode = "SHIELD_CAP_REACHED"
	CodeStreakNotRecoverable  ErrorCode = "STREAK_NOT_RECOVERABLE"
	CodeRecoveryLimitReached  ErrorCode = "RECOVERY_LIMIT_REACHED"
	CodeFeedbackQuotaExceeded ErrorCode = "FEEDBACK_QUOTA_EXCEEDED"
	CodeLLMServiceError       ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair that is returned to the caller.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err is, or wraps, a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewConflictError(message string, err error) *DomainError {
	return NewError(CodeConflict, message, err)
}

func NewDuplicateSessionError(sessionHash string) *DomainError {
	return NewError(CodeDuplicateSession, "an identical session was already logged today", nil).
		WithContext("session_hash", sessionHash)
}

func NewInsufficientBalanceError(balance, requested int64) *DomainError {
	return NewError(CodeInsufficientBalance,
		fmt.Sprintf("insufficient gem balance: have %d, need %d", balance, requested), nil).
		WithContext("balance", balance).
		WithContext("requested", requested)
}

func NewConcurrencyConflictError(op string, err error) *DomainError {
	return NewError(CodeConcurrencyConflict, fmt.Sprintf("concurrent update detected during %s, please retry", op), err)
}

func NewUnknownBadgeCriteriaError(criteriaType string) *DomainError {
	return NewError(CodeUnknownBadgeCriteria, fmt.Sprintf("unknown badge criteria type: %s", criteriaType), nil)
}

func NewShieldCapReachedError(cap int) *DomainError {
	return NewError(CodeShieldCapReached, fmt.Sprintf("streak shield limit of %d reached", cap), nil).
		WithContext("cap", cap)
}

func NewStreakNotRecoverableError(reason string) *DomainError {
	return NewError(CodeStreakNotRecoverable, reason, nil)
}

func NewRecoveryLimitReachedError(limit int) *DomainError {
	return NewError(CodeRecoveryLimitReached, fmt.Sprintf("streak can be recovered at most %d time(s) per week", limit), nil).
		WithContext("limit", limit)
}

func NewFeedbackQuotaExceededError(quota int64) *DomainError {
	return NewError(CodeFeedbackQuotaExceeded, "daily feedback quota exceeded", nil).
		WithContext("daily_quota", quota)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err)
}

// ValidationError describes a single violated constraint on one request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violated constraint of a request.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msg := fmt.Sprintf("validation failed: %s", ve[0].Error())
	if len(ve) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(ve)-1)
	}
	return msg
}

// Fields returns the names of the violated fields in order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, len(ve))
	for i, e := range ve {
		fields[i] = e.Field
	}
	return fields
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: fmt.Sprintf("%s is required", field)}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: fmt.Sprintf("%s has an invalid format", field), Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
		Value:   value,
	}
}

func NewTooLongError(field string, length, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeTooLong,
		Message: fmt.Sprintf("%s must be at most %d characters", field, max),
		Value:   length,
	}
}
