package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality.
// Every method collects all violations instead of stopping at the first.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRecordSession validates the record session request
func (v *Validator) ValidateRecordSession(req *dto.RecordSessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.PracticeItemID) == "" {
		errors = append(errors, domain.NewMissingFieldError("practice_item_id"))
	} else if !isValidULID(req.PracticeItemID) {
		errors = append(errors, domain.NewInvalidFormatError("practice_item_id", req.PracticeItemID))
	}

	if req.DurationMinutes < domain.MinSessionMinutes || req.DurationMinutes > domain.MaxSessionMinutes {
		errors = append(errors, domain.NewOutOfRangeError("duration_minutes", req.DurationMinutes, domain.MinSessionMinutes, domain.MaxSessionMinutes))
	}

	if req.SentimentScore != nil {
		if s := *req.SentimentScore; s < domain.MinSentimentScore || s > domain.MaxSentimentScore {
			errors = append(errors, domain.NewOutOfRangeError("sentiment_score", s, domain.MinSentimentScore, domain.MaxSentimentScore))
		}
	}

	if n := utf8.RuneCountInString(req.Notes); n > domain.MaxNotesLength {
		errors = append(errors, domain.NewTooLongError("notes", n, domain.MaxNotesLength))
	}

	return errors
}

// ValidateCreatePracticeItem validates the create practice item request
func (v *Validator) ValidateCreatePracticeItem(req *dto.CreatePracticeItemRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	} else if n := utf8.RuneCountInString(name); n > domain.MaxItemNameLength {
		errors = append(errors, domain.NewTooLongError("name", n, domain.MaxItemNameLength))
	}

	if n := utf8.RuneCountInString(req.Description); n > domain.MaxNotesLength {
		errors = append(errors, domain.NewTooLongError("description", n, domain.MaxNotesLength))
	}

	return errors
}

// ValidateID validates a ULID path parameter
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !isValidULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, id)}
	}
	return nil
}

// ValidatePagination validates limit/offset query parameters
func (v *Validator) ValidatePagination(p dto.Pagination) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if p.Limit < 0 || p.Limit > 100 {
		errors = append(errors, domain.NewOutOfRangeError("limit", p.Limit, 0, 100))
	}
	if p.Offset < 0 {
		errors = append(errors, domain.NewInvalidFormatError("offset", p.Offset))
	}
	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded (Crockford's Base32)
	return len(s) == 26 && validULID.MatchString(s)
}
