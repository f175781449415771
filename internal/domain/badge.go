package domain

import (
	"regexp"
	"time"
)

var badgeKeyPattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// Badge is an admin-managed achievement definition.
type Badge struct {
	BadgeKey      string
	Name          string
	Description   string
	Category      string
	CriteriaType  string
	CriteriaValue int64
	XPReward      int64
	GemReward     int64
	DisplayOrder  int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Criteria parses the stored tag and threshold into the typed rule.
func (b *Badge) Criteria() (Criteria, error) {
	return ParseCriteria(b.CriteriaType, b.CriteriaValue)
}

// Validate checks a definition before it is persisted.
func (b *Badge) Validate() ValidationErrors {
	var errs ValidationErrors
	if b.BadgeKey == "" {
		errs = append(errs, NewMissingFieldError("badge_key"))
	} else if !badgeKeyPattern.MatchString(b.BadgeKey) {
		errs = append(errs, NewInvalidFormatError("badge_key", b.BadgeKey))
	}
	if b.Name == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if b.CriteriaType == "" {
		errs = append(errs, NewMissingFieldError("criteria_type"))
	} else if _, err := b.Criteria(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "criteria_type",
			Code:    CodeInvalidFormat,
			Message: err.Error(),
			Value:   b.CriteriaType,
		})
	}
	if b.CriteriaValue < 0 {
		errs = append(errs, ValidationError{Field: "criteria_value", Code: CodeOutOfRange, Message: "criteria_value must not be negative", Value: b.CriteriaValue})
	}
	if b.XPReward < 0 {
		errs = append(errs, ValidationError{Field: "xp_reward", Code: CodeOutOfRange, Message: "xp_reward must not be negative", Value: b.XPReward})
	}
	if b.GemReward < 0 {
		errs = append(errs, ValidationError{Field: "gem_reward", Code: CodeOutOfRange, Message: "gem_reward must not be negative", Value: b.GemReward})
	}
	return errs
}

// UserBadge records that a user earned a badge. (UserID, BadgeKey) is unique.
type UserBadge struct {
	UserID   string
	BadgeKey string
	EarnedAt time.Time
}

// EarnedBadge joins a UserBadge with its definition for display.
type EarnedBadge struct {
	BadgeKey    string    `json:"badge_key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
	EarnedAt    time.Time `json:"earned_at"`
}
