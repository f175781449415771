package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinSessionMinutes = 1
	MaxSessionMinutes = 480
	MinSentimentScore = 1
	MaxSentimentScore = 5
	MaxNotesLength    = 1000
	MaxItemNameLength = 200
)

// PracticeItem is something a user practices (a piece, a skill, a lesson).
type PracticeItem struct {
	ID          string
	UserID      string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPracticeItem creates a new active PracticeItem instance
func NewPracticeItem(id, userID, name, description string, now time.Time) *PracticeItem {
	return &PracticeItem{
		ID:          id,
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the practice item
func (p *PracticeItem) Validate() ValidationErrors {
	var errs ValidationErrors
	if p.Name == "" {
		errs = append(errs, NewMissingFieldError("name"))
	} else if len(p.Name) > MaxItemNameLength {
		errs = append(errs, NewTooLongError("name", len(p.Name), MaxItemNameLength))
	}
	if n := utf8.RuneCountInString(p.Description); n > MaxNotesLength {
		errs = append(errs, NewTooLongError("description", n, MaxNotesLength))
	}
	return errs
}

// PracticeSession is an immutable record of one logged practice.
type PracticeSession struct {
	ID                  string
	UserID              string
	PracticeItemID      string
	DurationMinutes     int
	SentimentScore      *int
	ImprovementDetected bool
	Notes               string
	XPEarned            int64
	SessionHash         string
	CreatedAt           time.Time
}

// SessionHistory is the aggregate view of a user's sessions the badge engine needs.
type SessionHistory struct {
	LongSessionCount int
	ImprovementCount int
	// LatestSessionAt is the local wall-clock time of the session being recorded.
	LatestSessionAt time.Time
	// DaysSincePreviousPractice is the gap between the previous practice day and
	// the latest session; only meaningful when HasPreviousPractice is true.
	DaysSincePreviousPractice int
	HasPreviousPractice       bool
}
