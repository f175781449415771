package domain

import "context"

// FeedbackRequest carries what the model is told about a session.
type FeedbackRequest struct {
	ItemName            string
	DurationMinutes     int
	SentimentScore      *int
	Notes               string
	ImprovementDetected bool
	CurrentStreak       int
}

// PracticeFeedback is the coaching reply shown after a session.
type PracticeFeedback struct {
	SessionID     string `json:"session_id"`
	Summary       string `json:"summary"`
	Encouragement string `json:"encouragement"`
	NextFocus     string `json:"next_focus"`
}

// FeedbackGenerator produces AI coaching for a logged session.
type FeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, req FeedbackRequest) (*PracticeFeedback, error)
}
