package dto

import (
	"time"

	"practice-quest/internal/domain"
)

// RecordSessionRequest is the body of POST /api/sessions.
// @Description Request body for logging a practice session
type RecordSessionRequest struct {
	PracticeItemID  string `json:"practice_item_id" example:"01HZX3J8Q6M7V2C4K9T5W1R0PA"`
	DurationMinutes int    `json:"duration_minutes" example:"20"`
	SentimentScore  *int   `json:"sentiment_score,omitempty" example:"4"`
	Notes           string `json:"notes,omitempty"`
}

// RecordSessionResponse summarises everything a session changed.
// @Description Outcome of logging a practice session
type RecordSessionResponse struct {
	Success             bool     `json:"success"`
	SessionID           string   `json:"session_id"`
	XPEarned            int64    `json:"xp_earned"`
	NewTotalXP          int64    `json:"new_total_xp"`
	NewLevel            int      `json:"new_level"`
	LeveledUp           bool     `json:"leveled_up"`
	NewlyAwardedBadges  []string `json:"newly_awarded_badges"`
	CurrentStreak       int      `json:"current_streak"`
	LongestStreak       int      `json:"longest_streak"`
	ShieldConsumed      bool     `json:"shield_consumed"`
	ImprovementDetected bool     `json:"improvement_detected"`
	GemsBalance         int64    `json:"gems_balance"`
}

// CreatePracticeItemRequest is the body of POST /api/practice-items.
type CreatePracticeItemRequest struct {
	Name        string `json:"name" example:"Chopin Nocturne Op. 9 No. 2"`
	Description string `json:"description,omitempty"`
}

// PracticeItemResponse is the wire form of a practice item.
type PracticeItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPracticeItemResponse(item *domain.PracticeItem) PracticeItemResponse {
	return PracticeItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
	}
}

// PracticeItemsResponse lists the caller's practice items.
type PracticeItemsResponse struct {
	Items []PracticeItemResponse `json:"items"`
}

// BadgeRequest is the body of the admin badge create and update endpoints.
// @Description Badge definition
type BadgeRequest struct {
	BadgeKey      string `json:"badge_key" example:"first_steps"`
	Name          string `json:"name" example:"First Steps"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty" example:"milestone"`
	CriteriaType  string `json:"criteria_type" example:"practice_sessions"`
	CriteriaValue int64  `json:"criteria_value" example:"1"`
	XPReward      int64  `json:"xp_reward" example:"10"`
	GemReward     int64  `json:"gem_reward" example:"5"`
	DisplayOrder  int    `json:"display_order"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// ToDomain builds a definition; IsActive defaults to true.
func (r BadgeRequest) ToDomain() *domain.Badge {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	category := r.Category
	if category == "" {
		category = "general"
	}
	return &domain.Badge{
		BadgeKey:      r.BadgeKey,
		Name:          r.Name,
		Description:   r.Description,
		Category:      category,
		CriteriaType:  r.CriteriaType,
		CriteriaValue: r.CriteriaValue,
		XPReward:      r.XPReward,
		GemReward:     r.GemReward,
		DisplayOrder:  r.DisplayOrder,
		IsActive:      active,
	}
}

// BadgeResponse is the wire form of a badge definition.
type BadgeResponse struct {
	BadgeKey      string    `json:"badge_key"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	CriteriaType  string    `json:"criteria_type"`
	CriteriaValue int64     `json:"criteria_value"`
	XPReward      int64     `json:"xp_reward"`
	GemReward     int64     `json:"gem_reward"`
	DisplayOrder  int       `json:"display_order"`
	IsActive      bool      `json:"is_active"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewBadgeResponse(b *domain.Badge) BadgeResponse {
	return BadgeResponse{
		BadgeKey:      b.BadgeKey,
		Name:          b.Name,
		Description:   b.Description,
		Category:      b.Category,
		CriteriaType:  b.CriteriaType,
		CriteriaValue: b.CriteriaValue,
		XPReward:      b.XPReward,
		GemReward:     b.GemReward,
		DisplayOrder:  b.DisplayOrder,
		IsActive:      b.IsActive,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BadgesResponse lists badge definitions.
type BadgesResponse struct {
	Badges []BadgeResponse `json:"badges"`
}

// ClearAllUserDataResponse reports what the admin reset removed.
type ClearAllUserDataResponse struct {
	DeletedRows      map[string]int64 `json:"deleted_rows"`
	CacheKeysDeleted int64            `json:"cache_keys_deleted"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
