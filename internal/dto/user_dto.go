package dto

import (
	"time"

	"practice-quest/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the claims of the JWTs issued by the host platform.
// The user id travels in the registered "sub" claim.
type AuthClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject of the token.
func (c *AuthClaims) UserID() string {
	return c.Subject
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Pagination DTOs ---

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewPaginationInfo derives page numbers from limit/offset.
func NewPaginationInfo(total int64, p Pagination) PaginationInfo {
	info := PaginationInfo{TotalItems: total, Limit: p.Limit, Offset: p.Offset}
	if p.Limit > 0 {
		info.CurrentPage = p.Offset/p.Limit + 1
		info.TotalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return info
}

// --- Stats DTOs ---

// UserStatsResponse is the public projection of a user's stats.
// @Description Gamification stats of a user
type UserStatsResponse struct {
	UserID                      string     `json:"user_id"`
	TotalXP                     int64      `json:"total_xp"`
	CurrentLevel                int        `json:"current_level"`
	XPForNextLevel              int64      `json:"xp_for_next_level"`
	CurrentStreak               int        `json:"current_streak"`
	LongestStreak               int        `json:"longest_streak"`
	TotalSessions               int        `json:"total_sessions"`
	TotalMinutes                int        `json:"total_minutes"`
	HeartsCount                 int        `json:"hearts_count"`
	GemsBalance                 int64      `json:"gems_balance"`
	StreakShieldCount           int        `json:"streak_shield_count"`
	StreakRecoveryCountThisWeek int        `json:"streak_recovery_count_this_week"`
	BadgesEarned                int        `json:"badges_earned"`
	LastPracticeDate            *time.Time `json:"last_practice_date,omitempty"`
	ShowOnLeaderboard           bool       `json:"show_on_leaderboard"`
}

// NewUserStatsResponse projects stats; xpForNextLevel is 0 at max level.
func NewUserStatsResponse(s *domain.UserStats, xpForNextLevel int64) *UserStatsResponse {
	return &UserStatsResponse{
		UserID:                      s.UserID,
		TotalXP:                     s.TotalXP,
		CurrentLevel:                s.CurrentLevel,
		XPForNextLevel:              xpForNextLevel,
		CurrentStreak:               s.CurrentStreak,
		LongestStreak:               s.LongestStreak,
		TotalSessions:               s.TotalSessions,
		TotalMinutes:                s.TotalMinutes,
		HeartsCount:                 s.HeartsCount,
		GemsBalance:                 s.GemsBalance,
		StreakShieldCount:           s.StreakShieldCount,
		StreakRecoveryCountThisWeek: s.StreakRecoveryCountThisWeek,
		BadgesEarned:                s.BadgesEarned,
		LastPracticeDate:            s.LastPracticeDate,
		ShowOnLeaderboard:           s.ShowOnLeaderboard,
	}
}

// LeaderboardVisibilityRequest toggles whether the caller appears on the leaderboard.
type LeaderboardVisibilityRequest struct {
	ShowOnLeaderboard *bool `json:"show_on_leaderboard"`
}

// LeaderboardResponse lists the top users by XP.
type LeaderboardResponse struct {
	Entries []*domain.LeaderboardEntry `json:"entries"`
}

// --- Gem DTOs ---

// GemHistoryResponse is one page of the caller's gem ledger.
type GemHistoryResponse struct {
	Transactions   []*domain.GemTransaction `json:"transactions"`
	PaginationInfo PaginationInfo           `json:"pagination_info"`
}

// AdjustGemsRequest is an admin correction. A negative amount debits.
type AdjustGemsRequest struct {
	Amount int64  `json:"amount" example:"25"`
	Reason string `json:"reason" example:"Refund for failed purchase"`
}

// ShieldPurchaseResponse is returned after buying a streak shield.
type ShieldPurchaseResponse struct {
	StreakShieldCount int   `json:"streak_shield_count"`
	GemsBalance       int64 `json:"gems_balance"`
}

// StreakRecoveryResponse is returned after a paid streak recovery.
type StreakRecoveryResponse struct {
	CurrentStreak               int   `json:"current_streak"`
	GemsBalance                 int64 `json:"gems_balance"`
	StreakRecoveryCountThisWeek int   `json:"streak_recovery_count_this_week"`
}

// EarnedBadgesResponse lists the caller's badges.
type EarnedBadgesResponse struct {
	Badges []*domain.EarnedBadge `json:"badges"`
}
