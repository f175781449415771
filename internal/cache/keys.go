package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "pquest"

	ServiceStats    = "stats"
	ServiceFeedback = "feedback"
	ServiceRate     = "ratelimit"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ServicePrefix returns the prefix shared by every key of serviceName.
func ServicePrefix(serviceName string) string {
	return GlobalKeyPrefix + ":" + serviceName + ":"
}

func UserStatsKey(userID string) string {
	return GenerateCacheKey(ServiceStats, "user", userID)
}

func LeaderboardKey(limit int) string {
	return GenerateCacheKey(ServiceStats, "leaderboard", strconv.Itoa(limit))
}

// FeedbackQuotaKey counts feedback requests of one user on one calendar day (YYYY-MM-DD).
func FeedbackQuotaKey(userID, day string) string {
	return GenerateCacheKey(ServiceFeedback, "quota", userID, day)
}
