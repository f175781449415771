package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SessionHash fingerprints a session's content on one calendar day.
// A missing sentiment hashes as 0.
func SessionHash(userID, practiceItemID string, durationMinutes int, sentiment *int, day time.Time) string {
	s := 0
	if sentiment != nil {
		s = *sentiment
	}
	raw := fmt.Sprintf("%s|%s|%d|%d|%s", userID, practiceItemID, durationMinutes, s, day.Format("2006-01-02"))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
