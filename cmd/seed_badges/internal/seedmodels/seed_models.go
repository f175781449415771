package seedmodels

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"practice-quest/internal/domain"
)

//go:embed default_badges.json
var defaultBadges []byte

// SeedBadge defines the structure for a badge definition in the JSON seed file.
type SeedBadge struct {
	BadgeKey      string `json:"badge_key"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	CriteriaType  string `json:"criteria_type"`
	CriteriaValue int64  `json:"criteria_value"`
	XPReward      int64  `json:"xp_reward"`
	GemReward     int64  `json:"gem_reward"`
	DisplayOrder  int    `json:"display_order"`
}

// ToDomain returns an active definition.
func (s SeedBadge) ToDomain() *domain.Badge {
	return &domain.Badge{
		BadgeKey:      s.BadgeKey,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		CriteriaType:  s.CriteriaType,
		CriteriaValue: s.CriteriaValue,
		XPReward:      s.XPReward,
		GemReward:     s.GemReward,
		DisplayOrder:  s.DisplayOrder,
		IsActive:      true,
	}
}

// DefaultBadges decodes the built-in catalogue.
func DefaultBadges() ([]SeedBadge, error) {
	return Parse(defaultBadges)
}

// Parse decodes a catalogue and rejects duplicate keys.
func Parse(data []byte) ([]SeedBadge, error) {
	var badges []SeedBadge
	if err := json.Unmarshal(data, &badges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal badge catalogue: %w", err)
	}
	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if seen[b.BadgeKey] {
			return nil, fmt.Errorf("duplicate badge_key %q in catalogue", b.BadgeKey)
		}
		seen[b.BadgeKey] = true
	}
	return badges, nil
}
