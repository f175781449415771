package domain

// GamificationRules holds the tunable constants of the XP, level and badge rules.
//
// Session XP  = min(duration * XPPerMinute, SessionXPCap) + sentiment * SentimentBonusPerPoint
// Level L     requires LevelStep * L * (L-1) total XP (L1=0, L2=100, L3=300, L4=600 with step 50)
type GamificationRules struct {
	XPPerMinute            int
	SessionXPCap           int
	SentimentBonusPerPoint int
	LevelStep              int64
	MaxLevel               int
	LongSessionMinutes     int
	ComebackGapDays        int
	EarlyWindowEndHour     int
	LateWindowStartHour    int
	ShieldCap              int
}

// DefaultGamificationRules returns the documented product defaults.
func DefaultGamificationRules() GamificationRules {
	return GamificationRules{
		XPPerMinute:            1,
		SessionXPCap:           120,
		SentimentBonusPerPoint: 2,
		LevelStep:              50,
		MaxLevel:               100,
		LongSessionMinutes:     60,
		ComebackGapDays:        14,
		EarlyWindowEndHour:     8,
		LateWindowStartHour:    21,
		ShieldCap:              DefaultShieldCap,
	}
}

// SessionXP computes the XP a single session earns before any badge rewards.
func (r GamificationRules) SessionXP(durationMinutes int, sentiment *int) int64 {
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	base := durationMinutes * r.XPPerMinute
	if r.SessionXPCap > 0 && base > r.SessionXPCap {
		base = r.SessionXPCap
	}
	bonus := 0
	if sentiment != nil {
		bonus = *sentiment * r.SentimentBonusPerPoint
	}
	return int64(base + bonus)
}

// XPForLevel returns the total XP needed to reach level.
func (r GamificationRules) XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	l := int64(level)
	return r.LevelStep * l * (l - 1)
}

// LevelForXP maps total XP onto the level curve. It is non-decreasing in xp.
func (r GamificationRules) LevelForXP(xp int64) int {
	level := 1
	for level < r.MaxLevel && xp >= r.XPForLevel(level+1) {
		level++
	}
	return level
}
