package domain

// CriteriaKind is the persisted tag of a badge rule.
type CriteriaKind string

const (
	CriteriaTotalXP          CriteriaKind = "total_xp"
	CriteriaPracticeSessions CriteriaKind = "practice_sessions"
	CriteriaStreak           CriteriaKind = "streak"
	CriteriaLongSessionCount CriteriaKind = "long_session_count"
	CriteriaImprovementCount CriteriaKind = "improvement_count"
	CriteriaComeback         CriteriaKind = "comeback"
	CriteriaTimeOfDay        CriteriaKind = "time_of_day"
)

// TimeWindow selects the part of the day a time_of_day badge rewards.
type TimeWindow int64

const (
	WindowEarly TimeWindow = 1
	WindowLate  TimeWindow = 2
)

// Criteria is the closed set of badge rules. Only the types in this file
// implement it; Qualifies switches over all of them.
type Criteria interface {
	Kind() CriteriaKind
	criteria()
}

type TotalXPCriteria struct{ MinXP int64 }
type PracticeSessionsCriteria struct{ MinSessions int64 }
type StreakCriteria struct{ MinStreak int64 }
type LongSessionCountCriteria struct{ MinCount int64 }
type ImprovementCountCriteria struct{ MinCount int64 }

// ComebackCriteria rewards a session after at least GapDays days without practice.
// A zero GapDays falls back to GamificationRules.ComebackGapDays.
type ComebackCriteria struct{ GapDays int64 }

type TimeOfDayCriteria struct{ Window TimeWindow }

func (TotalXPCriteria) Kind() CriteriaKind          { return CriteriaTotalXP }
func (PracticeSessionsCriteria) Kind() CriteriaKind { return CriteriaPracticeSessions }
func (StreakCriteria) Kind() CriteriaKind           { return CriteriaStreak }
func (LongSessionCountCriteria) Kind() CriteriaKind { return CriteriaLongSessionCount }
func (ImprovementCountCriteria) Kind() CriteriaKind { return CriteriaImprovementCount }
func (ComebackCriteria) Kind() CriteriaKind         { return CriteriaComeback }
func (TimeOfDayCriteria) Kind() CriteriaKind        { return CriteriaTimeOfDay }

func (TotalXPCriteria) criteria()          {}
func (PracticeSessionsCriteria) criteria() {}
func (StreakCriteria) criteria()           {}
func (LongSessionCountCriteria) criteria() {}
func (ImprovementCountCriteria) criteria() {}
func (ComebackCriteria) criteria()         {}
func (TimeOfDayCriteria) criteria()        {}

// ParseCriteria turns a stored (criteria_type, criteria_value) pair into a Criteria.
// Unknown tags and out-of-domain time windows yield an UNKNOWN_BADGE_CRITERIA error.
func ParseCriteria(criteriaType string, value int64) (Criteria, error) {
	switch CriteriaKind(criteriaType) {
	case CriteriaTotalXP:
		return TotalXPCriteria{MinXP: value}, nil
	case CriteriaPracticeSessions:
		return PracticeSessionsCriteria{MinSessions: value}, nil
	case CriteriaStreak:
		return StreakCriteria{MinStreak: value}, nil
	case CriteriaLongSessionCount:
		return LongSessionCountCriteria{MinCount: value}, nil
	case CriteriaImprovementCount:
		return ImprovementCountCriteria{MinCount: value}, nil
	case CriteriaComeback:
		return ComebackCriteria{GapDays: value}, nil
	case CriteriaTimeOfDay:
		w := TimeWindow(value)
		if w != WindowEarly && w != WindowLate {
			return nil, NewUnknownBadgeCriteriaError(criteriaType).WithContext("criteria_value", value)
		}
		return TimeOfDayCriteria{Window: w}, nil
	default:
		return nil, NewUnknownBadgeCriteriaError(criteriaType)
	}
}

// Qualifies reports whether the user described by stats and history meets c.
func Qualifies(c Criteria, stats *UserStats, history SessionHistory, rules GamificationRules) bool {
	switch c := c.(type) {
	case TotalXPCriteria:
		return stats.TotalXP >= c.MinXP
	case PracticeSessionsCriteria:
		return int64(stats.TotalSessions) >= c.MinSessions
	case StreakCriteria:
		return int64(stats.CurrentStreak) >= c.MinStreak
	case LongSessionCountCriteria:
		return int64(history.LongSessionCount) >= c.MinCount
	case ImprovementCountCriteria:
		return int64(history.ImprovementCount) >= c.MinCount
	case ComebackCriteria:
		gap := c.GapDays
		if gap <= 0 {
			gap = int64(rules.ComebackGapDays)
		}
		return history.HasPreviousPractice && int64(history.DaysSincePreviousPractice) >= gap
	case TimeOfDayCriteria:
		if history.LatestSessionAt.IsZero() {
			return false
		}
		hour := history.LatestSessionAt.Hour()
		if c.Window == WindowEarly {
			return hour < rules.EarlyWindowEndHour
		}
		return hour >= rules.LateWindowStartHour
	}
	return false
}
