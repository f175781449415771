package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/repository/models"
	"practice-quest/internal/util"

	"github.com/jmoiron/sqlx"
)

const statsColumns = `user_id, total_xp, current_level, current_streak, longest_streak, total_sessions,
	total_minutes, hearts_count, gems_balance, streak_shield_count, last_streak_recovery_date,
	streak_recovery_count_this_week, badges_earned, last_practice_date, show_on_leaderboard,
	created_at, updated_at`

type sqlxStatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a StatsRepository backed by USER_STATS.
func NewStatsRepository(db *sqlx.DB) domain.StatsRepository {
	return &sqlxStatsRepository{db: db}
}

func toDomainStats(m *models.UserStats) *domain.UserStats {
	if m == nil {
		return nil
	}
	return &domain.UserStats{
		UserID:                      m.UserID,
		TotalXP:                     m.TotalXP,
		CurrentLevel:                m.CurrentLevel,
		CurrentStreak:               m.CurrentStreak,
		LongestStreak:               m.LongestStreak,
		TotalSessions:               m.TotalSessions,
		TotalMinutes:                m.TotalMinutes,
		HeartsCount:                 m.HeartsCount,
		GemsBalance:                 m.GemsBalance,
		StreakShieldCount:           m.StreakShieldCount,
		LastStreakRecoveryDate:      util.DateOnly(util.NullTimeToPtr(m.LastStreakRecoveryDate)),
		StreakRecoveryCountThisWeek: m.StreakRecoveryCountThisWeek,
		BadgesEarned:                m.BadgesEarned,
		LastPracticeDate:            util.DateOnly(util.NullTimeToPtr(m.LastPracticeDate)),
		ShowOnLeaderboard:           bool(m.ShowOnLeaderboard),
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}
}

func (r *sqlxStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	var m models.UserStats
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, `SELECT `+statsColumns+` FROM user_stats WHERE user_id = :1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("get user stats", err)
	}
	return toDomainStats(&m), nil
}

func (r *sqlxStatsRepository) lock(ctx context.Context, exec DBTX, userID string) (*models.UserStats, error) {
	var m models.UserStats
	err := exec.GetContext(ctx, &m, `SELECT `+statsColumns+` FROM user_stats WHERE user_id = :1 FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LockOrCreate inserts the default row when it is missing. Two first sessions
// racing on the insert both end up locking the single surviving row.
func (r *sqlxStatsRepository) LockOrCreate(ctx context.Context, userID string, now time.Time) (*domain.UserStats, error) {
	exec := GetExecutor(ctx, r.db)

	m, err := r.lock(ctx, exec, userID)
	if err == nil {
		return toDomainStats(m), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapDBError("lock user stats", err)
	}

	fresh := domain.NewUserStats(userID, now)
	_, err = exec.ExecContext(ctx, `INSERT INTO user_stats (user_id, current_level, hearts_count, show_on_leaderboard, created_at, updated_at)
		VALUES (:1, :2, :3, :4, :5, :6)`,
		fresh.UserID, fresh.CurrentLevel, fresh.HeartsCount, models.OracleBool(fresh.ShowOnLeaderboard), now, now)
	if err != nil && !isUniqueViolation(err) {
		return nil, wrapDBError("create user stats", err)
	}

	m, err = r.lock(ctx, exec, userID)
	if err != nil {
		return nil, wrapDBError("lock user stats", err)
	}
	return toDomainStats(m), nil
}

func (r *sqlxStatsRepository) Update(ctx context.Context, s *domain.UserStats) error {
	query := `UPDATE user_stats SET
		total_xp = :1, current_level = :2, current_streak = :3, longest_streak = :4,
		total_sessions = :5, total_minutes = :6, hearts_count = :7, gems_balance = :8,
		streak_shield_count = :9, last_streak_recovery_date = :10, streak_recovery_count_this_week = :11,
		badges_earned = :12, last_practice_date = :13, show_on_leaderboard = :14, updated_at = :15
		WHERE user_id = :16`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		s.TotalXP, s.CurrentLevel, s.CurrentStreak, s.LongestStreak,
		s.TotalSessions, s.TotalMinutes, s.HeartsCount, s.GemsBalance,
		s.StreakShieldCount, util.TimePtrToNullTime(s.LastStreakRecoveryDate), s.StreakRecoveryCountThisWeek,
		s.BadgesEarned, util.TimePtrToNullTime(s.LastPracticeDate), models.OracleBool(s.ShowOnLeaderboard), s.UpdatedAt,
		s.UserID)
	if err != nil {
		return wrapDBError("update user stats", err)
	}
	return expectAffected(result, "user stats not found")
}

func (r *sqlxStatsRepository) SetLeaderboardVisibility(ctx context.Context, userID string, visible bool, now time.Time) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE user_stats SET show_on_leaderboard = :1, updated_at = :2 WHERE user_id = :3`,
		models.OracleBool(visible), now, userID)
	if err != nil {
		return wrapDBError("update leaderboard visibility", err)
	}
	return expectAffected(result, "user stats not found")
}

func (r *sqlxStatsRepository) ResetWeeklyRecoveryCounts(ctx context.Context) (int64, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE user_stats SET streak_recovery_count_this_week = 0 WHERE streak_recovery_count_this_week <> 0`)
	if err != nil {
		return 0, wrapDBError("reset weekly recovery counts", err)
	}
	return result.RowsAffected()
}

func (r *sqlxStatsRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	var rows []models.LeaderboardRow
	err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows,
		`SELECT user_id, total_xp, current_level, current_streak, badges_earned
		FROM user_stats WHERE show_on_leaderboard = 1
		ORDER BY total_xp DESC, user_id
		FETCH FIRST :1 ROWS ONLY`, limit)
	if err != nil {
		return nil, wrapDBError("read leaderboard", err)
	}

	entries := make([]*domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &domain.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        row.UserID,
			TotalXP:       row.TotalXP,
			CurrentLevel:  row.CurrentLevel,
			CurrentStreak: row.CurrentStreak,
			BadgesEarned:  row.BadgesEarned,
		}
	}
	return entries, nil
}

// expectAffected maps a zero-row UPDATE/DELETE to NOT_FOUND.
func expectAffected(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapDBError("get rows affected", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(notFoundMsg)
	}
	return nil
}
