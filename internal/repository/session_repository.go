package repository

import (
	"context"
	"database/sql"
	"errors"

	"practice-quest/internal/domain"
	"practice-quest/internal/repository/models"
	"practice-quest/internal/util"

	"github.com/jmoiron/sqlx"
)

const sessionColumns = `id, user_id, practice_item_id, duration_minutes, sentiment_score,
	improvement_detected, notes, xp_earned, session_hash, created_at`

type sqlxSessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a SessionRepository backed by PRACTICE_SESSIONS.
func NewSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func toDomainSession(m *models.PracticeSession) *domain.PracticeSession {
	return &domain.PracticeSession{
		ID:                  m.ID,
		UserID:              m.UserID,
		PracticeItemID:      m.PracticeItemID,
		DurationMinutes:     m.DurationMinutes,
		SentimentScore:      util.NullInt64ToIntPtr(m.SentimentScore),
		ImprovementDetected: bool(m.ImprovementDetected),
		Notes:               m.Notes.String,
		XPEarned:            m.XPEarned,
		SessionHash:         m.SessionHash,
		CreatedAt:           m.CreatedAt,
	}
}

// Create relies on the unique SESSION_HASH constraint as the duplicate guard.
func (r *sqlxSessionRepository) Create(ctx context.Context, s *domain.PracticeSession) error {
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO practice_sessions (`+sessionColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`,
		s.ID, s.UserID, s.PracticeItemID, s.DurationMinutes, util.IntPtrToNullInt64(s.SentimentScore),
		models.OracleBool(s.ImprovementDetected), util.StringToNullString(s.Notes), s.XPEarned, s.SessionHash, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateSessionError(s.SessionHash)
		}
		return wrapDBError("create practice session", err)
	}
	return nil
}

func (r *sqlxSessionRepository) GetByID(ctx context.Context, id string) (*domain.PracticeSession, error) {
	var m models.PracticeSession
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, `SELECT `+sessionColumns+` FROM practice_sessions WHERE id = :1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("get practice session", err)
	}
	return toDomainSession(&m), nil
}

func (r *sqlxSessionRepository) LatestForItem(ctx context.Context, userID, practiceItemID string) (*domain.PracticeSession, error) {
	var m models.PracticeSession
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m,
		`SELECT `+sessionColumns+` FROM practice_sessions
		WHERE user_id = :1 AND practice_item_id = :2
		ORDER BY created_at DESC, id DESC
		FETCH FIRST 1 ROWS ONLY`, userID, practiceItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("get latest practice session", err)
	}
	return toDomainSession(&m), nil
}

func (r *sqlxSessionRepository) CountLongSessions(ctx context.Context, userID string, minMinutes int) (int, error) {
	var count int
	err := GetExecutor(ctx, r.db).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM practice_sessions WHERE user_id = :1 AND duration_minutes >= :2`, userID, minMinutes)
	if err != nil {
		return 0, wrapDBError("count long sessions", err)
	}
	return count, nil
}

func (r *sqlxSessionRepository) CountImprovements(ctx context.Context, userID string) (int, error) {
	var count int
	err := GetExecutor(ctx, r.db).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM practice_sessions WHERE user_id = :1 AND improvement_detected = 1`, userID)
	if err != nil {
		return 0, wrapDBError("count improvements", err)
	}
	return count, nil
}
