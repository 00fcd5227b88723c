package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vivubot/internal/infra"
	dbm "vivubot/internal/models/db_models"
)

// ChatRepository stores sessions and their messages. Implementations exist
// for postgres (gorm) and mongo.
type ChatRepository interface {
	// AppendMessage creates the session on first use and attaches userID
	// the first time one is supplied.
	AppendMessage(ctx context.Context, sessionID string, userID *string, msg dbm.ChatMessage) error
	// GetMessages returns nil for an unknown session.
	GetMessages(ctx context.Context, sessionID string) ([]dbm.ChatMessage, error)
	// ListSessions returns sessions newest first; nil userID lists all.
	ListSessions(ctx context.Context, userID *string) ([]dbm.ChatSessionSummary, error)
	// DeleteSession reports false when the session does not exist.
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}

type chatRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewChatRepository(db *gorm.DB, logger *zap.Logger) ChatRepository {
	return &chatRepository{db: db, logger: logger}
}

func (r *chatRepository) AppendMessage(ctx context.Context, sessionID string, userID *string, msg dbm.ChatMessage) (err error) {
	tx := infra.StartTransaction(r.db.WithContext(ctx))
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		err = infra.ReleaseTransaction(tx, err, r.logger)
	}()

	session := dbm.ChatSession{SessionID: sessionID, UserID: userID}
	if err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoNothing: true,
	}).Create(&session).Error; err != nil {
		return err
	}
	if err = tx.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return err
	}

	if userID != nil && *userID != "" && session.UserID == nil {
		if err = tx.Model(&session).Update("user_id", *userID).Error; err != nil {
			return err
		}
	}

	msg.ChatSessionID = session.ID
	return tx.Create(&msg).Error
}

func (r *chatRepository) GetMessages(ctx context.Context, sessionID string) ([]dbm.ChatMessage, error) {
	var session dbm.ChatSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	messages := []dbm.ChatMessage{}
	if err := sessionMessages(r.db.WithContext(ctx), session.ID).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// sessionMessages selects a session's messages in insertion order.
func sessionMessages(db *gorm.DB, sessionPK uuid.UUID) *gorm.DB {
	return db.Model(&dbm.ChatMessage{}).
		Where("chat_session_id = ?", sessionPK).
		Order("seq ASC")
}

func (r *chatRepository) ListSessions(ctx context.Context, userID *string) ([]dbm.ChatSessionSummary, error) {
	var summaries []dbm.ChatSessionSummary

	q := r.db.WithContext(ctx).
		Model(&dbm.ChatSession{}).
		Select("chat_sessions.session_id, chat_sessions.created_at, COUNT(chat_messages.id) AS message_count").
		Joins("LEFT JOIN chat_messages ON chat_messages.chat_session_id = chat_sessions.id AND chat_messages.deleted_at IS NULL").
		Group("chat_sessions.id").
		Order("chat_sessions.created_at DESC")
	if userID != nil {
		q = q.Where("chat_sessions.user_id = ?", *userID)
	}

	if err := q.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *chatRepository) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	var session dbm.ChatSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	// hard delete so the client id can be reused
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("chat_session_id = ?", session.ID).Delete(&dbm.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&session).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
