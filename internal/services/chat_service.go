package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	dbm "vivubot/internal/models/db_models"
	"vivubot/internal/models/request_models"
	"vivubot/internal/models/response_models"
	"vivubot/internal/repositories"
	"vivubot/pkg/utils"
)

type ChatServiceInterface interface {
	SaveMessage(ctx context.Context, req request_models.SaveMessageRequest) error
	GetHistory(ctx context.Context, sessionID string) (response_models.ChatHistoryResponse, error)
	ListSessions(ctx context.Context, userID string) (response_models.ChatSessionsResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type ChatService struct {
	chatRepository repositories.ChatRepository
	now            func() time.Time
}

func NewChatService(chatRepository repositories.ChatRepository) ChatServiceInterface {
	return &ChatService{
		chatRepository: chatRepository,
		now:            time.Now,
	}
}

func (s *ChatService) SaveMessage(ctx context.Context, req request_models.SaveMessageRequest) error {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" || req.Sender == "" || req.Message == "" {
		return fmt.Errorf("%w: sessionId, sender and message are required", utils.ErrInvalidInput)
	}
	if req.Sender != dbm.SenderUser && req.Sender != dbm.SenderBot {
		return fmt.Errorf("%w: sender must be %q or %q", utils.ErrInvalidInput, dbm.SenderUser, dbm.SenderBot)
	}

	var userID *string
	if u := strings.TrimSpace(req.UserID); u != "" {
		userID = &u
	}

	msg := dbm.ChatMessage{
		Sender:    req.Sender,
		Message:   req.Message,
		Timestamp: s.now().Unix(),
	}
	if err := s.chatRepository.AppendMessage(ctx, sessionID, userID, msg); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *ChatService) GetHistory(ctx context.Context, sessionID string) (response_models.ChatHistoryResponse, error) {
	messages, err := s.chatRepository.GetMessages(ctx, sessionID)
	if err != nil {
		return response_models.ChatHistoryResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, response_models.ChatMessageResponse{
			Sender:    m.Sender,
			Message:   m.Message,
			Timestamp: utils.FormatRFC3339VN(utils.FromUnixSecondsVN(m.Timestamp)),
		})
	}
	return response_models.ChatHistoryResponse{Messages: out}, nil
}

// ListSessions lists every session when userID is empty.
func (s *ChatService) ListSessions(ctx context.Context, userID string) (response_models.ChatSessionsResponse, error) {
	var filter *string
	if userID != "" {
		filter = &userID
	}

	summaries, err := s.chatRepository.ListSessions(ctx, filter)
	if err != nil {
		return response_models.ChatSessionsResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	sessions := make([]response_models.ChatSessionResponse, 0, len(summaries))
	for _, sm := range summaries {
		sessions = append(sessions, response_models.ChatSessionResponse{
			SessionID:    sm.SessionID,
			CreatedAt:    utils.FormatRFC3339VN(utils.FromUnixSecondsVN(sm.CreatedAt)),
			MessageCount: sm.MessageCount,
		})
	}
	return response_models.ChatSessionsResponse{Sessions: sessions}, nil
}

func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	deleted, err := s.chatRepository.DeleteSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrSessionNotFound
	}
	return nil
}
