package chatclient

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// SessionStore persists chat turns. Fetches never fail: errors degrade to
// empty results.
type SessionStore interface {
	FetchHistory(ctx context.Context, sessionID string) []Message
	FetchSessions(ctx context.Context, userID string) []SessionSummary
	SaveMessage(ctx context.Context, sessionID, sender, text, userID string) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionClient implements SessionStore against the backend chat API.
type SessionClient struct {
	rest   restClient
	logger *zap.Logger
}

func NewSessionClient(baseURL string, hc *http.Client, token string, logger *zap.Logger) *SessionClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionClient{
		rest:   newRestClient(baseURL, hc, token),
		logger: logger,
	}
}

type saveMessageRequest struct {
	SessionID string `json:"sessionId"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	UserID    string `json:"userId,omitempty"`
}

func (c *SessionClient) FetchHistory(ctx context.Context, sessionID string) []Message {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.rest.do(ctx, http.MethodGet, "/api/chat/history/"+url.PathEscape(sessionID), nil, &out); err != nil {
		c.logger.Warn("fetch history failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}
	return out.Messages
}

func (c *SessionClient) FetchSessions(ctx context.Context, userID string) []SessionSummary {
	if userID == "" {
		return nil
	}
	var out struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	path := "/api/chat/sessions?userId=" + url.QueryEscape(userID)
	if err := c.rest.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		c.logger.Warn("fetch sessions failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return out.Sessions
}

func (c *SessionClient) SaveMessage(ctx context.Context, sessionID, sender, text, userID string) error {
	return c.rest.do(ctx, http.MethodPost, "/api/chat/save-message", saveMessageRequest{
		SessionID: sessionID,
		Sender:    sender,
		Message:   text,
		UserID:    userID,
	}, nil)
}

func (c *SessionClient) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rest.do(ctx, http.MethodDelete, "/api/chat/sessions/"+url.PathEscape(sessionID), nil, nil)
}
