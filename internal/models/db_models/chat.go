package db_models

import (
	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatSession is one conversation, created the first time a message is saved
// under its client generated SessionID.
type ChatSession struct {
	BaseModel
	SessionID string  `gorm:"uniqueIndex;not null"`
	UserID    *string `gorm:"index"`

	Messages []ChatMessage `gorm:"foreignKey:ChatSessionID;constraint:OnDelete:CASCADE"`
}

// ChatMessage rows are read back in Seq order; Timestamp is whole seconds.
type ChatMessage struct {
	BaseModel
	Seq           int64     `gorm:"type:bigserial;autoIncrement;index"`
	ChatSessionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Sender        string    `gorm:"type:varchar(8);not null"`
	Message       string    `gorm:"type:text;not null"`
	Timestamp     int64     `gorm:"index"`
}

// ChatSessionSummary is a projection used when listing sessions.
type ChatSessionSummary struct {
	SessionID    string
	CreatedAt    int64
	MessageCount int
}

// ChatHistoryDocument is the mongo shape of a session with embedded
// messages (collection "chathistories").
type ChatHistoryDocument struct {
	SessionID string               `bson:"sessionId"`
	User      *string              `bson:"user,omitempty"`
	Messages  []ChatHistoryMessage `bson:"messages"`
	CreatedAt int64                `bson:"createdAt"`
}

type ChatHistoryMessage struct {
	Sender    string `bson:"sender"`
	Message   string `bson:"message"`
	Timestamp int64  `bson:"timestamp"`
}
