package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dbm "vivubot/internal/models/db_models"
)

const chatHistoryCollection = "chathistories"

type chatMongoRepository struct {
	coll *mongo.Collection
}

func NewChatMongoRepository(db *mongo.Database) ChatRepository {
	return &chatMongoRepository{coll: db.Collection(chatHistoryCollection)}
}

// EnsureChatIndexes creates the unique sessionId index and the user lookup index.
func EnsureChatIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(chatHistoryCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *chatMongoRepository) AppendMessage(ctx context.Context, sessionID string, userID *string, msg dbm.ChatMessage) error {
	ts := msg.Timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{
			"$push":        bson.M{"messages": dbm.ChatHistoryMessage{Sender: msg.Sender, Message: msg.Message, Timestamp: ts}},
			"$setOnInsert": bson.M{"createdAt": time.Now().Unix()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	if userID != nil && *userID != "" {
		_, err = r.coll.UpdateOne(ctx,
			bson.M{"sessionId": sessionID, "user": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"user": *userID}},
		)
	}
	return err
}

func (r *chatMongoRepository) GetMessages(ctx context.Context, sessionID string) ([]dbm.ChatMessage, error) {
	var doc dbm.ChatHistoryDocument
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	messages := make([]dbm.ChatMessage, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		messages = append(messages, dbm.ChatMessage{Sender: m.Sender, Message: m.Message, Timestamp: m.Timestamp})
	}
	return messages, nil
}

func (r *chatMongoRepository) ListSessions(ctx context.Context, userID *string) ([]dbm.ChatSessionSummary, error) {
	filter := bson.M{}
	if userID != nil {
		filter["user"] = *userID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []dbm.ChatHistoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	summaries := make([]dbm.ChatSessionSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, dbm.ChatSessionSummary{
			SessionID:    d.SessionID,
			CreatedAt:    d.CreatedAt,
			MessageCount: len(d.Messages),
		})
	}
	return summaries, nil
}

func (r *chatMongoRepository) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
