package repository

import (
	"context"
	"errors"
	"fmt"

	"ImpressionsBot/bot/conversation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveConversation upserts the record of one chat by chat_id.
func (m *MongoDB) SaveConversation(ctx context.Context, rec *conversation.Record) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)

	filter := bson.D{{Key: "chat_id", Value: rec.ChatID}}
	update := bson.D{{Key: "$set", Value: rec}}
	opts := options.Update().SetUpsert(true)

	if _, err = collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("mongodb save conversation: %w", err)
	}
	return nil
}

// LoadConversation returns nil when the chat has no record.
func (m *MongoDB) LoadConversation(ctx context.Context, chatID int64) (*conversation.Record, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)

	var rec conversation.Record
	err = collection.FindOne(ctx, bson.D{{Key: "chat_id", Value: chatID}}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb load conversation: %w", err)
	}
	if rec.History == nil {
		rec.History = []int64{}
	}

	return &rec, nil
}

func (m *MongoDB) DeleteConversation(ctx context.Context, chatID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)

	_, err = collection.DeleteOne(ctx, bson.D{{Key: "chat_id", Value: chatID}})
	return err
}
