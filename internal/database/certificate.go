package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ImpressionsBot/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivateCertificate marks an unused, unexpired certificate as activated by the chat.
// It returns nil without error when no such certificate exists.
func (m *MongoDB) ActivateCertificate(ctx context.Context, code string, chatID int64, username string) (*entity.Certificate, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(certificatesCollection)

	now := time.Now()
	filter := bson.M{
		"code":       code,
		"activated":  false,
		"expires_at": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"activated":    true,
		"activated_by": chatID,
		"username":     username,
		"activated_at": now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var certificate entity.Certificate
	err = collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&certificate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb activate certificate: %w", err)
	}

	return &certificate, nil
}
