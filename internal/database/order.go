package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"ImpressionsBot/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SaveOrder inserts the order, uploading its payment screenshot first when present.
func (m *MongoDB) SaveOrder(ctx context.Context, order *entity.Order) error {
	if len(order.Screenshot) > 0 {
		meta := entity.ScreenshotMeta{
			OrderNumber: order.Number,
			ChatID:      order.ChatID,
			ContentType: http.DetectContentType(order.Screenshot),
		}
		fileID, _, err := m.UploadScreenshot(order.Number, bytes.NewReader(order.Screenshot), meta)
		if err != nil {
			return fmt.Errorf("upload screenshot: %w", err)
		}
		order.ScreenshotID = fileID
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)

	if _, err = collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("mongodb insert order: %w", err)
	}
	return nil
}

// OrderByNumber returns entity.ErrNotFound for unknown numbers.
func (m *MongoDB) OrderByNumber(ctx context.Context, number string) (*entity.Order, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)

	var order entity.Order
	err = collection.FindOne(ctx, bson.M{"number": number}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("mongodb find order: %w", err)
	}
	return &order, nil
}
