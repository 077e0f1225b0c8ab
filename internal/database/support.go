package repository

import (
	"context"
	"fmt"

	"ImpressionsBot/entity"
)

func (m *MongoDB) SaveSupportApplication(ctx context.Context, app *entity.SupportApplication) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(supportCollection)

	if _, err = collection.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("mongodb insert support application: %w", err)
	}
	return nil
}
