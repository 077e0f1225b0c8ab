package repository

import (
	"context"
	"errors"
	"fmt"

	"ImpressionsBot/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoryAll = "all"

// impression is the stored catalog item with per-language names and links.
type impression struct {
	ID         int64             `bson:"id"`
	Categories []string          `bson:"categories"`
	Price      string            `bson:"price"`
	Name       map[string]string `bson:"name"`
	URL        map[string]string `bson:"url"`
	Active     bool              `bson:"active"`
	Position   int               `bson:"position"`
}

func (i impression) localize(lang string) entity.Impression {
	return entity.Impression{
		ID:    i.ID,
		Name:  i.Name[lang],
		Price: i.Price,
		URL:   i.URL[lang],
	}
}

// Impressions lists active items of a category ordered by position.
// Items without a name in the language are skipped.
func (m *MongoDB) Impressions(ctx context.Context, lang, category string) ([]entity.Impression, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(impressionsCollection)

	filter := bson.M{"active": true}
	if category != "" && category != categoryAll {
		filter["categories"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "id", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find impressions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []impression
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb decode impressions: %w", err)
	}

	items := make([]entity.Impression, 0, len(docs))
	for _, doc := range docs {
		if doc.Name[lang] == "" {
			continue
		}
		items = append(items, doc.localize(lang))
	}
	return items, nil
}

// Impression returns entity.ErrNotFound for unknown or inactive ids.
func (m *MongoDB) Impression(ctx context.Context, id int64, lang string) (*entity.Impression, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(impressionsCollection)

	var doc impression
	err = collection.FindOne(ctx, bson.M{"id": id, "active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("mongodb find impression: %w", err)
	}

	item := doc.localize(lang)
	return &item, nil
}

// Settings returns entity.ErrNotFound when the language has no settings document.
func (m *MongoDB) Settings(ctx context.Context, lang string) (*entity.Settings, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(settingsCollection)

	var settings entity.Settings
	err = collection.FindOne(ctx, bson.M{"language": lang}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("mongodb find settings: %w", err)
	}

	return &settings, nil
}
