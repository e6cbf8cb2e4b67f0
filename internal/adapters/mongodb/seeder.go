package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/port"
)

// Seed удаляет коллекции, заливает набор данных заново и создает индексы.
func (a *MongoStorageAdapter) Seed(ctx context.Context, data port.Dataset) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MongoStorageAdapter",
		"method":    "Seed",
		"database":  a.db.Name(),
	})

	for _, name := range []string{ownersCollection, propertiesCollection, imagesCollection, tracesCollection} {
		if err := a.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("MongoStorageAdapter: failed to drop collection %s: %w", name, err)
		}
		logger.Debug("Collection dropped", port.Fields{"collection": name})
	}

	owners := make([]interface{}, 0, len(data.Owners))
	for _, o := range data.Owners {
		owners = append(owners, toOwnerDocument(o))
	}
	properties := make([]interface{}, 0, len(data.Properties))
	for _, p := range data.Properties {
		properties = append(properties, toPropertyDocument(p))
	}
	images := make([]interface{}, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, toImageDocument(img))
	}
	traces := make([]interface{}, 0, len(data.Traces))
	for _, t := range data.Traces {
		traces = append(traces, toTraceDocument(t))
	}

	batches := []struct {
		collection string
		docs       []interface{}
	}{
		{ownersCollection, owners},
		{propertiesCollection, properties},
		{imagesCollection, images},
		{tracesCollection, traces},
	}
	for _, b := range batches {
		if len(b.docs) == 0 {
			continue
		}
		res, err := a.db.Collection(b.collection).InsertMany(ctx, b.docs)
		if err != nil {
			return fmt.Errorf("MongoStorageAdapter: failed to seed %s: %w", b.collection, err)
		}
		logger.Info("Collection seeded", port.Fields{"collection": b.collection, "inserted": len(res.InsertedIDs)})
	}

	return a.ensureIndexes(ctx)
}

func (a *MongoStorageAdapter) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		propertiesCollection: {
			{Keys: bson.D{{Key: "idOwner", Value: 1}}},
			{Keys: bson.D{{Key: "price.amount", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		imagesCollection: {
			{Keys: bson.D{{Key: "idProperty", Value: 1}}},
		},
		tracesCollection: {
			{Keys: bson.D{{Key: "idProperty", Value: 1}, {Key: "dateSale", Value: -1}}},
		},
		ownersCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("owners_name")},
		},
	}
	for collection, models := range indexes {
		if _, err := a.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("MongoStorageAdapter: failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
