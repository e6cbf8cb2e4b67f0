package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"
)

// MongoStorageAdapter хранит данные mock API в MongoDB.
type MongoStorageAdapter struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

var (
	_ port.MockStoragePort = (*MongoStorageAdapter)(nil)
	_ port.SeederPort      = (*MongoStorageAdapter)(nil)
)

func NewMongoStorageAdapter(client *mongo.Client, db *mongo.Database) (*MongoStorageAdapter, error) {
	if client == nil || db == nil {
		return nil, fmt.Errorf("mongodb client and database are required")
	}
	return &MongoStorageAdapter{
		client: client,
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (a *MongoStorageAdapter) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return fmt.Errorf("MongoStorageAdapter: failed to load %s %s: %w", kind, id, err)
}

// ---- properties ----

func (a *MongoStorageAdapter) ListProperties(ctx context.Context, filters domain.PropertyFilters, page domain.PageRequest) (*domain.PropertyPage, error) {
	page = page.WithDefaults(domain.DefaultPropertyPageLimit)
	coll := a.db.Collection(propertiesCollection)
	filter := propertyFilter(filters)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to count properties: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to query properties: %w", err)
	}
	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to decode properties: %w", err)
	}

	properties := make([]domain.Property, 0, len(docs))
	for _, d := range docs {
		properties = append(properties, d.toDomain())
	}
	return &domain.PropertyPage{
		Properties: properties,
		Pagination: domain.NewPagination(page.Page, page.Limit, int(total)),
	}, nil
}

func (a *MongoStorageAdapter) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	var doc propertyDocument
	if err := a.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, notFound("property", id, err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (a *MongoStorageAdapter) CreateProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	now := a.now()
	property.CreatedAt, property.UpdatedAt = now, now

	if _, err := a.db.Collection(propertiesCollection).InsertOne(ctx, toPropertyDocument(property)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("property %s already exists: %w", property.ID, domain.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("MongoStorageAdapter: failed to insert property: %w", err)
	}
	return &property, nil
}

func (a *MongoStorageAdapter) UpdateProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	existing, err := a.GetProperty(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	property.CreatedAt = existing.CreatedAt
	property.UpdatedAt = a.now()

	res, err := a.db.Collection(propertiesCollection).ReplaceOne(ctx, bson.M{"_id": property.ID}, toPropertyDocument(property))
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to update property %s: %w", property.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("property %s: %w", property.ID, domain.ErrNotFound)
	}
	return &property, nil
}

// DeleteProperty удаляет объект вместе с его изображениями и историей продаж.
func (a *MongoStorageAdapter) DeleteProperty(ctx context.Context, id string) error {
	res, err := a.db.Collection(propertiesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to delete property %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	if _, err := a.db.Collection(imagesCollection).DeleteMany(ctx, bson.M{"idProperty": id}); err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to delete images of property %s: %w", id, err)
	}
	if _, err := a.db.Collection(tracesCollection).DeleteMany(ctx, bson.M{"idProperty": id}); err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to delete traces of property %s: %w", id, err)
	}
	return nil
}

func (a *MongoStorageAdapter) CountPropertiesByOwner(ctx context.Context, ownerID string) (int, error) {
	count, err := a.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"idOwner": ownerID})
	if err != nil {
		return 0, fmt.Errorf("MongoStorageAdapter: failed to count properties of owner %s: %w", ownerID, err)
	}
	return int(count), nil
}

// ---- owners ----

func (a *MongoStorageAdapter) ListOwners(ctx context.Context, filters domain.OwnerFilters, page domain.PageRequest) (*domain.OwnerPage, error) {
	page = page.WithDefaults(domain.DefaultOwnerPageLimit)
	coll := a.db.Collection(ownersCollection)
	filter := ownerFilter(filters)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to count owners: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to query owners: %w", err)
	}
	var docs []ownerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to decode owners: %w", err)
	}

	owners := make([]domain.Owner, 0, len(docs))
	for _, d := range docs {
		owners = append(owners, d.toDomain())
	}
	return &domain.OwnerPage{
		Owners:     owners,
		Pagination: domain.NewPagination(page.Page, page.Limit, int(total)),
	}, nil
}

func (a *MongoStorageAdapter) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	var doc ownerDocument
	if err := a.db.Collection(ownersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, notFound("owner", id, err)
	}
	o := doc.toDomain()
	return &o, nil
}

func (a *MongoStorageAdapter) CreateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	if owner.ID == "" {
		owner.ID = uuid.NewString()
	}
	if _, err := a.db.Collection(ownersCollection).InsertOne(ctx, toOwnerDocument(owner)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("owner %s already exists: %w", owner.ID, domain.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("MongoStorageAdapter: failed to insert owner: %w", err)
	}
	return &owner, nil
}

func (a *MongoStorageAdapter) UpdateOwner(ctx context.Context, owner domain.Owner) (*domain.Owner, error) {
	res, err := a.db.Collection(ownersCollection).ReplaceOne(ctx, bson.M{"_id": owner.ID}, toOwnerDocument(owner))
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to update owner %s: %w", owner.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("owner %s: %w", owner.ID, domain.ErrNotFound)
	}
	return &owner, nil
}

func (a *MongoStorageAdapter) DeleteOwner(ctx context.Context, id string) error {
	if _, err := a.GetOwner(ctx, id); err != nil {
		return err
	}
	count, err := a.CountPropertiesByOwner(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.OwnerHasPropertiesError{OwnerID: id, Count: count}
	}
	if _, err := a.db.Collection(ownersCollection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to delete owner %s: %w", id, err)
	}
	return nil
}

// ---- images ----

func (a *MongoStorageAdapter) ensureProperty(ctx context.Context, propertyID string) error {
	n, err := a.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"_id": propertyID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to check property %s: %w", propertyID, err)
	}
	if n == 0 {
		return fmt.Errorf("property %s: %w", propertyID, domain.ErrNotFound)
	}
	return nil
}

func (a *MongoStorageAdapter) ListImages(ctx context.Context, propertyID string, filters domain.ImageFilters) ([]domain.PropertyImage, error) {
	if err := a.ensureProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	filter := bson.M{"idProperty": propertyID}
	if filters.EnabledOnly {
		filter["enabled"] = true
	}
	cursor, err := a.db.Collection(imagesCollection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to query images: %w", err)
	}
	var docs []imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to decode images: %w", err)
	}
	images := make([]domain.PropertyImage, 0, len(docs))
	for _, d := range docs {
		images = append(images, d.toDomain())
	}
	return images, nil
}

func (a *MongoStorageAdapter) GetImage(ctx context.Context, propertyID, imageID string) (*domain.PropertyImage, error) {
	var doc imageDocument
	err := a.db.Collection(imagesCollection).FindOne(ctx, bson.M{"_id": imageID, "idProperty": propertyID}).Decode(&doc)
	if err != nil {
		return nil, notFound("image", imageID, err)
	}
	img := doc.toDomain()
	return &img, nil
}

func (a *MongoStorageAdapter) CreateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	if err := a.ensureProperty(ctx, image.PropertyID); err != nil {
		return nil, err
	}
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if _, err := a.db.Collection(imagesCollection).InsertOne(ctx, toImageDocument(image)); err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to insert image: %w", err)
	}
	return &image, nil
}

func (a *MongoStorageAdapter) UpdateImage(ctx context.Context, image domain.PropertyImage) (*domain.PropertyImage, error) {
	res, err := a.db.Collection(imagesCollection).ReplaceOne(ctx,
		bson.M{"_id": image.ID, "idProperty": image.PropertyID}, toImageDocument(image))
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to update image %s: %w", image.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("image %s: %w", image.ID, domain.ErrNotFound)
	}
	return &image, nil
}

func (a *MongoStorageAdapter) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	res, err := a.db.Collection(imagesCollection).DeleteOne(ctx, bson.M{"_id": imageID, "idProperty": propertyID})
	if err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to delete image %s: %w", imageID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}
	return nil
}

// ---- traces ----

func (a *MongoStorageAdapter) ListTraces(ctx context.Context, propertyID string, query domain.TraceQuery) ([]domain.PropertyTrace, error) {
	if err := a.ensureProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	cursor, err := a.db.Collection(tracesCollection).Find(ctx, bson.M{"idProperty": propertyID},
		options.Find().SetSort(traceSort(query)))
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to query traces: %w", err)
	}
	var docs []traceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to decode traces: %w", err)
	}
	traces := make([]domain.PropertyTrace, 0, len(docs))
	for _, d := range docs {
		traces = append(traces, d.toDomain())
	}
	return traces, nil
}

func (a *MongoStorageAdapter) GetTrace(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error) {
	var doc traceDocument
	err := a.db.Collection(tracesCollection).FindOne(ctx, bson.M{"_id": traceID, "idProperty": propertyID}).Decode(&doc)
	if err != nil {
		return nil, notFound("trace", traceID, err)
	}
	t := doc.toDomain()
	return &t, nil
}

func (a *MongoStorageAdapter) CreateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	if err := a.ensureProperty(ctx, trace.PropertyID); err != nil {
		return nil, err
	}
	if trace.ID == "" {
		trace.ID = uuid.NewString()
	}
	if _, err := a.db.Collection(tracesCollection).InsertOne(ctx, toTraceDocument(trace)); err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to insert trace: %w", err)
	}
	return &trace, nil
}

func (a *MongoStorageAdapter) UpdateTrace(ctx context.Context, trace domain.PropertyTrace) (*domain.PropertyTrace, error) {
	res, err := a.db.Collection(tracesCollection).ReplaceOne(ctx,
		bson.M{"_id": trace.ID, "idProperty": trace.PropertyID}, toTraceDocument(trace))
	if err != nil {
		return nil, fmt.Errorf("MongoStorageAdapter: failed to update trace %s: %w", trace.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("trace %s: %w", trace.ID, domain.ErrNotFound)
	}
	return &trace, nil
}

func (a *MongoStorageAdapter) DeleteTrace(ctx context.Context, propertyID, traceID string) error {
	res, err := a.db.Collection(tracesCollection).DeleteOne(ctx, bson.M{"_id": traceID, "idProperty": propertyID})
	if err != nil {
		return fmt.Errorf("MongoStorageAdapter: failed to delete trace %s: %w", traceID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("trace %s: %w", traceID, domain.ErrNotFound)
	}
	return nil
}
