package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource reads reference collections from MongoDB. Collections are
// named after the list kind with underscores, e.g. car_types.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongoSource connects to uri and verifies the connection with a ping.
func OpenMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping catalog mongo: %w", err)
	}
	return NewMongoSource(client.Database(database)), nil
}

// NewMongoSource reads from an already connected database.
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{client: db.Client(), db: db}
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CollectionName returns the collection holding the list of kind.
func CollectionName(kind Kind) string {
	return strings.ReplaceAll(string(kind), "-", "_")
}

func findList[T any](ctx context.Context, s *MongoSource, kind Kind) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := s.db.Collection(CollectionName(kind)).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return items, nil
}

func (s *MongoSource) Brands(ctx context.Context) ([]Brand, error) {
	return findList[Brand](ctx, s, KindBrands)
}

func (s *MongoSource) Models(ctx context.Context) ([]Model, error) {
	return findList[Model](ctx, s, KindModels)
}

func (s *MongoSource) CarTypes(ctx context.Context) ([]CarType, error) {
	return findList[CarType](ctx, s, KindCarTypes)
}

func (s *MongoSource) Conditions(ctx context.Context) ([]Condition, error) {
	return findList[Condition](ctx, s, KindConditions)
}

func (s *MongoSource) Transmissions(ctx context.Context) ([]Transmission, error) {
	return findList[Transmission](ctx, s, KindTransmissions)
}

func (s *MongoSource) FuelTypes(ctx context.Context) ([]FuelType, error) {
	return findList[FuelType](ctx, s, KindFuelTypes)
}

func (s *MongoSource) Colors(ctx context.Context) ([]Color, error) {
	return findList[Color](ctx, s, KindColors)
}
