package snapshot

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoDB-backed snapshot store.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database defaults to "greenzone".
	Database string

	// Collection defaults to "snapshots".
	Collection string
}

// MongoStore persists snapshots in a MongoDB collection, one document per
// dataset load.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = "greenzone"
	}
	coll := cfg.Collection
	if coll == "" {
		coll = "snapshots"
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(coll),
	}, nil
}

func (s *MongoStore) Record(ctx context.Context, snap *Snapshot) error {
	if _, err := s.coll.InsertOne(ctx, snap); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Latest(ctx context.Context) (*Snapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "loaded_at", Value: -1}})

	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest snapshot: %w", err)
	}
	return &snap, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "loaded_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cur.Close(ctx)

	var snaps []*Snapshot
	if err := cur.All(ctx, &snaps); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return snaps, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
