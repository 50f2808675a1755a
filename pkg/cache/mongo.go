package cache

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/inscribe/pkg/errors"
)

// Mongo defaults used when the config leaves them empty.
const (
	DefaultMongoDatabase   = "inscribe"
	DefaultMongoCollection = "results"
)

// MongoCache stores one document per key. A TTL index on expires_at lets the
// server delete expired documents; Get also checks expiry because the TTL
// monitor only runs about once a minute.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to uri and prepares the collection.
func NewMongoCache(ctx context.Context, uri, database, collection string) (*MongoCache, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache needs mongo_uri")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongo")
	}
	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create ttl index")
	}
	return &MongoCache{client: client, coll: coll}, nil
}

// Get retrieves a value.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts the document for key.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := time.Now().Add(ttl).UTC()
		entry.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	return err
}

// Delete removes the document for key.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Clear deletes every document in the collection.
func (c *MongoCache) Clear(ctx context.Context) (int, error) {
	res, err := c.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

var (
	_ Cache   = (*MongoCache)(nil)
	_ Clearer = (*MongoCache)(nil)
)
