// Package storage persists unified records in MongoDB.
package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/logging"
)

// DataStore is the subset of a collection the sink needs.
type DataStore interface {
	BulkWrite(
		ctx context.Context,
		models []mongo.WriteModel,
		opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
	InsertOne(
		ctx context.Context,
		document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// CollectionProvider hands out collections by name.
type CollectionProvider interface {
	Collection(name string) DataStore
}

// MongoCollection adapts *mongo.Collection to DataStore.
type MongoCollection struct {
	*mongo.Collection
}

// MongoProvider adapts a connected client and database to CollectionProvider.
type MongoProvider struct {
	client   *mongo.Client
	database string
}

// NewMongoProvider creates a provider for database. An empty name selects
// the default database.
func NewMongoProvider(client *mongo.Client, database string) *MongoProvider {
	if database == "" {
		database = constants.DefaultMongoDatabase
	}
	return &MongoProvider{client: client, database: database}
}

// Collection returns a DataStore for the given collection name.
func (p *MongoProvider) Collection(name string) DataStore {
	return &MongoCollection{p.client.Database(p.database).Collection(name)}
}

// Disconnect closes the underlying client.
func (p *MongoProvider) Disconnect(ctx context.Context) error {
	if err := p.client.Disconnect(ctx); err != nil {
		return errors.WrapResource("disconnect", "database", p.database, err)
	}
	return nil
}

// Connect dials uri and pings the server.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	logger := logging.FromContext(ctx)
	logger.Debug().Msg("Connecting to MongoDB")

	ctx, cancel := context.WithTimeout(ctx, constants.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.WrapResource("connect", "mongodb", "", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.WrapResource("ping", "mongodb", "", err)
	}

	logger.Info().Msg("Connected to MongoDB")
	return client, nil
}
