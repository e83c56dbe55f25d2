package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentstation/dataunifier/pkg/accumulator"
	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/logging"
)

// Document keys added to every record.
const (
	KeySourceFile = "source_file"
	KeyRow        = "row"
	KeyRunID      = "run_id"
)

// SyncLog is written once per successful upload.
type SyncLog struct {
	CollectionName  string    `bson:"collection_name"`
	RunID           string    `bson:"run_id"`
	SyncTimestamp   time.Time `bson:"sync_timestamp"`
	RecordsUploaded int64     `bson:"records_uploaded"`
	Files           int       `bson:"files"`
}

// MongoSink upserts every record of a result, keyed by source file and row.
type MongoSink struct {
	provider   CollectionProvider
	collection string
	syncLog    string
	batchSize  int
}

// Option configures a MongoSink.
type Option func(*MongoSink)

// WithCollection sets the record collection.
func WithCollection(name string) Option {
	return func(s *MongoSink) {
		if name != "" {
			s.collection = name
		}
	}
}

// WithSyncLogCollection sets the sync log collection.
func WithSyncLogCollection(name string) Option {
	return func(s *MongoSink) {
		if name != "" {
			s.syncLog = name
		}
	}
}

// WithBatchSize bounds the number of upserts per bulk write.
func WithBatchSize(n int) Option {
	return func(s *MongoSink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// NewMongoSink creates a sink writing through provider.
func NewMongoSink(provider CollectionProvider, opts ...Option) *MongoSink {
	s := &MongoSink{
		provider:   provider,
		collection: constants.DefaultMongoCollection,
		syncLog:    constants.DefaultSyncLogCollection,
		batchSize:  constants.MongoBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements sink.Sink.
func (s *MongoSink) Name() string { return "mongo" }

// Collection returns the record collection name.
func (s *MongoSink) Collection() string { return s.collection }

// Write implements sink.Sink. The run id is taken from ctx.
func (s *MongoSink) Write(ctx context.Context, result *accumulator.Result) error {
	logger := logging.FromContext(ctx)
	records := result.Records()
	if len(records) == 0 {
		logger.Debug().Str("collection", s.collection).Msg("No records to upload")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.MongoWriteTimeout)
	defer cancel()

	runID := logging.RunID(ctx)
	header := result.Header()
	coll := s.provider.Collection(s.collection)
	logger.Info().Str("collection", s.collection).Int("records", len(records)).Msg("Start uploading")

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		models := make([]mongo.WriteModel, 0, end-start)
		for _, rec := range records[start:end] {
			filter := bson.M{KeySourceFile: rec.SourceFile, KeyRow: rec.Row}
			update := bson.M{"$set": Document(header, rec, runID)}
			models = append(models, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
		}
		if _, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return errors.WrapResource("upsert", "collection", s.collection, err)
		}
	}

	syncLog := SyncLog{
		CollectionName:  s.collection,
		RunID:           runID,
		SyncTimestamp:   time.Now().UTC(),
		RecordsUploaded: int64(len(records)),
		Files:           len(result.Files()),
	}
	if _, err := s.provider.Collection(s.syncLog).InsertOne(ctx, syncLog); err != nil {
		return errors.WrapResource("insert", "collection", s.syncLog, err)
	}

	logger.Info().Str("collection", s.collection).Msg("Uploading was finished")
	return nil
}

// Document renders rec as an ordered document: header fields first, then
// the source keys.
func Document(header []string, rec accumulator.Record, runID string) bson.D {
	doc := make(bson.D, 0, len(header)+3)
	for i, key := range header {
		var v string
		if i < len(rec.Values) {
			v = rec.Values[i]
		}
		doc = append(doc, bson.E{Key: key, Value: v})
	}
	return append(doc,
		bson.E{Key: KeySourceFile, Value: rec.SourceFile},
		bson.E{Key: KeyRow, Value: rec.Row},
		bson.E{Key: KeyRunID, Value: runID},
	)
}
