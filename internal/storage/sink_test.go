package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentstation/dataunifier/internal/storage"
	"github.com/agentstation/dataunifier/pkg/accumulator"
	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/sink"
)

var _ sink.Sink = (*storage.MongoSink)(nil)

type mockDataStore struct {
	bulkWriteFunc func(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
	insertOneFunc func(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

func (m *mockDataStore) BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	if m.bulkWriteFunc != nil {
		return m.bulkWriteFunc(ctx, models, opts...)
	}
	return &mongo.BulkWriteResult{}, nil
}

func (m *mockDataStore) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if m.insertOneFunc != nil {
		return m.insertOneFunc(ctx, document, opts...)
	}
	return &mongo.InsertOneResult{}, nil
}

type mockCollectionProvider struct {
	collectionFunc func(name string) storage.DataStore
}

func (m *mockCollectionProvider) Collection(name string) storage.DataStore {
	if m.collectionFunc != nil {
		return m.collectionFunc(name)
	}
	return &mockDataStore{}
}

func sampleResult(n int) *accumulator.Result {
	res := accumulator.New([]string{"amount", "euro"}, nil)
	for i := 1; i <= n; i++ {
		res.Add(accumulator.Record{SourceFile: "bank/a.csv", Row: i, Values: []string{"1.00", "1"}})
	}
	res.AddFile(accumulator.FileStats{Path: "bank/a.csv", Rows: n})
	return res
}

func runContext() context.Context {
	ctx := logging.WithLogger(context.Background(), logging.NewNopLogger())
	return logging.WithRunID(ctx, "run-1")
}

func TestMongoSinkUpsertsAndLogsSync(t *testing.T) {
	var (
		batches [][]mongo.WriteModel
		synced  *storage.SyncLog
		names   []string
	)
	records := &mockDataStore{
		bulkWriteFunc: func(_ context.Context, models []mongo.WriteModel, _ ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
			batches = append(batches, models)
			return &mongo.BulkWriteResult{UpsertedCount: int64(len(models))}, nil
		},
	}
	syncLog := &mockDataStore{
		insertOneFunc: func(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
			doc, ok := document.(storage.SyncLog)
			require.True(t, ok, "unexpected document %T", document)
			synced = &doc
			return &mongo.InsertOneResult{}, nil
		},
	}
	provider := &mockCollectionProvider{collectionFunc: func(name string) storage.DataStore {
		names = append(names, name)
		if name == "sync" {
			return syncLog
		}
		return records
	}}

	s := storage.NewMongoSink(provider,
		storage.WithCollection("records"),
		storage.WithSyncLogCollection("sync"),
		storage.WithBatchSize(2))
	require.NoError(t, s.Write(runContext(), sampleResult(5)))

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[2], 1)
	assert.Equal(t, []string{"records", "sync"}, names)

	require.NotNil(t, synced)
	assert.Equal(t, "records", synced.CollectionName)
	assert.Equal(t, "run-1", synced.RunID)
	assert.EqualValues(t, 5, synced.RecordsUploaded)
	assert.Equal(t, 1, synced.Files)
}

func TestMongoSinkEmptyResult(t *testing.T) {
	provider := &mockCollectionProvider{collectionFunc: func(name string) storage.DataStore {
		t.Errorf("unexpected collection %s", name)
		return &mockDataStore{}
	}}
	assert.NoError(t, storage.NewMongoSink(provider).Write(runContext(), sampleResult(0)))
}

func TestMongoSinkErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("bulk write", func(t *testing.T) {
		provider := &mockCollectionProvider{collectionFunc: func(string) storage.DataStore {
			return &mockDataStore{bulkWriteFunc: func(context.Context, []mongo.WriteModel, ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
				return nil, boom
			}}
		}}
		err := storage.NewMongoSink(provider).Write(runContext(), sampleResult(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		var rerr *pkgerrors.ResourceError
		assert.ErrorAs(t, err, &rerr)
	})

	t.Run("sync log", func(t *testing.T) {
		provider := &mockCollectionProvider{collectionFunc: func(string) storage.DataStore {
			return &mockDataStore{insertOneFunc: func(context.Context, interface{}, ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
				return nil, boom
			}}
		}}
		err := storage.NewMongoSink(provider).Write(runContext(), sampleResult(1))
		assert.ErrorIs(t, err, boom)
	})
}

func TestDocument(t *testing.T) {
	rec := accumulator.Record{SourceFile: "a.csv", Row: 3, Values: []string{"7.50"}}
	doc := storage.Document([]string{"amount", "euro"}, rec, "run-1")

	assert.Equal(t, bson.D{
		{Key: "amount", Value: "7.50"},
		{Key: "euro", Value: ""},
		{Key: "source_file", Value: "a.csv"},
		{Key: "row", Value: 3},
		{Key: "run_id", Value: "run-1"},
	}, doc)
}
