package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstalk/internal/parser"
	"bookstalk/internal/types"
)

// MongoStore keeps book records in a MongoDB collection, partitioned by
// search keyword.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoStore connects to MongoDB and returns a store over the given
// database and collection.
func NewMongoStore(uri, database, collection string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_store"),
	}, nil
}

func (s *MongoStore) Name() string { return "mongodb" }

func (s *MongoStore) Insert(ctx context.Context, book *types.Book) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, book); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("insert: %w", err)}
	}

	s.logger.Debug("record stored", "keyword", book.SearchKeyword, "title", book.Title)
	return nil
}

func (s *MongoStore) FindByKeyword(ctx context.Context, keyword string) ([]types.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// The internal identity key never leaves the store.
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cur, err := s.collection.Find(ctx, bson.M{"search_keyword": keyword}, opts)
	if err != nil {
		return nil, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("find: %w", err)}
	}
	defer cur.Close(ctx)

	var books []types.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("decode: %w", err)}
	}
	return books, nil
}

// FindByKeywordAndTitle matches the title under normalization so that
// incidental whitespace or case differences from scraping don't cause
// false misses. The filter runs in memory over the keyword partition.
func (s *MongoStore) FindByKeywordAndTitle(ctx context.Context, keyword, title string) (*types.Book, error) {
	books, err := s.FindByKeyword(ctx, keyword)
	if err != nil {
		return nil, err
	}

	want := parser.NormalizeForCompare(title)
	for i := range books {
		if parser.NormalizeForCompare(books[i].Title) == want {
			return &books[i], nil
		}
	}
	return nil, nil
}

func (s *MongoStore) Count(ctx context.Context, keyword string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := s.collection.CountDocuments(ctx, bson.M{"search_keyword": keyword})
	if err != nil {
		return 0, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("count: %w", err)}
	}
	return n, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
