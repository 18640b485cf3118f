package db

import (
	"context" // Driver calls
	"fmt"     // Error wrapping
	"transaction_dashboard/internal/domain"
	"transaction_dashboard/internal/query"

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options"  // Client options
	"go.mongodb.org/mongo-driver/mongo/readpref" // Ping read preference
)

// MongoStore runs the dashboard pipelines against a MongoDB collection
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongo opens a pooled client and checks the server answers
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (s *MongoStore) Find(ctx context.Context, f query.Filter, skip, limit int64) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.aggregate(ctx, query.ListPipeline(f, skip, limit), &txs); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *MongoStore) Count(ctx context.Context, f query.Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, query.MatchDocument(f))
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func (s *MongoStore) Statistics(ctx context.Context, month int) (domain.Statistics, error) {
	var rows []domain.Statistics
	if err := s.aggregate(ctx, query.StatisticsPipeline(month), &rows); err != nil {
		return domain.Statistics{}, fmt.Errorf("aggregate statistics: %w", err)
	}
	if len(rows) == 0 {
		return domain.Statistics{}, nil
	}
	return rows[0], nil
}

func (s *MongoStore) PriceBands(ctx context.Context, month int) (map[int]int64, error) {
	var rows []struct {
		ID    any   `bson:"_id"`   // Lower boundary or the default label
		Count int64 `bson:"count"` // Records in the bucket
	}
	if err := s.aggregate(ctx, query.BarChartPipeline(month), &rows); err != nil {
		return nil, fmt.Errorf("aggregate price bands: %w", err)
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		band, ok := query.BucketBand(row.ID)
		if !ok {
			return nil, fmt.Errorf("unexpected price bucket %v", row.ID)
		}
		counts[band] += row.Count
	}
	return counts, nil
}

func (s *MongoStore) CategoryCounts(ctx context.Context, month int) ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	if err := s.aggregate(ctx, query.PieChartPipeline(month), &rows); err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	return rows, nil
}

// ReplaceAll clears the collection then inserts txs. Without a replica set
// there is no transaction, so callers must fetch everything before calling it.
func (s *MongoStore) ReplaceAll(ctx context.Context, txs []domain.Transaction) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	if len(txs) == 0 {
		return nil
	}
	docs := make([]any, len(txs))
	for i := range txs {
		docs[i] = txs[i]
	}
	if _, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Migrate creates the indexes used by the month and category aggregations
func (s *MongoStore) Migrate(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dateOfSale", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}
