// Package db pkg/db/db.go provides the MongoDB persistence layer.
package db

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second

	collUsers        = "users"
	collProducts     = "products"
	collQuotes       = "quotes"
	collQuoteHistory = "quote_history"
	collCompanies    = "companies"
)

// DB implements the Service interface on top of MongoDB.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection and ensures indexes.
func New(ctx context.Context, mongoURL, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %w", ErrDatabaseError, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping failed: %w", ErrDatabaseError, err)
	}

	d := &DB{
		client: client,
		db:     client.Database(dbName),
	}

	if err := d.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Printf("Connected to MongoDB database %s", dbName)

	return d, nil
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
		collProducts: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "stock_quantity", Value: 1}}},
		},
		collQuotes: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "customer_info.email", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		collQuoteHistory: {
			{Keys: bson.D{{Key: "quote_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		collCompanies: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "primary_email", Value: 1}}, Options: unique},
		},
	}

	for coll, models := range indexes {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%w: failed to create indexes on %s: %w", ErrDatabaseError, coll, err)
		}
	}

	return nil
}

// Ping verifies the connection is still alive.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return nil
}

// Close disconnects from MongoDB.
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%w: failed to disconnect: %w", ErrDatabaseError, err)
	}

	return nil
}

// regexQuote escapes user-supplied search text before it reaches a $regex.
func regexQuote(s string) string {
	return regexp.QuoteMeta(s)
}

// wrapWriteErr maps duplicate key failures to ErrDuplicate.
func wrapWriteErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, op)
	}

	return fmt.Errorf("%w: %s: %w", ErrDatabaseError, op, err)
}

// wrapReadErr maps missing documents to ErrNotFound.
func wrapReadErr(op string, err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}

	return fmt.Errorf("%w: %s: %w", ErrDatabaseError, op, err)
}
