package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkproducts/platform/pkg/models"
)

// CreateQuote inserts a new quote document.
func (d *DB) CreateQuote(ctx context.Context, quote *models.Quote) error {
	if _, err := d.db.Collection(collQuotes).InsertOne(ctx, quote); err != nil {
		return wrapWriteErr("create quote", err)
	}

	return nil
}

// GetQuote fetches a quote by its id.
func (d *DB) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	var quote models.Quote

	err := d.db.Collection(collQuotes).FindOne(ctx, bson.M{"id": id}).Decode(&quote)
	if err != nil {
		return nil, wrapReadErr("get quote", err)
	}

	return &quote, nil
}

// UpdateQuote applies a partial update to a quote document.
func (d *DB) UpdateQuote(ctx context.Context, id string, set bson.M) error {
	res, err := d.db.Collection(collQuotes).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapWriteErr("update quote", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteQuote removes a quote and its history.
func (d *DB) DeleteQuote(ctx context.Context, id string) error {
	res, err := d.db.Collection(collQuotes).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("%w: delete quote: %w", ErrDatabaseError, err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	if _, err := d.db.Collection(collQuoteHistory).DeleteMany(ctx, bson.M{"quote_id": id}); err != nil {
		return fmt.Errorf("%w: delete quote history: %w", ErrDatabaseError, err)
	}

	return nil
}

// ListQuotes returns quotes matching the filter, newest first.
func (d *DB) ListQuotes(ctx context.Context, filter QuoteFilter) ([]*models.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}

	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := d.db.Collection(collQuotes).Find(ctx, quoteQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list quotes: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var quotes []*models.Quote
	if err := cur.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("%w: decode quotes: %w", ErrDatabaseError, err)
	}

	return quotes, nil
}

// CountQuotes counts quotes matching the filter.
func (d *DB) CountQuotes(ctx context.Context, filter QuoteFilter) (int64, error) {
	count, err := d.db.Collection(collQuotes).CountDocuments(ctx, quoteQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: count quotes: %w", ErrDatabaseError, err)
	}

	return count, nil
}

// AddQuoteHistory appends an audit entry for a quote.
func (d *DB) AddQuoteHistory(ctx context.Context, entry *models.QuoteHistoryEntry) error {
	if _, err := d.db.Collection(collQuoteHistory).InsertOne(ctx, entry); err != nil {
		return wrapWriteErr("add quote history", err)
	}

	return nil
}

// QuoteHistory returns a quote's audit trail, newest first.
func (d *DB) QuoteHistory(ctx context.Context, quoteID string) ([]*models.QuoteHistoryEntry, error) {
	cur, err := d.db.Collection(collQuoteHistory).Find(ctx, bson.M{"quote_id": quoteID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: quote history: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var entries []*models.QuoteHistoryEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode quote history: %w", ErrDatabaseError, err)
	}

	return entries, nil
}

// ExpireQuotes marks active quotes past their expiry as expired and returns
// how many were touched.
func (d *DB) ExpireQuotes(ctx context.Context, now time.Time) (int64, error) {
	res, err := d.db.Collection(collQuotes).UpdateMany(ctx, bson.M{
		"status":     bson.M{"$in": []models.QuoteStatus{models.QuoteDraft, models.QuotePending, models.QuoteSent}},
		"expires_at": bson.M{"$lt": now},
	}, bson.M{"$set": bson.M{
		"status":     models.QuoteExpired,
		"updated_at": now,
	}})
	if err != nil {
		return 0, fmt.Errorf("%w: expire quotes: %w", ErrDatabaseError, err)
	}

	return res.ModifiedCount, nil
}

func quoteQuery(filter QuoteFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		query["status"] = filter.Status
	}

	if filter.CustomerEmail != "" {
		query["customer_info.email"] = strings.ToLower(filter.CustomerEmail)
	}

	if filter.CompanyName != "" {
		query["customer_info.company"] = primitive.Regex{
			Pattern: regexQuote(filter.CompanyName), Options: "i",
		}
	}

	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}

	return query
}
