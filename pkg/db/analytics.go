package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkproducts/platform/pkg/models"
)

// QuoteMetrics aggregates quote activity since the given time.
func (d *DB) QuoteMetrics(ctx context.Context, since time.Time) (*models.QuoteMetrics, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"active": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{"$status", bson.A{
					models.QuoteDraft, models.QuotePending, models.QuoteSent,
				}}}, 1, 0,
			}}},
			"converted": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.QuoteApproved}}, 1, 0,
			}}},
			"total_value": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$total_estimate", 0}}},
			"avg_value":   bson.M{"$avg": "$total_estimate"},
		}},
	}

	cur, err := d.db.Collection(collQuotes).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: quote metrics: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total      int      `bson:"total"`
		Active     int      `bson:"active"`
		Converted  int      `bson:"converted"`
		TotalValue float64  `bson:"total_value"`
		AvgValue   *float64 `bson:"avg_value"`
	}

	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode quote metrics: %w", ErrDatabaseError, err)
	}

	metrics := &models.QuoteMetrics{}
	if len(rows) == 0 {
		return metrics, nil
	}

	row := rows[0]
	metrics.TotalQuotes = row.Total
	metrics.ActiveQuotes = row.Active
	metrics.ConvertedQuotes = row.Converted
	metrics.TotalQuoteValue = row.TotalValue
	metrics.AverageQuoteValue = row.AvgValue

	if row.Total > 0 {
		metrics.ConversionRate = float64(row.Converted) / float64(row.Total) * 100
	}

	return metrics, nil
}

// TopProducts ranks products by how often they appear on quotes created
// since the given time.
func (d *DB) TopProducts(ctx context.Context, since time.Time, limit int) ([]*models.ProductMetrics, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$unwind": "$items"},
		{"$group": bson.M{
			"_id":            "$items.product_id",
			"product_name":   bson.M{"$first": "$items.product_name"},
			"quote_count":    bson.M{"$sum": 1},
			"total_quantity": bson.M{"$sum": "$items.quantity"},
			"total_value": bson.M{"$sum": bson.M{"$multiply": bson.A{
				bson.M{"$ifNull": bson.A{"$items.unit_price", 0}},
				"$items.quantity",
			}}},
		}},
		{"$sort": bson.M{"quote_count": -1, "total_quantity": -1}},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         collProducts,
			"localField":   "_id",
			"foreignField": "id",
			"as":           "product",
		}},
	}

	cur, err := d.db.Collection(collQuotes).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: top products: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID            string           `bson:"_id"`
		ProductName   string           `bson:"product_name"`
		QuoteCount    int              `bson:"quote_count"`
		TotalQuantity int              `bson:"total_quantity"`
		TotalValue    float64          `bson:"total_value"`
		Product       []models.Product `bson:"product"`
	}

	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode top products: %w", ErrDatabaseError, err)
	}

	out := make([]*models.ProductMetrics, 0, len(rows))

	for _, row := range rows {
		value := row.TotalValue
		m := &models.ProductMetrics{
			ProductID:     row.ID,
			ProductName:   row.ProductName,
			QuoteCount:    row.QuoteCount,
			TotalQuantity: row.TotalQuantity,
			TotalValue:    &value,
		}

		if len(row.Product) > 0 {
			m.Category = row.Product[0].Category
		}

		out = append(out, m)
	}

	return out, nil
}

// TopCompanies ranks companies by quote volume since the given time,
// matching on the customer's company name.
func (d *DB) TopCompanies(ctx context.Context, since time.Time, limit int) ([]*models.CompanyMetrics, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"created_at":            bson.M{"$gte": since},
			"customer_info.company": bson.M{"$nin": bson.A{nil, ""}},
		}},
		{"$group": bson.M{
			"_id":          "$customer_info.company",
			"total_quotes": bson.M{"$sum": 1},
			"total_value":  bson.M{"$sum": bson.M{"$ifNull": bson.A{"$total_estimate", 0}}},
			"last_quote":   bson.M{"$max": "$created_at"},
		}},
		{"$sort": bson.M{"total_quotes": -1, "total_value": -1}},
		{"$limit": limit},
	}

	cur, err := d.db.Collection(collQuotes).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: top companies: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Name        string    `bson:"_id"`
		TotalQuotes int       `bson:"total_quotes"`
		TotalValue  float64   `bson:"total_value"`
		LastQuote   time.Time `bson:"last_quote"`
	}

	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode top companies: %w", ErrDatabaseError, err)
	}

	out := make([]*models.CompanyMetrics, 0, len(rows))

	for _, row := range rows {
		last := row.LastQuote
		m := &models.CompanyMetrics{
			CompanyName:   row.Name,
			TotalQuotes:   row.TotalQuotes,
			TotalValue:    row.TotalValue,
			LastQuoteDate: &last,
		}

		// Registered companies contribute their id and account status.
		company, err := d.GetCompanyByName(ctx, row.Name)
		if err == nil {
			m.CompanyID = company.ID
			m.Status = company.Status
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		out = append(out, m)
	}

	return out, nil
}

// QuoteTrends buckets quote creation per day since the given time.
func (d *DB) QuoteTrends(ctx context.Context, since time.Time) ([]*models.TimeSeriesPoint, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"count": bson.M{"$sum": 1},
			"value": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$total_estimate", 0}}},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cur, err := d.db.Collection(collQuotes).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: quote trends: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Date  string  `bson:"_id"`
		Count int     `bson:"count"`
		Value float64 `bson:"value"`
	}

	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode quote trends: %w", ErrDatabaseError, err)
	}

	out := make([]*models.TimeSeriesPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, &models.TimeSeriesPoint{
			Date:  row.Date,
			Count: row.Count,
			Value: row.Value,
		})
	}

	return out, nil
}

// StatusBreakdown returns the distribution of quotes across statuses.
func (d *DB) StatusBreakdown(ctx context.Context) ([]*models.StatusBreakdown, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
	}

	cur, err := d.db.Collection(collQuotes).Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, fmt.Errorf("%w: status breakdown: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}

	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode status breakdown: %w", ErrDatabaseError, err)
	}

	var total int
	for _, row := range rows {
		total += row.Count
	}

	out := make([]*models.StatusBreakdown, 0, len(rows))

	for _, row := range rows {
		b := &models.StatusBreakdown{Status: row.Status, Count: row.Count}
		if total > 0 {
			b.Percentage = float64(row.Count) / float64(total) * 100
		}

		out = append(out, b)
	}

	return out, nil
}
