package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkproducts/platform/pkg/models"
)

// CreateProduct inserts a new product document.
func (d *DB) CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := d.db.Collection(collProducts).InsertOne(ctx, product); err != nil {
		return wrapWriteErr("create product", err)
	}

	return nil
}

// GetProduct fetches a product by its id.
func (d *DB) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product

	err := d.db.Collection(collProducts).FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if err != nil {
		return nil, wrapReadErr("get product", err)
	}

	return &product, nil
}

// UpdateProduct applies a partial update to a product document.
func (d *DB) UpdateProduct(ctx context.Context, id string, set bson.M) error {
	res, err := d.db.Collection(collProducts).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapWriteErr("update product", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteProduct removes a product document.
func (d *DB) DeleteProduct(ctx context.Context, id string) error {
	res, err := d.db.Collection(collProducts).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("%w: delete product: %w", ErrDatabaseError, err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// ListProducts returns products matching the filter, newest first.
func (d *DB) ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}

	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := d.db.Collection(collProducts).Find(ctx, productQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var products []*models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", ErrDatabaseError, err)
	}

	return products, nil
}

// CountProducts counts products matching the filter.
func (d *DB) CountProducts(ctx context.Context, filter ProductFilter) (int64, error) {
	count, err := d.db.Collection(collProducts).CountDocuments(ctx, productQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: count products: %w", ErrDatabaseError, err)
	}

	return count, nil
}

// UpdateStock sets a product's stock level.
func (d *DB) UpdateStock(ctx context.Context, id string, quantity int) error {
	return d.UpdateProduct(ctx, id, bson.M{
		"stock_quantity": quantity,
		"updated_at":     time.Now(),
	})
}

// LowStockProducts lists in-stock products at or below the threshold.
func (d *DB) LowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error) {
	cur, err := d.db.Collection(collProducts).Find(ctx, bson.M{
		"stock_quantity": bson.M{"$lte": threshold, "$gt": 0},
	}, options.Find().SetSort(bson.D{{Key: "stock_quantity", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: low stock products: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var products []*models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", ErrDatabaseError, err)
	}

	return products, nil
}

// CountOutOfStock counts products with no remaining stock.
func (d *DB) CountOutOfStock(ctx context.Context) (int64, error) {
	count, err := d.db.Collection(collProducts).CountDocuments(ctx, bson.M{"stock_quantity": bson.M{"$lte": 0}})
	if err != nil {
		return 0, fmt.Errorf("%w: count out of stock: %w", ErrDatabaseError, err)
	}

	return count, nil
}

func productQuery(filter ProductFilter) bson.M {
	query := bson.M{}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	if filter.InStockOnly {
		query["stock_quantity"] = bson.M{"$gt": 0}
	}

	if filter.Search != "" {
		regex := primitive.Regex{Pattern: regexQuote(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{"material": regex},
		}
	}

	return query
}
