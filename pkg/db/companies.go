package db

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkproducts/platform/pkg/models"
)

// CreateCompany inserts a new company document.
func (d *DB) CreateCompany(ctx context.Context, company *models.Company) error {
	if _, err := d.db.Collection(collCompanies).InsertOne(ctx, company); err != nil {
		return wrapWriteErr("create company", err)
	}

	return nil
}

// GetCompany fetches a company by its id.
func (d *DB) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company

	err := d.db.Collection(collCompanies).FindOne(ctx, bson.M{"id": id}).Decode(&company)
	if err != nil {
		return nil, wrapReadErr("get company", err)
	}

	return &company, nil
}

// GetCompanyByName fetches a company by exact name, case-insensitively.
func (d *DB) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company

	err := d.db.Collection(collCompanies).FindOne(ctx, bson.M{
		"name": primitive.Regex{Pattern: "^" + regexQuote(name) + "$", Options: "i"},
	}).Decode(&company)
	if err != nil {
		return nil, wrapReadErr("get company by name", err)
	}

	return &company, nil
}

// GetCompanyByEmail fetches a company by its primary email.
func (d *DB) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	var company models.Company

	err := d.db.Collection(collCompanies).FindOne(ctx, bson.M{
		"primary_email": strings.ToLower(email),
	}).Decode(&company)
	if err != nil {
		return nil, wrapReadErr("get company by email", err)
	}

	return &company, nil
}

// UpdateCompany applies a partial update to a company document.
func (d *DB) UpdateCompany(ctx context.Context, id string, set bson.M) error {
	res, err := d.db.Collection(collCompanies).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapWriteErr("update company", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteCompany removes a company document.
func (d *DB) DeleteCompany(ctx context.Context, id string) error {
	res, err := d.db.Collection(collCompanies).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("%w: delete company: %w", ErrDatabaseError, err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// ListCompanies returns companies matching the filter, newest first.
func (d *DB) ListCompanies(ctx context.Context, filter CompanyFilter) ([]*models.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}

	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := d.db.Collection(collCompanies).Find(ctx, companyQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list companies: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var companies []*models.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("%w: decode companies: %w", ErrDatabaseError, err)
	}

	return companies, nil
}

// CountCompanies counts companies matching the filter.
func (d *DB) CountCompanies(ctx context.Context, filter CompanyFilter) (int64, error) {
	count, err := d.db.Collection(collCompanies).CountDocuments(ctx, companyQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: count companies: %w", ErrDatabaseError, err)
	}

	return count, nil
}

func companyQuery(filter CompanyFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		query["status"] = filter.Status
	}

	if filter.Industry != "" {
		query["industry"] = primitive.Regex{Pattern: "^" + regexQuote(filter.Industry) + "$", Options: "i"}
	}

	if filter.Search != "" {
		regex := primitive.Regex{Pattern: regexQuote(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"name": regex},
			{"legal_name": regex},
			{"primary_email": regex},
		}
	}

	return query
}
