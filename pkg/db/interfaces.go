// Package db pkg/db/interfaces.go
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/starkproducts/platform/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/starkproducts/platform/pkg/db Service

// UserFilter narrows ListUsers.
type UserFilter struct {
	Role      models.UserRole
	Status    models.AccountStatus
	CompanyID string
	Search    string
	Skip      int64
	Limit     int64
}

// ProductFilter narrows ListProducts.
type ProductFilter struct {
	Category    models.ProductCategory
	Search      string
	InStockOnly bool
	Skip        int64
	Limit       int64
}

// QuoteFilter narrows ListQuotes.
type QuoteFilter struct {
	Status        models.QuoteStatus
	CustomerEmail string
	CompanyName   string
	CreatedBy     string
	Skip          int64
	Limit         int64
}

// CompanyFilter narrows ListCompanies.
type CompanyFilter struct {
	Status   models.CompanyStatus
	Industry string
	Search   string
	Skip     int64
	Limit    int64
}

// Service defines the persistence operations used by the API layer.
type Service interface {
	// User operations.
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByLogin(ctx context.Context, usernameOrEmail string) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	UpdateUser(ctx context.Context, id string, set bson.M) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, error)
	CountUsers(ctx context.Context, filter UserFilter) (int64, error)

	// Product operations.
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, set bson.M) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateStock(ctx context.Context, id string, quantity int) error
	LowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error)
	CountOutOfStock(ctx context.Context) (int64, error)

	// Quote operations.
	CreateQuote(ctx context.Context, quote *models.Quote) error
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	UpdateQuote(ctx context.Context, id string, set bson.M) error
	DeleteQuote(ctx context.Context, id string) error
	ListQuotes(ctx context.Context, filter QuoteFilter) ([]*models.Quote, error)
	CountQuotes(ctx context.Context, filter QuoteFilter) (int64, error)
	AddQuoteHistory(ctx context.Context, entry *models.QuoteHistoryEntry) error
	QuoteHistory(ctx context.Context, quoteID string) ([]*models.QuoteHistoryEntry, error)
	ExpireQuotes(ctx context.Context, now time.Time) (int64, error)

	// Company operations.
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error)
	UpdateCompany(ctx context.Context, id string, set bson.M) error
	DeleteCompany(ctx context.Context, id string) error
	ListCompanies(ctx context.Context, filter CompanyFilter) ([]*models.Company, error)
	CountCompanies(ctx context.Context, filter CompanyFilter) (int64, error)

	// Analytics operations.
	QuoteMetrics(ctx context.Context, since time.Time) (*models.QuoteMetrics, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]*models.ProductMetrics, error)
	TopCompanies(ctx context.Context, since time.Time, limit int) ([]*models.CompanyMetrics, error)
	QuoteTrends(ctx context.Context, since time.Time) ([]*models.TimeSeriesPoint, error)
	StatusBreakdown(ctx context.Context) ([]*models.StatusBreakdown, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
