package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/config"
	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/models"
)

func main() {
	adminUsername := flag.String("admin-username", "admin", "Username for the bootstrap admin account")
	adminEmail := flag.String("admin-email", "", "Email for the bootstrap admin account")
	adminPassword := flag.String("admin-password", "", "Password for the bootstrap admin account")
	skipProducts := flag.Bool("skip-products", false, "Do not seed the sample catalogue")
	flag.Parse()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	database, err := db.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(ctx); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if !*skipProducts {
		if err := seedProducts(ctx, database); err != nil {
			log.Fatalf("Failed to seed products: %v", err)
		}
	}

	if *adminEmail != "" && *adminPassword != "" {
		authSvc := auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(), cfg.BcryptRounds)

		if err := seedAdmin(ctx, database, authSvc, *adminUsername, *adminEmail, *adminPassword); err != nil {
			log.Fatalf("Failed to create admin account: %v", err)
		}
	}
}

// seedProducts loads the sample catalogue into an empty products collection.
// A non-empty collection is left alone to avoid duplicates.
func seedProducts(ctx context.Context, database *db.DB) error {
	count, err := database.CountProducts(ctx, db.ProductFilter{})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Printf("Products collection already has %d documents, skipping catalogue seed", count)
		return nil
	}

	for _, product := range sampleCatalogue() {
		if err := database.CreateProduct(ctx, product); err != nil {
			return err
		}

		log.Printf("Seeded product %s (%d in stock)", product.Name, product.StockQuantity)
	}

	return nil
}

func seedAdmin(ctx context.Context, database *db.DB, authSvc *auth.Service, username, email, password string) error {
	if err := models.ValidatePassword(password); err != nil {
		return err
	}

	exists, err := database.UserExists(ctx, username, email)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("Admin account %s already exists, skipping", username)
		return nil
	}

	hash, err := authSvc.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &models.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		FirstName:     "Admin",
		Role:          models.RoleAdmin,
		Status:        models.StatusActive,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := database.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			log.Printf("Admin account %s already exists, skipping", username)
			return nil
		}

		return err
	}

	log.Printf("Created admin account %s (%s)", username, email)

	return nil
}

func price(v float64) *float64 { return &v }

// sampleCatalogue is the demo product range: bathroom fittings as sold by
// Stark Products.
func sampleCatalogue() []*models.Product {
	now := time.Now()

	products := []*models.Product{
		{
			Name:          "Premium Towel Rail - Single Bar 600mm",
			Description:   "High-quality stainless steel towel rail with brushed finish. Perfect for modern bathrooms.",
			Category:      models.CategoryTowelRails,
			PriceEstimate: price(299.99),
			StockQuantity: 45,
			Specifications: map[string]string{
				"material": "Stainless Steel 304",
				"finish":   "Brushed Satin",
				"width":    "600mm",
				"depth":    "120mm",
			},
			Dimensions:     "600mm x 120mm x 50mm",
			Material:       "Stainless Steel 304",
			Finish:         "Brushed Satin",
			MountingSystem: "Wall-mounted with concealed fixings",
		},
		{
			Name:          "Premium Towel Rail - Double Bar 800mm",
			Description:   "Double bar towel rail for maximum towel capacity. Premium quality construction.",
			Category:      models.CategoryTowelRails,
			PriceEstimate: price(449.99),
			StockQuantity: 28,
			Specifications: map[string]string{
				"material": "Stainless Steel 304",
				"finish":   "Brushed Satin",
				"width":    "800mm",
				"depth":    "150mm",
			},
			Dimensions:     "800mm x 150mm x 50mm",
			Material:       "Stainless Steel 304",
			Finish:         "Brushed Satin",
			MountingSystem: "Wall-mounted with concealed fixings",
		},
		{
			Name:          "Modern Toilet Roll Holder - Single",
			Description:   "Contemporary toilet roll holder with smooth operation and elegant design.",
			Category:      models.CategoryToiletRollHolders,
			PriceEstimate: price(149.99),
			StockQuantity: 67,
			Specifications: map[string]string{
				"material": "Stainless Steel 304",
				"finish":   "Brushed Satin",
				"width":    "180mm",
				"depth":    "80mm",
			},
			Dimensions:     "180mm x 80mm x 50mm",
			Material:       "Stainless Steel 304",
			Finish:         "Brushed Satin",
			MountingSystem: "Wall-mounted with concealed fixings",
		},
		{
			Name:          "Luxury Shower Tray - 1200x800mm",
			Description:   "Premium acrylic shower tray with anti-slip surface and integrated waste.",
			Category:      models.CategoryShowerTrays,
			PriceEstimate: price(1299.99),
			StockQuantity: 12,
			Specifications: map[string]string{
				"material": "Acrylic with reinforcement",
				"finish":   "Gloss White",
				"length":   "1200mm",
				"width":    "800mm",
				"depth":    "40mm",
			},
			Dimensions:     "1200mm x 800mm x 40mm",
			Material:       "Reinforced Acrylic",
			Finish:         "Gloss White",
			MountingSystem: "Floor-mounted with adjustable legs",
		},
		{
			Name:          "Elegant Soap Dish - Wall Mounted",
			Description:   "Sleek soap dish with drainage design. Easy to clean and maintain.",
			Category:      models.CategorySoapDishes,
			PriceEstimate: price(89.99),
			StockQuantity: 89,
			Specifications: map[string]string{
				"material": "Stainless Steel 304",
				"finish":   "Brushed Satin",
				"width":    "120mm",
				"depth":    "90mm",
			},
			Dimensions:     "120mm x 90mm x 30mm",
			Material:       "Stainless Steel 304",
			Finish:         "Brushed Satin",
			MountingSystem: "Wall-mounted with concealed fixings",
		},
		{
			Name:          "Corner Bathroom Shelf - Double Tier",
			Description:   "Space-saving corner shelf with two tiers. Perfect for toiletries and accessories.",
			Category:      models.CategoryBathroomShelves,
			PriceEstimate: price(399.99),
			StockQuantity: 23,
			Specifications: map[string]string{
				"material": "Stainless Steel 304",
				"finish":   "Brushed Satin",
				"width":    "250mm",
				"depth":    "250mm",
				"height":   "400mm",
			},
			Dimensions:     "250mm x 250mm x 400mm",
			Material:       "Stainless Steel 304",
			Finish:         "Brushed Satin",
			MountingSystem: "Corner-mounted with wall fixings",
		},
		{
			Name:          "Professional Towel Rail - Extra Long 1000mm",
			Description:   "Extra long towel rail for commercial or large residential bathrooms.",
			Category:      models.CategoryTowelRails,
			PriceEstimate: price(599.99),
			StockQuantity: 16,
			Specifications: map[string]string{
				"material": "Stainless Steel 316",
				"finish":   "Brushed Satin",
				"width":    "1000mm",
				"depth":    "120mm",
			},
			Dimensions:     "1000mm x 120mm x 50mm",
			Material:       "Stainless Steel 316",
			Finish:         "Brushed Satin",
			MountingSystem: "Wall-mounted with heavy-duty fixings",
		},
		{
			Name:          "Premium Shower Tray - Compact 900x900mm",
			Description:   "Compact square shower tray ideal for smaller bathrooms. High-quality finish.",
			Category:      models.CategoryShowerTrays,
			PriceEstimate: price(899.99),
			StockQuantity: 8,
			Specifications: map[string]string{
				"material": "Acrylic with reinforcement",
				"finish":   "Gloss White",
				"length":   "900mm",
				"width":    "900mm",
				"depth":    "40mm",
			},
			Dimensions:     "900mm x 900mm x 40mm",
			Material:       "Reinforced Acrylic",
			Finish:         "Gloss White",
			MountingSystem: "Floor-mounted with adjustable legs",
		},
	}

	for _, product := range products {
		product.ID = uuid.NewString()
		product.Images = []string{}
		product.CreatedAt = now
		product.UpdatedAt = now
	}

	return products
}
