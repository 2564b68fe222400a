package models

import (
	"fmt"
	"time"
)

// ProductCategory is one of the fixed catalog categories.
type ProductCategory string

const (
	CategoryTowelRails         ProductCategory = "Towel Rails"
	CategoryShowerTrays        ProductCategory = "Shower Trays"
	CategorySoapDishes         ProductCategory = "Soap Dishes"
	CategoryToiletRollHolders  ProductCategory = "Toilet Roll Holders"
	CategoryBathroomShelves    ProductCategory = "Bathroom Shelves"
	CategoryGeneralAccessories ProductCategory = "General Bathroom Accessories"
	CategoryOtherProducts      ProductCategory = "Other Products"
)

// ProductCategories lists every catalog category in display order.
func ProductCategories() []ProductCategory {
	return []ProductCategory{
		CategoryTowelRails,
		CategoryShowerTrays,
		CategorySoapDishes,
		CategoryToiletRollHolders,
		CategoryBathroomShelves,
		CategoryGeneralAccessories,
		CategoryOtherProducts,
	}
}

// ParseProductCategory validates a category value.
func ParseProductCategory(s string) (ProductCategory, error) {
	for _, c := range ProductCategories() {
		if string(c) == s {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Product is a catalog item.
type Product struct {
	ID             string            `bson:"id" json:"id"`
	Name           string            `bson:"name" json:"name"`
	Description    string            `bson:"description" json:"description"`
	Category       ProductCategory   `bson:"category" json:"category"`
	PriceEstimate  *float64          `bson:"price_estimate,omitempty" json:"price_estimate,omitempty"`
	StockQuantity  int               `bson:"stock_quantity" json:"stock_quantity"`
	Images         []string          `bson:"images" json:"images"`
	Specifications map[string]string `bson:"specifications" json:"specifications"`
	Dimensions     string            `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Material       string            `bson:"material,omitempty" json:"material,omitempty"`
	Finish         string            `bson:"finish,omitempty" json:"finish,omitempty"`
	MountingSystem string            `bson:"mounting_system,omitempty" json:"mounting_system,omitempty"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updated_at"`
}

// StockUpdate is a single entry of a bulk stock adjustment.
type StockUpdate struct {
	ProductID     string `json:"product_id"`
	StockQuantity int    `json:"stock_quantity"`
}
