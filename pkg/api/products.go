package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/models"
)

func (s *APIServer) listProducts(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	q := r.URL.Query()

	inStock := q.Get("in_stock_only")
	if inStock == "" {
		inStock = q.Get("in_stock")
	}

	filter := db.ProductFilter{
		Search:      q.Get("search"),
		InStockOnly: inStock == "true",
		Skip:        skip,
		Limit:       limit,
	}

	if v := q.Get("category"); v != "" {
		category, err := models.ParseProductCategory(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		filter.Category = category
	}

	products, err := s.db.ListProducts(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	total, err := s.db.CountProducts(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, listMeta{Total: total, Skip: skip, Limit: limit, Items: products})
}

func (s *APIServer) getCategories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]models.ProductCategory{
		"categories": models.ProductCategories(),
	})
}

func (s *APIServer) getProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseProductCategory(mux.Vars(r)["category"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	skip, limit := pagination(r)

	filter := db.ProductFilter{Category: category, Skip: skip, Limit: limit}

	products, err := s.db.ListProducts(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	if products == nil {
		products = []*models.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

type productRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	PriceEstimate  *float64          `json:"price_estimate,omitempty"`
	StockQuantity  int               `json:"stock_quantity"`
	Images         []string          `json:"images,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Dimensions     string            `json:"dimensions,omitempty"`
	Material       string            `json:"material,omitempty"`
	Finish         string            `json:"finish,omitempty"`
	MountingSystem string            `json:"mounting_system,omitempty"`
}

func (s *APIServer) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	category, err := models.ParseProductCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.StockQuantity < 0 {
		respondError(w, http.StatusBadRequest, "Stock quantity cannot be negative")
		return
	}

	now := time.Now()
	product := &models.Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       category,
		PriceEstimate:  req.PriceEstimate,
		StockQuantity:  req.StockQuantity,
		Images:         req.Images,
		Specifications: req.Specifications,
		Dimensions:     req.Dimensions,
		Material:       req.Material,
		Finish:         req.Finish,
		MountingSystem: req.MountingSystem,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if product.Images == nil {
		product.Images = []string{}
	}

	if product.Specifications == nil {
		product.Specifications = map[string]string{}
	}

	if err := s.db.CreateProduct(r.Context(), product); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (s *APIServer) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.db.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (s *APIServer) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	category, err := models.ParseProductCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.StockQuantity < 0 {
		respondError(w, http.StatusBadRequest, "Stock quantity cannot be negative")
		return
	}

	set := bson.M{
		"name":            req.Name,
		"description":     req.Description,
		"category":        category,
		"price_estimate":  req.PriceEstimate,
		"stock_quantity":  req.StockQuantity,
		"images":          req.Images,
		"specifications":  req.Specifications,
		"dimensions":      req.Dimensions,
		"material":        req.Material,
		"finish":          req.Finish,
		"mounting_system": req.MountingSystem,
		"updated_at":      time.Now(),
	}

	if err := s.db.UpdateProduct(r.Context(), id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to update product")

		return
	}

	product, err := s.db.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load updated product")
		return
	}

	s.checkLowStock(product)

	respondJSON(w, http.StatusOK, product)
}

func (s *APIServer) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to delete product")

		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
