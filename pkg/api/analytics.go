package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/models"
)

const (
	defaultAnalyticsDays = 30
	defaultTopLimit      = 10
	maxTopLimit          = 50
)

// analyticsWindow reads the days query parameter, defaulting to 30.
func analyticsWindow(r *http.Request) time.Time {
	days := defaultAnalyticsDays

	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}

	return time.Now().AddDate(0, 0, -days)
}

func topLimit(r *http.Request) int {
	limit := defaultTopLimit

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	return limit
}

type dashboardResponse struct {
	Quotes       *models.QuoteMetrics      `json:"quotes"`
	TopProducts  []*models.ProductMetrics  `json:"top_products"`
	TopCompanies []*models.CompanyMetrics  `json:"top_companies"`
	Trends       []*models.TimeSeriesPoint `json:"trends"`
	LowStock     int                       `json:"low_stock_products"`
	OutOfStock   int64                     `json:"out_of_stock_products"`
}

func (s *APIServer) getDashboard(w http.ResponseWriter, r *http.Request) {
	since := analyticsWindow(r)

	metrics, err := s.db.QuoteMetrics(r.Context(), since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	products, err := s.db.TopProducts(r.Context(), since, defaultTopLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	// Company metrics are reserved for admins and managers; everyone else
	// gets an empty list rather than an error.
	companies := []*models.CompanyMetrics{}

	if claims, ok := claimsFrom(r.Context()); ok &&
		(claims.Role == models.RoleAdmin || claims.Role == models.RoleManager) {
		companies, err = s.db.TopCompanies(r.Context(), since, defaultTopLimit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
			return
		}
	}

	trends, err := s.db.QuoteTrends(r.Context(), since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	low, err := s.db.LowStockProducts(r.Context(), s.alerter.Threshold())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	outOfStock, err := s.db.CountOutOfStock(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		Quotes:       metrics,
		TopProducts:  products,
		TopCompanies: companies,
		Trends:       trends,
		LowStock:     len(low),
		OutOfStock:   outOfStock,
	})
}

func (s *APIServer) getStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.db.StatusBreakdown(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute status breakdown")
		return
	}

	if breakdown == nil {
		breakdown = []*models.StatusBreakdown{}
	}

	respondJSON(w, http.StatusOK, breakdown)
}

func (s *APIServer) getPopularProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.db.TopProducts(r.Context(), analyticsWindow(r), topLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to rank products")
		return
	}

	if products == nil {
		products = []*models.ProductMetrics{}
	}

	respondJSON(w, http.StatusOK, products)
}

func (s *APIServer) getTopCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.db.TopCompanies(r.Context(), analyticsWindow(r), topLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to rank companies")
		return
	}

	if companies == nil {
		companies = []*models.CompanyMetrics{}
	}

	respondJSON(w, http.StatusOK, companies)
}

func (s *APIServer) getTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.db.QuoteTrends(r.Context(), analyticsWindow(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute trends")
		return
	}

	if trends == nil {
		trends = []*models.TimeSeriesPoint{}
	}

	respondJSON(w, http.StatusOK, trends)
}

type summaryResponse struct {
	Quotes    *models.QuoteMetrics `json:"quotes"`
	Users     int64                `json:"users"`
	Products  int64                `json:"products"`
	Companies int64                `json:"companies"`
}

func (s *APIServer) getSummary(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.db.QuoteMetrics(r.Context(), analyticsWindow(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	users, err := s.db.CountUsers(r.Context(), db.UserFilter{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	products, err := s.db.CountProducts(r.Context(), db.ProductFilter{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	companies, err := s.db.CountCompanies(r.Context(), db.CompanyFilter{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse{
		Quotes:    metrics,
		Users:     users,
		Products:  products,
		Companies: companies,
	})
}
