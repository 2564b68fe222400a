// pkg/api/server.go

// Package api implements the HTTP surface of the Stark Products platform.
package api

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/events"
	"github.com/starkproducts/platform/pkg/models"
	"github.com/starkproducts/platform/pkg/notify"
	"github.com/starkproducts/platform/pkg/pdf"
)

const (
	// expireSweepInterval is how often active quotes past their expiry
	// date are swept into the expired status.
	expireSweepInterval = time.Hour

	// Per-endpoint budgets for credential endpoints.
	registerLimitPerMinute = 5
	loginLimitPerMinute    = 10
	forgotLimitPerMinute   = 3

	defaultPageSize = 50
	maxPageSize     = 200
)

// Deps carries everything the API server needs.
type Deps struct {
	DB          db.Service
	Auth        *auth.Service
	Mailer      notify.Mailer
	Alerter     *notify.LowStockAlerter
	PDF         *pdf.Generator
	Hub         *events.Hub
	APIPrefix   string
	CORSOrigins []string
	StaticDir   string
	Version     string

	// Production turns on HSTS.
	Production bool
}

// APIServer wires the handlers onto a gorilla/mux router and owns the
// background quote expiry sweep.
type APIServer struct {
	db      db.Service
	auth    *auth.Service
	mailer  notify.Mailer
	alerter *notify.LowStockAlerter
	pdf     *pdf.Generator
	hub     *events.Hub

	apiPrefix   string
	corsOrigins []string
	staticDir   string
	version     string
	hsts        bool
	startTime   time.Time

	limiter *rateLimiter
	router  *mux.Router
}

// NewAPIServer builds the server and registers all routes.
func NewAPIServer(deps Deps, rateLimitPerMinute int) *APIServer {
	s := &APIServer{
		db:          deps.DB,
		auth:        deps.Auth,
		mailer:      deps.Mailer,
		alerter:     deps.Alerter,
		pdf:         deps.PDF,
		hub:         deps.Hub,
		apiPrefix:   deps.APIPrefix,
		corsOrigins: deps.CORSOrigins,
		staticDir:   deps.StaticDir,
		version:     deps.Version,
		hsts:        deps.Production,
		startTime:   time.Now(),
		limiter:     newRateLimiter(rateLimitPerMinute),
		router:      mux.NewRouter(),
	}
	s.setupRoutes()

	return s
}

// Router exposes the configured handler for the HTTP server.
func (s *APIServer) Router() http.Handler { return s.router }

// Start runs the WebSocket hub and the quote expiry sweep until ctx is
// cancelled. Implements lifecycle.Service.
func (s *APIServer) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	ticker := time.NewTicker(expireSweepInterval)
	defer ticker.Stop()

	s.sweepExpiredQuotes(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweepExpiredQuotes(ctx)
		}
	}
}

// Stop releases the database connection. Implements lifecycle.Service.
func (s *APIServer) Stop(ctx context.Context) error {
	return s.db.Close(ctx)
}

// serveEvents upgrades authenticated websocket clients onto the hub.
func (s *APIServer) serveEvents(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	if _, err := s.auth.VerifyAccessToken(token); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	s.hub.ServeHTTP(w, r)
}

func (s *APIServer) sweepExpiredQuotes(ctx context.Context) {
	n, err := s.db.ExpireQuotes(ctx, time.Now())
	if err != nil {
		log.Printf("Quote expiry sweep failed: %v", err)
		return
	}

	if n > 0 {
		log.Printf("Expired %d overdue quotes", n)
	}
}

func (s *APIServer) setupRoutes() {
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.securityHeadersMiddleware)
	s.router.Use(s.rateLimitMiddleware)

	// Health at both the root and the API prefix for load balancers and
	// clients respectively.
	s.router.HandleFunc("/health", s.getLiveness).Methods("GET")

	api := s.router.PathPrefix(s.apiPrefix).Subrouter()
	api.HandleFunc("/", s.getBanner).Methods("GET")
	api.HandleFunc("/health", s.getHealth).Methods("GET")

	// Auth.
	api.HandleFunc("/auth/register", limitEndpoint(registerLimitPerMinute, s.register)).Methods("POST")
	api.HandleFunc("/auth/login", limitEndpoint(loginLimitPerMinute, s.login)).Methods("POST")
	api.HandleFunc("/auth/refresh", s.refreshToken).Methods("POST")
	api.HandleFunc("/auth/logout", s.requireAuth(s.logout)).Methods("POST")
	api.HandleFunc("/auth/verify-email", s.verifyEmail).Methods("POST")
	api.HandleFunc("/auth/forgot-password", limitEndpoint(forgotLimitPerMinute, s.forgotPassword)).Methods("POST")
	api.HandleFunc("/auth/reset-password", s.resetPassword).Methods("POST")
	api.HandleFunc("/auth/change-password", s.requireAuth(s.changePassword)).Methods("POST")
	api.HandleFunc("/auth/me", s.requireAuth(s.getMe)).Methods("GET")
	api.HandleFunc("/auth/me", s.requireAuth(s.updateMe)).Methods("PUT")

	// User administration. Staff can browse, only admins change accounts.
	api.HandleFunc("/users", s.requireStaff(s.listUsers)).Methods("GET")
	api.HandleFunc("/users", s.requirePermission(auth.PermManageUsers, s.createUser)).Methods("POST")
	api.HandleFunc("/users/{id}", s.requireStaff(s.getUser)).Methods("GET")
	api.HandleFunc("/users/{id}", s.requirePermission(auth.PermManageUsers, s.updateUser)).Methods("PUT")
	api.HandleFunc("/users/{id}", s.requirePermission(auth.PermManageUsers, s.deleteUser)).Methods("DELETE")

	// Catalog. Reads are public, writes are staff-only.
	api.HandleFunc("/products", s.listProducts).Methods("GET")
	api.HandleFunc("/categories", s.getCategories).Methods("GET")
	api.HandleFunc("/categories/{category}/products", s.getProductsByCategory).Methods("GET")
	api.HandleFunc("/products", s.requirePermission(auth.PermManageProducts, s.createProduct)).Methods("POST")
	api.HandleFunc("/products/{id}", s.getProduct).Methods("GET")
	api.HandleFunc("/products/{id}", s.requirePermission(auth.PermManageProducts, s.updateProduct)).Methods("PUT")
	api.HandleFunc("/products/{id}", s.requirePermission(auth.PermManageProducts, s.deleteProduct)).Methods("DELETE")

	// Stock management.
	api.HandleFunc("/stock/update", s.requirePermission(auth.PermManageStock, s.updateStock)).Methods("POST")
	api.HandleFunc("/stock/import-csv", s.requirePermission(auth.PermManageStock, s.importStockCSV)).Methods("POST")
	api.HandleFunc("/stock/report", s.requirePermission(auth.PermManageStock, s.getStockReport)).Methods("GET")

	// Quotes. Creation is open so guests can request pricing.
	api.HandleFunc("/quotes", s.createQuote).Methods("POST")
	api.HandleFunc("/quotes", s.requireAuth(s.listQuotes)).Methods("GET")
	api.HandleFunc("/quotes/bulk-action",
		s.requireRole(s.bulkAction, models.RoleAdmin, models.RoleManager)).Methods("POST")
	api.HandleFunc("/quotes/{id}", s.requireAuth(s.getQuote)).Methods("GET")
	api.HandleFunc("/quotes/{id}", s.requireAuth(s.updateQuote)).Methods("PUT")
	api.HandleFunc("/quotes/{id}",
		s.requireRole(s.deleteQuote, models.RoleAdmin, models.RoleManager)).Methods("DELETE")
	api.HandleFunc("/quotes/{id}/duplicate", s.requireAuth(s.duplicateQuote)).Methods("POST")
	api.HandleFunc("/quotes/{id}/history", s.requireAuth(s.getQuoteHistory)).Methods("GET")
	api.HandleFunc("/quotes/{id}/status-change", s.requireAuth(s.changeQuoteStatus)).Methods("POST")
	api.HandleFunc("/quotes/{id}/bulk-discount",
		s.requireRole(s.bulkDiscount, models.RoleAdmin, models.RoleManager)).Methods("POST")
	api.HandleFunc("/quotes/{id}/pdf", s.requireAuth(s.getQuotePDF)).Methods("GET")
	api.HandleFunc("/quotes/{id}/email", s.requirePermission(auth.PermManageQuotes, s.emailQuote)).Methods("POST")
	api.HandleFunc("/quotes/{id}/follow-up",
		s.requireRole(s.followUpQuote, models.RoleAdmin, models.RoleManager, models.RoleSalesRep)).Methods("POST")

	// Companies.
	api.HandleFunc("/companies", s.requirePermission(auth.PermManageCompanies, s.listCompanies)).Methods("GET")
	api.HandleFunc("/companies", s.requirePermission(auth.PermManageCompanies, s.createCompany)).Methods("POST")
	api.HandleFunc("/companies/{id}", s.requirePermission(auth.PermManageCompanies, s.getCompany)).Methods("GET")
	api.HandleFunc("/companies/{id}", s.requirePermission(auth.PermManageCompanies, s.updateCompany)).Methods("PUT")
	api.HandleFunc("/companies/{id}", s.requirePermission(auth.PermManageCompanies, s.deleteCompany)).Methods("DELETE")
	api.HandleFunc("/companies/{id}/employees", s.requirePermission(auth.PermManageCompanies, s.getCompanyEmployees)).Methods("GET")
	api.HandleFunc("/companies/{id}/quotes", s.requirePermission(auth.PermManageCompanies, s.getCompanyQuotes)).Methods("GET")
	api.HandleFunc("/companies/{id}/assign-sales-rep", s.requirePermission(auth.PermManageCompanies, s.assignSalesRep)).Methods("POST")

	// Analytics.
	api.HandleFunc("/analytics/dashboard", s.requirePermission(auth.PermViewAnalytics, s.getDashboard)).Methods("GET")
	api.HandleFunc("/analytics/quotes/status-breakdown", s.requirePermission(auth.PermViewAnalytics, s.getStatusBreakdown)).Methods("GET")
	api.HandleFunc("/analytics/products/popular", s.requirePermission(auth.PermViewAnalytics, s.getPopularProducts)).Methods("GET")
	api.HandleFunc("/analytics/companies/top",
		s.requireRole(s.getTopCompanies, models.RoleAdmin, models.RoleManager)).Methods("GET")
	api.HandleFunc("/analytics/quotes/trends", s.requirePermission(auth.PermViewAnalytics, s.getTrends)).Methods("GET")
	api.HandleFunc("/analytics/summary", s.requirePermission(auth.PermViewAnalytics, s.getSummary)).Methods("GET")

	// Live event stream, authenticated via token query parameter since
	// browsers cannot set headers on websocket upgrades.
	api.HandleFunc("/ws/events", s.serveEvents)

	// Frontend bundle and uploaded assets.
	if s.staticDir != "" {
		s.router.PathPrefix("/static/").Handler(
			http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
		s.router.HandleFunc("/", s.serveHome).Methods("GET")
	}
}

// serveHome delivers the dashboard entry page.
func (s *APIServer) serveHome(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}
