package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/mock/gomock"

	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/events"
	"github.com/starkproducts/platform/pkg/models"
	"github.com/starkproducts/platform/pkg/notify"
	"github.com/starkproducts/platform/pkg/pdf"
)

type testServer struct {
	server *APIServer
	mockDB *db.MockService
	auth   *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockDB := db.NewMockService(ctrl)

	authSvc := auth.NewService("test-secret", 30*time.Minute, 24*time.Hour, 4)
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{})

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"),
		[]byte("<!doctype html><title>Stark Products</title>"), 0o644))

	server := NewAPIServer(Deps{
		DB:          mockDB,
		Auth:        authSvc,
		Mailer:      mailer,
		Alerter:     notify.NewLowStockAlerter(mailer, nil, 10),
		PDF:         pdf.NewGenerator(pdf.CompanyInfo{Name: "Stark Products"}),
		Hub:         events.NewHub(),
		APIPrefix:   "/api",
		CORSOrigins: []string{"http://localhost:3000"},
		StaticDir:   staticDir,
		Version:     "test",
	}, 1000)

	return &testServer{server: server, mockDB: mockDB, auth: authSvc}
}

func (ts *testServer) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.10:40000"

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(w, req)

	return w
}

func (ts *testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	pair, err := ts.auth.IssueTokenPair(user)
	require.NoError(t, err)

	return pair.AccessToken
}

func staffUser() *models.User {
	return &models.User{ID: "staff-1", Username: "boss", Role: models.RoleManager, Status: models.StatusActive}
}

func customerUser() *models.User {
	return &models.User{ID: "cust-1", Username: "buyer", Role: models.RoleCustomer, Status: models.StatusActive}
}

func TestLiveness(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServeHome(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stark Products")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	ts.mockDB.EXPECT().Ping(gomock.Any()).Return(nil)

	w := ts.request(http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "connected", resp.Database)
}

func TestHealthDegraded(t *testing.T) {
	ts := newTestServer(t)
	ts.mockDB.EXPECT().Ping(gomock.Any()).Return(db.ErrDatabaseError)

	w := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body registerRequest
	}{
		{
			name: "short username",
			body: registerRequest{Username: "ab", Email: "a@b.co", Password: "Str0ngPass"},
		},
		{
			name: "bad email",
			body: registerRequest{Username: "builder", Email: "not-an-email", Password: "Str0ngPass"},
		},
		{
			name: "weak password",
			body: registerRequest{Username: "builder", Email: "a@b.co", Password: "alllowercase"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			w := ts.request(http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	ts := newTestServer(t)

	ts.mockDB.EXPECT().UserExists(gomock.Any(), "builder", "jane@builder.co.za").Return(false, nil)
	ts.mockDB.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, user *models.User) error {
			assert.Equal(t, "builder", user.Username)
			assert.Equal(t, models.RoleCustomer, user.Role)
			assert.Equal(t, models.StatusPendingVerification, user.Status)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEmpty(t, user.EmailVerificationToken)

			return nil
		})

	w := ts.request(http.MethodPost, "/api/auth/register", registerRequest{
		Username:  "Builder",
		Email:     "Jane@builder.co.za",
		Password:  "Str0ngPass",
		FirstName: "Jane",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, "jane@builder.co.za", user.Email)
}

func TestRegisterCoercesAdminRole(t *testing.T) {
	ts := newTestServer(t)

	ts.mockDB.EXPECT().UserExists(gomock.Any(), "schemer", "eve@example.co.za").Return(false, nil)
	ts.mockDB.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, user *models.User) error {
			assert.Equal(t, models.RoleCustomer, user.Role)
			return nil
		})

	w := ts.request(http.MethodPost, "/api/auth/register", registerRequest{
		Username: "schemer",
		Email:    "eve@example.co.za",
		Password: "Str0ngPass",
		Role:     models.RoleAdmin,
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterKeepsRequestedRole(t *testing.T) {
	ts := newTestServer(t)

	ts.mockDB.EXPECT().UserExists(gomock.Any(), "rep", "rep@stark.co.za").Return(false, nil)
	ts.mockDB.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, user *models.User) error {
			assert.Equal(t, models.RoleSalesRep, user.Role)
			return nil
		})

	w := ts.request(http.MethodPost, "/api/auth/register", registerRequest{
		Username: "rep",
		Email:    "rep@stark.co.za",
		Password: "Str0ngPass",
		Role:     models.RoleSalesRep,
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.mockDB.EXPECT().UserExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	w := ts.request(http.MethodPost, "/api/auth/register", registerRequest{
		Username: "builder", Email: "jane@builder.co.za", Password: "Str0ngPass",
	}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	hash, err := ts.auth.HashPassword("Str0ngPass")
	require.NoError(t, err)

	user := customerUser()
	user.PasswordHash = hash

	ts.mockDB.EXPECT().GetUserByLogin(gomock.Any(), "buyer").Return(user, nil)
	ts.mockDB.EXPECT().UpdateUser(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	w := ts.request(http.MethodPost, "/api/auth/login", loginRequest{Username: "buyer", Password: "Str0ngPass"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "buyer", resp.User.Username)
	require.NotNil(t, resp.Tokens)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.Equal(t, "bearer", resp.Tokens.TokenType)
}

func TestLoginWrongPasswordLocksAccount(t *testing.T) {
	ts := newTestServer(t)

	hash, err := ts.auth.HashPassword("Str0ngPass")
	require.NoError(t, err)

	user := customerUser()
	user.PasswordHash = hash
	user.LoginAttempts = maxLoginAttempts - 1

	ts.mockDB.EXPECT().GetUserByLogin(gomock.Any(), "buyer").Return(user, nil)
	ts.mockDB.EXPECT().UpdateUser(gomock.Any(), user.ID, gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, set bson.M) error {
			assert.Equal(t, maxLoginAttempts, set["login_attempts"])
			assert.NotNil(t, set["locked_until"])

			return nil
		})

	w := ts.request(http.MethodPost, "/api/auth/login", loginRequest{Username: "buyer", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLockedAccount(t *testing.T) {
	ts := newTestServer(t)

	until := time.Now().Add(10 * time.Minute)
	user := customerUser()
	user.LockedUntil = &until

	ts.mockDB.EXPECT().GetUserByLogin(gomock.Any(), "buyer").Return(user, nil)

	w := ts.request(http.MethodPost, "/api/auth/login", loginRequest{Username: "buyer", Password: "whatever"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProductsPublic(t *testing.T) {
	ts := newTestServer(t)

	products := []*models.Product{{ID: "p1", Name: "Towel Rail"}}
	ts.mockDB.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(products, nil)
	ts.mockDB.EXPECT().CountProducts(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	w := ts.request(http.MethodGet, "/api/products?limit=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int64            `json:"total"`
		Items []models.Product `json:"items"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Towel Rail", resp.Items[0].Name)
}

func TestListProductsFilterParams(t *testing.T) {
	ts := newTestServer(t)

	ts.mockDB.EXPECT().ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter db.ProductFilter) ([]*models.Product, error) {
			assert.True(t, filter.InStockOnly)
			assert.Equal(t, int64(20), filter.Skip)
			assert.Equal(t, int64(10), filter.Limit)

			return []*models.Product{}, nil
		})
	ts.mockDB.EXPECT().CountProducts(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	w := ts.request(http.MethodGet, "/api/products?in_stock_only=true&offset=20&limit=10", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(http.MethodGet, "/api/products?category=Garden+Tools", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductRequiresPermission(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, customerUser())

	w := ts.request(http.MethodPost, "/api/products", productRequest{Name: "X", Category: "Towel Rails"}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateProduct(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	ts.mockDB.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, product *models.Product) error {
			assert.NotEmpty(t, product.ID)
			assert.Equal(t, models.CategoryTowelRails, product.Category)

			return nil
		})

	w := ts.request(http.MethodPost, "/api/products", productRequest{
		Name:          "Chrome Towel Rail 600mm",
		Category:      "Towel Rails",
		StockQuantity: 25,
	}, token)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateQuoteGuest(t *testing.T) {
	ts := newTestServer(t)

	price := 450.0
	product := &models.Product{ID: "p1", Name: "Towel Rail", PriceEstimate: &price}

	ts.mockDB.EXPECT().GetProduct(gomock.Any(), "p1").Return(product, nil)
	ts.mockDB.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, quote *models.Quote) error {
			assert.Equal(t, models.QuoteDraft, quote.Status)
			assert.Empty(t, quote.CreatedBy)
			require.NotNil(t, quote.TotalEstimate)
			assert.InDelta(t, 4500.0, *quote.TotalEstimate, 0.01)

			return nil
		})
	ts.mockDB.EXPECT().AddQuoteHistory(gomock.Any(), gomock.Any()).Return(nil)

	w := ts.request(http.MethodPost, "/api/quotes", createQuoteRequest{
		Customer: models.CustomerInfo{Name: "Jane", Email: "jane@builder.co.za"},
		Items:    []quoteItemRequest{{ProductID: "p1", Quantity: 10}},
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListQuotesScopedForCustomers(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, customerUser())

	ts.mockDB.EXPECT().ListQuotes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter db.QuoteFilter) ([]*models.Quote, error) {
			assert.Equal(t, "cust-1", filter.CreatedBy)
			return nil, nil
		})
	ts.mockDB.EXPECT().CountQuotes(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	w := ts.request(http.MethodGet, "/api/quotes", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangeQuoteStatus(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	quote := &models.Quote{ID: "q1", Status: models.QuotePending}

	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q1").Return(quote, nil)
	ts.mockDB.EXPECT().UpdateQuote(gomock.Any(), "q1", gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, set bson.M) error {
			assert.Equal(t, models.QuoteApproved, set["status"])
			return nil
		})
	ts.mockDB.EXPECT().AddQuoteHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, entry *models.QuoteHistoryEntry) error {
			assert.Equal(t, "status_changed", entry.Action)
			assert.Equal(t, "pending", entry.OldValue)
			assert.Equal(t, "approved", entry.NewValue)
			assert.Equal(t, "staff-1", entry.ChangedBy)

			return nil
		})

	w := ts.request(http.MethodPost, "/api/quotes/q1/status-change",
		statusChangeRequest{NewStatus: "approved"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangeQuoteStatusRejectsUnknown(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	w := ts.request(http.MethodPost, "/api/quotes/q1/status-change",
		statusChangeRequest{NewStatus: "shipped"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeQuoteStatusNoOp(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	quote := &models.Quote{ID: "q1", Status: models.QuoteApproved}
	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q1").Return(quote, nil)

	w := ts.request(http.MethodPost, "/api/quotes/q1/status-change",
		statusChangeRequest{NewStatus: "approved"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotePDFForbiddenForOtherCustomer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, customerUser())

	quote := &models.Quote{ID: "q1", CreatedBy: "someone-else"}
	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q1").Return(quote, nil)
	ts.mockDB.EXPECT().GetUser(gomock.Any(), "cust-1").Return(customerUser(), nil)

	w := ts.request(http.MethodGet, "/api/quotes/q1/pdf", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQuotePDF(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	quote := &models.Quote{
		ID:           "3f2b8c1a-0000-0000-0000-000000000000",
		Status:       models.QuoteSent,
		CustomerInfo: models.CustomerInfo{Name: "Jane", Email: "jane@builder.co.za"},
		CreatedAt:    time.Now(),
		ExpiresAt:    time.Now().AddDate(0, 0, 30),
	}
	ts.mockDB.EXPECT().GetQuote(gomock.Any(), quote.ID).Return(quote, nil)

	w := ts.request(http.MethodGet, "/api/quotes/"+quote.ID+"/pdf", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestQuoteSharedWithinCompany(t *testing.T) {
	ts := newTestServer(t)

	caller := customerUser()
	caller.CompanyID = "co-1"
	token := ts.tokenFor(t, caller)

	creator := &models.User{ID: "colleague-1", Role: models.RoleCustomer, CompanyID: "co-1"}
	quote := &models.Quote{ID: "q1", CreatedBy: "colleague-1"}

	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q1").Return(quote, nil)
	ts.mockDB.EXPECT().GetUser(gomock.Any(), caller.ID).Return(caller, nil)
	ts.mockDB.EXPECT().GetCompany(gomock.Any(), "co-1").
		Return(&models.Company{ID: "co-1", Name: "Acme Builders", QuoteSharingEnabled: true}, nil)
	ts.mockDB.EXPECT().GetUser(gomock.Any(), "colleague-1").Return(creator, nil)

	w := ts.request(http.MethodGet, "/api/quotes/q1", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBulkDiscountFixedAmount(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	price := 100.0
	oldTotal := 200.0
	quote := &models.Quote{
		ID:            "q1",
		Status:        models.QuoteSent,
		Items:         []models.QuoteItem{{ProductID: "p1", Quantity: 2, UnitPrice: &price}},
		TotalEstimate: &oldTotal,
	}

	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q1").Return(quote, nil)
	ts.mockDB.EXPECT().UpdateQuote(gomock.Any(), "q1", gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, set bson.M) error {
			items := set["items"].([]models.QuoteItem)
			require.Len(t, items, 1)
			assert.InDelta(t, 70.0, *items[0].UnitPrice, 0.01)
			assert.InDelta(t, 140.0, set["total_estimate"].(float64), 0.01)

			return nil
		})
	ts.mockDB.EXPECT().AddQuoteHistory(gomock.Any(), gomock.Any()).Return(nil)

	w := ts.request(http.MethodPost, "/api/quotes/q1/bulk-discount", bulkDiscountRequest{
		DiscountType:  "fixed_amount",
		DiscountValue: 30,
	}, token)

	require.Equal(t, http.StatusOK, w.Code)

	var result bulkDiscountResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.InDelta(t, 60.0, result.TotalDiscount, 0.01)
	assert.Equal(t, 1, result.ItemsAffected)
}

func TestBulkActionDeleteOnlyDrafts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	draft := &models.Quote{ID: "q1", Status: models.QuoteDraft}
	sent := &models.Quote{ID: "q2", Status: models.QuoteSent}

	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q1").Return(draft, nil)
	ts.mockDB.EXPECT().DeleteQuote(gomock.Any(), "q1").Return(nil)
	ts.mockDB.EXPECT().GetQuote(gomock.Any(), "q2").Return(sent, nil)

	w := ts.request(http.MethodPost, "/api/quotes/bulk-action", bulkActionRequest{
		QuoteIDs: []string{"q1", "q2"},
		Action:   "delete",
	}, token)

	require.Equal(t, http.StatusOK, w.Code)

	var result bulkActionResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "q2", result.Failed[0].QuoteID)
}

func TestUpdateCompanyRejectsExcessiveDiscount(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	rate := 0.6
	w := ts.request(http.MethodPut, "/api/companies/c1", updateCompanyRequest{
		DiscountRate: &rate,
	}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCompanyRejectsLongPaymentTerms(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	days := 365
	w := ts.request(http.MethodPut, "/api/companies/c1", updateCompanyRequest{
		PaymentTerms: &days,
	}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockUpdate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	ts.mockDB.EXPECT().UpdateStock(gomock.Any(), "p1", 5).Return(nil)
	ts.mockDB.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(&models.Product{ID: "p1", Name: "Towel Rail", StockQuantity: 5}, nil)

	w := ts.request(http.MethodPost, "/api/stock/update", stockUpdateRequest{
		Updates: []models.StockUpdate{{ProductID: "p1", StockQuantity: 5}},
	}, token)

	require.Equal(t, http.StatusOK, w.Code)

	var result stockUpdateResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)
}

func TestStockImportCSV(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	ts.mockDB.EXPECT().UpdateStock(gomock.Any(), "p1", 40).Return(nil)
	ts.mockDB.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(&models.Product{ID: "p1", Name: "Towel Rail", StockQuantity: 40}, nil)
	ts.mockDB.EXPECT().UpdateStock(gomock.Any(), "p2", 0).Return(db.ErrNotFound)

	body := "product_id,stock_quantity\np1,40\np2,0\npbad,notanumber\n"
	req := httptest.NewRequest(http.MethodPost, "/api/stock/import-csv", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.10:40000"
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result stockUpdateResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1, result.Updated)
	assert.Len(t, result.Errors, 2)
}

func TestStockImportCSVChecksLowStock(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	ts.mockDB.EXPECT().UpdateStock(gomock.Any(), "p1", 2).Return(nil)
	// The reloaded product is below the threshold; the import must run the
	// same low stock check as the JSON bulk path.
	ts.mockDB.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(&models.Product{ID: "p1", Name: "Towel Rail", StockQuantity: 2}, nil)

	body := "product_id,stock_quantity\np1,2\n"
	req := httptest.NewRequest(http.MethodPost, "/api/stock/import-csv", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.10:40000"
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result stockUpdateResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1, result.Updated)
}

func TestAnalyticsSummaryRequiresPermission(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, customerUser())

	w := ts.request(http.MethodGet, "/api/analytics/summary", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnalyticsSummary(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, staffUser())

	ts.mockDB.EXPECT().QuoteMetrics(gomock.Any(), gomock.Any()).
		Return(&models.QuoteMetrics{TotalQuotes: 12, ConvertedQuotes: 3, ConversionRate: 25}, nil)
	ts.mockDB.EXPECT().CountUsers(gomock.Any(), gomock.Any()).Return(int64(8), nil)
	ts.mockDB.EXPECT().CountProducts(gomock.Any(), gomock.Any()).Return(int64(40), nil)
	ts.mockDB.EXPECT().CountCompanies(gomock.Any(), gomock.Any()).Return(int64(5), nil)

	w := ts.request(http.MethodGet, "/api/analytics/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp summaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(8), resp.Users)
	assert.Equal(t, 12, resp.Quotes.TotalQuotes)
}

func TestTopCompaniesManagerOnly(t *testing.T) {
	ts := newTestServer(t)

	rep := &models.User{ID: "rep-1", Username: "rep", Role: models.RoleSalesRep, Status: models.StatusActive}
	token := ts.tokenFor(t, rep)

	w := ts.request(http.MethodGet, "/api/analytics/companies/top", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardOmitsCompaniesForSalesRep(t *testing.T) {
	ts := newTestServer(t)

	rep := &models.User{ID: "rep-1", Username: "rep", Role: models.RoleSalesRep, Status: models.StatusActive}
	token := ts.tokenFor(t, rep)

	ts.mockDB.EXPECT().QuoteMetrics(gomock.Any(), gomock.Any()).Return(&models.QuoteMetrics{}, nil)
	ts.mockDB.EXPECT().TopProducts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	ts.mockDB.EXPECT().QuoteTrends(gomock.Any(), gomock.Any()).Return(nil, nil)
	ts.mockDB.EXPECT().LowStockProducts(gomock.Any(), gomock.Any()).Return(nil, nil)
	ts.mockDB.EXPECT().CountOutOfStock(gomock.Any()).Return(int64(0), nil)

	w := ts.request(http.MethodGet, "/api/analytics/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dashboardResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.TopCompanies)
}

func TestEndpointRateLimit(t *testing.T) {
	ts := newTestServer(t)

	// forgot-password allows 3 per minute per client.
	for i := 0; i < forgotLimitPerMinute; i++ {
		ts.mockDB.EXPECT().GetUserByLogin(gomock.Any(), gomock.Any()).Return(nil, db.ErrNotFound)

		w := ts.request(http.MethodPost, "/api/auth/forgot-password",
			forgotPasswordRequest{Email: "x@y.co"}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := ts.request(http.MethodPost, "/api/auth/forgot-password",
		forgotPasswordRequest{Email: "x@y.co"}, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.10:40000"
	req.Header.Set("Origin", "http://localhost:3000")

	w := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.10:40000"
	req.Header.Set("Origin", "https://evil.example.com")

	w := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
