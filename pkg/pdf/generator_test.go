package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkproducts/platform/pkg/models"
)

func testGenerator() *Generator {
	return NewGenerator(CompanyInfo{
		Name:    "Stark Products",
		Email:   "info@starkproducts.co.za",
		Phone:   "+27 11 902 8678",
		Address: "Stand 110, Black Reef Road, Germiston",
	})
}

func price(v float64) *float64 { return &v }

func testQuote() *models.Quote {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	return &models.Quote{
		ID: "3f2b8c1a-9d4e-4f6a-b7c8-0a1b2c3d4e5f",
		CustomerInfo: models.CustomerInfo{
			Name:    "Jane Builder",
			Company: "Builder & Co",
			Email:   "jane@builder.co.za",
			Phone:   "+27 82 000 0000",
		},
		Items: []models.QuoteItem{
			{ProductID: "p1", ProductName: "Chrome Towel Rail 600mm", Quantity: 10, UnitPrice: price(450)},
			{ProductID: "p2", ProductName: "Soap Dish, Wall Mounted", Quantity: 25, UnitPrice: price(85)},
		},
		Status:    models.QuoteSent,
		Notes:     "Delivery to site required.",
		CreatedAt: now,
		ExpiresAt: now.AddDate(0, 0, models.QuoteValidityDays),
	}
}

func TestQuoteRendersPDF(t *testing.T) {
	data, err := testGenerator().Quote(testQuote())
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestQuoteWithUnpricedItems(t *testing.T) {
	quote := testQuote()
	quote.Items = []models.QuoteItem{
		{ProductID: "p3", ProductName: "Custom Shower Tray", Quantity: 2},
	}

	data, err := testGenerator().Quote(quote)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestQuoteWithDiscount(t *testing.T) {
	quote := testQuote()
	discount := 10.0
	quote.DiscountApplied = &discount
	quote.DiscountReason = "bulk order"

	data, err := testGenerator().Quote(quote)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3F2B8C1A", shortID("3f2b8c1a-9d4e-4f6a-b7c8-0a1b2c3d4e5f"))
	assert.Equal(t, "ABC", shortID("abc"))
}

func TestFilename(t *testing.T) {
	name := Filename(testQuote())
	assert.Contains(t, name, "quote_3F2B8C1A_")
	assert.Contains(t, name, ".pdf")
}
