package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/starkproducts/platform/pkg/models"
)

type captureSender struct {
	messages []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func enabledMailer() (*SMTPMailer, *captureSender) {
	m := NewSMTPMailer(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@example.com",
		FromName: "Stark Products",
	})

	capture := &captureSender{}
	m.send = capture

	return m, capture
}

func testQuote() *models.Quote {
	return &models.Quote{
		ID:     "q1",
		Status: models.QuoteSent,
		CustomerInfo: models.CustomerInfo{
			Name:  "Jane Builder",
			Email: "jane@builder.co.za",
		},
	}
}

func TestDisabledMailer(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})

	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.SendFollowUp(testQuote(), ""), ErrMailerDisabled)
}

func TestSendQuoteAttachesPDF(t *testing.T) {
	m, capture := enabledMailer()

	require.NoError(t, m.SendQuote(testQuote(), []byte("%PDF-1.4"), ""))
	require.Len(t, capture.messages, 1)

	msg := capture.messages[0]
	assert.Equal(t, []string{"jane@builder.co.za"}, msg.GetHeader("To"))
	assert.Contains(t, msg.GetHeader("Subject")[0], "Stark Products")
}

func TestSendStatusUpdate(t *testing.T) {
	m, capture := enabledMailer()

	quote := testQuote()
	quote.Status = models.QuoteApproved

	require.NoError(t, m.SendStatusUpdate(quote, models.QuoteSent))
	require.Len(t, capture.messages, 1)
}

func TestLowStockAlerter(t *testing.T) {
	m, capture := enabledMailer()
	a := NewLowStockAlerter(m, []string{"ops@example.com"}, 10)

	healthy := &models.Product{ID: "p1", Name: "Towel Rail", StockQuantity: 50}
	require.NoError(t, a.CheckProduct(healthy))
	assert.Empty(t, capture.messages)

	low := &models.Product{ID: "p2", Name: "Soap Dish", Category: models.CategorySoapDishes, StockQuantity: 3}
	require.NoError(t, a.CheckProduct(low))
	require.Len(t, capture.messages, 1)
	assert.Contains(t, capture.messages[0].GetHeader("Subject")[0], "Soap Dish")

	// Second alert for the same product is inside the cooldown window.
	assert.ErrorIs(t, a.CheckProduct(low), ErrAlertCooldown)
	assert.Len(t, capture.messages, 1)
}

func TestLowStockAlerterDisabledMailer(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{})
	a := NewLowStockAlerter(m, []string{"ops@example.com"}, 10)

	low := &models.Product{ID: "p1", Name: "Towel Rail", StockQuantity: 1}

	// Logs instead of failing when mail is not configured.
	require.NoError(t, a.CheckProduct(low))
}
