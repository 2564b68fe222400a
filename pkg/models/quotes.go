package models

import (
	"fmt"
	"time"
)

// QuoteStatus is the workflow state of a quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuotePending  QuoteStatus = "pending"
	QuoteSent     QuoteStatus = "sent"
	QuoteApproved QuoteStatus = "approved"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
	QuoteArchived QuoteStatus = "archived"
)

// ParseQuoteStatus validates a status value.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch QuoteStatus(s) {
	case QuoteDraft, QuotePending, QuoteSent, QuoteApproved, QuoteRejected, QuoteExpired, QuoteArchived:
		return QuoteStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Active reports whether the quote is still in play.
func (s QuoteStatus) Active() bool {
	return s == QuoteDraft || s == QuotePending || s == QuoteSent
}

// Converted reports whether the quote turned into business.
func (s QuoteStatus) Converted() bool {
	return s == QuoteApproved
}

// QuoteValidityDays is how long a quote remains valid after creation.
const QuoteValidityDays = 30

// CustomerInfo identifies the customer a quote is addressed to.
type CustomerInfo struct {
	Name    string `bson:"name" json:"name"`
	Company string `bson:"company,omitempty" json:"company,omitempty"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

// QuoteItem is a single line on a quote. UnitPrice may be nil when the item
// is still to be quoted.
type QuoteItem struct {
	ProductID   string   `bson:"product_id" json:"product_id"`
	ProductName string   `bson:"product_name" json:"product_name"`
	Quantity    int      `bson:"quantity" json:"quantity"`
	UnitPrice   *float64 `bson:"unit_price,omitempty" json:"unit_price,omitempty"`
	Notes       string   `bson:"notes,omitempty" json:"notes,omitempty"`

	// Set when a bulk discount has been applied.
	OriginalPrice   *float64 `bson:"original_price,omitempty" json:"original_price,omitempty"`
	DiscountApplied *float64 `bson:"discount_applied,omitempty" json:"discount_applied,omitempty"`
}

// Quote is a priced, non-binding proposal for a bulk order.
type Quote struct {
	ID            string       `bson:"id" json:"id"`
	CustomerInfo  CustomerInfo `bson:"customer_info" json:"customer_info"`
	Items         []QuoteItem  `bson:"items" json:"items"`
	Status        QuoteStatus  `bson:"status" json:"status"`
	TotalEstimate *float64     `bson:"total_estimate,omitempty" json:"total_estimate,omitempty"`
	Notes         string       `bson:"notes,omitempty" json:"notes,omitempty"`
	AdminNotes    string       `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`

	DiscountApplied *float64 `bson:"discount_applied,omitempty" json:"discount_applied,omitempty"`
	DiscountReason  string   `bson:"discount_reason,omitempty" json:"discount_reason,omitempty"`

	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`

	RequestedDeliveryDate *time.Time `bson:"requested_delivery_date,omitempty" json:"requested_delivery_date,omitempty"`
	LastEmailedAt         *time.Time `bson:"last_emailed_at,omitempty" json:"last_emailed_at,omitempty"`
	LastFollowUpAt        *time.Time `bson:"last_follow_up_at,omitempty" json:"last_follow_up_at,omitempty"`
}

// Total computes the quote total from priced items. The second return value
// is false when no item carries a price.
func (q *Quote) Total() (float64, bool) {
	return QuoteItemsTotal(q.Items)
}

// QuoteItemsTotal sums unit price times quantity across priced items.
func QuoteItemsTotal(items []QuoteItem) (float64, bool) {
	var (
		total      float64
		hasPricing bool
	)

	for _, item := range items {
		if item.UnitPrice != nil {
			total += *item.UnitPrice * float64(item.Quantity)
			hasPricing = true
		}
	}

	return total, hasPricing
}

// QuoteHistoryEntry records one change to a quote.
type QuoteHistoryEntry struct {
	ID           string    `bson:"id" json:"id"`
	QuoteID      string    `bson:"quote_id" json:"quote_id"`
	Action       string    `bson:"action" json:"action"`
	FieldChanged string    `bson:"field_changed,omitempty" json:"field_changed,omitempty"`
	OldValue     string    `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue     string    `bson:"new_value,omitempty" json:"new_value,omitempty"`
	ChangedBy    string    `bson:"changed_by" json:"changed_by"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
}
