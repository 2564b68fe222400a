package notify

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/starkproducts/platform/pkg/models"
)

const defaultAlertCooldown = 6 * time.Hour

// LowStockAlerter emails staff when product stock drops to or below the
// threshold. Alerts for the same product are rate limited by a cooldown so
// repeated stock updates do not spam the inbox.
type LowStockAlerter struct {
	mailer     *SMTPMailer
	recipients []string
	threshold  int
	cooldown   time.Duration

	mu             sync.Mutex
	lastAlertTimes map[string]time.Time
}

// NewLowStockAlerter builds an alerter sending to the given staff addresses.
func NewLowStockAlerter(mailer *SMTPMailer, recipients []string, threshold int) *LowStockAlerter {
	return &LowStockAlerter{
		mailer:         mailer,
		recipients:     recipients,
		threshold:      threshold,
		cooldown:       defaultAlertCooldown,
		lastAlertTimes: make(map[string]time.Time),
	}
}

// Threshold is the stock level at or below which alerts fire.
func (a *LowStockAlerter) Threshold() int { return a.threshold }

// CheckProduct fires an alert when the product is at or below the threshold.
// Returns ErrAlertCooldown when an alert for this product was sent recently.
func (a *LowStockAlerter) CheckProduct(product *models.Product) error {
	if product.StockQuantity > a.threshold {
		return nil
	}

	if err := a.checkCooldown(product.ID); err != nil {
		return err
	}

	if !a.mailer.Enabled() || len(a.recipients) == 0 {
		log.Printf("Low stock on %s (%d left), mail alerts disabled", product.Name, product.StockQuantity)
		return nil
	}

	body := fmt.Sprintf(
		"Stock alert\n\nProduct: %s\nCategory: %s\nRemaining: %d (threshold %d)\n\nRestock to keep quotations flowing.",
		product.Name, product.Category, product.StockQuantity, a.threshold,
	)

	for _, to := range a.recipients {
		if err := a.mailer.deliver(to, "Low stock: "+product.Name, body, nil); err != nil {
			return err
		}
	}

	return nil
}

// Recipients lists the alert destinations.
func (a *LowStockAlerter) Recipients() string {
	return strings.Join(a.recipients, ", ")
}

func (a *LowStockAlerter) checkCooldown(productID string) error {
	if a.cooldown <= 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	last, ok := a.lastAlertTimes[productID]
	if ok && time.Since(last) < a.cooldown {
		return ErrAlertCooldown
	}

	a.lastAlertTimes[productID] = time.Now()

	return nil
}
