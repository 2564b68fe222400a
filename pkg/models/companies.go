package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CompanySize buckets a company by employee count.
type CompanySize string

const (
	SizeStartup    CompanySize = "startup"    // 1-10
	SizeSmall      CompanySize = "small"      // 11-50
	SizeMedium     CompanySize = "medium"     // 51-200
	SizeLarge      CompanySize = "large"      // 201-1000
	SizeEnterprise CompanySize = "enterprise" // 1000+
)

// ParseCompanySize validates a size value.
func ParseCompanySize(s string) (CompanySize, error) {
	switch CompanySize(s) {
	case SizeStartup, SizeSmall, SizeMedium, SizeLarge, SizeEnterprise:
		return CompanySize(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
}

// CompanyStatus is the lifecycle state of a company account.
type CompanyStatus string

const (
	CompanyActive          CompanyStatus = "active"
	CompanyInactive        CompanyStatus = "inactive"
	CompanySuspended       CompanyStatus = "suspended"
	CompanyPendingApproval CompanyStatus = "pending_approval"
)

// ParseCompanyStatus validates a company status value.
func ParseCompanyStatus(s string) (CompanyStatus, error) {
	switch CompanyStatus(s) {
	case CompanyActive, CompanyInactive, CompanySuspended, CompanyPendingApproval:
		return CompanyStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

var vatDigitsRe = regexp.MustCompile(`[^\d]`)

// NormalizeVATNumber strips formatting and checks the 10 digit shape used
// for South African VAT numbers. Empty input is allowed.
func NormalizeVATNumber(v string) (string, error) {
	if v == "" {
		return "", nil
	}

	digits := vatDigitsRe.ReplaceAllString(v, "")
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: VAT number must be 10 digits", ErrInvalidInput)
	}

	return digits, nil
}

// ValidateDiscountRate bounds a company discount to at most 50%.
func ValidateDiscountRate(rate float64) error {
	if rate < 0 || rate > 0.5 {
		return fmt.Errorf("%w: discount rate must be between 0 and 0.5", ErrInvalidInput)
	}

	return nil
}

// ValidatePaymentTerms bounds payment terms to 0-180 days.
func ValidatePaymentTerms(days int) error {
	if days < 0 || days > 180 {
		return fmt.Errorf("%w: payment terms must be between 0 and 180 days", ErrInvalidInput)
	}

	return nil
}

// NormalizeWebsite prefixes a scheme when one is missing.
func NormalizeWebsite(v string) string {
	if v == "" || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}

	return "https://" + v
}

// Company is a B2B customer account. Employees reference it through
// User.CompanyID; quote sharing between employees is governed by
// QuoteSharingEnabled.
type Company struct {
	ID                 string `bson:"id" json:"id"`
	Name               string `bson:"name" json:"name"`
	LegalName          string `bson:"legal_name,omitempty" json:"legal_name,omitempty"`
	RegistrationNumber string `bson:"registration_number,omitempty" json:"registration_number,omitempty"`
	VATNumber          string `bson:"vat_number,omitempty" json:"vat_number,omitempty"`

	PrimaryEmail string `bson:"primary_email" json:"primary_email"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Website      string `bson:"website,omitempty" json:"website,omitempty"`

	BillingAddress  map[string]string `bson:"billing_address" json:"billing_address"`
	ShippingAddress map[string]string `bson:"shipping_address,omitempty" json:"shipping_address,omitempty"`

	Size        CompanySize   `bson:"size" json:"size"`
	Industry    string        `bson:"industry,omitempty" json:"industry,omitempty"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Status      CompanyStatus `bson:"status" json:"status"`

	CreditLimit  *float64 `bson:"credit_limit,omitempty" json:"credit_limit,omitempty"`
	PaymentTerms int      `bson:"payment_terms" json:"payment_terms"`
	DiscountRate float64  `bson:"discount_rate" json:"discount_rate"`

	AssignedSalesRep string `bson:"assigned_sales_rep,omitempty" json:"assigned_sales_rep,omitempty"`
	AccountManager   string `bson:"account_manager,omitempty" json:"account_manager,omitempty"`

	TotalQuotes   int        `bson:"total_quotes" json:"total_quotes"`
	TotalOrders   int        `bson:"total_orders" json:"total_orders"`
	TotalRevenue  float64    `bson:"total_revenue" json:"total_revenue"`
	LastOrderDate *time.Time `bson:"last_order_date,omitempty" json:"last_order_date,omitempty"`

	QuoteSharingEnabled          bool     `bson:"quote_sharing_enabled" json:"quote_sharing_enabled"`
	RequireApprovalForQuotes     bool     `bson:"require_approval_for_quotes" json:"require_approval_for_quotes"`
	MaxQuoteValueWithoutApproval *float64 `bson:"max_quote_value_without_approval,omitempty" json:"max_quote_value_without_approval,omitempty"`

	Notes string   `bson:"notes,omitempty" json:"notes,omitempty"`
	Tags  []string `bson:"tags,omitempty" json:"tags,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy string    `bson:"created_by,omitempty" json:"created_by,omitempty"`

	// Attached on list/detail responses, not persisted.
	EmployeeCount *int64 `bson:"-" json:"employee_count,omitempty"`
}

// CompanyEmployee is the per-employee view returned by the company
// endpoints.
type CompanyEmployee struct {
	UserID           string        `json:"user_id"`
	Email            string        `json:"email"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	Position         string        `json:"position,omitempty"`
	RoleInCompany    string        `json:"role_in_company"`
	CanCreateQuotes  bool          `json:"can_create_quotes"`
	CanApproveQuotes bool          `json:"can_approve_quotes"`
	JoinedCompanyAt  time.Time     `json:"joined_company_at"`
	Status           AccountStatus `json:"status"`
}
