package models

import "time"

// QuoteMetrics summarizes quote activity over a reporting period.
type QuoteMetrics struct {
	TotalQuotes       int      `json:"total_quotes"`
	ActiveQuotes      int      `json:"active_quotes"`
	ConvertedQuotes   int      `json:"converted_quotes"`
	ConversionRate    float64  `json:"conversion_rate"`
	AverageQuoteValue *float64 `json:"average_quote_value"`
	TotalQuoteValue   float64  `json:"total_quote_value"`
}

// ProductMetrics ranks a product by how often it is quoted.
type ProductMetrics struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	QuoteCount    int             `json:"quote_count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    *float64        `json:"total_value"`
	Category      ProductCategory `json:"category,omitempty"`
}

// CompanyMetrics ranks a company by quote volume.
type CompanyMetrics struct {
	CompanyID     string        `json:"company_id"`
	CompanyName   string        `json:"company_name"`
	TotalQuotes   int           `json:"total_quotes"`
	TotalValue    float64       `json:"total_value"`
	LastQuoteDate *time.Time    `json:"last_quote_date,omitempty"`
	Status        CompanyStatus `json:"status"`
}

// TimeSeriesPoint is one bucket in a daily trend series.
type TimeSeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// StatusBreakdown is the share of quotes in a given status.
type StatusBreakdown struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
