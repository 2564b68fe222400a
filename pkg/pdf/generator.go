// Package pdf renders quotes as A4 PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/starkproducts/platform/pkg/models"
)

// VATRate is the South African VAT rate applied to quote totals.
const VATRate = 0.15

// CompanyInfo is the issuer identity printed on every document.
type CompanyInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Generator renders quote documents.
type Generator struct {
	company CompanyInfo
}

// NewGenerator builds a Generator for the given issuer.
func NewGenerator(company CompanyInfo) *Generator {
	return &Generator{company: company}
}

// Quote renders a quote into a PDF document.
func (g *Generator) Quote(quote *models.Quote) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 25)

	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 10,
			fmt.Sprintf("%s | %s | %s", g.company.Name, g.company.Email, g.company.Phone),
			"", 0, "C", false, 0, "")
	})

	doc.AddPage()

	g.header(doc, quote)
	g.customerBlock(doc, quote)
	g.itemsTable(doc, quote)
	g.totals(doc, quote)
	g.terms(doc, quote)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) header(doc *gofpdf.Fpdf, quote *models.Quote) {
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(31, 41, 55)
	doc.Cell(120, 10, g.company.Name)

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "QUOTATION", "", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(107, 114, 128)
	doc.Cell(120, 5, g.company.Address)
	doc.CellFormat(0, 5, "Quote #: "+shortID(quote.ID), "", 1, "R", false, 0, "")

	doc.Cell(120, 5, g.company.Email+"  |  "+g.company.Phone)
	doc.CellFormat(0, 5, "Date: "+quote.CreatedAt.Format("2 January 2006"), "", 1, "R", false, 0, "")

	doc.Cell(120, 5, "")
	doc.CellFormat(0, 5, "Valid until: "+quote.ExpiresAt.Format("2 January 2006"), "", 1, "R", false, 0, "")

	doc.Ln(6)
	doc.SetDrawColor(229, 231, 235)
	doc.Line(10, doc.GetY(), 200, doc.GetY())
	doc.Ln(4)
}

func (g *Generator) customerBlock(doc *gofpdf.Fpdf, quote *models.Quote) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(31, 41, 55)
	doc.CellFormat(0, 6, "Quote for:", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)

	c := quote.CustomerInfo
	doc.CellFormat(0, 5, c.Name, "", 1, "L", false, 0, "")

	if c.Company != "" {
		doc.CellFormat(0, 5, c.Company, "", 1, "L", false, 0, "")
	}

	doc.CellFormat(0, 5, c.Email, "", 1, "L", false, 0, "")

	if c.Phone != "" {
		doc.CellFormat(0, 5, c.Phone, "", 1, "L", false, 0, "")
	}

	if c.Address != "" {
		doc.MultiCell(0, 5, c.Address, "", "L", false)
	}

	doc.Ln(4)
}

func (g *Generator) itemsTable(doc *gofpdf.Fpdf, quote *models.Quote) {
	const (
		colProduct = 85
		colQty     = 20
		colPrice   = 40
		colTotal   = 45
	)

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(243, 244, 246)
	doc.SetTextColor(31, 41, 55)
	doc.CellFormat(colProduct, 8, "Product", "1", 0, "L", true, 0, "")
	doc.CellFormat(colQty, 8, "Qty", "1", 0, "C", true, 0, "")
	doc.CellFormat(colPrice, 8, "Unit Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(colTotal, 8, "Line Total", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 9)

	for _, item := range quote.Items {
		name := item.ProductName
		if item.Notes != "" {
			name += " (" + item.Notes + ")"
		}

		doc.CellFormat(colProduct, 7, name, "1", 0, "L", false, 0, "")
		doc.CellFormat(colQty, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")

		// Unpriced lines are still to be quoted.
		if item.UnitPrice == nil {
			doc.CellFormat(colPrice, 7, "TBQ", "1", 0, "R", false, 0, "")
			doc.CellFormat(colTotal, 7, "TBQ", "1", 1, "R", false, 0, "")

			continue
		}

		doc.CellFormat(colPrice, 7, rands(*item.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(colTotal, 7, rands(*item.UnitPrice*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	doc.Ln(3)
}

func (g *Generator) totals(doc *gofpdf.Fpdf, quote *models.Quote) {
	subtotal, priced := quote.Total()
	if !priced {
		doc.SetFont("Helvetica", "I", 9)
		doc.SetTextColor(107, 114, 128)
		doc.CellFormat(0, 6, "Pricing to be confirmed. A priced quotation will follow.", "", 1, "L", false, 0, "")
		doc.Ln(3)

		return
	}

	vat := subtotal * VATRate

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(31, 41, 55)

	row := func(label, value string, bold bool) {
		if bold {
			doc.SetFont("Helvetica", "B", 11)
		}

		doc.CellFormat(145, 7, label, "", 0, "R", false, 0, "")
		doc.CellFormat(45, 7, value, "", 1, "R", false, 0, "")

		if bold {
			doc.SetFont("Helvetica", "", 10)
		}
	}

	row("Subtotal:", rands(subtotal), false)

	if quote.DiscountApplied != nil && *quote.DiscountApplied > 0 {
		row(fmt.Sprintf("Discount (%.0f%%):", *quote.DiscountApplied), "-"+rands(subtotal**quote.DiscountApplied/100), false)

		subtotal -= subtotal * *quote.DiscountApplied / 100
		vat = subtotal * VATRate
	}

	row(fmt.Sprintf("VAT (%.0f%%):", VATRate*100), rands(vat), false)
	row("Total:", rands(subtotal+vat), true)

	doc.Ln(3)
}

func (g *Generator) terms(doc *gofpdf.Fpdf, quote *models.Quote) {
	if quote.Notes != "" {
		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, quote.Notes, "", "L", false)
		doc.Ln(2)
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(0, 6, "Terms & Conditions", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(107, 114, 128)

	terms := []string{
		fmt.Sprintf("This quotation is valid for %d days from the date of issue.", models.QuoteValidityDays),
		"Prices are quoted in South African Rand and include VAT where shown.",
		"Delivery lead times are confirmed on acceptance of the quotation.",
		"Errors and omissions excepted.",
	}

	for i, term := range terms {
		doc.MultiCell(0, 4, fmt.Sprintf("%d. %s", i+1, term), "", "L", false)
	}
}

// shortID is the human-facing quote reference, the first uuid segment
// uppercased.
func shortID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			id = id[:i]
			break
		}
	}

	out := []byte(id)
	for i, b := range out {
		if b >= 'a' && b <= 'z' {
			out[i] = b - 'a' + 'A'
		}
	}

	return string(out)
}

func rands(v float64) string {
	return fmt.Sprintf("R %.2f", v)
}

// Filename is the suggested download name for a quote document.
func Filename(quote *models.Quote) string {
	return fmt.Sprintf("quote_%s_%s.pdf", shortID(quote.ID), time.Now().Format("20060102"))
}
