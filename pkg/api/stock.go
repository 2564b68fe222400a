package api

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/events"
	"github.com/starkproducts/platform/pkg/models"
	"github.com/starkproducts/platform/pkg/notify"
)

type stockUpdateRequest struct {
	Updates []models.StockUpdate `json:"updates"`
}

type stockUpdateResult struct {
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

func (s *APIServer) updateStock(w http.ResponseWriter, r *http.Request) {
	var req stockUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Updates) == 0 {
		respondError(w, http.StatusBadRequest, "No stock updates supplied")
		return
	}

	result := stockUpdateResult{}

	for _, update := range req.Updates {
		if update.StockQuantity < 0 {
			result.Errors = append(result.Errors, update.ProductID+": quantity cannot be negative")
			continue
		}

		if err := s.db.UpdateStock(r.Context(), update.ProductID, update.StockQuantity); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				result.Errors = append(result.Errors, update.ProductID+": not found")
				continue
			}

			respondError(w, http.StatusInternalServerError, "Stock update failed")

			return
		}

		result.Updated++

		s.hub.Broadcast(events.EventStockUpdated, map[string]interface{}{
			"product_id":     update.ProductID,
			"stock_quantity": update.StockQuantity,
		})

		if product, err := s.db.GetProduct(r.Context(), update.ProductID); err == nil {
			s.checkLowStock(product)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// importStockCSV ingests a CSV with a product_id,stock_quantity header row,
// sent either as a multipart "file" field or as the raw request body. Rows
// that fail validation are reported but do not abort the import.
func (s *APIServer) importStockCSV(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var src io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "Missing CSV file upload")
			return
		}
		defer file.Close()

		src = file
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil || !strings.EqualFold(header[0], "product_id") || !strings.EqualFold(header[1], "stock_quantity") {
		respondError(w, http.StatusBadRequest, "Expected CSV with product_id,stock_quantity header")
		return
	}

	result := stockUpdateResult{}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		line++

		if err != nil {
			result.Errors = append(result.Errors, "line "+strconv.Itoa(line)+": malformed row")
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || quantity < 0 {
			result.Errors = append(result.Errors, "line "+strconv.Itoa(line)+": invalid quantity")
			continue
		}

		productID := strings.TrimSpace(record[0])

		if err := s.db.UpdateStock(r.Context(), productID, quantity); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				result.Errors = append(result.Errors, "line "+strconv.Itoa(line)+": unknown product "+productID)
				continue
			}

			respondError(w, http.StatusInternalServerError, "Stock import failed")

			return
		}

		result.Updated++

		s.hub.Broadcast(events.EventStockUpdated, map[string]interface{}{
			"product_id":     productID,
			"stock_quantity": quantity,
		})

		if product, err := s.db.GetProduct(r.Context(), productID); err == nil {
			s.checkLowStock(product)
		}
	}

	log.Printf("Stock CSV import: %d rows updated, %d errors", result.Updated, len(result.Errors))

	respondJSON(w, http.StatusOK, result)
}

type stockReport struct {
	TotalProducts int64             `json:"total_products"`
	OutOfStock    int64             `json:"out_of_stock"`
	LowStock      []*models.Product `json:"low_stock"`
	Threshold     int               `json:"threshold"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

func (s *APIServer) getStockReport(w http.ResponseWriter, r *http.Request) {
	total, err := s.db.CountProducts(r.Context(), db.ProductFilter{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build stock report")
		return
	}

	outOfStock, err := s.db.CountOutOfStock(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build stock report")
		return
	}

	low, err := s.db.LowStockProducts(r.Context(), s.alerter.Threshold())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build stock report")
		return
	}

	if low == nil {
		low = []*models.Product{}
	}

	respondJSON(w, http.StatusOK, stockReport{
		TotalProducts: total,
		OutOfStock:    outOfStock,
		LowStock:      low,
		Threshold:     s.alerter.Threshold(),
		GeneratedAt:   time.Now().UTC(),
	})
}

// checkLowStock fires the staff alert and the live event when a product has
// dropped to or below the threshold.
func (s *APIServer) checkLowStock(product *models.Product) {
	if product.StockQuantity > s.alerter.Threshold() {
		return
	}

	s.hub.Broadcast(events.EventLowStock, map[string]interface{}{
		"product_id":     product.ID,
		"product_name":   product.Name,
		"stock_quantity": product.StockQuantity,
	})

	if err := s.alerter.CheckProduct(product); err != nil && !errors.Is(err, notify.ErrAlertCooldown) {
		log.Printf("Low stock alert for %s failed: %v", product.Name, err)
	}
}
