package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/events"
	"github.com/starkproducts/platform/pkg/models"
	"github.com/starkproducts/platform/pkg/notify"
	"github.com/starkproducts/platform/pkg/pdf"
)

type quoteItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

type createQuoteRequest struct {
	Customer              models.CustomerInfo `json:"customer_info"`
	Items                 []quoteItemRequest  `json:"items"`
	Notes                 string              `json:"notes,omitempty"`
	RequestedDeliveryDate *time.Time          `json:"requested_delivery_date,omitempty"`
}

// createQuote accepts quote requests from both guests and logged-in users.
// A valid bearer token attributes the quote to its caller.
func (s *APIServer) createQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Customer.Name) == "" {
		respondError(w, http.StatusBadRequest, "Customer name is required")
		return
	}

	req.Customer.Email = strings.ToLower(strings.TrimSpace(req.Customer.Email))

	if err := models.ValidateEmail(req.Customer.Email); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "A quote needs at least one item")
		return
	}

	items := make([]models.QuoteItem, 0, len(req.Items))

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "Item quantity must be positive")
			return
		}

		product, err := s.db.GetProduct(r.Context(), item.ProductID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Unknown product "+item.ProductID)
			return
		}

		items = append(items, models.QuoteItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.PriceEstimate,
			Notes:       item.Notes,
		})
	}

	createdBy := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if claims, err := s.auth.VerifyAccessToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
			createdBy = claims.Subject
		}
	}

	now := time.Now()
	quote := &models.Quote{
		ID:                    uuid.NewString(),
		CustomerInfo:          req.Customer,
		Items:                 items,
		Status:                models.QuoteDraft,
		Notes:                 req.Notes,
		CreatedBy:             createdBy,
		CreatedAt:             now,
		UpdatedAt:             now,
		ExpiresAt:             now.AddDate(0, 0, models.QuoteValidityDays),
		RequestedDeliveryDate: req.RequestedDeliveryDate,
	}

	if total, ok := quote.Total(); ok {
		quote.TotalEstimate = &total
	}

	if err := s.db.CreateQuote(r.Context(), quote); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	s.recordHistory(r, quote.ID, "created", "", "", string(quote.Status), "")
	s.hub.Broadcast(events.EventQuoteCreated, quote)

	respondJSON(w, http.StatusCreated, quote)
}

func (s *APIServer) listQuotes(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	skip, limit := pagination(r)

	filter := db.QuoteFilter{
		CustomerEmail: r.URL.Query().Get("customer_email"),
		CompanyName:   r.URL.Query().Get("company"),
		Skip:          skip,
		Limit:         limit,
	}

	if v := r.URL.Query().Get("status"); v != "" {
		status, err := models.ParseQuoteStatus(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		filter.Status = status
	}

	// Non-staff callers only ever see their own quotes.
	if !claims.Role.IsStaff() {
		filter.CreatedBy = claims.Subject
	}

	quotes, err := s.db.ListQuotes(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}

	total, err := s.db.CountQuotes(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}

	respondJSON(w, http.StatusOK, listMeta{Total: total, Skip: skip, Limit: limit, Items: quotes})
}

// canAccessQuote implements the quote visibility rule: admins and managers
// see everything, creators see their own, and colleagues see each other's
// quotes when their company has quote sharing enabled.
func (s *APIServer) canAccessQuote(r *http.Request, quote *models.Quote) bool {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		return false
	}

	if claims.Role == models.RoleAdmin || claims.Role == models.RoleManager {
		return true
	}

	if quote.CreatedBy == claims.Subject {
		return true
	}

	caller, err := s.db.GetUser(r.Context(), claims.Subject)
	if err != nil || caller.CompanyID == "" || quote.CreatedBy == "" {
		return false
	}

	company, err := s.db.GetCompany(r.Context(), caller.CompanyID)
	if err != nil || !company.QuoteSharingEnabled {
		return false
	}

	creator, err := s.db.GetUser(r.Context(), quote.CreatedBy)
	if err != nil {
		return false
	}

	return creator.CompanyID == caller.CompanyID
}

func (s *APIServer) loadQuoteForCaller(w http.ResponseWriter, r *http.Request) *models.Quote {
	quote, err := s.db.GetQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Quote not found")
		return nil
	}

	if !s.canAccessQuote(r, quote) {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return nil
	}

	return quote
}

func (s *APIServer) getQuote(w http.ResponseWriter, r *http.Request) {
	quote := s.loadQuoteForCaller(w, r)
	if quote == nil {
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

type updateQuoteRequest struct {
	Customer              *models.CustomerInfo `json:"customer_info,omitempty"`
	Items                 []models.QuoteItem   `json:"items,omitempty"`
	Notes                 *string              `json:"notes,omitempty"`
	AdminNotes            *string              `json:"admin_notes,omitempty"`
	RequestedDeliveryDate *time.Time           `json:"requested_delivery_date,omitempty"`
}

func (s *APIServer) updateQuote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	claims, _ := claimsFrom(r.Context())

	quote, err := s.db.GetQuote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Quote not found")
		return
	}

	isManager := claims.Role == models.RoleAdmin || claims.Role == models.RoleManager
	if !isManager && quote.CreatedBy != claims.Subject {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var req updateQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.AdminNotes != nil && !isManager {
		respondError(w, http.StatusForbidden, "Admin notes are restricted to managers")
		return
	}

	set := bson.M{"updated_at": time.Now()}

	if req.Customer != nil {
		req.Customer.Email = strings.ToLower(strings.TrimSpace(req.Customer.Email))

		if err := models.ValidateEmail(req.Customer.Email); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["customer_info"] = *req.Customer
	}

	if req.Items != nil {
		for _, item := range req.Items {
			if item.Quantity <= 0 {
				respondError(w, http.StatusBadRequest, "Item quantity must be positive")
				return
			}
		}

		set["items"] = req.Items

		if total, ok := models.QuoteItemsTotal(req.Items); ok {
			set["total_estimate"] = total
		} else {
			set["total_estimate"] = nil
		}
	}

	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	if req.AdminNotes != nil {
		set["admin_notes"] = *req.AdminNotes
	}

	if req.RequestedDeliveryDate != nil {
		set["requested_delivery_date"] = *req.RequestedDeliveryDate
	}

	if err := s.db.UpdateQuote(r.Context(), id, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	s.recordHistory(r, id, "updated", "", "", "", "")

	updated, err := s.db.GetQuote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load updated quote")
		return
	}

	s.hub.Broadcast(events.EventQuoteUpdated, updated)

	respondJSON(w, http.StatusOK, updated)
}

func (s *APIServer) deleteQuote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.db.DeleteQuote(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Quote not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to delete quote")

		return
	}

	s.hub.Broadcast(events.EventQuoteDeleted, map[string]string{"id": id})

	respondJSON(w, http.StatusOK, map[string]string{"message": "Quote deleted"})
}

// duplicateQuote clones an existing quote into a fresh draft with a new
// validity window.
func (s *APIServer) duplicateQuote(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	quote := s.loadQuoteForCaller(w, r)
	if quote == nil {
		return
	}

	now := time.Now()
	clone := *quote
	clone.ID = uuid.NewString()
	clone.Status = models.QuoteDraft
	clone.CreatedBy = claims.Subject
	clone.CreatedAt = now
	clone.UpdatedAt = now
	clone.ExpiresAt = now.AddDate(0, 0, models.QuoteValidityDays)
	clone.AdminNotes = ""
	clone.DiscountApplied = nil
	clone.DiscountReason = ""
	clone.LastEmailedAt = nil
	clone.LastFollowUpAt = nil

	if err := s.db.CreateQuote(r.Context(), &clone); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to duplicate quote")
		return
	}

	s.recordHistory(r, clone.ID, "duplicated", "", "", "", "duplicated from "+quote.ID)
	s.hub.Broadcast(events.EventQuoteCreated, &clone)

	respondJSON(w, http.StatusCreated, &clone)
}

type quoteHistoryResponse struct {
	QuoteID     string                      `json:"quote_id"`
	QuoteStatus models.QuoteStatus          `json:"quote_status"`
	History     []*models.QuoteHistoryEntry `json:"history"`
}

func (s *APIServer) getQuoteHistory(w http.ResponseWriter, r *http.Request) {
	quote := s.loadQuoteForCaller(w, r)
	if quote == nil {
		return
	}

	history, err := s.db.QuoteHistory(r.Context(), quote.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load quote history")
		return
	}

	// Quotes created before history tracking get a synthesized timeline.
	if len(history) == 0 {
		history = synthesizeHistory(quote)
	}

	respondJSON(w, http.StatusOK, quoteHistoryResponse{
		QuoteID:     quote.ID,
		QuoteStatus: quote.Status,
		History:     history,
	})
}

func synthesizeHistory(quote *models.Quote) []*models.QuoteHistoryEntry {
	history := []*models.QuoteHistoryEntry{
		{
			ID:           "creation",
			QuoteID:      quote.ID,
			Action:       "created",
			FieldChanged: "status",
			NewValue:     string(models.QuoteDraft),
			ChangedBy:    quote.CreatedBy,
			Timestamp:    quote.CreatedAt,
			Notes:        "Quote created",
		},
	}

	if quote.UpdatedAt.After(quote.CreatedAt) {
		history = append(history, &models.QuoteHistoryEntry{
			ID:           "last_update",
			QuoteID:      quote.ID,
			Action:       "updated",
			FieldChanged: "status",
			OldValue:     string(models.QuoteDraft),
			NewValue:     string(quote.Status),
			ChangedBy:    quote.CreatedBy,
			Timestamp:    quote.UpdatedAt,
		})
	}

	if quote.LastEmailedAt != nil {
		history = append(history, &models.QuoteHistoryEntry{
			ID:        "emailed",
			QuoteID:   quote.ID,
			Action:    "emailed",
			ChangedBy: "system",
			Timestamp: *quote.LastEmailedAt,
			Notes:     "Quote emailed to customer",
		})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})

	return history
}

type statusChangeRequest struct {
	NewStatus      string `json:"new_status"`
	AdminNotes     string `json:"admin_notes,omitempty"`
	NotifyCustomer bool   `json:"notify_customer,omitempty"`
}

func (s *APIServer) changeQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	claims, _ := claimsFrom(r.Context())

	var req statusChangeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, err := models.ParseQuoteStatus(req.NewStatus)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := s.db.GetQuote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Quote not found")
		return
	}

	isManager := claims.Role == models.RoleAdmin || claims.Role == models.RoleManager
	if !isManager && quote.CreatedBy != claims.Subject {
		respondError(w, http.StatusForbidden, "Insufficient permissions to change quote status")
		return
	}

	if quote.Status == status {
		respondError(w, http.StatusBadRequest, "Quote is already in the specified status")
		return
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if req.AdminNotes != "" {
		set["admin_notes"] = req.AdminNotes
	}

	if err := s.db.UpdateQuote(r.Context(), id, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to change status")
		return
	}

	s.recordHistory(r, id, "status_changed", "status", string(quote.Status), string(status), req.AdminNotes)

	oldStatus := quote.Status
	quote.Status = status

	s.hub.Broadcast(events.EventQuoteStatusChanged, map[string]interface{}{
		"id":         id,
		"old_status": oldStatus,
		"new_status": status,
	})

	if req.NotifyCustomer {
		if err := s.mailer.SendStatusUpdate(quote, oldStatus); err != nil &&
			!errors.Is(err, notify.ErrMailerDisabled) {
			log.Printf("Failed to send status email for quote %s: %v", id, err)
		}
	}

	respondJSON(w, http.StatusOK, quote)
}

type bulkDiscountRequest struct {
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	ApplyToItems  []int   `json:"apply_to_items,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

type bulkDiscountResult struct {
	Message       string  `json:"message"`
	TotalDiscount float64 `json:"total_discount"`
	NewTotal      float64 `json:"new_total"`
	ItemsAffected int     `json:"items_affected"`
}

// bulkDiscount discounts the priced items of one quote, either by percentage
// or by a fixed amount per unit. Prices never go below zero.
func (s *APIServer) bulkDiscount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req bulkDiscountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.DiscountType != "percentage" && req.DiscountType != "fixed_amount" {
		respondError(w, http.StatusBadRequest, "Discount type must be percentage or fixed_amount")
		return
	}

	if req.DiscountValue <= 0 || (req.DiscountType == "percentage" && req.DiscountValue >= 100) {
		respondError(w, http.StatusBadRequest, "Invalid discount value")
		return
	}

	quote, err := s.db.GetQuote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Quote not found")
		return
	}

	if len(quote.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Quote has no items to discount")
		return
	}

	indices := req.ApplyToItems
	if len(indices) == 0 {
		indices = make([]int, len(quote.Items))
		for i := range indices {
			indices[i] = i
		}
	}

	items := make([]models.QuoteItem, len(quote.Items))
	copy(items, quote.Items)

	totalDiscount := 0.0
	affected := 0

	for _, i := range indices {
		if i < 0 || i >= len(items) || items[i].UnitPrice == nil {
			continue
		}

		original := *items[i].UnitPrice

		var newPrice float64
		if req.DiscountType == "percentage" {
			newPrice = original * (1 - req.DiscountValue/100)
		} else {
			newPrice = original - req.DiscountValue
		}

		if newPrice < 0 {
			newPrice = 0
		}

		discount := original - newPrice

		items[i].OriginalPrice = &original
		items[i].UnitPrice = &newPrice
		items[i].DiscountApplied = &discount

		totalDiscount += discount * float64(items[i].Quantity)
		affected++
	}

	newTotal := 0.0
	if total, ok := models.QuoteItemsTotal(items); ok {
		newTotal = total
	}

	set := bson.M{
		"items":            items,
		"total_estimate":   newTotal,
		"discount_applied": totalDiscount,
		"discount_reason":  req.Reason,
		"updated_at":       time.Now(),
	}

	if err := s.db.UpdateQuote(r.Context(), id, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to apply discount")
		return
	}

	oldTotal := 0.0
	if quote.TotalEstimate != nil {
		oldTotal = *quote.TotalEstimate
	}

	s.recordHistory(r, id, "discount_applied", "items",
		fmt.Sprintf("Total: %.2f", oldTotal),
		fmt.Sprintf("Total: %.2f (Discount: R%.2f)", newTotal, totalDiscount),
		req.Reason)

	respondJSON(w, http.StatusOK, bulkDiscountResult{
		Message:       "Bulk discount applied successfully",
		TotalDiscount: totalDiscount,
		NewTotal:      newTotal,
		ItemsAffected: affected,
	})
}

const maxBulkQuotes = 50

type bulkActionRequest struct {
	QuoteIDs        []string `json:"quote_ids"`
	Action          string   `json:"action"`
	Notes           string   `json:"notes,omitempty"`
	NotifyCustomers bool     `json:"notify_customers,omitempty"`
}

type bulkQuoteOutcome struct {
	QuoteID   string             `json:"quote_id"`
	Action    string             `json:"action,omitempty"`
	OldStatus models.QuoteStatus `json:"old_status,omitempty"`
	NewStatus string             `json:"new_status,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

type bulkActionResult struct {
	Message        string             `json:"message"`
	Action         string             `json:"action"`
	ProcessedCount int                `json:"processed_count"`
	FailedCount    int                `json:"failed_count"`
	Processed      []bulkQuoteOutcome `json:"processed_quotes"`
	Failed         []bulkQuoteOutcome `json:"failed_quotes"`
}

// bulkAction approves, rejects, archives or deletes up to 50 quotes in one
// call. Only drafts may be deleted; failures are reported per quote.
func (s *APIServer) bulkAction(w http.ResponseWriter, r *http.Request) {
	var req bulkActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.QuoteIDs) == 0 || len(req.QuoteIDs) > maxBulkQuotes {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Between 1 and %d quotes per bulk action", maxBulkQuotes))

		return
	}

	var target models.QuoteStatus

	switch req.Action {
	case "approve":
		target = models.QuoteApproved
	case "reject":
		target = models.QuoteRejected
	case "archive":
		target = models.QuoteArchived
	case "delete":
	default:
		respondError(w, http.StatusBadRequest, "Unknown action "+req.Action)
		return
	}

	result := bulkActionResult{
		Message:   "Bulk action completed",
		Action:    req.Action,
		Processed: []bulkQuoteOutcome{},
		Failed:    []bulkQuoteOutcome{},
	}

	for _, id := range req.QuoteIDs {
		quote, err := s.db.GetQuote(r.Context(), id)
		if err != nil {
			result.Failed = append(result.Failed, bulkQuoteOutcome{QuoteID: id, Reason: "Quote not found"})
			continue
		}

		if req.Action == "delete" {
			if quote.Status != models.QuoteDraft {
				result.Failed = append(result.Failed,
					bulkQuoteOutcome{QuoteID: id, Reason: "Can only delete draft quotes"})

				continue
			}

			if err := s.db.DeleteQuote(r.Context(), id); err != nil {
				result.Failed = append(result.Failed, bulkQuoteOutcome{QuoteID: id, Reason: "Delete failed"})
				continue
			}

			s.hub.Broadcast(events.EventQuoteDeleted, map[string]string{"id": id})

			result.Processed = append(result.Processed, bulkQuoteOutcome{
				QuoteID:   id,
				Action:    "deleted",
				OldStatus: quote.Status,
				NewStatus: "deleted",
			})

			continue
		}

		set := bson.M{"status": target, "updated_at": time.Now()}
		if req.Notes != "" {
			set["admin_notes"] = req.Notes
		}

		if err := s.db.UpdateQuote(r.Context(), id, set); err != nil {
			result.Failed = append(result.Failed, bulkQuoteOutcome{QuoteID: id, Reason: "Update failed"})
			continue
		}

		oldStatus := quote.Status

		s.recordHistory(r, id, "bulk_"+req.Action, "status",
			string(oldStatus), string(target), req.Notes)

		s.hub.Broadcast(events.EventQuoteStatusChanged, map[string]interface{}{
			"id":         id,
			"old_status": oldStatus,
			"new_status": target,
		})

		if req.NotifyCustomers && (req.Action == "approve" || req.Action == "reject") &&
			quote.CustomerInfo.Email != "" {
			quote.Status = target

			if err := s.mailer.SendStatusUpdate(quote, oldStatus); err != nil &&
				!errors.Is(err, notify.ErrMailerDisabled) {
				log.Printf("Failed to send bulk notification for quote %s: %v", id, err)
			}
		}

		result.Processed = append(result.Processed, bulkQuoteOutcome{
			QuoteID:   id,
			Action:    req.Action,
			OldStatus: oldStatus,
			NewStatus: string(target),
		})
	}

	result.ProcessedCount = len(result.Processed)
	result.FailedCount = len(result.Failed)

	respondJSON(w, http.StatusOK, result)
}

func (s *APIServer) getQuotePDF(w http.ResponseWriter, r *http.Request) {
	quote := s.loadQuoteForCaller(w, r)
	if quote == nil {
		return
	}

	data, err := s.pdf.Quote(quote)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render quote PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(quote)+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write PDF response: %v", err)
	}
}

type emailQuoteRequest struct {
	Message string `json:"message,omitempty"`
}

func (s *APIServer) emailQuote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	quote, err := s.db.GetQuote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Quote not found")
		return
	}

	var req emailQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	data, err := s.pdf.Quote(quote)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render quote PDF")
		return
	}

	if err := s.mailer.SendQuote(quote, data, req.Message); err != nil {
		if errors.Is(err, notify.ErrMailerDisabled) {
			respondError(w, http.StatusServiceUnavailable, "Email is not configured")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to send quote email")

		return
	}

	now := time.Now()
	set := bson.M{
		"last_emailed_at": now,
		"updated_at":      now,
	}

	// Drafts and pending quotes graduate to sent on first delivery.
	if quote.Status == models.QuoteDraft || quote.Status == models.QuotePending {
		set["status"] = models.QuoteSent
		s.recordHistory(r, id, "status_changed", "status", string(quote.Status), string(models.QuoteSent), "emailed to customer")
	}

	if err := s.db.UpdateQuote(r.Context(), id, set); err != nil {
		log.Printf("Failed to record email delivery for quote %s: %v", id, err)
	}

	s.recordHistory(r, id, "emailed", "", "", "", "sent to "+quote.CustomerInfo.Email)

	respondJSON(w, http.StatusOK, map[string]string{"message": "Quote emailed to " + quote.CustomerInfo.Email})
}

type followUpRequest struct {
	FollowUpType string `json:"follow_up_type,omitempty"`
	Message      string `json:"message,omitempty"`
}

func (s *APIServer) followUpQuote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	quote, err := s.db.GetQuote(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Quote not found")
		return
	}

	if !s.canAccessQuote(r, quote) {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if quote.CustomerInfo.Email == "" {
		respondError(w, http.StatusBadRequest, "Quote has no customer email")
		return
	}

	if !quote.Status.Active() {
		respondError(w, http.StatusBadRequest, "Quote is no longer active")
		return
	}

	var req followUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch req.FollowUpType {
	case "", "general", "reminder", "expiring":
	default:
		respondError(w, http.StatusBadRequest, "Follow-up type must be general, reminder or expiring")
		return
	}

	message := req.Message
	if message == "" {
		message = followUpMessage(req.FollowUpType, quote)
	}

	if err := s.mailer.SendFollowUp(quote, message); err != nil {
		if errors.Is(err, notify.ErrMailerDisabled) {
			respondError(w, http.StatusServiceUnavailable, "Email is not configured")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to send follow-up email")

		return
	}

	now := time.Now()
	set := bson.M{
		"last_follow_up_at": now,
		"updated_at":        now,
	}
	if err := s.db.UpdateQuote(r.Context(), id, set); err != nil {
		log.Printf("Failed to record follow-up for quote %s: %v", id, err)
	}

	s.recordHistory(r, id, "follow_up", "", "", "", "follow-up sent to "+quote.CustomerInfo.Email)

	respondJSON(w, http.StatusOK, map[string]string{"message": "Follow-up sent"})
}

func followUpMessage(followUpType string, quote *models.Quote) string {
	switch followUpType {
	case "reminder":
		return "Just a reminder that your quote is ready for review."
	case "expiring":
		return fmt.Sprintf("Your quote expires on %s. Let us know if you would like to proceed.",
			quote.ExpiresAt.Format("2 January 2006"))
	default:
		return "We wanted to follow up on your recent quote. Please let us know if you have any questions."
	}
}

// recordHistory appends an audit entry. Failures are logged, never surfaced:
// history must not break the main operation.
func (s *APIServer) recordHistory(r *http.Request, quoteID, action, field, oldValue, newValue, notes string) {
	changedBy := ""
	if claims, ok := claimsFrom(r.Context()); ok {
		changedBy = claims.Subject
	}

	entry := &models.QuoteHistoryEntry{
		ID:           uuid.NewString(),
		QuoteID:      quoteID,
		Action:       action,
		FieldChanged: field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangedBy:    changedBy,
		Timestamp:    time.Now(),
		Notes:        notes,
	}

	if err := s.db.AddQuoteHistory(r.Context(), entry); err != nil {
		log.Printf("Failed to record history for quote %s: %v", quoteID, err)
	}
}
