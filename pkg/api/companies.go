package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/events"
	"github.com/starkproducts/platform/pkg/models"
)

func (s *APIServer) listCompanies(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	filter := db.CompanyFilter{
		Industry: r.URL.Query().Get("industry"),
		Search:   r.URL.Query().Get("search"),
		Skip:     skip,
		Limit:    limit,
	}

	if v := r.URL.Query().Get("status"); v != "" {
		status, err := models.ParseCompanyStatus(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		filter.Status = status
	}

	companies, err := s.db.ListCompanies(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list companies")
		return
	}

	total, err := s.db.CountCompanies(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list companies")
		return
	}

	for _, company := range companies {
		s.attachEmployeeCount(r, company)
	}

	respondJSON(w, http.StatusOK, listMeta{Total: total, Skip: skip, Limit: limit, Items: companies})
}

func (s *APIServer) attachEmployeeCount(r *http.Request, company *models.Company) {
	count, err := s.db.CountUsers(r.Context(), db.UserFilter{CompanyID: company.ID})
	if err == nil {
		company.EmployeeCount = &count
	}
}

type companyRequest struct {
	Name               string            `json:"name"`
	LegalName          string            `json:"legal_name,omitempty"`
	RegistrationNumber string            `json:"registration_number,omitempty"`
	VATNumber          string            `json:"vat_number,omitempty"`
	PrimaryEmail       string            `json:"primary_email"`
	Phone              string            `json:"phone,omitempty"`
	Website            string            `json:"website,omitempty"`
	BillingAddress     map[string]string `json:"billing_address,omitempty"`
	ShippingAddress    map[string]string `json:"shipping_address,omitempty"`
	Size               string            `json:"size,omitempty"`
	Industry           string            `json:"industry,omitempty"`
	Description        string            `json:"description,omitempty"`
	CreditLimit        *float64          `json:"credit_limit,omitempty"`
	PaymentTerms       int               `json:"payment_terms,omitempty"`
	DiscountRate       float64           `json:"discount_rate,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
}

func (s *APIServer) createCompany(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req companyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	req.PrimaryEmail = strings.ToLower(strings.TrimSpace(req.PrimaryEmail))

	if err := models.ValidateEmail(req.PrimaryEmail); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	vat, err := models.NormalizeVATNumber(req.VATNumber)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	size := models.SizeSmall
	if req.Size != "" {
		size, err = models.ParseCompanySize(req.Size)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := models.ValidateDiscountRate(req.DiscountRate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := models.ValidatePaymentTerms(req.PaymentTerms); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if existing, err := s.db.GetCompanyByName(r.Context(), req.Name); err == nil && existing != nil {
		respondError(w, http.StatusConflict, "Company name already registered")
		return
	}

	now := time.Now()
	company := &models.Company{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		LegalName:           strings.TrimSpace(req.LegalName),
		RegistrationNumber:  strings.TrimSpace(req.RegistrationNumber),
		VATNumber:           vat,
		PrimaryEmail:        req.PrimaryEmail,
		Phone:               req.Phone,
		Website:             models.NormalizeWebsite(req.Website),
		BillingAddress:      req.BillingAddress,
		ShippingAddress:     req.ShippingAddress,
		Size:                size,
		Industry:            strings.TrimSpace(req.Industry),
		Description:         req.Description,
		Status:              models.CompanyPendingApproval,
		CreditLimit:         req.CreditLimit,
		PaymentTerms:        req.PaymentTerms,
		DiscountRate:        req.DiscountRate,
		QuoteSharingEnabled: true,
		Notes:               req.Notes,
		Tags:                req.Tags,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedBy:           claims.Subject,
	}

	if company.BillingAddress == nil {
		company.BillingAddress = map[string]string{}
	}

	if err := s.db.CreateCompany(r.Context(), company); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			respondError(w, http.StatusConflict, "Company name or email already registered")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to create company")

		return
	}

	s.hub.Broadcast(events.EventCompanyCreated, company)

	respondJSON(w, http.StatusCreated, company)
}

func (s *APIServer) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.db.GetCompany(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	s.attachEmployeeCount(r, company)

	respondJSON(w, http.StatusOK, company)
}

type updateCompanyRequest struct {
	Name                         *string            `json:"name,omitempty"`
	LegalName                    *string            `json:"legal_name,omitempty"`
	RegistrationNumber           *string            `json:"registration_number,omitempty"`
	VATNumber                    *string            `json:"vat_number,omitempty"`
	PrimaryEmail                 *string            `json:"primary_email,omitempty"`
	Phone                        *string            `json:"phone,omitempty"`
	Website                      *string            `json:"website,omitempty"`
	BillingAddress               *map[string]string `json:"billing_address,omitempty"`
	ShippingAddress              *map[string]string `json:"shipping_address,omitempty"`
	Size                         *string            `json:"size,omitempty"`
	Industry                     *string            `json:"industry,omitempty"`
	Description                  *string            `json:"description,omitempty"`
	Status                       *string            `json:"status,omitempty"`
	CreditLimit                  *float64           `json:"credit_limit,omitempty"`
	PaymentTerms                 *int               `json:"payment_terms,omitempty"`
	DiscountRate                 *float64           `json:"discount_rate,omitempty"`
	QuoteSharingEnabled          *bool              `json:"quote_sharing_enabled,omitempty"`
	RequireApprovalForQuotes     *bool              `json:"require_approval_for_quotes,omitempty"`
	MaxQuoteValueWithoutApproval *float64           `json:"max_quote_value_without_approval,omitempty"`
	Notes                        *string            `json:"notes,omitempty"`
	Tags                         *[]string          `json:"tags,omitempty"`
}

func (s *APIServer) updateCompany(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateCompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	set := bson.M{"updated_at": time.Now()}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(w, http.StatusBadRequest, "Company name is required")
			return
		}

		set["name"] = name
	}

	if req.LegalName != nil {
		set["legal_name"] = strings.TrimSpace(*req.LegalName)
	}

	if req.RegistrationNumber != nil {
		set["registration_number"] = strings.TrimSpace(*req.RegistrationNumber)
	}

	if req.VATNumber != nil {
		vat, err := models.NormalizeVATNumber(*req.VATNumber)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["vat_number"] = vat
	}

	if req.PrimaryEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.PrimaryEmail))
		if err := models.ValidateEmail(email); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["primary_email"] = email
	}

	if req.Phone != nil {
		set["phone"] = *req.Phone
	}

	if req.Website != nil {
		set["website"] = models.NormalizeWebsite(*req.Website)
	}

	if req.BillingAddress != nil {
		set["billing_address"] = *req.BillingAddress
	}

	if req.ShippingAddress != nil {
		set["shipping_address"] = *req.ShippingAddress
	}

	if req.Size != nil {
		size, err := models.ParseCompanySize(*req.Size)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["size"] = size
	}

	if req.Industry != nil {
		set["industry"] = strings.TrimSpace(*req.Industry)
	}

	if req.Description != nil {
		set["description"] = *req.Description
	}

	if req.Status != nil {
		status, err := models.ParseCompanyStatus(*req.Status)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["status"] = status
	}

	if req.CreditLimit != nil {
		set["credit_limit"] = *req.CreditLimit
	}

	if req.PaymentTerms != nil {
		if err := models.ValidatePaymentTerms(*req.PaymentTerms); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["payment_terms"] = *req.PaymentTerms
	}

	if req.DiscountRate != nil {
		if err := models.ValidateDiscountRate(*req.DiscountRate); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["discount_rate"] = *req.DiscountRate
	}

	if req.QuoteSharingEnabled != nil {
		set["quote_sharing_enabled"] = *req.QuoteSharingEnabled
	}

	if req.RequireApprovalForQuotes != nil {
		set["require_approval_for_quotes"] = *req.RequireApprovalForQuotes
	}

	if req.MaxQuoteValueWithoutApproval != nil {
		set["max_quote_value_without_approval"] = *req.MaxQuoteValueWithoutApproval
	}

	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	if req.Tags != nil {
		set["tags"] = *req.Tags
	}

	if err := s.db.UpdateCompany(r.Context(), id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Company not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to update company")

		return
	}

	company, err := s.db.GetCompany(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load updated company")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

func (s *APIServer) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// Companies with employees must be emptied first.
	count, err := s.db.CountUsers(r.Context(), db.UserFilter{CompanyID: id})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete company")
		return
	}

	if count > 0 {
		respondError(w, http.StatusConflict, "Company still has employees")
		return
	}

	company, err := s.db.GetCompany(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	quotes, err := s.db.CountQuotes(r.Context(), db.QuoteFilter{CompanyName: company.Name})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete company")
		return
	}

	if quotes > 0 {
		respondError(w, http.StatusConflict, "Company still has quotes")
		return
	}

	if err := s.db.DeleteCompany(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Company not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to delete company")

		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})
}

func (s *APIServer) getCompanyEmployees(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.db.GetCompany(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	users, err := s.db.ListUsers(r.Context(), db.UserFilter{CompanyID: id})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list employees")
		return
	}

	employees := make([]models.CompanyEmployee, 0, len(users))

	for _, user := range users {
		employees = append(employees, models.CompanyEmployee{
			UserID:           user.ID,
			Email:            user.Email,
			FirstName:        user.FirstName,
			LastName:         user.LastName,
			Position:         user.Position,
			RoleInCompany:    string(user.Role),
			CanCreateQuotes:  true,
			CanApproveQuotes: user.Role == models.RoleCompanyAdmin,
			JoinedCompanyAt:  user.CreatedAt,
			Status:           user.Status,
		})
	}

	respondJSON(w, http.StatusOK, employees)
}

func (s *APIServer) getCompanyQuotes(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	skip, limit := pagination(r)

	company, err := s.db.GetCompany(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	filter := db.QuoteFilter{CompanyName: company.Name, Skip: skip, Limit: limit}

	quotes, err := s.db.ListQuotes(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list company quotes")
		return
	}

	total, err := s.db.CountQuotes(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list company quotes")
		return
	}

	respondJSON(w, http.StatusOK, listMeta{Total: total, Skip: skip, Limit: limit, Items: quotes})
}

type assignSalesRepRequest struct {
	SalesRepID string `json:"sales_rep_id"`
}

func (s *APIServer) assignSalesRep(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req assignSalesRepRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rep, err := s.db.GetUser(r.Context(), req.SalesRepID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown sales rep")
		return
	}

	if !rep.Role.IsStaff() {
		respondError(w, http.StatusBadRequest, "Assigned user is not a staff member")
		return
	}

	set := bson.M{
		"assigned_sales_rep": rep.ID,
		"updated_at":         time.Now(),
	}
	if err := s.db.UpdateCompany(r.Context(), id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Company not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to assign sales rep")

		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Sales rep assigned",
	})
}
