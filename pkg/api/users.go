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
	"github.com/starkproducts/platform/pkg/models"
)

func (s *APIServer) listUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	filter := db.UserFilter{
		Search: r.URL.Query().Get("search"),
		Skip:   skip,
		Limit:  limit,
	}

	if v := r.URL.Query().Get("role"); v != "" {
		role := models.UserRole(v)
		if !role.Valid() {
			respondError(w, http.StatusBadRequest, "Unknown role")
			return
		}

		filter.Role = role
	}

	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = models.AccountStatus(v)
	}

	// Staff below admin only see customer accounts.
	if claims, ok := claimsFrom(r.Context()); ok && claims.Role != models.RoleAdmin {
		filter.Role = models.RoleCustomer
	}

	users, err := s.db.ListUsers(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	total, err := s.db.CountUsers(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, listMeta{Total: total, Skip: skip, Limit: limit, Items: users})
}

type createUserRequest struct {
	registerRequest
	Role      models.UserRole `json:"role"`
	CompanyID string          `json:"company_id,omitempty"`
}

func (s *APIServer) createUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !req.Role.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	username, err := models.ValidateUsername(req.Username)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := models.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := models.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	now := time.Now()
	user := &models.User{
		ID:            uuid.NewString(),
		Email:         req.Email,
		Username:      username,
		PasswordHash:  hash,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Phone:         req.Phone,
		CompanyID:     req.CompanyID,
		CompanyName:   strings.TrimSpace(req.CompanyName),
		Position:      strings.TrimSpace(req.Position),
		Role:          req.Role,
		Status:        models.StatusActive,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     claims.Subject,
	}

	if err := s.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			respondError(w, http.StatusConflict, "Username or email already registered")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to create user")

		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (s *APIServer) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Permissions = permissionStrings(user.Role)

	respondJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName        *string               `json:"first_name,omitempty"`
	LastName         *string               `json:"last_name,omitempty"`
	Phone            *string               `json:"phone,omitempty"`
	Position         *string               `json:"position,omitempty"`
	CompanyID        *string               `json:"company_id,omitempty"`
	CompanyName      *string               `json:"company_name,omitempty"`
	Role             *models.UserRole      `json:"role,omitempty"`
	Status           *models.AccountStatus `json:"status,omitempty"`
	AssignedSalesRep *string               `json:"assigned_sales_rep,omitempty"`
}

func (s *APIServer) updateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	set := bson.M{"updated_at": time.Now()}

	if req.FirstName != nil {
		set["first_name"] = strings.TrimSpace(*req.FirstName)
	}

	if req.LastName != nil {
		set["last_name"] = strings.TrimSpace(*req.LastName)
	}

	if req.Phone != nil {
		if err := models.ValidatePhone(*req.Phone); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["phone"] = *req.Phone
	}

	if req.Position != nil {
		set["position"] = strings.TrimSpace(*req.Position)
	}

	if req.CompanyID != nil {
		set["company_id"] = *req.CompanyID
	}

	if req.CompanyName != nil {
		set["company_name"] = strings.TrimSpace(*req.CompanyName)
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			respondError(w, http.StatusBadRequest, "Unknown role")
			return
		}

		set["role"] = *req.Role
	}

	if req.Status != nil {
		set["status"] = *req.Status
	}

	if req.AssignedSalesRep != nil {
		set["assigned_sales_rep"] = *req.AssignedSalesRep
	}

	if err := s.db.UpdateUser(r.Context(), id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to update user")

		return
	}

	user, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load updated user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (s *APIServer) deleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id := mux.Vars(r)["id"]

	if id == claims.Subject {
		respondError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := s.db.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "Failed to delete user")

		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
