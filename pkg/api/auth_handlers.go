package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/models"
	"github.com/starkproducts/platform/pkg/notify"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 30 * time.Minute
	resetTokenTTL    = time.Hour
)

type registerRequest struct {
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        models.UserRole `json:"role,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	CompanyName string          `json:"company_name,omitempty"`
	Position    string          `json:"position,omitempty"`
}

// registrationRole prevents self-promotion to admin. An absent or admin
// role registers as customer.
func registrationRole(requested models.UserRole) models.UserRole {
	if requested == "" || requested == models.RoleAdmin {
		return models.RoleCustomer
	}

	return requested
}

func (s *APIServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
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

	if err := models.ValidatePhone(req.Phone); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Role != "" && !req.Role.Valid() {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	exists, err := s.db.UserExists(r.Context(), username, req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	if exists {
		respondError(w, http.StatusConflict, "Username or email already registered")
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	verifyToken, err := newOpaqueToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	now := time.Now()
	user := &models.User{
		ID:                     uuid.NewString(),
		Email:                  req.Email,
		Username:               username,
		PasswordHash:           hash,
		FirstName:              strings.TrimSpace(req.FirstName),
		LastName:               strings.TrimSpace(req.LastName),
		Phone:                  req.Phone,
		CompanyName:            strings.TrimSpace(req.CompanyName),
		Position:               strings.TrimSpace(req.Position),
		Role:                   registrationRole(req.Role),
		Status:                 models.StatusPendingVerification,
		EmailVerificationToken: verifyToken,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			respondError(w, http.StatusConflict, "Username or email already registered")
			return
		}

		respondError(w, http.StatusInternalServerError, "Registration failed")

		return
	}

	if err := s.mailer.SendVerification(user.Email, user.FirstName, verifyToken); err != nil &&
		!errors.Is(err, notify.ErrMailerDisabled) {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *APIServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.db.GetUserByLogin(r.Context(), req.Username)
	if err != nil {
		// Same response for unknown users and bad passwords.
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()

	if user.Locked(now) {
		respondError(w, http.StatusForbidden, "Account temporarily locked, try again later")
		return
	}

	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.recordFailedLogin(r, user, now)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")

		return
	}

	if user.Status == models.StatusSuspended || user.Status == models.StatusInactive {
		respondError(w, http.StatusForbidden, "Account is not active")
		return
	}

	set := bson.M{
		"login_attempts": 0,
		"locked_until":   nil,
		"last_login":     now,
		"updated_at":     now,
	}
	if err := s.db.UpdateUser(r.Context(), user.ID, set); err != nil {
		log.Printf("Failed to record login for %s: %v", user.Username, err)
	}

	pair, err := s.auth.IssueTokenPair(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{User: user, Tokens: pair})
}

type loginResponse struct {
	User   *models.User    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func (s *APIServer) recordFailedLogin(r *http.Request, user *models.User, now time.Time) {
	attempts := user.LoginAttempts + 1
	set := bson.M{
		"login_attempts": attempts,
		"updated_at":     now,
	}

	if attempts >= maxLoginAttempts {
		set["locked_until"] = now.Add(lockoutDuration)
		log.Printf("Account %s locked after %d failed logins", user.Username, attempts)
	}

	if err := s.db.UpdateUser(r.Context(), user.ID, set); err != nil {
		log.Printf("Failed to record failed login for %s: %v", user.Username, err)
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *APIServer) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims, err := s.auth.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	user, err := s.db.GetUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	if user.Status == models.StatusSuspended || user.Status == models.StatusInactive {
		respondError(w, http.StatusForbidden, "Account is not active")
		return
	}

	pair, err := s.auth.IssueTokenPair(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Token refresh failed")
		return
	}

	respondJSON(w, http.StatusOK, pair)
}

// Tokens are stateless, logout exists so clients have a uniform endpoint to
// call when discarding them.
func (s *APIServer) logout(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

func (s *APIServer) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.db.GetUserByVerificationToken(r.Context(), req.Token)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid verification token")
		return
	}

	set := bson.M{
		"email_verified":           true,
		"email_verification_token": "",
		"updated_at":               time.Now(),
	}
	if user.Status == models.StatusPendingVerification {
		set["status"] = models.StatusActive
	}

	if err := s.db.UpdateUser(r.Context(), user.ID, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *APIServer) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// The response never reveals whether the address is registered.
	generic := map[string]string{"message": "If the address is registered, a reset email has been sent"}

	user, err := s.db.GetUserByLogin(r.Context(), req.Email)
	if err != nil {
		respondJSON(w, http.StatusOK, generic)
		return
	}

	token, err := newOpaqueToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Reset request failed")
		return
	}

	set := bson.M{
		"password_reset_token":   token,
		"password_reset_expires": time.Now().Add(resetTokenTTL),
		"updated_at":             time.Now(),
	}
	if err := s.db.UpdateUser(r.Context(), user.ID, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Reset request failed")
		return
	}

	if err := s.mailer.SendPasswordReset(user.Email, user.FirstName, token); err != nil &&
		!errors.Is(err, notify.ErrMailerDisabled) {
		log.Printf("Failed to send reset email to %s: %v", user.Email, err)
	}

	respondJSON(w, http.StatusOK, generic)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (s *APIServer) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := models.ValidatePassword(req.NewPassword); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetUserByResetToken(r.Context(), req.Token)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Password reset failed")
		return
	}

	set := bson.M{
		"password_hash":          hash,
		"password_reset_token":   "",
		"password_reset_expires": nil,
		"login_attempts":         0,
		"locked_until":           nil,
		"updated_at":             time.Now(),
	}
	if err := s.db.UpdateUser(r.Context(), user.ID, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Password reset failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *APIServer) changePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := models.ValidatePassword(req.NewPassword); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := s.auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Password change failed")
		return
	}

	set := bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	}
	if err := s.db.UpdateUser(r.Context(), user.ID, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Password change failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (s *APIServer) getMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	user, err := s.db.GetUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Permissions = permissionStrings(user.Role)

	respondJSON(w, http.StatusOK, user)
}

type updateMeRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	Position    *string `json:"position,omitempty"`
}

// updateMe lets callers edit their own profile fields. Role, status and
// company assignment stay under admin control.
func (s *APIServer) updateMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req updateMeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	set := bson.M{"updated_at": time.Now()}

	if req.FirstName != nil {
		set["first_name"] = *req.FirstName
	}

	if req.LastName != nil {
		set["last_name"] = *req.LastName
	}

	if req.Phone != nil {
		if err := models.ValidatePhone(*req.Phone); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		set["phone"] = *req.Phone
	}

	if req.CompanyName != nil {
		set["company_name"] = *req.CompanyName
	}

	if req.Position != nil {
		set["position"] = *req.Position
	}

	if err := s.db.UpdateUser(r.Context(), claims.Subject, set); err != nil {
		respondError(w, http.StatusInternalServerError, "Profile update failed")
		return
	}

	user, err := s.db.GetUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Permissions = permissionStrings(user.Role)

	respondJSON(w, http.StatusOK, user)
}
