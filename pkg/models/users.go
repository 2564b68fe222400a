// Package models pkg/models/users.go contains the user account types shared
// across the Stark Products services.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// UserRole determines what a user account is allowed to do.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleManager      UserRole = "manager"
	RoleSalesRep     UserRole = "sales_rep"
	RoleCustomer     UserRole = "customer"
	RoleCompanyAdmin UserRole = "company_admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesRep, RoleCustomer, RoleCompanyAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role belongs to internal staff.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleSalesRep
}

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	StatusActive              AccountStatus = "active"
	StatusInactive            AccountStatus = "inactive"
	StatusSuspended           AccountStatus = "suspended"
	StatusPendingVerification AccountStatus = "pending_verification"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User is a platform account. PasswordHash is stored with the document but
// never serialized to API responses.
type User struct {
	ID           string        `bson:"id" json:"id"`
	Email        string        `bson:"email" json:"email"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	FirstName    string        `bson:"first_name" json:"first_name"`
	LastName     string        `bson:"last_name" json:"last_name"`
	Role         UserRole      `bson:"role" json:"role"`
	Status       AccountStatus `bson:"status" json:"status"`

	CompanyID   string `bson:"company_id,omitempty" json:"company_id,omitempty"`
	CompanyName string `bson:"company_name,omitempty" json:"company_name,omitempty"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	Position    string `bson:"position,omitempty" json:"position,omitempty"`

	// Assigned sales rep for customer accounts.
	AssignedSalesRep string   `bson:"assigned_sales_rep,omitempty" json:"assigned_sales_rep,omitempty"`
	Permissions      []string `bson:"permissions,omitempty" json:"permissions,omitempty"`

	LastLogin     *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	LoginAttempts int        `bson:"login_attempts" json:"login_attempts"`
	LockedUntil   *time.Time `bson:"locked_until,omitempty" json:"locked_until,omitempty"`

	EmailVerified          bool       `bson:"email_verified" json:"email_verified"`
	EmailVerificationToken string     `bson:"email_verification_token,omitempty" json:"-"`
	PasswordResetToken     string     `bson:"password_reset_token,omitempty" json:"-"`
	PasswordResetExpires   *time.Time `bson:"password_reset_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// Locked reports whether the account is still inside a lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// ValidateUsername normalizes and validates a username. The returned value
// is lowercased.
func ValidateUsername(username string) (string, error) {
	if len(username) < 3 {
		return "", fmt.Errorf("%w: username must be at least 3 characters", ErrInvalidInput)
	}

	if !usernameRe.MatchString(username) {
		return "", fmt.Errorf("%w: username may only contain letters, numbers, hyphens and underscores", ErrInvalidInput)
	}

	return strings.ToLower(username), nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	return nil
}

// ValidatePhone accepts empty values; otherwise the number must look like a
// dialable phone number.
func ValidatePhone(phone string) error {
	if phone != "" && !phoneRe.MatchString(phone) {
		return fmt.Errorf("%w: invalid phone number format", ErrInvalidInput)
	}

	return nil
}

// ValidatePassword enforces the minimum password policy: length, upper,
// lower and digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	var upper, lower, digit bool

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}

	if !upper {
		return fmt.Errorf("%w: password must contain an uppercase letter", ErrInvalidInput)
	}

	if !lower {
		return fmt.Errorf("%w: password must contain a lowercase letter", ErrInvalidInput)
	}

	if !digit {
		return fmt.Errorf("%w: password must contain a number", ErrInvalidInput)
	}

	return nil
}
