package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercased", input: "JohnDoe", want: "johndoe"},
		{name: "hyphen and underscore", input: "john_doe-1", want: "john_doe-1"},
		{name: "too short", input: "ab", wantErr: true},
		{name: "illegal characters", input: "john doe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Str0ngPass"},
		{name: "too short", input: "Ab1", wantErr: true},
		{name: "no uppercase", input: "weakpass1", wantErr: true},
		{name: "no lowercase", input: "WEAKPASS1", wantErr: true},
		{name: "no digit", input: "WeakPassword", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone(""))
	assert.NoError(t, ValidatePhone("+27 11 555-0100"))
	assert.Error(t, ValidatePhone("12345"))
}

func TestUserLocked(t *testing.T) {
	now := time.Now()
	until := now.Add(30 * time.Minute)

	u := &User{}
	assert.False(t, u.Locked(now))

	u.LockedUntil = &until
	assert.True(t, u.Locked(now))
	assert.False(t, u.Locked(until.Add(time.Second)))
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleManager.IsStaff())
	assert.True(t, RoleSalesRep.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
	assert.False(t, RoleCompanyAdmin.IsStaff())
}

func TestParseProductCategory(t *testing.T) {
	got, err := ParseProductCategory("Towel Rails")
	require.NoError(t, err)
	assert.Equal(t, CategoryTowelRails, got)

	_, err = ParseProductCategory("Kitchen Sinks")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseQuoteStatus(t *testing.T) {
	got, err := ParseQuoteStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, QuoteApproved, got)

	_, err = ParseQuoteStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestQuoteItemsTotal(t *testing.T) {
	p1, p2 := 100.0, 250.0

	total, ok := QuoteItemsTotal([]QuoteItem{
		{Quantity: 2, UnitPrice: &p1},
		{Quantity: 1, UnitPrice: &p2},
		{Quantity: 5},
	})
	require.True(t, ok)
	assert.InDelta(t, 450.0, total, 0.01)

	_, ok = QuoteItemsTotal([]QuoteItem{{Quantity: 3}})
	assert.False(t, ok)
}

func TestNormalizeVATNumber(t *testing.T) {
	got, err := NormalizeVATNumber("4123 456-789")
	require.NoError(t, err)
	assert.Equal(t, "4123456789", got)

	got, err = NormalizeVATNumber("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeVATNumber("12345")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateDiscountRate(t *testing.T) {
	assert.NoError(t, ValidateDiscountRate(0))
	assert.NoError(t, ValidateDiscountRate(0.5))
	assert.ErrorIs(t, ValidateDiscountRate(0.51), ErrInvalidInput)
	assert.ErrorIs(t, ValidateDiscountRate(-0.1), ErrInvalidInput)
}

func TestValidatePaymentTerms(t *testing.T) {
	assert.NoError(t, ValidatePaymentTerms(0))
	assert.NoError(t, ValidatePaymentTerms(180))
	assert.ErrorIs(t, ValidatePaymentTerms(181), ErrInvalidInput)
	assert.ErrorIs(t, ValidatePaymentTerms(-1), ErrInvalidInput)
}

func TestNormalizeWebsite(t *testing.T) {
	assert.Equal(t, "https://stark.example.com", NormalizeWebsite("stark.example.com"))
	assert.Equal(t, "http://stark.example.com", NormalizeWebsite("http://stark.example.com"))
	assert.Empty(t, NormalizeWebsite(""))
}
