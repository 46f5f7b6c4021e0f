package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibiomar/meninx/internal/entities"
)

func validCustomer() entities.CustomerInfo {
	return entities.CustomerInfo{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+21655123456",
	}
}

func TestValidateCustomerInfo(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entities.CustomerInfo)
		wantErr string
	}{
		{"valid", func(c *entities.CustomerInfo) {}, ""},
		{"empty name", func(c *entities.CustomerInfo) { c.Name = "" }, "Name is required"},
		{"whitespace name", func(c *entities.CustomerInfo) { c.Name = "   " }, "Name is required"},
		{"one char name", func(c *entities.CustomerInfo) { c.Name = "J" }, "Name must be at least 2 characters"},
		{"two char name ok", func(c *entities.CustomerInfo) { c.Name = "Jo" }, ""},
		{"no at sign", func(c *entities.CustomerInfo) { c.Email = "abc" }, "Invalid email format"},
		{"minimal email ok", func(c *entities.CustomerInfo) { c.Email = "a@b" }, ""},
		{"empty local part", func(c *entities.CustomerInfo) { c.Email = "@b.com" }, "Invalid email format"},
		{"empty domain", func(c *entities.CustomerInfo) { c.Email = "a@" }, "Invalid email format"},
		{"space in email", func(c *entities.CustomerInfo) { c.Email = "a b@c.com" }, "Invalid email format"},
		{"phone too short", func(c *entities.CustomerInfo) { c.Phone = "1" }, "Invalid phone number"},
		{"phone with letters", func(c *entities.CustomerInfo) { c.Phone = "55abc" }, "Invalid phone number"},
		{"phone without plus ok", func(c *entities.CustomerInfo) { c.Phone = "55123456" }, ""},
		{"phone too long", func(c *entities.CustomerInfo) { c.Phone = "+1234567890123456" }, "Invalid phone number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)
			err := ValidateCustomerInfo(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateCustomerInfoFirstViolationWins(t *testing.T) {
	err := ValidateCustomerInfo(entities.CustomerInfo{Name: "", Email: "abc", Phone: "x"})
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())
}

func TestValidateRentalPeriod(t *testing.T) {
	now := date("2024-06-01").Add(10 * time.Hour)

	tests := []struct {
		name    string
		period  entities.RentalPeriod
		wantErr string
	}{
		{"valid", entities.RentalPeriod{StartDate: date("2024-06-02"), EndDate: date("2024-06-05")}, ""},
		{"starts today", entities.RentalPeriod{StartDate: date("2024-06-01"), EndDate: date("2024-06-03")}, ""},
		{"missing start", entities.RentalPeriod{EndDate: date("2024-06-05")}, "Start date is required"},
		{"missing end", entities.RentalPeriod{StartDate: date("2024-06-02")}, "End date is required"},
		{"starts yesterday", entities.RentalPeriod{StartDate: date("2024-05-31"), EndDate: date("2024-06-05")}, "Start date cannot be in the past"},
		{"end equals start", entities.RentalPeriod{StartDate: date("2024-06-02"), EndDate: date("2024-06-02")}, "End date must be after the start date"},
		{"end before start", entities.RentalPeriod{StartDate: date("2024-06-05"), EndDate: date("2024-06-02")}, "End date must be after the start date"},
		{"thirty days ok", entities.RentalPeriod{StartDate: date("2024-06-02"), EndDate: date("2024-07-02")}, ""},
		{"over thirty days", entities.RentalPeriod{StartDate: date("2024-06-02"), EndDate: date("2024-07-03")}, "Rental period cannot exceed 30 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRentalPeriod(tt.period, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}
