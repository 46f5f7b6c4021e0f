package booking

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alibiomar/meninx/internal/entities"
)

var (
	// One non-empty local part, one non-empty domain part. "a@b" is accepted,
	// "abc" is not.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	// Optional international prefix, then 2 to 15 digits.
	phonePattern = regexp.MustCompile(`^\+?[0-9]{2,15}$`)
)

const maxRentalSpan = 30 * day

// ValidateCustomerInfo checks the step-1 form and returns the first violated
// rule as a user-facing error.
func ValidateCustomerInfo(info entities.CustomerInfo) error {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return errors.New("Name is required")
	}
	if utf8.RuneCountInString(name) < 2 {
		return errors.New("Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		return errors.New("Invalid email format")
	}
	if !phonePattern.MatchString(strings.TrimSpace(info.Phone)) {
		return errors.New("Invalid phone number")
	}
	return nil
}

// ValidateRentalPeriod checks the step-3 dates against the given current
// time. Dates are compared at calendar-day precision.
func ValidateRentalPeriod(period entities.RentalPeriod, now time.Time) error {
	if period.StartDate.IsZero() {
		return errors.New("Start date is required")
	}
	if period.EndDate.IsZero() {
		return errors.New("End date is required")
	}
	if period.StartDate.Before(DateOnly(now)) {
		return errors.New("Start date cannot be in the past")
	}
	if !period.EndDate.After(period.StartDate) {
		return errors.New("End date must be after the start date")
	}
	if period.EndDate.Sub(period.StartDate) > maxRentalSpan {
		return errors.New("Rental period cannot exceed 30 days")
	}
	return nil
}
