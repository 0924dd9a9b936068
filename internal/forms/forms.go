// Package forms validates submitted form fields. Each form has an
// explicit validate function returning the parsed values plus a Result
// carrying per-field errors; nothing is written on a failed Result.
package forms

import (
	"strconv"
	"strings"

	"voyago/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Result collects per-field validation errors for one form submission.
type Result struct {
	FieldErrors map[string]string
}

// Valid reports whether the form passed every field check.
func (r *Result) Valid() bool {
	return len(r.FieldErrors) == 0
}

// Error returns the error message for a field, or "" if the field is valid.
func (r *Result) Error(field string) string {
	return r.FieldErrors[field]
}

func (r *Result) addError(field, message string) {
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string]string)
	}
	// Keep the first error per field.
	if _, ok := r.FieldErrors[field]; !ok {
		r.FieldErrors[field] = message
	}
}

// ValidatePackage checks package form fields and returns the parsed
// package on success. Price must be a non-negative decimal and days a
// positive integer.
func ValidatePackage(name, destination, description, price, days string) (*models.Package, *Result) {
	result := &Result{}

	name = strings.TrimSpace(name)
	if name == "" {
		result.addError("name", "Name is required")
	}

	destination = strings.TrimSpace(destination)
	if destination == "" {
		result.addError("destination", "Destination is required")
	}

	priceValue, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		result.addError("price", "Price must be a number")
	} else if priceValue < 0 {
		result.addError("price", "Price cannot be negative")
	}

	daysValue, err := strconv.Atoi(strings.TrimSpace(days))
	if err != nil {
		result.addError("days", "Days must be a whole number")
	} else if daysValue < 1 {
		result.addError("days", "Days must be at least 1")
	}

	if !result.Valid() {
		return nil, result
	}

	return &models.Package{
		Name:        name,
		Destination: destination,
		Description: strings.TrimSpace(description),
		Price:       priceValue,
		Days:        daysValue,
	}, result
}

// ValidateRegistration checks a registration submission. The username
// uniqueness check happens at the persistence boundary, not here.
func ValidateRegistration(username, password, confirmation string) *Result {
	result := &Result{}

	if strings.TrimSpace(username) == "" {
		result.addError("username", "Username is required")
	}
	if password == "" {
		result.addError("password", "Password is required")
	}
	if password != confirmation {
		result.addError("confirmation", "Passwords do not match")
	}

	return result
}

// ValidateContact checks a contact form submission and returns the
// contact record on success.
func ValidateContact(name, email, contactNumber, comments string) (*models.Contact, *Result) {
	result := &Result{}

	name = strings.TrimSpace(name)
	if name == "" {
		result.addError("name", "Name is required")
	}

	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		result.addError("email", "A valid email address is required")
	}

	if !result.Valid() {
		return nil, result
	}

	return &models.Contact{
		Name:          name,
		Email:         email,
		ContactNumber: strings.TrimSpace(contactNumber),
		Comments:      strings.TrimSpace(comments),
	}, result
}

// ValidateDiaryEntry checks a diary submission. Empty text is rejected.
func ValidateDiaryEntry(text string) *Result {
	result := &Result{}

	if strings.TrimSpace(text) == "" {
		result.addError("text", "Entry text cannot be empty")
	}

	return result
}
