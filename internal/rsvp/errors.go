package rsvp

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("rsvp not found")
	ErrDishFull          = errors.New("dish not available (limit reached)")
	ErrInvalidTransition = errors.New("invalid payment status transition")
)

type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

// Validate checks the required submission fields in a fixed order so the
// error always names the first missing one.
func (in CreateInput) Validate() error {
	switch {
	case in.Name == "":
		return &ValidationError{Field: "name"}
	case in.Email == "":
		return &ValidationError{Field: "email"}
	case in.SelectedDish == "":
		return &ValidationError{Field: "selected_dish"}
	case in.PaymentType == "":
		return &ValidationError{Field: "payment_type"}
	case in.PaymentType != PaymentIndividual && in.PaymentType != PaymentCouple:
		return &ValidationError{Field: "payment_type"}
	}
	return nil
}
