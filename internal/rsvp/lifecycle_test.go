package rsvp

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func typePtr(p PaymentType) *PaymentType { return &p }

func statusPtr(s Status) *Status { return &s }

func TestNewFromInput(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	r := newFromInput("abc", CreateInput{
		Name:         "Ana",
		Email:        "ana@example.com",
		SelectedDish: "Torresmo",
		PaymentType:  PaymentIndividual,
		Guests:       2,
	}, now)

	if r.ID != "abc" {
		t.Errorf("ID = %q, want %q", r.ID, "abc")
	}
	if r.PaymentStatus != StatusPending {
		t.Errorf("PaymentStatus = %q, want pending", r.PaymentStatus)
	}
	if r.TotalAmount != 120.0 {
		t.Errorf("TotalAmount = %v, want 120.0", r.TotalAmount)
	}
	if r.CreatedAt != now || r.UpdatedAt != now {
		t.Errorf("timestamps = %v/%v, want %v", r.CreatedAt, r.UpdatedAt, now)
	}
}

func TestNewFromInputDefaultsGuests(t *testing.T) {
	r := newFromInput("x", CreateInput{
		Name: "Ana", Email: "a@b.c", SelectedDish: "Kibe", PaymentType: PaymentIndividual,
	}, time.Now())
	if r.Guests != 1 {
		t.Errorf("Guests = %d, want 1", r.Guests)
	}
	if r.TotalAmount != 60.0 {
		t.Errorf("TotalAmount = %v, want 60.0", r.TotalAmount)
	}
}

func TestApplyUpdateLeavesAbsentFieldsUnchanged(t *testing.T) {
	now := time.Now().UTC()
	cur := RSVP{
		ID: "1", Name: "Ana", Email: "ana@example.com", Phone: "123",
		Guests: 2, SelectedDish: "Torresmo", PaymentType: PaymentIndividual,
		TotalAmount: 120.0, PaymentStatus: StatusPending, Notes: "vegan",
	}

	next := applyUpdate(cur, UpdateInput{Name: strPtr("Ana Maria")}, now)

	if next.Name != "Ana Maria" {
		t.Errorf("Name = %q, want %q", next.Name, "Ana Maria")
	}
	if next.Email != cur.Email || next.Phone != cur.Phone || next.Notes != cur.Notes {
		t.Error("untouched fields changed")
	}
	if next.TotalAmount != 120.0 {
		t.Errorf("TotalAmount = %v, want unchanged 120.0", next.TotalAmount)
	}
	if next.UpdatedAt != now {
		t.Errorf("UpdatedAt = %v, want %v", next.UpdatedAt, now)
	}
}

func TestApplyUpdateRecomputesTotal(t *testing.T) {
	cur := RSVP{Guests: 2, PaymentType: PaymentIndividual, TotalAmount: 120.0}

	next := applyUpdate(cur, UpdateInput{Guests: intPtr(4)}, time.Now())
	if next.TotalAmount != 240.0 {
		t.Errorf("TotalAmount after guests change = %v, want 240.0", next.TotalAmount)
	}

	next = applyUpdate(cur, UpdateInput{PaymentType: typePtr(PaymentCouple)}, time.Now())
	if next.TotalAmount != 100.0 {
		t.Errorf("TotalAmount after type change = %v, want 100.0", next.TotalAmount)
	}
}

func TestApplyUpdateClampsGuests(t *testing.T) {
	cur := RSVP{Guests: 3, PaymentType: PaymentIndividual, TotalAmount: 180.0}
	next := applyUpdate(cur, UpdateInput{Guests: intPtr(0)}, time.Now())
	if next.Guests != 1 {
		t.Errorf("Guests = %d, want 1", next.Guests)
	}
	if next.TotalAmount != 60.0 {
		t.Errorf("TotalAmount = %v, want 60.0", next.TotalAmount)
	}
}

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name    string
		cur     Status
		in      UpdateInput
		wantErr bool
	}{
		{"no status in body", StatusConfirmed, UpdateInput{Name: strPtr("A")}, false},
		{"pending to confirmed", StatusPending, UpdateInput{PaymentStatus: statusPtr(StatusConfirmed)}, false},
		{"confirmed to rejected", StatusConfirmed, UpdateInput{PaymentStatus: statusPtr(StatusRejected)}, false},
		{"confirmed back to pending", StatusConfirmed, UpdateInput{PaymentStatus: statusPtr(StatusPending)}, true},
		{"rejected back to pending", StatusRejected, UpdateInput{PaymentStatus: statusPtr(StatusPending)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.ValidateTransition(c.cur)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("ValidateTransition() = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateTransition() = %v, want nil", err)
			}
		})
	}
}

func TestValidateReportsFirstMissingField(t *testing.T) {
	cases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"missing name", CreateInput{}, "name"},
		{"missing email", CreateInput{Name: "A"}, "email"},
		{"missing dish", CreateInput{Name: "A", Email: "a@b.c"}, "selected_dish"},
		{"missing payment type", CreateInput{Name: "A", Email: "a@b.c", SelectedDish: "Kibe"}, "payment_type"},
		{"unknown payment type", CreateInput{Name: "A", Email: "a@b.c", SelectedDish: "Kibe", PaymentType: "cash"}, "payment_type"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != c.field {
				t.Errorf("Field = %q, want %q", verr.Field, c.field)
			}
		})
	}

	ok := CreateInput{Name: "A", Email: "a@b.c", SelectedDish: "Kibe", PaymentType: PaymentCouple}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() on complete input = %v, want nil", err)
	}
}
