package rsvp

import (
	"fmt"
	"time"
)

// ValidateTransition rejects a partial edit that would move payment_status
// outside the state machine, e.g. back to pending after a decision. Admin
// edits go through the same rules as accept/reject.
func (in UpdateInput) ValidateTransition(cur Status) error {
	if in.PaymentStatus == nil {
		return nil
	}
	if !CanTransition(cur, *in.PaymentStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, *in.PaymentStatus)
	}
	return nil
}

// newFromInput builds the initial record. A fresh submission always starts
// pending and occupies a dish slot regardless of payment status.
func newFromInput(id string, in CreateInput, now time.Time) RSVP {
	guests := in.Guests
	if guests < 1 {
		guests = 1
	}
	return RSVP{
		ID:            id,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Guests:        guests,
		SelectedDish:  in.SelectedDish,
		PaymentType:   in.PaymentType,
		TotalAmount:   TotalAmount(in.PaymentType, guests),
		PaymentStatus: StatusPending,
		PaymentProof:  in.PaymentProof,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// applyUpdate merges a partial edit over the current record. The total is
// recomputed only when payment_type or guests appears in the request.
func applyUpdate(cur RSVP, in UpdateInput, now time.Time) RSVP {
	if in.Name != nil {
		cur.Name = *in.Name
	}
	if in.Email != nil {
		cur.Email = *in.Email
	}
	if in.Phone != nil {
		cur.Phone = *in.Phone
	}
	if in.Guests != nil {
		g := *in.Guests
		if g < 1 {
			g = 1
		}
		cur.Guests = g
	}
	if in.SelectedDish != nil {
		cur.SelectedDish = *in.SelectedDish
	}
	if in.PaymentType != nil {
		cur.PaymentType = *in.PaymentType
	}
	if in.PaymentStatus != nil {
		cur.PaymentStatus = *in.PaymentStatus
	}
	if in.PaymentProof != nil {
		cur.PaymentProof = *in.PaymentProof
	}
	if in.Notes != nil {
		cur.Notes = *in.Notes
	}
	if in.PaymentType != nil || in.Guests != nil {
		cur.TotalAmount = TotalAmount(cur.PaymentType, cur.Guests)
	}
	cur.UpdatedAt = now
	return cur
}
