package rsvp

import (
	"encoding/json"
	"time"
)

const (
	EventRSVPCreated   = "RSVPCreated"
	EventRSVPUpdated   = "RSVPUpdated"
	EventRSVPConfirmed = "RSVPConfirmed"
	EventRSVPRejected  = "RSVPRejected"
	EventRSVPDeleted   = "RSVPDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // rsvp_id
	Payload       json.RawMessage `json:"payload"`
}

// LifecyclePayload is published for every lifecycle event, carrying the
// fields the audit trail cares about.
type LifecyclePayload struct {
	RSVPID        string  `json:"rsvp_id"`
	Name          string  `json:"name"`
	SelectedDish  string  `json:"selected_dish"`
	PaymentStatus Status  `json:"payment_status"`
	Guests        int     `json:"guests"`
	TotalAmount   float64 `json:"total_amount"`
}

func PayloadFor(r *RSVP) LifecyclePayload {
	return LifecyclePayload{
		RSVPID:        r.ID,
		Name:          r.Name,
		SelectedDish:  r.SelectedDish,
		PaymentStatus: r.PaymentStatus,
		Guests:        r.Guests,
		TotalAmount:   r.TotalAmount,
	}
}
