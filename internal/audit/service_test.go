package audit

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/flashback-events/rsvp-api/internal/kafka"
	"github.com/flashback-events/rsvp-api/internal/rsvp"
)

type fakeStore struct {
	entries []Entry
	err     error
}

func (f *fakeStore) Append(_ context.Context, e Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func lifecycleMessage(t *testing.T, eventID, eventType string) kafkago.Message {
	t.Helper()
	env := rsvp.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Producer:      "rsvp-api-test",
		CorrelationID: "r1",
		Payload: kafkax.MustMarshal(rsvp.LifecyclePayload{
			RSVPID:        "r1",
			Name:          "Ana",
			SelectedDish:  "Torresmo",
			PaymentStatus: rsvp.StatusConfirmed,
			Guests:        2,
			TotalAmount:   120,
		}),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandleLifecycleAppendsEntry(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store, ServiceName: "auditor-test"}

	if err := svc.HandleLifecycle(context.Background(), lifecycleMessage(t, "e1", rsvp.EventRSVPConfirmed)); err != nil {
		t.Fatalf("HandleLifecycle() = %v", err)
	}

	if len(store.entries) != 1 {
		t.Fatalf("appended %d entries, want 1", len(store.entries))
	}
	e := store.entries[0]
	if e.EventID != "e1" || e.EventType != rsvp.EventRSVPConfirmed {
		t.Errorf("entry = %+v", e)
	}
	if e.RSVPID != "r1" || e.DishName != "Torresmo" || e.PaymentStatus != rsvp.StatusConfirmed {
		t.Errorf("payload fields = %+v", e)
	}
}

func TestHandleLifecycleBadEnvelope(t *testing.T) {
	svc := &Service{Store: &fakeStore{}}
	err := svc.HandleLifecycle(context.Background(), kafkago.Message{Value: []byte("{not json")})
	if err == nil {
		t.Fatal("want decode error so the offset is not committed")
	}
}

func TestHandleLifecyclePropagatesStoreError(t *testing.T) {
	store := &fakeStore{err: context.DeadlineExceeded}
	svc := &Service{Store: store}
	err := svc.HandleLifecycle(context.Background(), lifecycleMessage(t, "e2", rsvp.EventRSVPCreated))
	if err == nil {
		t.Fatal("want store error to propagate for redelivery")
	}
}
