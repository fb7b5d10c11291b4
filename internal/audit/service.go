// Package audit appends every RSVP lifecycle event to a durable trail the
// admin page can query. It is not a notification channel.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/flashback-events/rsvp-api/internal/kafka"
	"github.com/flashback-events/rsvp-api/internal/redisx"
	"github.com/flashback-events/rsvp-api/internal/rsvp"
)

type Entry struct {
	EventID       string
	EventType     string
	RSVPID        string
	DishName      string
	PaymentStatus rsvp.Status
	OccurredAt    time.Time
}

type Store interface {
	Append(ctx context.Context, e Entry) error
}

type Service struct {
	Store       Store
	Redis       *redis.Client
	ServiceName string
}

// HandleLifecycle is the consumer handler. Events are deduped on event_id,
// then appended; the store ignores replays on conflict, so a redis miss
// cannot double-record.
func (s *Service) HandleLifecycle(ctx context.Context, m kafkago.Message) error {
	var env rsvp.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "audit", env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[rsvp.LifecyclePayload](env.Payload)
	if err != nil {
		return err
	}

	return s.Store.Append(ctx, Entry{
		EventID:       env.EventID,
		EventType:     env.EventType,
		RSVPID:        p.RSVPID,
		DishName:      p.SelectedDish,
		PaymentStatus: p.PaymentStatus,
		OccurredAt:    env.OccurredAt,
	})
}
