package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Append is idempotent on event_id so replayed events are dropped.
func (r *Repo) Append(ctx context.Context, e Entry) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO rsvp_audit(event_id, event_type, rsvp_id, dish_name, payment_status, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (event_id) DO NOTHING`,
		e.EventID, e.EventType, e.RSVPID, e.DishName, e.PaymentStatus, e.OccurredAt)
	return err
}
