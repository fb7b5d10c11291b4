package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo owns the RSVP lifecycle. Every mutation runs the record change and its
// ledger change in one transaction, so a failure mid-sequence rolls back both.
type Repo struct {
	DB       *pgxpool.Pool
	MaxCount int
}

const rsvpColumns = `id, name, email, phone, guests, selected_dish, payment_type,
	total_amount, payment_status, payment_proof, created_at, updated_at, notes`

func scanRSVP(row pgx.Row) (RSVP, error) {
	var r RSVP
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Guests, &r.SelectedDish,
		&r.PaymentType, &r.TotalAmount, &r.PaymentStatus, &r.PaymentProof,
		&r.CreatedAt, &r.UpdatedAt, &r.Notes)
	return r, err
}

// Create validates the submission, admits it against the dish counter and
// persists the record, all in one transaction. A new RSVP reserves a slot
// while still pending.
func (p *Repo) Create(ctx context.Context, in CreateInput) (*RSVP, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := reserveDish(ctx, tx, in.SelectedDish, p.MaxCount); err != nil {
		return nil, err
	}

	r := newFromInput(uuid.NewString(), in, time.Now().UTC())
	_, err = tx.Exec(ctx, `
		INSERT INTO rsvps(`+rsvpColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		r.ID, r.Name, r.Email, r.Phone, r.Guests, r.SelectedDish, r.PaymentType,
		r.TotalAmount, r.PaymentStatus, r.PaymentProof, r.CreatedAt, r.UpdatedAt, r.Notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *Repo) List(ctx context.Context) ([]RSVP, error) {
	rows, err := p.DB.Query(ctx, `SELECT `+rsvpColumns+` FROM rsvps ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RSVP
	for rows.Next() {
		r, err := scanRSVP(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Repo) Get(ctx context.Context, id string) (*RSVP, error) {
	r, err := scanRSVP(p.DB.QueryRow(ctx, `SELECT `+rsvpColumns+` FROM rsvps WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// lockRSVP reads the row under FOR UPDATE so concurrent edits to the same
// registration serialize.
func lockRSVP(ctx context.Context, tx pgx.Tx, id string) (RSVP, error) {
	r, err := scanRSVP(tx.QueryRow(ctx, `SELECT `+rsvpColumns+` FROM rsvps WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return r, ErrNotFound
	}
	return r, err
}

// Update merges a partial edit. A dish change moves the reservation
// atomically; if the new dish is full nothing changes, including the old
// counter.
func (p *Repo) Update(ctx context.Context, id string, in UpdateInput) (*RSVP, error) {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cur, err := lockRSVP(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := in.ValidateTransition(cur.PaymentStatus); err != nil {
		return nil, err
	}

	next := applyUpdate(cur, in, time.Now().UTC())
	if next.SelectedDish != cur.SelectedDish {
		if err := moveDish(ctx, tx, cur.SelectedDish, next.SelectedDish, p.MaxCount); err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE rsvps SET name=$2, email=$3, phone=$4, guests=$5, selected_dish=$6,
			payment_type=$7, total_amount=$8, payment_status=$9, payment_proof=$10,
			updated_at=$11, notes=$12
		WHERE id=$1`,
		next.ID, next.Name, next.Email, next.Phone, next.Guests, next.SelectedDish,
		next.PaymentType, next.TotalAmount, next.PaymentStatus, next.PaymentProof,
		next.UpdatedAt, next.Notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete removes the record and releases its dish slot.
func (p *Repo) Delete(ctx context.Context, id string) (*RSVP, error) {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	r, err := lockRSVP(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := releaseDish(ctx, tx, r.SelectedDish); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rsvps WHERE id=$1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &r, nil
}

// SetStatus is a pure status transition. The dish slot is tied to record
// existence, not payment status, so accept/reject never touch the ledger.
func (p *Repo) SetStatus(ctx context.Context, id string, to Status) (*RSVP, error) {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	r, err := lockRSVP(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(r.PaymentStatus, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.PaymentStatus, to)
	}

	r.PaymentStatus = to
	r.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(ctx, `UPDATE rsvps SET payment_status=$2, updated_at=$3 WHERE id=$1`,
		r.ID, r.PaymentStatus, r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &r, nil
}

// Stats aggregates straight off the tables on every call; nothing is cached.
func (p *Repo) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := p.DB.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE payment_status='confirmed'),
		       COUNT(*) FILTER (WHERE payment_status='pending'),
		       COALESCE(SUM(guests), 0),
		       COALESCE(SUM(total_amount) FILTER (WHERE payment_status='confirmed'), 0)
		FROM rsvps`).Scan(&s.TotalRSVPs, &s.ConfirmedPayments, &s.PendingPayments,
		&s.TotalGuests, &s.TotalRevenue)
	if err != nil {
		return nil, err
	}

	rows, err := p.DB.Query(ctx, `
		SELECT selected_dish, COUNT(*) AS n FROM rsvps
		GROUP BY selected_dish ORDER BY n DESC, selected_dish`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d DishPopularity
		if err := rows.Scan(&d.Dish, &d.Count); err != nil {
			return nil, err
		}
		s.DishStats = append(s.DishStats, d)
	}
	return &s, rows.Err()
}
