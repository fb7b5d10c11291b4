package rsvp

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger is the per-dish slot accounting. One counter row per dish name,
// created lazily and never deleted. Admission (check-then-increment) always
// runs under a row lock so concurrent submissions for the same dish
// serialize and capacity is never oversold.
type Ledger struct {
	DB       *pgxpool.Pool
	MaxCount int
}

// Seed makes sure a counter exists for every catalog dish. Idempotent:
// existing counters keep their counts.
func (l *Ledger) Seed(ctx context.Context, dishes []string) error {
	tx, err := l.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, d := range dishes {
		if err := ensureDish(ctx, tx, d, l.MaxCount); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// List returns every known counter in creation order with availability
// computed live.
func (l *Ledger) List(ctx context.Context) ([]DishCounter, error) {
	rows, err := l.DB.Query(ctx, `SELECT id, dish_name, current_count, max_count
	                              FROM dish_counters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DishCounter
	for rows.Next() {
		var c DishCounter
		if err := rows.Scan(&c.ID, &c.DishName, &c.CurrentCount, &c.MaxCount); err != nil {
			return nil, err
		}
		c.Available = c.CurrentCount < c.MaxCount
		out = append(out, c)
	}
	return out, rows.Err()
}

// ensureDish creates the counter row if missing. No-op when it exists.
func ensureDish(ctx context.Context, tx pgx.Tx, dish string, maxCount int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO dish_counters(dish_name, current_count, max_count)
		VALUES ($1, 0, $2)
		ON CONFLICT (dish_name) DO NOTHING`, dish, maxCount)
	return err
}

// lockDish takes the row lock and returns current/max.
func lockDish(ctx context.Context, tx pgx.Tx, dish string) (cur, max int, err error) {
	err = tx.QueryRow(ctx, `SELECT current_count, max_count FROM dish_counters
	                        WHERE dish_name=$1 FOR UPDATE`, dish).Scan(&cur, &max)
	return cur, max, err
}

// reserveDish is the admission decision: lock, check, increment. Returns
// ErrDishFull without touching the counter when the dish is at capacity.
func reserveDish(ctx context.Context, tx pgx.Tx, dish string, maxCount int) error {
	if err := ensureDish(ctx, tx, dish, maxCount); err != nil {
		return err
	}
	cur, max, err := lockDish(ctx, tx, dish)
	if err != nil {
		return err
	}
	if cur >= max {
		return ErrDishFull
	}
	_, err = tx.Exec(ctx, `UPDATE dish_counters SET current_count = current_count + 1
	                       WHERE dish_name=$1`, dish)
	return err
}

// releaseDish frees one slot, floored at zero. Releasing an already-empty
// counter is a silent no-op.
func releaseDish(ctx context.Context, tx pgx.Tx, dish string) error {
	_, err := tx.Exec(ctx, `UPDATE dish_counters SET current_count = current_count - 1
	                        WHERE dish_name=$1 AND current_count > 0`, dish)
	return err
}

// moveDish transfers a reservation between dishes. Both rows are locked in
// name order to avoid deadlocks between concurrent opposite moves. The new
// dish is checked before the old slot is released, so a full target fails
// the whole move and leaves the source reservation intact.
func moveDish(ctx context.Context, tx pgx.Tx, from, to string, maxCount int) error {
	for _, n := range []string{from, to} {
		if err := ensureDish(ctx, tx, n, maxCount); err != nil {
			return err
		}
	}
	names := []string{from, to}
	sort.Strings(names)
	counts := map[string][2]int{}
	for _, n := range names {
		cur, max, err := lockDish(ctx, tx, n)
		if err != nil {
			return err
		}
		counts[n] = [2]int{cur, max}
	}
	if c := counts[to]; c[0] >= c[1] {
		return ErrDishFull
	}
	if err := releaseDish(ctx, tx, from); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `UPDATE dish_counters SET current_count = current_count + 1
	                        WHERE dish_name=$1`, to)
	return err
}
