package rsvp

import "time"

type PaymentType string

const (
	PaymentIndividual PaymentType = "individual"
	PaymentCouple     PaymentType = "couple"
)

type RSVP struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Guests        int         `json:"guests"`
	SelectedDish  string      `json:"selected_dish"`
	PaymentType   PaymentType `json:"payment_type"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentStatus Status      `json:"payment_status"`
	PaymentProof  string      `json:"payment_proof"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Notes         string      `json:"notes"`
}

type DishCounter struct {
	ID           int64  `json:"id"`
	DishName     string `json:"dish_name"`
	CurrentCount int    `json:"current_count"`
	MaxCount     int    `json:"max_count"`
	Available    bool   `json:"available"`
}

type DishPopularity struct {
	Dish  string `json:"dish"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalRSVPs        int              `json:"total_rsvps"`
	ConfirmedPayments int              `json:"confirmed_payments"`
	PendingPayments   int              `json:"pending_payments"`
	TotalGuests       int              `json:"total_guests"`
	TotalRevenue      float64          `json:"total_revenue"`
	DishStats         []DishPopularity `json:"dish_stats"`
}

// CreateInput is the submission form payload. Guests defaults to 1 when
// left out or non-positive.
type CreateInput struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Guests       int         `json:"guests"`
	SelectedDish string      `json:"selected_dish"`
	PaymentType  PaymentType `json:"payment_type"`
	PaymentProof string      `json:"payment_proof"`
	Notes        string      `json:"notes"`
}

// UpdateInput carries a partial admin edit; nil fields are left unchanged.
type UpdateInput struct {
	Name          *string      `json:"name"`
	Email         *string      `json:"email"`
	Phone         *string      `json:"phone"`
	Guests        *int         `json:"guests"`
	SelectedDish  *string      `json:"selected_dish"`
	PaymentType   *PaymentType `json:"payment_type"`
	PaymentStatus *Status      `json:"payment_status"`
	PaymentProof  *string      `json:"payment_proof"`
	Notes         *string      `json:"notes"`
}
