package rsvp

const (
	IndividualRate = 60.0
	CouplePrice    = 100.0
)

// TotalAmount derives the charge from payment type and guest count. It is the
// only place the total is computed; callers never accept a client-sent total.
func TotalAmount(pt PaymentType, guests int) float64 {
	if pt == PaymentCouple {
		return CouplePrice
	}
	if guests < 1 {
		guests = 1
	}
	return float64(guests) * IndividualRate
}
