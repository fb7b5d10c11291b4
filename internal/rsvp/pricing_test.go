package rsvp

import "testing"

func TestTotalAmount(t *testing.T) {
	cases := []struct {
		name   string
		pt     PaymentType
		guests int
		want   float64
	}{
		{"individual single guest", PaymentIndividual, 1, 60.0},
		{"individual three guests", PaymentIndividual, 3, 180.0},
		{"individual defaults zero guests to one", PaymentIndividual, 0, 60.0},
		{"couple flat price", PaymentCouple, 1, 100.0},
		{"couple ignores guest count", PaymentCouple, 5, 100.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TotalAmount(c.pt, c.guests); got != c.want {
				t.Errorf("TotalAmount(%s, %d) = %v, want %v", c.pt, c.guests, got, c.want)
			}
		})
	}
}
