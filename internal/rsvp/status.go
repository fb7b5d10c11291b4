package rsvp

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Admin decisions may flip back and forth between confirmed and rejected.
// Re-asserting the current status is a no-op re-entry. Nothing returns to
// pending once decided.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusPending: true, StatusConfirmed: true, StatusRejected: true},
	StatusConfirmed: {StatusConfirmed: true, StatusRejected: true},
	StatusRejected:  {StatusRejected: true, StatusConfirmed: true},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
