package rsvp

// All lifecycle events share one topic so the audit trail sees them in order.
const TopicLifecycle = "rsvp.lifecycle"

// Partition key = rsvp_id, so events for one registration stay ordered.
func PartitionKey(rsvpID string) []byte { return []byte(rsvpID) }
