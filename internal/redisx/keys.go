package redisx

import "time"

const (
	// Cached JSON of the public dish board: dishes:board
	KeyDishBoard = "dishes:board"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLDishBoard = 30 * time.Second
	TTLDedup     = 48 * time.Hour
)
