package booking

import "database/sql"

// Accessor is the only path by which bookings are created. It holds the
// at-most-one-booking-per-slot invariant by doing the availability re-check
// and the insert in one transaction, backed by the unique constraint on
// bookings.availability_id.
type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}
