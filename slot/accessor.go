package slot

import "database/sql"

// Accessor is the DB layer entrypoint for availability-slot queries. All
// writes to the availability table go through it.
type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}
