package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxIdleConns(5)

	return db, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS owners (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS availability (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
	date DATE NOT NULL,
	start_time TIME NOT NULL,
	end_time TIME NOT NULL,
	description TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	availability_id UUID NOT NULL UNIQUE REFERENCES availability(id) ON DELETE CASCADE,
	booked_by_name TEXT NOT NULL,
	booked_by_email TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_availability_owner_id ON availability(owner_id);
`

// Migrate creates the schema if it does not exist. The UNIQUE constraint on
// bookings.availability_id is what holds the at-most-one-booking-per-slot
// invariant when bookings race; ON DELETE CASCADE removes a slot's booking
// when the owner deletes the slot.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}
