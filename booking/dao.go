package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbook/faults"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Book accepts or rejects a booking request for a slot. Validation failures
// happen before the transaction begins and leave no partial state. Inside
// the transaction the slot's booked status is re-read; if two transactions
// both pass that check, the unique constraint on availability_id lets
// exactly one insert through and the loser gets ErrSlotUnavailable.
func (a *Accessor) Book(ctx context.Context, booking Booking, now time.Time) (*Booking, error) {
	booking.BookedByName = strings.TrimSpace(booking.BookedByName)
	booking.BookedByEmail = strings.ToLower(booking.BookedByEmail)
	if err := booking.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var booked bool
	query := `SELECT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id) FROM availability a WHERE a.id = $1`
	if err := tx.QueryRowContext(ctx, query, booking.SlotID).Scan(&booked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: slot does not exist", faults.ErrNotFound)
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	if booked {
		return nil, faults.ErrSlotUnavailable
	}

	id := uuid.New()

	insert := `INSERT INTO bookings (id, availability_id, booked_by_name, booked_by_email, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insert, id, booking.SlotID, booking.BookedByName, booking.BookedByEmail, now); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Lost the race to a concurrent booking.
			return nil, faults.ErrSlotUnavailable
		}
		return nil, fmt.Errorf("exec context: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &Booking{
		ID:            id,
		SlotID:        booking.SlotID,
		BookedByName:  booking.BookedByName,
		BookedByEmail: booking.BookedByEmail,
		CreatedAt:     now,
	}, nil
}

// BookingsForOwner lists the bookings received on an owner's slots, joined
// with the slot each one claims. The inner join drops any booking whose
// slot cannot be resolved.
func (a *Accessor) BookingsForOwner(ctx context.Context, ownerID uuid.UUID) ([]OwnerBooking, error) {
	query := `SELECT b.id, b.availability_id, b.booked_by_name, b.booked_by_email, b.created_at, a.id, a.owner_id, a.date, a.start_time, a.end_time, a.description, a.created_at FROM bookings b INNER JOIN availability a ON a.id = b.availability_id WHERE a.owner_id = $1 ORDER BY b.created_at`
	rows, err := a.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var bookings []OwnerBooking
	for rows.Next() {
		var ob OwnerBooking
		if err := rows.Scan(
			&ob.Booking.ID, &ob.Booking.SlotID, &ob.Booking.BookedByName, &ob.Booking.BookedByEmail, &ob.Booking.CreatedAt,
			&ob.Slot.ID, &ob.Slot.OwnerID, &ob.Slot.Date, &ob.Slot.StartTime, &ob.Slot.EndTime, &ob.Slot.Description, &ob.Slot.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ob.Slot.IsBooked = true
		bookings = append(bookings, ob)
	}

	return bookings, rows.Err()
}
