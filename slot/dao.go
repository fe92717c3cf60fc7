package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slotbook/faults"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const selectSlot = `SELECT a.id, a.owner_id, a.date, a.start_time, a.end_time, a.description, a.created_at, EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id) AS is_booked FROM availability a`

func (a *Accessor) CreateSlot(ctx context.Context, slot Slot, now time.Time) (*Slot, error) {
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	id := uuid.New()

	query := `INSERT INTO availability (id, owner_id, date, start_time, end_time, description, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := a.db.ExecContext(ctx, query, id, slot.OwnerID, slot.Date, slot.StartTime, slot.EndTime, slot.Description, now); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, fmt.Errorf("%w: owner does not exist", faults.ErrNotFound)
		}
		return nil, fmt.Errorf("exec context: %w", err)
	}

	return &Slot{
		ID:          id,
		OwnerID:     slot.OwnerID,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Description: slot.Description,
		CreatedAt:   now,
	}, nil
}

// GetSlot looks a slot up by id and owner in one predicate, so a mismatched
// owner is indistinguishable from a missing slot.
func (a *Accessor) GetSlot(ctx context.Context, id, ownerID uuid.UUID) (*Slot, error) {
	var slot Slot

	query := selectSlot + ` WHERE a.id = $1 AND a.owner_id = $2`
	row := a.db.QueryRowContext(ctx, query, id, ownerID)
	if err := row.Scan(&slot.ID, &slot.OwnerID, &slot.Date, &slot.StartTime, &slot.EndTime, &slot.Description, &slot.CreatedAt, &slot.IsBooked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &slot, nil
}

// GetSlots returns the owner's slots with the derived is_booked flag. With
// excludeBooked set it returns only bookable slots, filtered in SQL rather
// than client-side, which is what the public booking view uses.
func (a *Accessor) GetSlots(ctx context.Context, ownerID uuid.UUID, excludeBooked bool) ([]Slot, error) {
	query := selectSlot + ` WHERE a.owner_id = $1`
	if excludeBooked {
		query += ` AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id)`
	}
	query += ` ORDER BY a.date, a.start_time`

	rows, err := a.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var slot Slot
		if err := rows.Scan(&slot.ID, &slot.OwnerID, &slot.Date, &slot.StartTime, &slot.EndTime, &slot.Description, &slot.CreatedAt, &slot.IsBooked); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

func (a *Accessor) UpdateSlot(ctx context.Context, slot Slot, now time.Time) (*Slot, error) {
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	existing, err := a.GetSlot(ctx, slot.ID, slot.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: slot does not exist", faults.ErrNotFound)
	}
	if existing.IsBooked {
		return nil, fmt.Errorf("%w: slot already has a booking", faults.ErrConflict)
	}

	// The NOT EXISTS guard re-checks for a booking inside the write itself,
	// so a booking accepted between the read above and this statement still
	// blocks the update.
	query := `UPDATE availability SET date = $1, start_time = $2, end_time = $3, description = $4 WHERE id = $5 AND owner_id = $6 AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = availability.id)`
	result, err := a.db.ExecContext(ctx, query, slot.Date, slot.StartTime, slot.EndTime, slot.Description, slot.ID, slot.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// Zero rows means the slot was booked or deleted after the read
		// above; re-check which.
		current, err := a.GetSlot(ctx, slot.ID, slot.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("get slot: %w", err)
		}
		if current == nil {
			return nil, fmt.Errorf("%w: slot does not exist", faults.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: slot already has a booking", faults.ErrConflict)
	}

	return &Slot{
		ID:          slot.ID,
		OwnerID:     slot.OwnerID,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Description: slot.Description,
		CreatedAt:   existing.CreatedAt,
	}, nil
}

// DeleteSlot removes the slot; a booking referencing it goes with it via the
// foreign key's ON DELETE CASCADE.
func (a *Accessor) DeleteSlot(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `DELETE FROM availability WHERE id = $1 AND owner_id = $2`
	result, err := a.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: slot does not exist", faults.ErrNotFound)
	}
	return nil
}
