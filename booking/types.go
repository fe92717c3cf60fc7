package booking

import (
	"fmt"
	"regexp"
	"time"

	"slotbook/faults"
	"slotbook/slot"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Booking struct {
	ID            uuid.UUID `json:"id"`
	SlotID        uuid.UUID `json:"slot_id"`
	BookedByName  string    `json:"booked_by_name"`
	BookedByEmail string    `json:"booked_by_email"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) Validate() error {
	if b.SlotID == uuid.Nil {
		return fmt.Errorf("%w: slot ID is required", faults.ErrValidation)
	}
	if b.BookedByName == "" {
		return fmt.Errorf("%w: name is required", faults.ErrValidation)
	}
	if !emailPattern.MatchString(b.BookedByEmail) {
		return fmt.Errorf("%w: invalid email address", faults.ErrValidation)
	}
	return nil
}

// OwnerBooking is a booking joined with the slot it claims, as shown on the
// owner's received-bookings view.
type OwnerBooking struct {
	Booking Booking   `json:"booking"`
	Slot    slot.Slot `json:"slot"`
}
