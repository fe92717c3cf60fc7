package slot

import (
	"database/sql/driver"
	"fmt"
	"time"

	"slotbook/faults"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Date is a calendar date stored as a DATE column and carried as a
// "YYYY-MM-DD" string.
type Date string

func NewDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("%w: invalid date %q", faults.ErrValidation, s)
	}
	return Date(s), nil
}

// Value implements driver.Valuer for INSERT/UPDATE.
func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan implements sql.Scanner for SELECT.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = Date(v.Format(dateLayout))
		return nil
	case []byte:
		*d = Date(v)
		return nil
	case string:
		*d = Date(v)
		return nil
	default:
		return fmt.Errorf("unsupported date type: %T", value)
	}
}

// TimeOfDay is a wall-clock time stored as a TIME column. It is normalized
// to HH:MM:SS at construction, so two values compare correctly as strings.
type TimeOfDay string

func NewTimeOfDay(s string) (TimeOfDay, error) {
	// Re-format rather than append: time.Parse accepts one-digit hours
	// like "9:30", which must still come out as "09:30:00".
	for _, layout := range []string{"15:04", "15:04:05"} {
		if tm, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(tm.Format("15:04:05")), nil
		}
	}
	return "", fmt.Errorf("%w: invalid time %q", faults.ErrValidation, s)
}

// canonical reports whether t is an exact HH:MM:SS string. Only canonical
// values order lexically the same way the clock does.
func (t TimeOfDay) canonical() bool {
	tm, err := time.Parse("15:04:05", string(t))
	return err == nil && tm.Format("15:04:05") == string(t)
}

// Value implements driver.Valuer for INSERT/UPDATE.
func (t TimeOfDay) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner for SELECT.
func (t *TimeOfDay) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = TimeOfDay(v.Format("15:04:05"))
		return nil
	case []byte:
		*t = TimeOfDay(v)
		return nil
	case string:
		*t = TimeOfDay(v)
		return nil
	default:
		return fmt.Errorf("unsupported time type: %T", value)
	}
}

type Slot struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Date        Date      `json:"date"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	Description string    `json:"description"`
	IsBooked    bool      `json:"is_booked"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Slot) Validate() error {
	if s.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: owner ID is required", faults.ErrValidation)
	}
	if _, err := time.Parse(dateLayout, string(s.Date)); err != nil {
		return fmt.Errorf("%w: invalid date %q", faults.ErrValidation, s.Date)
	}
	if !s.StartTime.canonical() {
		return fmt.Errorf("%w: invalid start time %q", faults.ErrValidation, s.StartTime)
	}
	if !s.EndTime.canonical() {
		return fmt.Errorf("%w: invalid end time %q", faults.ErrValidation, s.EndTime)
	}
	// Canonical HH:MM:SS strings order the same way the clock does.
	if string(s.StartTime) >= string(s.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", faults.ErrValidation)
	}
	if s.Description == "" {
		return fmt.Errorf("%w: description is required", faults.ErrValidation)
	}
	return nil
}
