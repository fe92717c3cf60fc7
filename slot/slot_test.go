package slot_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"slotbook/faults"
	"slotbook/slot"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectSlotQuery  = `SELECT a.id, a.owner_id, a.date, a.start_time, a.end_time, a.description, a.created_at, EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id) AS is_booked FROM availability a WHERE a.id = $1 AND a.owner_id = $2`
	selectSlotsQuery = `SELECT a.id, a.owner_id, a.date, a.start_time, a.end_time, a.description, a.created_at, EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id) AS is_booked FROM availability a WHERE a.owner_id = $1 ORDER BY a.date, a.start_time`
	selectOpenQuery  = `SELECT a.id, a.owner_id, a.date, a.start_time, a.end_time, a.description, a.created_at, EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id) AS is_booked FROM availability a WHERE a.owner_id = $1 AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = a.id) ORDER BY a.date, a.start_time`
)

var slotColumns = []string{"id", "owner_id", "date", "start_time", "end_time", "description", "created_at", "is_booked"}

func TestTimeOfDay(t *testing.T) {
	t.Parallel()

	got, err := slot.NewTimeOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, slot.TimeOfDay("09:00:00"), got)

	got, err = slot.NewTimeOfDay("09:00:30")
	require.NoError(t, err)
	assert.Equal(t, slot.TimeOfDay("09:00:30"), got)

	// One-digit hours parse, but must still normalize to HH:MM:SS.
	got, err = slot.NewTimeOfDay("9:30")
	require.NoError(t, err)
	assert.Equal(t, slot.TimeOfDay("09:30:00"), got)

	got, err = slot.NewTimeOfDay("9:30:00")
	require.NoError(t, err)
	assert.Equal(t, slot.TimeOfDay("09:30:00"), got)

	_, err = slot.NewTimeOfDay("9 o'clock")
	require.ErrorIs(t, err, faults.ErrValidation)

	_, err = slot.NewTimeOfDay("25:00")
	require.ErrorIs(t, err, faults.ErrValidation)
}

func TestSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := slot.NewAccessor(db)

	ownerID := uuid.New()
	now := time.Now()

	slotData := slot.Slot{
		OwnerID:     ownerID,
		Date:        "2025-09-01",
		StartTime:   "09:00:00",
		EndTime:     "10:00:00",
		Description: "intro call",
	}

	insertQuery := `INSERT INTO availability (id, owner_id, date, start_time, end_time, description, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	t.Run("create slot", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), ownerID, slotData.Date, slotData.StartTime, slotData.EndTime, slotData.Description, now).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := a.CreateSlot(context.Background(), slotData, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, slotData.Date, created.Date)
		assert.Equal(t, slotData.StartTime, created.StartTime)
		assert.Equal(t, slotData.EndTime, created.EndTime)
		assert.Equal(t, slotData.Description, created.Description)
		assert.False(t, created.IsBooked)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create slot - start equals end", func(t *testing.T) {
		bad := slotData
		bad.EndTime = bad.StartTime

		_, err := a.CreateSlot(context.Background(), bad, now)
		require.ErrorIs(t, err, faults.ErrValidation)
	})

	t.Run("create slot - start after end", func(t *testing.T) {
		bad := slotData
		bad.StartTime = "11:00:00"

		_, err := a.CreateSlot(context.Background(), bad, now)
		require.ErrorIs(t, err, faults.ErrValidation)
	})

	t.Run("create slot - non-canonical time", func(t *testing.T) {
		// "9:30:00" sorts after "19:00:00" lexically; it must be rejected,
		// not treated as a valid end time.
		bad := slotData
		bad.StartTime = "19:00:00"
		bad.EndTime = "9:30:00"

		_, err := a.CreateSlot(context.Background(), bad, now)
		require.ErrorIs(t, err, faults.ErrValidation)
	})

	t.Run("create slot - missing description", func(t *testing.T) {
		bad := slotData
		bad.Description = ""

		_, err := a.CreateSlot(context.Background(), bad, now)
		require.ErrorIs(t, err, faults.ErrValidation)
	})

	t.Run("get slots", func(t *testing.T) {
		slotID := uuid.New()
		bookedID := uuid.New()
		rows := sqlmock.NewRows(slotColumns).
			AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, false).
			AddRow(bookedID, ownerID, "2025-09-01", "10:00:00", "11:00:00", "follow-up", now, true)

		mock.ExpectQuery(regexp.QuoteMeta(selectSlotsQuery)).
			WithArgs(ownerID).
			WillReturnRows(rows)

		slots, err := a.GetSlots(context.Background(), ownerID, false)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.False(t, slots[0].IsBooked)
		assert.True(t, slots[1].IsBooked)
		assert.Equal(t, slot.Date("2025-09-01"), slots[0].Date)
		assert.Equal(t, slot.TimeOfDay("09:00:00"), slots[0].StartTime)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get slots - exclude booked", func(t *testing.T) {
		slotID := uuid.New()
		rows := sqlmock.NewRows(slotColumns).
			AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, false)

		mock.ExpectQuery(regexp.QuoteMeta(selectOpenQuery)).
			WithArgs(ownerID).
			WillReturnRows(rows)

		slots, err := a.GetSlots(context.Background(), ownerID, true)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.False(t, slots[0].IsBooked)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update slot", func(t *testing.T) {
		slotID := uuid.New()
		rows := sqlmock.NewRows(slotColumns).
			AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, false)
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, ownerID).
			WillReturnRows(rows)

		updateQuery := `UPDATE availability SET date = $1, start_time = $2, end_time = $3, description = $4 WHERE id = $5 AND owner_id = $6 AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = availability.id)`
		mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
			WithArgs(slot.Date("2025-09-02"), slotData.StartTime, slotData.EndTime, "moved", slotID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated := slotData
		updated.ID = slotID
		updated.Date = "2025-09-02"
		updated.Description = "moved"

		result, err := a.UpdateSlot(context.Background(), updated, now)
		require.NoError(t, err)
		assert.Equal(t, slotID, result.ID)
		assert.Equal(t, slot.Date("2025-09-02"), result.Date)
		assert.Equal(t, "moved", result.Description)
		assert.Equal(t, now, result.CreatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update slot - owner mismatch", func(t *testing.T) {
		slotID := uuid.New()
		otherOwner := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, otherOwner).
			WillReturnRows(sqlmock.NewRows(slotColumns))

		bad := slotData
		bad.ID = slotID
		bad.OwnerID = otherOwner

		_, err := a.UpdateSlot(context.Background(), bad, now)
		require.ErrorIs(t, err, faults.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update slot - already booked", func(t *testing.T) {
		slotID := uuid.New()
		rows := sqlmock.NewRows(slotColumns).
			AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, true)
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, ownerID).
			WillReturnRows(rows)

		booked := slotData
		booked.ID = slotID

		_, err := a.UpdateSlot(context.Background(), booked, now)
		require.ErrorIs(t, err, faults.ErrConflict)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update slot - booked concurrently", func(t *testing.T) {
		slotID := uuid.New()
		rows := sqlmock.NewRows(slotColumns).
			AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, false)
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, ownerID).
			WillReturnRows(rows)

		updateQuery := `UPDATE availability SET date = $1, start_time = $2, end_time = $3, description = $4 WHERE id = $5 AND owner_id = $6 AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = availability.id)`
		mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
			WithArgs(slotData.Date, slotData.StartTime, slotData.EndTime, slotData.Description, slotID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// The zero-rows re-check finds the slot now booked.
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, ownerID).
			WillReturnRows(sqlmock.NewRows(slotColumns).
				AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, true))

		raced := slotData
		raced.ID = slotID

		_, err := a.UpdateSlot(context.Background(), raced, now)
		require.ErrorIs(t, err, faults.ErrConflict)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update slot - deleted concurrently", func(t *testing.T) {
		slotID := uuid.New()
		rows := sqlmock.NewRows(slotColumns).
			AddRow(slotID, ownerID, "2025-09-01", "09:00:00", "10:00:00", "intro call", now, false)
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, ownerID).
			WillReturnRows(rows)

		updateQuery := `UPDATE availability SET date = $1, start_time = $2, end_time = $3, description = $4 WHERE id = $5 AND owner_id = $6 AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.availability_id = availability.id)`
		mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
			WithArgs(slotData.Date, slotData.StartTime, slotData.EndTime, slotData.Description, slotID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// The zero-rows re-check finds the slot gone.
		mock.ExpectQuery(regexp.QuoteMeta(selectSlotQuery)).
			WithArgs(slotID, ownerID).
			WillReturnRows(sqlmock.NewRows(slotColumns))

		gone := slotData
		gone.ID = slotID

		_, err := a.UpdateSlot(context.Background(), gone, now)
		require.ErrorIs(t, err, faults.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete slot", func(t *testing.T) {
		slotID := uuid.New()
		deleteQuery := `DELETE FROM availability WHERE id = $1 AND owner_id = $2`
		mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
			WithArgs(slotID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := a.DeleteSlot(context.Background(), slotID, ownerID)
		require.NoError(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete slot - owner mismatch", func(t *testing.T) {
		slotID := uuid.New()
		otherOwner := uuid.New()
		deleteQuery := `DELETE FROM availability WHERE id = $1 AND owner_id = $2`
		mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
			WithArgs(slotID, otherOwner).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := a.DeleteSlot(context.Background(), slotID, otherOwner)
		require.ErrorIs(t, err, faults.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
