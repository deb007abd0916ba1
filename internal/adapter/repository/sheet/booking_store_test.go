package sheet_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/adapter/repository/sheet"
	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

func testStore(t *testing.T) *sheet.BookingStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	return sheet.NewBookingStore(path, zap.NewNop())
}

func sampleBooking(t *testing.T, id string) domain.Booking {
	t.Helper()
	checkIn, err := domain.ParseDate("2024-07-01")
	require.NoError(t, err)
	checkOut, err := domain.ParseDate("2024-07-03")
	require.NoError(t, err)

	now := time.Date(2024, 6, 20, 10, 30, 0, 0, time.UTC)
	return domain.Booking{
		ID:              id,
		VillaID:         "villa-sirin",
		GuestName:       "Somchai P.",
		GuestPhone:      "0812345678",
		GuestEmail:      "somchai@example.com",
		LineUserID:      "U1234567890",
		LineDisplayName: "Somchai",
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          2,
		Guests:          2,
		TotalPrice:      9000,
		Status:          domain.BookingPending,
		Notes:           "late arrival",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestBookingStore_MissingWorkbookReadsEmpty(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	bookings, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	byVilla, err := store.ListByVilla(ctx, "villa-sirin")
	require.NoError(t, err)
	assert.Empty(t, byVilla)

	_, err = store.GetByID(ctx, "APV-MISSING")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingStore_AppendAndLoad(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := sampleBooking(t, "APV-TEST-0001")
	second := sampleBooking(t, "APV-TEST-0002")
	second.VillaID = "villa-chandra"
	second.LineUserID = "U9876543210"

	require.NoError(t, store.Append(ctx, &first))
	require.NoError(t, store.Append(ctx, &second))

	bookings, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "APV-TEST-0001", bookings[0].ID, "row order is append order")
	assert.Equal(t, "APV-TEST-0002", bookings[1].ID)

	got := bookings[0]
	assert.Equal(t, first.VillaID, got.VillaID)
	assert.Equal(t, first.GuestName, got.GuestName)
	assert.Equal(t, "2024-07-01", domain.FormatDate(got.CheckIn))
	assert.Equal(t, "2024-07-03", domain.FormatDate(got.CheckOut))
	assert.Equal(t, 2, got.Nights)
	assert.Equal(t, 9000, got.TotalPrice)
	assert.Equal(t, domain.BookingPending, got.Status)
	assert.Equal(t, "late arrival", got.Notes)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	byVilla, err := store.ListByVilla(ctx, "villa-chandra")
	require.NoError(t, err)
	require.Len(t, byVilla, 1)
	assert.Equal(t, "APV-TEST-0002", byVilla[0].ID)

	byUser, err := store.ListByLineUser(ctx, "U1234567890")
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "APV-TEST-0001", byUser[0].ID)
}

func TestBookingStore_UpdateStatusPatchesCells(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	booking := sampleBooking(t, "APV-TEST-0001")
	require.NoError(t, store.Append(ctx, &booking))

	patchedAt := time.Date(2024, 6, 21, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpdateStatus(ctx, "APV-TEST-0001", domain.BookingConfirmed, patchedAt))

	got, err := store.GetByID(ctx, "APV-TEST-0001")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.True(t, patchedAt.Equal(got.UpdatedAt))

	// Only status and updatedAt may change.
	assert.Equal(t, booking.GuestName, got.GuestName)
	assert.Equal(t, booking.TotalPrice, got.TotalPrice)
	assert.True(t, booking.CreatedAt.Equal(got.CreatedAt))
}

func TestBookingStore_UpdateStatusUnknownID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	booking := sampleBooking(t, "APV-TEST-0001")
	require.NoError(t, store.Append(ctx, &booking))

	err := store.UpdateStatus(ctx, "APV-GHOST", domain.BookingConfirmed, time.Now())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
