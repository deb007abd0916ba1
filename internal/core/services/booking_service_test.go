package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
	"github.com/tumansdev/angthong-poolvilla/internal/core/ports/mocks"
	"github.com/tumansdev/angthong-poolvilla/internal/core/services"
)

func testVilla() *domain.Villa {
	return &domain.Villa{
		ID:            "villa-sirin",
		Name:          "Sirin Villa",
		PricePerNight: 1000,
		MaxGuests:     4,
	}
}

func validRequest() services.CreateBookingRequest {
	return services.CreateBookingRequest{
		VillaID:    "villa-sirin",
		GuestName:  "Somchai P.",
		GuestPhone: "0812345678",
		CheckIn:    "2024-07-01",
		CheckOut:   "2024-07-03",
		Guests:     2,
		LineUserID: "U1234567890",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)
	mockRepo.On("ListByVilla", ctx, "villa-sirin").Return([]domain.Booking{}, nil)
	mockRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(nil, domain.ErrBookingNotFound)
	mockRepo.On("Append", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	mockRedis.ExpectDel("blocked:villa-sirin").SetVal(1)

	booking, err := service.CreateBooking(ctx, validRequest())

	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, 2, booking.Nights)
	assert.Equal(t, 2000, booking.TotalPrice)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Contains(t, booking.ID, "APV-")
	assert.Equal(t, booking.CreatedAt, booking.UpdatedAt)
	assert.Equal(t, "U1234567890", booking.LineUserID)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateBooking_MissingField(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	req := validRequest()
	req.GuestPhone = ""

	booking, err := service.CreateBooking(context.Background(), req)

	assert.Nil(t, booking)
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "guestPhone", missing.Field)
}

func TestCreateBooking_VillaNotFound(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	mockCatalog.On("GetVilla", "villa-ghost").Return(nil, domain.ErrVillaNotFound)

	req := validRequest()
	req.VillaID = "villa-ghost"

	booking, err := service.CreateBooking(context.Background(), req)

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrVillaNotFound)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"zero nights", "2024-07-01", "2024-07-01"},
		{"checkout before checkin", "2024-07-03", "2024-07-01"},
		{"unparsable date", "01/07/2024", "2024-07-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.CheckIn = tt.checkIn
			req.CheckOut = tt.checkOut

			booking, err := service.CreateBooking(context.Background(), req)

			assert.Nil(t, booking)
			assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		})
	}
}

func TestCreateBooking_GuestLimit(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)

	req := validRequest()
	req.Guests = 9

	booking, err := service.CreateBooking(context.Background(), req)

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrGuestLimit)
}

func TestCreateBooking_DateConflict(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	existing := domain.Booking{
		ID:       "APV-EXISTING-0001",
		VillaID:  "villa-sirin",
		CheckIn:  mustParse(t, "2024-07-02"),
		CheckOut: mustParse(t, "2024-07-04"),
		Status:   domain.BookingConfirmed,
	}

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)
	mockRepo.On("ListByVilla", ctx, "villa-sirin").Return([]domain.Booking{existing}, nil)

	booking, err := service.CreateBooking(ctx, validRequest())

	assert.Nil(t, booking)
	var conflict *domain.DateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "APV-EXISTING-0001", conflict.ConflictID)
}

func TestCreateBooking_TerminalBookingsDoNotConflict(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	cancelled := domain.Booking{
		ID:       "APV-CANCELLED-001",
		VillaID:  "villa-sirin",
		CheckIn:  mustParse(t, "2024-07-01"),
		CheckOut: mustParse(t, "2024-07-03"),
		Status:   domain.BookingCancelled,
	}

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)
	mockRepo.On("ListByVilla", ctx, "villa-sirin").Return([]domain.Booking{cancelled}, nil)
	mockRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(nil, domain.ErrBookingNotFound)
	mockRepo.On("Append", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	mockRedis.ExpectDel("blocked:villa-sirin").SetVal(1)

	booking, err := service.CreateBooking(ctx, validRequest())

	require.NoError(t, err)
	require.NotNil(t, booking)
}

func TestCreateBooking_PersistenceFailure(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)
	mockRepo.On("ListByVilla", ctx, "villa-sirin").Return([]domain.Booking{}, nil)
	mockRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(nil, domain.ErrBookingNotFound)
	mockRepo.On("Append", ctx, mock.AnythingOfType("*domain.Booking")).Return(errors.New("sheet write failed"))

	booking, err := service.CreateBooking(ctx, validRequest())

	assert.Nil(t, booking)
	var persistence *domain.PersistenceError
	require.ErrorAs(t, err, &persistence)
}

func TestCreateBooking_NotifiesChannel(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	mockNotifier := mocks.NewNotifier(t)
	cache, mockRedis := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, mockNotifier, zap.NewNop())

	ctx := context.Background()

	mockCatalog.On("GetVilla", "villa-sirin").Return(testVilla(), nil)
	mockRepo.On("ListByVilla", ctx, "villa-sirin").Return([]domain.Booking{}, nil)
	mockRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(nil, domain.ErrBookingNotFound)
	mockRepo.On("Append", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	mockRedis.ExpectDel("blocked:villa-sirin").SetVal(1)

	notified := make(chan struct{})
	mockNotifier.On("BookingCreated", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(mock.Arguments) { close(notified) }).
		Return(nil)

	_, err := service.CreateBooking(ctx, validRequest())
	require.NoError(t, err)

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never sent")
	}
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	pending := &domain.Booking{
		ID:      "APV-TEST-0001",
		VillaID: "villa-sirin",
		Status:  domain.BookingPending,
	}

	mockRepo.On("GetByID", ctx, "APV-TEST-0001").Return(pending, nil)
	mockRepo.On("UpdateStatus", ctx, "APV-TEST-0001", domain.BookingConfirmed, mock.AnythingOfType("time.Time")).Return(nil)

	mockRedis.ExpectDel("blocked:villa-sirin").SetVal(1)

	updated, err := service.UpdateStatus(ctx, "APV-TEST-0001", domain.BookingConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	completed := &domain.Booking{
		ID:      "APV-TEST-0002",
		VillaID: "villa-sirin",
		Status:  domain.BookingCompleted,
	}

	mockRepo.On("GetByID", ctx, "APV-TEST-0002").Return(completed, nil)

	updated, err := service.UpdateStatus(ctx, "APV-TEST-0002", domain.BookingConfirmed)

	assert.Nil(t, updated)
	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, domain.BookingCompleted, transition.From)
	assert.Equal(t, domain.BookingConfirmed, transition.To)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	mockCatalog := mocks.NewVillaCatalog(t)
	mockRepo := mocks.NewBookingRepository(t)
	cache, _ := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockRepo, cache, zap.NewNop())
	service := services.NewBookingService(mockCatalog, mockRepo, availability, nil, zap.NewNop())

	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "APV-MISSING-001").Return(nil, domain.ErrBookingNotFound)

	updated, err := service.UpdateStatus(ctx, "APV-MISSING-001", domain.BookingConfirmed)

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
