package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
	"github.com/tumansdev/angthong-poolvilla/internal/core/ports"
)

// Field order matters: validation failures surface the first missing field
// in this order.
type CreateBookingRequest struct {
	VillaID         string `json:"villaId" validate:"required"`
	GuestName       string `json:"guestName" validate:"required"`
	GuestPhone      string `json:"guestPhone" validate:"required"`
	GuestEmail      string `json:"guestEmail,omitempty"`
	CheckIn         string `json:"checkIn" validate:"required"`
	CheckOut        string `json:"checkOut" validate:"required"`
	Guests          int    `json:"guests"`
	Notes           string `json:"notes,omitempty"`
	LineUserID      string `json:"lineUserId,omitempty"`
	LineDisplayName string `json:"lineDisplayName,omitempty"`
	LinePictureURL  string `json:"linePictureUrl,omitempty"`
}

// BookingService owns creation and status mutation of bookings. Nothing
// else writes booking records.
type BookingService struct {
	catalog      ports.VillaCatalog
	bookingRepo  ports.BookingRepository
	availability *AvailabilityService
	notifier     ports.Notifier
	validate     *validator.Validate
	logger       *zap.Logger

	// villaLocks serializes conflict-check plus append per villa, closing
	// the check-then-write race for in-process deployments.
	villaLocks sync.Map
}

func NewBookingService(
	catalog ports.VillaCatalog,
	bookingRepo ports.BookingRepository,
	availability *AvailabilityService,
	notifier ports.Notifier,
	logger *zap.Logger,
) *BookingService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &BookingService{
		catalog:      catalog,
		bookingRepo:  bookingRepo,
		availability: availability,
		notifier:     notifier,
		validate:     v,
		logger:       logger,
	}
}

// CreateBooking validates the request, prices the stay, assigns an id and
// persists the record with status pending. Validation short-circuits on the
// first failure, in the order: required fields, villa lookup, date range,
// guest count, conflict check.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &domain.MissingFieldError{Field: verrs[0].Field()}
		}
		return nil, err
	}

	villa, err := s.catalog.GetVilla(req.VillaID)
	if err != nil {
		return nil, err
	}

	checkIn, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		return nil, domain.ErrInvalidDateRange
	}
	checkOut, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		return nil, domain.ErrInvalidDateRange
	}
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidDateRange
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	if !villa.CanAccommodate(guests) {
		return nil, domain.ErrGuestLimit
	}

	lock := s.villaLock(req.VillaID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := s.availability.FindConflict(ctx, req.VillaID, checkIn, checkOut, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &domain.DateConflictError{ConflictID: conflict.ID}
	}

	nights := domain.Nights(checkIn, checkOut)
	now := time.Now().UTC()

	id, err := s.freshID(ctx, now)
	if err != nil {
		return nil, err
	}

	lineUserID := req.LineUserID
	if lineUserID == "" {
		lineUserID = "web-user"
	}
	lineDisplayName := req.LineDisplayName
	if lineDisplayName == "" {
		lineDisplayName = req.GuestName
	}

	booking := &domain.Booking{
		ID:              id,
		VillaID:         req.VillaID,
		GuestName:       req.GuestName,
		GuestPhone:      req.GuestPhone,
		GuestEmail:      req.GuestEmail,
		LineUserID:      lineUserID,
		LineDisplayName: lineDisplayName,
		LinePictureURL:  req.LinePictureURL,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          nights,
		Guests:          guests,
		TotalPrice:      nights * villa.PricePerNight,
		Status:          domain.BookingPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.bookingRepo.Append(ctx, booking); err != nil {
		s.logger.Error("failed to persist booking",
			zap.String("villa_id", req.VillaID),
			zap.String("check_in", req.CheckIn),
			zap.String("check_out", req.CheckOut),
			zap.Error(err))
		return nil, &domain.PersistenceError{Op: "append booking", Err: err}
	}

	s.availability.InvalidateBlockedDates(ctx, req.VillaID)

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("villa_id", booking.VillaID),
		zap.Int("nights", booking.Nights),
		zap.Int("total_price", booking.TotalPrice))

	if s.notifier != nil {
		go s.notifyCreated(*booking)
	}

	return booking, nil
}

// UpdateStatus transitions a booking along the lifecycle, refreshing
// updatedAt. Dates, price and guest fields are never touched here.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, next domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "load booking", Err: err}
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, &domain.InvalidTransitionError{From: booking.Status, To: next}
	}

	now := time.Now().UTC()
	if err := s.bookingRepo.UpdateStatus(ctx, id, next, now); err != nil {
		s.logger.Error("failed to update booking status",
			zap.String("booking_id", id),
			zap.String("status", string(next)),
			zap.Error(err))
		return nil, &domain.PersistenceError{Op: "update booking status", Err: err}
	}

	booking.Status = next
	booking.UpdatedAt = now

	s.availability.InvalidateBlockedDates(ctx, booking.VillaID)

	s.logger.Info("booking status updated",
		zap.String("booking_id", id),
		zap.String("status", string(next)))

	return booking, nil
}

// RunAutoComplete periodically moves checked-in bookings whose checkout
// date has passed to completed, through the ordinary transition path.
func (s *BookingService) RunAutoComplete(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("auto-complete worker started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("auto-complete worker stopped")
			return
		case <-ticker.C:
			s.completeFinishedStays(ctx)
		}
	}
}

func (s *BookingService) completeFinishedStays(ctx context.Context) {
	bookings, err := s.bookingRepo.LoadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load bookings for auto-complete", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	for i := range bookings {
		b := &bookings[i]
		if b.Status != domain.BookingCheckedIn {
			continue
		}
		if b.CheckOut.After(now) || domain.SameDate(b.CheckOut, now) {
			continue
		}
		if _, err := s.UpdateStatus(ctx, b.ID, domain.BookingCompleted); err != nil {
			s.logger.Warn("failed to auto-complete booking", zap.String("booking_id", b.ID), zap.Error(err))
		} else {
			s.logger.Info("booking auto-completed", zap.String("booking_id", b.ID))
		}
	}
}

func (s *BookingService) notifyCreated(b domain.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.notifier.BookingCreated(ctx, &b); err != nil {
		s.logger.Warn("booking notification failed", zap.String("booking_id", b.ID), zap.Error(err))
	}
}

// freshID draws a new booking id and confirms the store has not seen it.
// The generation scheme makes collisions practically unreachable, so a
// handful of attempts is plenty.
func (s *BookingService) freshID(ctx context.Context, now time.Time) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		id := domain.NewBookingID(now)
		_, err := s.bookingRepo.GetByID(ctx, id)
		if errors.Is(err, domain.ErrBookingNotFound) {
			return id, nil
		}
		if err != nil {
			return "", &domain.PersistenceError{Op: "check booking id", Err: err}
		}
	}
	return "", fmt.Errorf("could not generate a unique booking id")
}

func (s *BookingService) villaLock(villaID string) *sync.Mutex {
	lock, _ := s.villaLocks.LoadOrStore(villaID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
