package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
	"github.com/tumansdev/angthong-poolvilla/internal/core/ports"
)

type StatsSummary struct {
	TodayBookings   int `json:"todayBookings"`
	MonthlyBookings int `json:"monthlyBookings"`
	PendingBookings int `json:"pendingBookings"`
	MonthlyRevenue  int `json:"monthlyRevenue"`
}

// QueryService serves read-only views over the booking set. Every
// operation tolerates an empty set.
type QueryService struct {
	bookingRepo ports.BookingRepository
	logger      *zap.Logger
}

func NewQueryService(bookingRepo ports.BookingRepository, logger *zap.Logger) *QueryService {
	return &QueryService{bookingRepo: bookingRepo, logger: logger}
}

func (s *QueryService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "load booking", Err: err}
	}
	return booking, nil
}

func (s *QueryService) ListBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.LoadAll(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load bookings", Err: err}
	}
	return paginate(bookings, limit, offset), nil
}

func (s *QueryService) ListByLineUser(ctx context.Context, lineUserID string, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByLineUser(ctx, lineUserID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list bookings by line user", Err: err}
	}
	return paginate(bookings, limit, offset), nil
}

func (s *QueryService) ListByVilla(ctx context.Context, villaID string, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByVilla(ctx, villaID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list bookings by villa", Err: err}
	}
	return paginate(bookings, limit, offset), nil
}

// DashboardStats aggregates the booking set as of the given instant.
// Today and monthly counts key on check-in dates; monthly revenue keys on
// creation time, so a booking made this month for a future stay counts
// toward this month's revenue.
func (s *QueryService) DashboardStats(ctx context.Context, asOf time.Time) (*StatsSummary, error) {
	bookings, err := s.bookingRepo.LoadAll(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load bookings", Err: err}
	}

	stats := &StatsSummary{}
	for i := range bookings {
		b := &bookings[i]
		if domain.SameDate(b.CheckIn, asOf) {
			stats.TodayBookings++
		}
		if sameMonth(b.CheckIn, asOf) {
			stats.MonthlyBookings++
		}
		if b.Status == domain.BookingPending {
			stats.PendingBookings++
		}
		if sameMonth(b.CreatedAt, asOf) {
			stats.MonthlyRevenue += b.TotalPrice
		}
	}

	return stats, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// paginate applies limit/offset after filtering. Zero values mean "all".
func paginate(bookings []domain.Booking, limit, offset int) []domain.Booking {
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	if offset > 0 {
		if offset >= len(bookings) {
			return []domain.Booking{}
		}
		bookings = bookings[offset:]
	}
	if limit > 0 && limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings
}
