package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

// BookingRepository keeps the booking set in process memory, in insertion
// order. It is the default backend and the one the race tests exercise.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []domain.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) LoadAll(_ context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *BookingRepository) ListByVilla(_ context.Context, villaID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, 0)
	for i := range r.bookings {
		if r.bookings[i].VillaID == villaID {
			out = append(out, r.bookings[i])
		}
	}
	return out, nil
}

func (r *BookingRepository) ListByLineUser(_ context.Context, lineUserID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, 0)
	for i := range r.bookings {
		if r.bookings[i].LineUserID == lineUserID {
			out = append(out, r.bookings[i])
		}
	}
	return out, nil
}

func (r *BookingRepository) Append(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
			r.bookings[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrBookingNotFound
}
