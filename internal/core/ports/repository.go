package ports

import (
	"context"
	"time"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

// BookingRepository is the persistence contract the core depends on.
// Implementations move rows; they never invent or modify business fields.
// Mutation is limited to appending a new record and patching the status
// and updatedAt fields of one record by id.
type BookingRepository interface {
	LoadAll(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByVilla(ctx context.Context, villaID string) ([]domain.Booking, error)
	ListByLineUser(ctx context.Context, lineUserID string) ([]domain.Booking, error)
	Append(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error
}

// VillaCatalog is the read-only registry of rental units, seeded at deploy
// time. List order is catalog definition order, cheapest first.
type VillaCatalog interface {
	GetVilla(id string) (*domain.Villa, error)
	ListVillas() []domain.Villa
}

// Notifier delivers a message about a freshly created booking to an
// external channel. Delivery is best effort and never blocks the booking.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}
