package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
	"github.com/tumansdev/angthong-poolvilla/internal/core/ports"
)

const blockedCacheTTL = 5 * time.Minute

// AvailabilityService answers conflict and blocked-date questions over the
// active bookings of a villa. Blocked-date lists are cached in Redis and
// invalidated whenever a booking of that villa is created or changes status.
type AvailabilityService struct {
	bookingRepo ports.BookingRepository
	cache       *redis.Client
	logger      *zap.Logger
}

func NewAvailabilityService(bookingRepo ports.BookingRepository, cache *redis.Client, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

func blockedCacheKey(villaID string) string {
	return fmt.Sprintf("blocked:%s", villaID)
}

// FindConflict returns the first active booking of the villa whose
// [checkIn, checkOut) range overlaps the requested one, or nil when the
// range is free. Cancelled and completed bookings are never conflict
// sources. excludeID skips one booking, for re-checks of an existing record.
func (s *AvailabilityService) FindConflict(ctx context.Context, villaID string, checkIn, checkOut time.Time, excludeID string) (*domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByVilla(ctx, villaID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list bookings by villa", Err: err}
	}

	for i := range bookings {
		b := &bookings[i]
		if b.ID == excludeID || !b.Status.IsActive() {
			continue
		}
		if domain.Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return b, nil
		}
	}

	return nil, nil
}

// BlockedDates lists every occupied night of the villa as YYYY-MM-DD
// strings, checkout days excluded. A villa with no active bookings yields
// an empty list. Cache failures degrade to a direct read.
func (s *AvailabilityService) BlockedDates(ctx context.Context, villaID string) ([]string, error) {
	key := blockedCacheKey(villaID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return dates, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Debug("blocked-dates cache read failed", zap.String("villa_id", villaID), zap.Error(err))
		}
	}

	bookings, err := s.bookingRepo.ListByVilla(ctx, villaID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list bookings by villa", Err: err}
	}

	dates := make([]string, 0)
	for i := range bookings {
		b := &bookings[i]
		if !b.Status.IsActive() {
			continue
		}
		dates = append(dates, domain.DatesBetween(b.CheckIn, b.CheckOut)...)
	}

	if s.cache != nil {
		payload, err := json.Marshal(dates)
		if err == nil {
			if err := s.cache.Set(ctx, key, payload, blockedCacheTTL).Err(); err != nil {
				s.logger.Debug("blocked-dates cache write failed", zap.String("villa_id", villaID), zap.Error(err))
			}
		}
	}

	return dates, nil
}

// InvalidateBlockedDates drops the villa's cached blocked-date list after a
// write touching its bookings.
func (s *AvailabilityService) InvalidateBlockedDates(ctx context.Context, villaID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, blockedCacheKey(villaID)).Err(); err != nil {
		s.logger.Debug("blocked-dates cache invalidation failed", zap.String("villa_id", villaID), zap.Error(err))
	}
}
