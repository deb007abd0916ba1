package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCheckedIn BookingStatus = "checked-in"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus maps the wire representation to a status, reporting
// whether the value is one of the known states.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCompleted, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// IsActive reports whether a booking in this status occupies the calendar.
// Cancelled and completed bookings free their dates immediately.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCheckedIn
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn},
	BookingCheckedIn: {BookingCompleted},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Terminal states allow no further transitions.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              string
	VillaID         string
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	LineUserID      string
	LineDisplayName string
	LinePictureURL  string
	CheckIn         time.Time
	CheckOut        time.Time
	Nights          int
	Guests          int
	TotalPrice      int
	Status          BookingStatus
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const bookingIDPrefix = "APV"

// NewBookingID builds a human-shareable booking id from a millisecond
// timestamp and a short random suffix, e.g. APV-LX2K9QZ1-4F0A.
// Uniqueness is best effort; callers re-check against the store.
func NewBookingID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return bookingIDPrefix + "-" + ts + "-" + random
}
