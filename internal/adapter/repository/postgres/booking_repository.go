package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

const bookingColumns = `id, villa_id, guest_name, guest_phone, guest_email,
	line_user_id, line_display_name, line_picture_url,
	check_in, check_out, nights, guests, total_price,
	status, notes, created_at, updated_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) LoadAll(ctx context.Context) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY created_at, id`, bookingColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	var b domain.Booking
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByVilla(ctx context.Context, villaID string) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE villa_id = $1 ORDER BY created_at, id`, bookingColumns)

	rows, err := r.db.QueryContext(ctx, query, villaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *BookingRepository) ListByLineUser(ctx context.Context, lineUserID string) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE line_user_id = $1 ORDER BY created_at, id`, bookingColumns)

	rows, err := r.db.QueryContext(ctx, query, lineUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *BookingRepository) Append(ctx context.Context, b *domain.Booking) error {
	query := `
	INSERT INTO bookings (id, villa_id, guest_name, guest_phone, guest_email,
		line_user_id, line_display_name, line_picture_url,
		check_in, check_out, nights, guests, total_price,
		status, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.VillaID, b.GuestName, b.GuestPhone, b.GuestEmail,
		b.LineUserID, b.LineDisplayName, b.LinePictureURL,
		b.CheckIn, b.CheckOut, b.Nights, b.Guests, b.TotalPrice,
		string(b.Status), b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	query := `
	UPDATE bookings
	SET status = $1, updated_at = $2
	WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, string(status), updatedAt, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	var status string
	err := row.Scan(
		&b.ID, &b.VillaID, &b.GuestName, &b.GuestPhone, &b.GuestEmail,
		&b.LineUserID, &b.LineDisplayName, &b.LinePictureURL,
		&b.CheckIn, &b.CheckOut, &b.Nights, &b.Guests, &b.TotalPrice,
		&status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	b.Status = domain.BookingStatus(status)
	return nil
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
