// Package sheet persists bookings in an .xlsx workbook, one row per
// booking, mirroring the spreadsheet the property owners already work in.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

const (
	bookingsSheet = "Bookings"
	columnCount   = 17

	statusColumn    = 14
	updatedAtColumn = 17
)

var bookingHeader = []string{
	"id", "villaId", "guestName", "guestPhone", "guestEmail",
	"lineUserId", "lineDisplayName", "linePictureUrl",
	"checkIn", "checkOut", "nights", "guests", "totalPrice",
	"status", "notes", "createdAt", "updatedAt",
}

// BookingStore reads and writes the Bookings sheet of a workbook on disk.
// A missing workbook or sheet reads as an empty booking set. All access is
// serialized; the workbook format has no finer-grained locking to offer.
type BookingStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewBookingStore(path string, logger *zap.Logger) *BookingStore {
	return &BookingStore{path: path, logger: logger}
}

func (s *BookingStore) LoadAll(_ context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAllLocked()
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadAllLocked()
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			b := bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (s *BookingStore) ListByVilla(_ context.Context, villaID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadAllLocked()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0)
	for i := range bookings {
		if bookings[i].VillaID == villaID {
			out = append(out, bookings[i])
		}
	}
	return out, nil
}

func (s *BookingStore) ListByLineUser(_ context.Context, lineUserID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadAllLocked()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0)
	for i := range bookings {
		if bookings[i].LineUserID == lineUserID {
			out = append(out, bookings[i])
		}
	}
	return out, nil
}

func (s *BookingStore) Append(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", bookingsSheet, err)
	}

	next := len(rows) + 1
	for col, value := range bookingToRow(booking) {
		cell, err := excelize.CoordinatesToCellName(col+1, next)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(bookingsSheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrBookingNotFound
		}
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	rowIndex := -1
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 0 && rows[i][0] == id {
			rowIndex = i + 1
			break
		}
	}
	if rowIndex == -1 {
		return domain.ErrBookingNotFound
	}

	statusCell, _ := excelize.CoordinatesToCellName(statusColumn, rowIndex)
	updatedCell, _ := excelize.CoordinatesToCellName(updatedAtColumn, rowIndex)

	if err := f.SetCellValue(bookingsSheet, statusCell, string(status)); err != nil {
		return fmt.Errorf("failed to patch status cell: %w", err)
	}
	if err := f.SetCellValue(bookingsSheet, updatedCell, updatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to patch updatedAt cell: %w", err)
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (s *BookingStore) loadAllLocked() ([]domain.Booking, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Booking{}, nil
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	if err != nil {
		// The sheet has not been written yet.
		return []domain.Booking{}, nil
	}

	bookings := make([]domain.Booking, 0)
	for i := 1; i < len(rows); i++ {
		b, err := rowToBooking(rows[i])
		if err != nil {
			s.logger.Warn("skipping malformed booking row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// openOrCreate opens the workbook, creating it with a header row the first
// time a booking is written.
func (s *BookingStore) openOrCreate() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		idx, err := f.GetSheetIndex(bookingsSheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to look up sheet: %w", err)
		}
		if idx == -1 {
			if err := writeSheetWithHeader(f); err != nil {
				f.Close()
				return nil, err
			}
		}
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	f = excelize.NewFile()
	if err := writeSheetWithHeader(f); err != nil {
		f.Close()
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeSheetWithHeader(f *excelize.File) error {
	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", bookingsSheet, err)
	}
	f.SetActiveSheet(index)

	for col, name := range bookingHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(bookingsSheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}
	return nil
}

func bookingToRow(b *domain.Booking) []string {
	row := make([]string, columnCount)
	row[0] = b.ID
	row[1] = b.VillaID
	row[2] = b.GuestName
	row[3] = b.GuestPhone
	row[4] = b.GuestEmail
	row[5] = b.LineUserID
	row[6] = b.LineDisplayName
	row[7] = b.LinePictureURL
	row[8] = domain.FormatDate(b.CheckIn)
	row[9] = domain.FormatDate(b.CheckOut)
	row[10] = strconv.Itoa(b.Nights)
	row[11] = strconv.Itoa(b.Guests)
	row[12] = strconv.Itoa(b.TotalPrice)
	row[13] = string(b.Status)
	row[14] = b.Notes
	row[15] = b.CreatedAt.Format(time.RFC3339)
	row[16] = b.UpdatedAt.Format(time.RFC3339)
	return row
}

func rowToBooking(row []string) (domain.Booking, error) {
	// GetRows drops trailing empty cells; pad back to the full layout.
	cells := make([]string, columnCount)
	copy(cells, row)

	if cells[0] == "" {
		return domain.Booking{}, fmt.Errorf("row has no booking id")
	}

	checkIn, err := domain.ParseDate(cells[8])
	if err != nil {
		return domain.Booking{}, fmt.Errorf("bad checkIn %q: %w", cells[8], err)
	}
	checkOut, err := domain.ParseDate(cells[9])
	if err != nil {
		return domain.Booking{}, fmt.Errorf("bad checkOut %q: %w", cells[9], err)
	}

	nights, _ := strconv.Atoi(cells[10])
	guests, _ := strconv.Atoi(cells[11])
	totalPrice, _ := strconv.Atoi(cells[12])

	status, ok := domain.ParseBookingStatus(cells[13])
	if !ok {
		status = domain.BookingPending
	}

	createdAt, _ := time.Parse(time.RFC3339, cells[15])
	updatedAt, _ := time.Parse(time.RFC3339, cells[16])

	return domain.Booking{
		ID:              cells[0],
		VillaID:         cells[1],
		GuestName:       cells[2],
		GuestPhone:      cells[3],
		GuestEmail:      cells[4],
		LineUserID:      cells[5],
		LineDisplayName: cells[6],
		LinePictureURL:  cells[7],
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          nights,
		Guests:          guests,
		TotalPrice:      totalPrice,
		Status:          status,
		Notes:           cells[14],
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}
