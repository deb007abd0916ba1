package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
	"github.com/tumansdev/angthong-poolvilla/internal/core/services"
)

type BookingHandler struct {
	bookings *services.BookingService
	queries  *services.QueryService
}

func NewBookingHandler(bookings *services.BookingService, queries *services.QueryService) *BookingHandler {
	return &BookingHandler{bookings: bookings, queries: queries}
}

type BookingResponse struct {
	ID              string `json:"id"`
	VillaID         string `json:"villaId"`
	GuestName       string `json:"guestName"`
	GuestPhone      string `json:"guestPhone"`
	GuestEmail      string `json:"guestEmail,omitempty"`
	LineUserID      string `json:"lineUserId"`
	LineDisplayName string `json:"lineDisplayName"`
	LinePictureURL  string `json:"linePictureUrl,omitempty"`
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	Nights          int    `json:"nights"`
	Guests          int    `json:"guests"`
	TotalPrice      int    `json:"totalPrice"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		VillaID:         b.VillaID,
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		LineUserID:      b.LineUserID,
		LineDisplayName: b.LineDisplayName,
		LinePictureURL:  b.LinePictureURL,
		CheckIn:         domain.FormatDate(b.CheckIn),
		CheckOut:        domain.FormatDate(b.CheckOut),
		Nights:          b.Nights,
		Guests:          b.Guests,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i := range bookings {
		out[i] = toBookingResponse(&bookings[i])
	}
	return out
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

// ListBookings handles GET /bookings and GET /bookings?stats=true.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("stats") == "true" {
		h.dashboardStats(w, r)
		return
	}

	limit, offset := pagination(r)
	bookings, err := h.queries.ListBookings(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid asOf date")
			return
		}
		asOf = parsed
	}

	stats, err := h.queries.DashboardStats(r.Context(), asOf)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetBooking handles GET /bookings/{id}.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.queries.GetBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// UpdateStatus handles PATCH /bookings/{id} with body {"status": "..."}.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	status, ok := domain.ParseBookingStatus(body.Status)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid status value")
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// ListByLineUser handles GET /bookings/user/{lineUserId}.
func (h *BookingHandler) ListByLineUser(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	bookings, err := h.queries.ListByLineUser(r.Context(), r.PathValue("lineUserId"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
