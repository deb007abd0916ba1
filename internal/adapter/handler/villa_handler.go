package handler

import (
	"net/http"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
	"github.com/tumansdev/angthong-poolvilla/internal/core/ports"
	"github.com/tumansdev/angthong-poolvilla/internal/core/services"
)

type VillaResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight int      `json:"pricePerNight"`
	MaxGuests     int      `json:"maxGuests"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	Rules         []string `json:"rules"`
}

func toVillaResponse(v *domain.Villa) VillaResponse {
	return VillaResponse{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		PricePerNight: v.PricePerNight,
		MaxGuests:     v.MaxGuests,
		Bedrooms:      v.Bedrooms,
		Bathrooms:     v.Bathrooms,
		Amenities:     v.Amenities,
		Images:        v.Images,
		Rules:         v.Rules,
	}
}

type VillaHandler struct {
	catalog      ports.VillaCatalog
	availability *services.AvailabilityService
}

func NewVillaHandler(catalog ports.VillaCatalog, availability *services.AvailabilityService) *VillaHandler {
	return &VillaHandler{catalog: catalog, availability: availability}
}

// ListVillas handles GET /villas.
func (h *VillaHandler) ListVillas(w http.ResponseWriter, r *http.Request) {
	villas := h.catalog.ListVillas()
	out := make([]VillaResponse, len(villas))
	for i := range villas {
		out[i] = toVillaResponse(&villas[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetVilla handles GET /villas/{id}.
func (h *VillaHandler) GetVilla(w http.ResponseWriter, r *http.Request) {
	villa, err := h.catalog.GetVilla(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVillaResponse(villa))
}

// BlockedDates handles GET /villas/{id}/blocked-dates. Unknown villa ids
// still answer 404; a villa with no bookings answers an empty list.
func (h *VillaHandler) BlockedDates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.catalog.GetVilla(id); err != nil {
		writeError(w, err)
		return
	}

	dates, err := h.availability.BlockedDates(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"blockedDates": dates})
}
