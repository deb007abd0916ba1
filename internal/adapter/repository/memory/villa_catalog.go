package memory

import (
	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

// VillaCatalog is the static registry of rental units, seeded at deploy
// time. List order is definition order, cheapest villa first.
type VillaCatalog struct {
	villas []domain.Villa
	byID   map[string]int
}

func NewVillaCatalog() *VillaCatalog {
	c := &VillaCatalog{
		villas: seedVillas(),
		byID:   make(map[string]int),
	}
	for i := range c.villas {
		c.byID[c.villas[i].ID] = i
	}
	return c
}

func (c *VillaCatalog) GetVilla(id string) (*domain.Villa, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrVillaNotFound
	}
	villa := c.villas[i]
	return &villa, nil
}

func (c *VillaCatalog) ListVillas() []domain.Villa {
	out := make([]domain.Villa, len(c.villas))
	copy(out, c.villas)
	return out
}

func seedVillas() []domain.Villa {
	return []domain.Villa{
		{
			ID:            "villa-sirin",
			Name:          "Sirin Villa",
			Description:   "A contemporary Thai-style villa with a warm, homely feel and a mid-sized private pool. Suits couples and small families looking for privacy.",
			PricePerNight: 4500,
			MaxGuests:     4,
			Bedrooms:      2,
			Bathrooms:     2,
			Amenities:     []string{"Private pool", "Air conditioning", "Free WiFi", "Parking", "Kitchenette", "Smart TV"},
			Images: []string{
				"https://images.unsplash.com/photo-1564501049412-61c2a3083791?w=800",
				"https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=800",
			},
			Rules: []string{"Check-in 14:00 / check-out 12:00", "No parties", "Quiet hours after 22:00", "No smoking indoors"},
		},
		{
			ID:            "villa-chandra",
			Name:          "Chandra Residence",
			Description:   "A garden villa with a free-form pool and shaded seating areas, quiet and green. Made for slow mornings and long afternoons by the water.",
			PricePerNight: 5900,
			MaxGuests:     5,
			Bedrooms:      2,
			Bathrooms:     2,
			Amenities:     []string{"Private pool", "Private garden", "Air conditioning", "Free WiFi", "Parking", "Full kitchen", "Smart TV", "Coffee machine"},
			Images: []string{
				"https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800",
				"https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800",
			},
			Rules: []string{"Check-in 14:00 / check-out 12:00", "No parties", "Quiet hours after 22:00", "Pets allowed on request"},
		},
		{
			ID:            "villa-nakara",
			Name:          "Nakara Pool Villa",
			Description:   "A modern villa with a long lap pool, open-plan living space and an outdoor dining sala. Comfortable for two families travelling together.",
			PricePerNight: 7500,
			MaxGuests:     6,
			Bedrooms:      3,
			Bathrooms:     3,
			Amenities:     []string{"Private lap pool", "Outdoor dining sala", "Air conditioning", "Free WiFi", "Parking", "Full kitchen", "Smart TV", "BBQ grill"},
			Images: []string{
				"https://images.unsplash.com/photo-1580587771525-78b9dba3b914?w=800",
				"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800",
			},
			Rules: []string{"Check-in 14:00 / check-out 12:00", "No parties", "Quiet hours after 22:00", "No smoking indoors"},
		},
		{
			ID:            "villa-rattana",
			Name:          "Rattana Grand Villa",
			Description:   "A spacious two-storey villa with a large pool, kids' shallow zone and a game room. Built for group stays and family gatherings.",
			PricePerNight: 9900,
			MaxGuests:     8,
			Bedrooms:      4,
			Bathrooms:     4,
			Amenities:     []string{"Large private pool", "Kids' pool zone", "Game room", "Air conditioning", "Free WiFi", "Parking", "Full kitchen", "Smart TV", "BBQ grill", "Karaoke"},
			Images: []string{
				"https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800",
				"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800",
			},
			Rules: []string{"Check-in 14:00 / check-out 12:00", "Parties allowed until 22:00", "No smoking indoors"},
		},
		{
			ID:            "villa-ayara",
			Name:          "Ayara Luxury Estate",
			Description:   "The flagship estate: infinity pool, private cinema, in-villa chef kitchen and panoramic hillside views. The most luxurious stay in the collection.",
			PricePerNight: 15900,
			MaxGuests:     10,
			Bedrooms:      5,
			Bathrooms:     6,
			Amenities:     []string{"Infinity pool", "Private cinema", "Chef kitchen", "Wine cellar", "Air conditioning", "Free WiFi", "Parking", "Smart TV", "BBQ grill", "Jacuzzi"},
			Images: []string{
				"https://images.unsplash.com/photo-1600047509807-ba8f99d2cdde?w=800",
				"https://images.unsplash.com/photo-1600566753190-17f0baa2a6c3?w=800",
			},
			Rules: []string{"Check-in 14:00 / check-out 12:00", "Events allowed on request", "No smoking indoors"},
		},
	}
}
