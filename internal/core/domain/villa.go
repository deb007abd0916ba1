package domain

type Villa struct {
	ID            string
	Name          string
	Description   string
	PricePerNight int
	MaxGuests     int
	Bedrooms      int
	Bathrooms     int
	Amenities     []string
	Images        []string
	Rules         []string
}

func (v *Villa) CanAccommodate(guests int) bool {
	return guests >= 1 && guests <= v.MaxGuests
}
