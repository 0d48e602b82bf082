package domain

// OperationalSnapshot holds today's front-desk counts for one property.
// Best-effort: any fetch failure degrades to the zero value.
type OperationalSnapshot struct {
	CheckIns      int `json:"checkIns"`
	CheckOuts     int `json:"checkOuts"`
	InHouse       int `json:"inHouse"`
	StayOvers     int `json:"stayOvers"`
	Cancellations int `json:"cancellations"`
}

// PropertySummary is the per-property aggregate for one date range. It is
// recomputed on every request and exists only for the duration of one
// aggregation pass. Reservations are carried so the portfolio reduction can
// fold each of them exactly once.
type PropertySummary struct {
	PropertyID     string              `json:"propertyId"`
	PropertyName   string              `json:"propertyName"`
	Capacity       int                 `json:"capacity"`
	TotalBookings  int                 `json:"totalBookings"`
	Revenue        float64             `json:"revenue"`
	PrivateRooms   int                 `json:"privateRooms"`
	NoShowCount    int                 `json:"noShowCount"`
	BedsRemaining  int                 `json:"bedsRemaining"`
	Occupancy      float64             `json:"occupancy"`
	AvailableRooms []AvailableRoom     `json:"availableRooms"`
	Snapshot       OperationalSnapshot `json:"snapshot"`
	Reservations   []Reservation       `json:"-"`
}

// ZeroPropertySummary is the failure-fallback record for a property whose
// fetch failed: all counts zero, tagged with the property's identity so the
// portfolio report still lists it.
func ZeroPropertySummary(property Property) PropertySummary {
	return PropertySummary{
		PropertyID:     property.ID,
		PropertyName:   property.Name,
		Capacity:       property.Capacity,
		AvailableRooms: []AvailableRoom{},
	}
}
