package domain

// PropertyRow is one property's line in the dashboard property table.
// Occupancy is rounded to the nearest whole percent for display.
type PropertyRow struct {
	Name           string          `json:"name"`
	TotalBookings  int             `json:"totalBookings"`
	Revenue        float64         `json:"revenue"`
	PrivateRooms   int             `json:"privateRooms"`
	Capacity       int             `json:"capacity"`
	Occupancy      int             `json:"occupancy"`
	BedsRemaining  int             `json:"bedsRemaining"`
	AvailableRooms []AvailableRoom `json:"availableRooms"`
}

// CountryRow is one guest-country bucket, sorted descending by bookings and
// truncated to the top ten.
type CountryRow struct {
	Country  string  `json:"country"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
	ADR      float64 `json:"adr"`
}

// PlatformRow is one booking-source bucket, sorted descending by bookings
// and truncated to the top ten.
type PlatformRow struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Revenue float64 `json:"revenue"`
	ADR     float64 `json:"adr"`
}

// BookingSourceRow is one side of the website-vs-other-channels split.
type BookingSourceRow struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// HourlyBucket is one hour-of-day histogram bucket ("00:00".."23:00").
type HourlyBucket struct {
	Hour     string `json:"hour"`
	Bookings int    `json:"bookings"`
}

// DailyBucket is one day-of-week histogram bucket (Mon..Sun).
type DailyBucket struct {
	Day      string `json:"day"`
	Bookings int    `json:"bookings"`
}

// OperationalTotals sums today's front-desk counts across all properties.
type OperationalTotals struct {
	CheckIns      int `json:"checkIns"`
	CheckOuts     int `json:"checkOuts"`
	InHouse       int `json:"inHouse"`
	StayOver      int `json:"stayOver"`
	NoShows       int `json:"noShows"`
	Cancellations int `json:"cancellations"`
}

// PortfolioAggregate is the portfolio-wide booking aggregate: every
// reservation from every property folded exactly once into the relevant
// buckets, plus the derived ADR/RevPAR/occupancy figures.
type PortfolioAggregate struct {
	PropertyRows     []PropertyRow
	BookingSources   []BookingSourceRow
	CountryRows      []CountryRow
	PlatformRows     []PlatformRow
	HourlyData       []HourlyBucket
	DailyData        []DailyBucket
	Operational      OperationalTotals
	TotalBookings    int
	TotalRevenue     float64
	WebsiteBookings  int
	WebsiteRevenue   float64
	ADR              float64
	RevPAR           float64
	OverallOccupancy float64
	TotalBedsLeft    int
	TotalCapacity    int
}

// WebsiteTraffic is the traffic block of the dashboard, including the
// cross-source conversion rate and the revenue-derived ADR/RevPAR.
type WebsiteTraffic struct {
	Sessions          int     `json:"sessions"`
	PageViews         int     `json:"pageViews"`
	AvgEngagementTime string  `json:"avgEngagementTime"`
	NewUsers          int     `json:"newUsers"`
	ActiveUsers       int     `json:"activeUsers"`
	BounceRate        float64 `json:"bounceRate"`
	ADR               float64 `json:"adr"`
	RevPAR            float64 `json:"revpar"`
	Conversion        float64 `json:"conversion"`
}

// DashboardReport is the final merged view model returned to the client.
// Built once per request; every field sourced from an unavailable upstream
// carries its zero default instead of being omitted.
type DashboardReport struct {
	WebsiteTraffic   WebsiteTraffic     `json:"websiteTraffic"`
	PropertyData     []PropertyRow      `json:"propertyData"`
	BookingSources   []BookingSourceRow `json:"bookingSourceData"`
	CountryData      []CountryRow       `json:"countryData"`
	HourlyData       []HourlyBucket     `json:"hourlyData"`
	DailyData        []DailyBucket      `json:"dailyData"`
	PlatformData     []PlatformRow      `json:"platformData"`
	OperationalData  OperationalTotals  `json:"operationalData"`
	OverallOccupancy float64            `json:"overallOccupancy"`
	TotalBedsLeft    int                `json:"totalBedsLeft"`
	TotalCapacity    int                `json:"totalCapacity"`
	TotalBookings    int                `json:"totalBookings"`
	TotalRevenue     float64            `json:"totalRevenue"`
	GATopPages       []TopPage          `json:"gaTopPages"`
	GADailyTrend     []DailyTrendPoint  `json:"gaDailyTrend"`
}
