package domain

import "context"

// interface for the reservations/inventory upstream (Cloudbeds)
type ReservationsAPI interface {
	// FetchReservations walks every result page for the property and date
	// range, excluding canceled reservations.
	FetchReservations(ctx context.Context, property Property, startDate, endDate string) ([]Reservation, error)
	// FetchNoShowCount returns the declared count of no-show reservations;
	// degrades to 0 on failure.
	FetchNoShowCount(ctx context.Context, property Property, startDate, endDate string) (int, error)
	// FetchUnassignedRooms walks every inventory page for the property.
	FetchUnassignedRooms(ctx context.Context, property Property) (*UnassignedInventory, error)
	// FetchDashboardToday returns the operational snapshot for the given
	// date; degrades to the zero snapshot on any failure.
	FetchDashboardToday(ctx context.Context, property Property, date string) (OperationalSnapshot, error)
	// Ping issues a minimal request to verify connectivity.
	Ping(ctx context.Context, property Property) error
}

// interface for the web-traffic upstream (GA Data API)
type AnalyticsAPI interface {
	FetchSummaryMetrics(ctx context.Context, startDate, endDate string) (*SummaryMetrics, error)
	FetchTopPages(ctx context.Context, startDate, endDate string) ([]TopPage, error)
	FetchDailyTrend(ctx context.Context, startDate, endDate string) ([]DailyTrendPoint, error)
	Ping(ctx context.Context) error
}
