package usecase

import (
	"context"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"
)

// promauto registers against the global registry, so the package shares one
// instance across tests.
var testMetrics = metrics.New()

var testLogger = logger.New("fatal")

// fakeReservationsAPI implements domain.ReservationsAPI keyed by property
// id; unset entries return empty results.
type fakeReservationsAPI struct {
	reservations    map[string][]domain.Reservation
	reservationsErr map[string]error
	noShow          map[string]int
	snapshots       map[string]domain.OperationalSnapshot
	inventory       map[string]*domain.UnassignedInventory
	inventoryErr    map[string]error
	pingErr         map[string]error
}

func (f *fakeReservationsAPI) FetchReservations(ctx context.Context, property domain.Property, startDate, endDate string) ([]domain.Reservation, error) {
	if err := f.reservationsErr[property.ID]; err != nil {
		return nil, err
	}
	return f.reservations[property.ID], nil
}

func (f *fakeReservationsAPI) FetchNoShowCount(ctx context.Context, property domain.Property, startDate, endDate string) (int, error) {
	return f.noShow[property.ID], nil
}

func (f *fakeReservationsAPI) FetchUnassignedRooms(ctx context.Context, property domain.Property) (*domain.UnassignedInventory, error) {
	if err := f.inventoryErr[property.ID]; err != nil {
		return nil, err
	}
	if inventory := f.inventory[property.ID]; inventory != nil {
		return inventory, nil
	}
	return &domain.UnassignedInventory{}, nil
}

func (f *fakeReservationsAPI) FetchDashboardToday(ctx context.Context, property domain.Property, date string) (domain.OperationalSnapshot, error) {
	return f.snapshots[property.ID], nil
}

func (f *fakeReservationsAPI) Ping(ctx context.Context, property domain.Property) error {
	return f.pingErr[property.ID]
}

// fakeAnalyticsAPI implements domain.AnalyticsAPI with canned results.
type fakeAnalyticsAPI struct {
	summary    *domain.SummaryMetrics
	summaryErr error
	topPages   []domain.TopPage
	trend      []domain.DailyTrendPoint
	pingErr    error
}

func (f *fakeAnalyticsAPI) FetchSummaryMetrics(ctx context.Context, startDate, endDate string) (*domain.SummaryMetrics, error) {
	return f.summary, f.summaryErr
}

func (f *fakeAnalyticsAPI) FetchTopPages(ctx context.Context, startDate, endDate string) ([]domain.TopPage, error) {
	return f.topPages, nil
}

func (f *fakeAnalyticsAPI) FetchDailyTrend(ctx context.Context, startDate, endDate string) ([]domain.DailyTrendPoint, error) {
	return f.trend, nil
}

func (f *fakeAnalyticsAPI) Ping(ctx context.Context) error {
	return f.pingErr
}
