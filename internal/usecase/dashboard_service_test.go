package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hoteldash/internal/domain"
)

func newDashboard(reservations domain.ReservationsAPI, analytics domain.AnalyticsAPI, properties []domain.Property) *DashboardService {
	portfolio := newPortfolio(properties, reservations, 2)
	traffic := NewTrafficService(analytics, testLogger)
	return NewDashboardService(portfolio, traffic, reservations, analytics, testLogger, testMetrics)
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2025-03-14", "2025-03-14"},
		{"2025-03-14T10:30:00Z", "2025-03-14"},
		{"2025-03-14T10:30:00", "2025-03-14"},
		{"2025-03-14 10:30:00", "2025-03-14"},
	}
	for _, tc := range cases {
		got, err := NormalizeDate(tc.raw)
		if err != nil {
			t.Errorf("NormalizeDate(%q) returned error %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	if _, err := NormalizeDate("14/03/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestBuildReportInvalidDates(t *testing.T) {
	service := newDashboard(&fakeReservationsAPI{}, nil, nil)

	_, err := service.BuildReport(context.Background(), "not-a-date", "2025-01-31")
	if err == nil || !strings.Contains(err.Error(), "start date") {
		t.Errorf("expected start-date error, got %v", err)
	}

	_, err = service.BuildReport(context.Background(), "2025-01-01", "garbage")
	if err == nil || !strings.Contains(err.Error(), "end date") {
		t.Errorf("expected end-date error, got %v", err)
	}
}

func TestBuildReportConversionRate(t *testing.T) {
	properties := []domain.Property{{ID: "p1", Name: "Alpha", Capacity: 100}}
	reservations := make([]domain.Reservation, 25)
	for i := range reservations {
		reservations[i] = domain.Reservation{SourceName: "Direct", Total: 80, Status: "confirmed"}
	}
	api := &fakeReservationsAPI{reservations: map[string][]domain.Reservation{"p1": reservations}}
	analytics := &fakeAnalyticsAPI{
		summary: &domain.SummaryMetrics{
			Sessions:           1000,
			PageViews:          4200,
			BounceRate:         0.413,
			AvgSessionDuration: 95,
		},
	}

	report, err := newDashboard(api, analytics, properties).BuildReport(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}

	if report.WebsiteTraffic.Conversion != 2.50 {
		t.Errorf("expected conversion 2.50 for 25 bookings over 1000 sessions, got %v", report.WebsiteTraffic.Conversion)
	}
	if report.WebsiteTraffic.Sessions != 1000 || report.WebsiteTraffic.PageViews != 4200 {
		t.Errorf("traffic fields not carried over: %+v", report.WebsiteTraffic)
	}
	if report.WebsiteTraffic.BounceRate != 41.3 {
		t.Errorf("expected bounce rate 41.3, got %v", report.WebsiteTraffic.BounceRate)
	}
	if report.WebsiteTraffic.AvgEngagementTime != "1m 35s" {
		t.Errorf("expected engagement time 1m 35s, got %q", report.WebsiteTraffic.AvgEngagementTime)
	}
}

func TestBuildReportZeroSessions(t *testing.T) {
	properties := []domain.Property{{ID: "p1", Name: "Alpha", Capacity: 100}}
	api := &fakeReservationsAPI{
		reservations: map[string][]domain.Reservation{
			"p1": {{SourceName: "Direct", Total: 80, Status: "confirmed"}},
		},
	}
	analytics := &fakeAnalyticsAPI{summary: &domain.SummaryMetrics{Sessions: 0}}

	report, err := newDashboard(api, analytics, properties).BuildReport(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	if report.WebsiteTraffic.Conversion != 0 {
		t.Errorf("expected conversion 0 with no sessions, got %v", report.WebsiteTraffic.Conversion)
	}
}

func TestBuildReportTrafficUnavailable(t *testing.T) {
	properties := []domain.Property{{ID: "p1", Name: "Alpha", Capacity: 100}}
	api := &fakeReservationsAPI{
		reservations: map[string][]domain.Reservation{
			"p1": {{SourceName: "Direct", Total: 120, Status: "confirmed"}},
		},
	}

	// No analytics source configured at all
	report, err := newDashboard(api, nil, properties).BuildReport(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}

	if report.TotalBookings != 1 || report.TotalRevenue != 120 {
		t.Errorf("booking data should survive a missing traffic source: %+v", report)
	}
	if report.WebsiteTraffic.Sessions != 0 || report.WebsiteTraffic.AvgEngagementTime != "0m 0s" {
		t.Errorf("expected zeroed traffic defaults, got %+v", report.WebsiteTraffic)
	}
	if report.GATopPages == nil || len(report.GATopPages) != 0 {
		t.Errorf("expected empty non-nil top pages, got %v", report.GATopPages)
	}
	if report.GADailyTrend == nil || len(report.GADailyTrend) != 0 {
		t.Errorf("expected empty non-nil daily trend, got %v", report.GADailyTrend)
	}
}

func TestBuildReportTrafficFetchError(t *testing.T) {
	properties := []domain.Property{{ID: "p1", Name: "Alpha", Capacity: 100}}
	api := &fakeReservationsAPI{
		reservations: map[string][]domain.Reservation{
			"p1": {{SourceName: "Direct", Total: 120, Status: "confirmed"}},
		},
	}
	analytics := &fakeAnalyticsAPI{summaryErr: errors.New("upstream 500")}

	report, err := newDashboard(api, analytics, properties).BuildReport(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("a traffic outage must not fail the report: %v", err)
	}
	if report.TotalBookings != 1 {
		t.Errorf("expected booking data intact, got %d bookings", report.TotalBookings)
	}
	if report.WebsiteTraffic.AvgEngagementTime != "0m 0s" {
		t.Errorf("expected default engagement time, got %q", report.WebsiteTraffic.AvgEngagementTime)
	}
}

func TestStatus(t *testing.T) {
	properties := []domain.Property{
		{ID: "p1", Name: "Alpha"},
		{ID: "p2", Name: "Beta"},
		{ID: "p3", Name: "Gamma"},
	}
	api := &fakeReservationsAPI{
		pingErr: map[string]error{"p2": errors.New("unauthorized")},
	}
	analytics := &fakeAnalyticsAPI{}

	status := newDashboard(api, analytics, properties).Status(context.Background())

	if !status.GoogleAnalytics.Connected {
		t.Error("expected analytics connected")
	}
	if status.GoogleAnalytics.LastSync == "" {
		t.Error("expected analytics last-sync timestamp")
	}
	if !status.Cloudbeds.Connected {
		t.Error("expected cloudbeds connected while any property reaches the API")
	}
	if status.Cloudbeds.ConnectedProperties != "2/3" {
		t.Errorf("expected 2/3 connected, got %q", status.Cloudbeds.ConnectedProperties)
	}
	if len(status.Cloudbeds.Properties) != 3 {
		t.Fatalf("expected 3 property entries, got %d", len(status.Cloudbeds.Properties))
	}
	if status.Cloudbeds.Properties[1].Connected {
		t.Error("expected p2 reported disconnected")
	}
}

func TestStatusNoAnalytics(t *testing.T) {
	properties := []domain.Property{{ID: "p1", Name: "Alpha"}}
	api := &fakeReservationsAPI{pingErr: map[string]error{"p1": errors.New("down")}}

	status := newDashboard(api, nil, properties).Status(context.Background())

	if status.GoogleAnalytics.Connected {
		t.Error("expected analytics disconnected when not configured")
	}
	if status.Cloudbeds.Connected {
		t.Error("expected cloudbeds disconnected when every property fails")
	}
	if status.Cloudbeds.ConnectedProperties != "0/1" {
		t.Errorf("expected 0/1, got %q", status.Cloudbeds.ConnectedProperties)
	}
}

func TestFormatEngagementTime(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0m 0s"},
		{59.4, "0m 59s"},
		{95, "1m 35s"},
		{600, "10m 0s"},
	}
	for _, tc := range cases {
		if got := formatEngagementTime(tc.seconds); got != tc.want {
			t.Errorf("formatEngagementTime(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
