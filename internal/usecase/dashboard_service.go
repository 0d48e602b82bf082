package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"
)

var requestDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DashboardService joins the booking aggregate and the traffic summary into
// the final report, and answers the companion status check.
type DashboardService struct {
	portfolio    *PortfolioService
	traffic      *TrafficService
	reservations domain.ReservationsAPI
	analytics    domain.AnalyticsAPI
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewDashboardService(
	portfolio *PortfolioService,
	traffic *TrafficService,
	reservations domain.ReservationsAPI,
	analytics domain.AnalyticsAPI,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *DashboardService {
	return &DashboardService{
		portfolio:    portfolio,
		traffic:      traffic,
		reservations: reservations,
		analytics:    analytics,
		logger:       logger,
		metrics:      metrics,
	}
}

// NormalizeDate accepts an ISO date or datetime string and normalizes it to
// YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	for _, format := range requestDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q: expected an ISO date or datetime", raw)
}

// BuildReport runs the portfolio reduction and the traffic fetch
// concurrently and assembles the DashboardReport. Per-source outages never
// fail the report; only an unparseable date range is surfaced as an error.
func (s *DashboardService) BuildReport(ctx context.Context, startRaw, endRaw string) (*domain.DashboardReport, error) {
	start := time.Now()

	startDate, err := NormalizeDate(startRaw)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endDate, err := NormalizeDate(endRaw)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	s.metrics.IncReportsInProgress()
	defer s.metrics.DecReportsInProgress()

	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]any{
		"start_date": startDate,
		"end_date":   endDate,
	}).Info("Building dashboard report")

	var (
		aggregate *domain.PortfolioAggregate
		traffic   *domain.TrafficSummary
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		aggregate = s.portfolio.Aggregate(ctx, startDate, endDate)
	}()
	go func() {
		defer wg.Done()
		traffic = s.traffic.Fetch(ctx, startDate, endDate)
	}()
	wg.Wait()

	report := composeReport(aggregate, traffic)

	duration := time.Since(start)
	s.metrics.RecordReport("success", duration)

	log.WithFields(map[string]any{
		"duration":          duration,
		"total_bookings":    report.TotalBookings,
		"total_revenue":     report.TotalRevenue,
		"traffic_available": traffic != nil,
	}).Info("Dashboard report built")

	return report, nil
}

// composeReport joins the two sources, substituting safe defaults for every
// field sourced from an unavailable traffic upstream.
func composeReport(aggregate *domain.PortfolioAggregate, traffic *domain.TrafficSummary) *domain.DashboardReport {
	report := &domain.DashboardReport{
		WebsiteTraffic: domain.WebsiteTraffic{
			AvgEngagementTime: "0m 0s",
			ADR:               aggregate.ADR,
			RevPAR:            aggregate.RevPAR,
		},
		PropertyData:     aggregate.PropertyRows,
		BookingSources:   aggregate.BookingSources,
		CountryData:      aggregate.CountryRows,
		HourlyData:       aggregate.HourlyData,
		DailyData:        aggregate.DailyData,
		PlatformData:     aggregate.PlatformRows,
		OperationalData:  aggregate.Operational,
		OverallOccupancy: aggregate.OverallOccupancy,
		TotalBedsLeft:    aggregate.TotalBedsLeft,
		TotalCapacity:    aggregate.TotalCapacity,
		TotalBookings:    aggregate.TotalBookings,
		TotalRevenue:     aggregate.TotalRevenue,
		GATopPages:       []domain.TopPage{},
		GADailyTrend:     []domain.DailyTrendPoint{},
	}

	if traffic != nil {
		report.WebsiteTraffic.Sessions = traffic.Sessions
		report.WebsiteTraffic.PageViews = traffic.PageViews
		report.WebsiteTraffic.AvgEngagementTime = traffic.AvgEngagementTime
		report.WebsiteTraffic.NewUsers = traffic.NewUsers
		report.WebsiteTraffic.ActiveUsers = traffic.ActiveUsers
		report.WebsiteTraffic.BounceRate = traffic.BounceRate
		if traffic.Sessions > 0 {
			report.WebsiteTraffic.Conversion = round2(float64(aggregate.TotalBookings) / float64(traffic.Sessions) * 100)
		}
		if traffic.TopPages != nil {
			report.GATopPages = traffic.TopPages
		}
		if traffic.DailyTrend != nil {
			report.GADailyTrend = traffic.DailyTrend
		}
	}

	return report
}

// Status checks connectivity to both upstream systems, independent of the
// main report.
func (s *DashboardService) Status(ctx context.Context) *domain.ConnectionStatus {
	status := &domain.ConnectionStatus{
		Cloudbeds: domain.CloudbedsStatus{
			Properties: []domain.PropertyConnection{},
		},
	}

	if s.analytics != nil {
		if err := s.analytics.Ping(ctx); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Analytics connection check failed")
		} else {
			status.GoogleAnalytics.Connected = true
			status.GoogleAnalytics.LastSync = time.Now().UTC().Format(time.RFC3339)
		}
	}

	connected := 0
	properties := s.portfolio.Properties()
	for _, property := range properties {
		err := s.reservations.Ping(ctx, property)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithField("property", property.Name).Warn("Property connection check failed")
		} else {
			connected++
		}
		status.Cloudbeds.Properties = append(status.Cloudbeds.Properties, domain.PropertyConnection{
			Name:      property.Name,
			ID:        property.ID,
			Connected: err == nil,
		})
	}

	status.Cloudbeds.Connected = connected > 0
	if connected > 0 {
		status.Cloudbeds.LastSync = time.Now().UTC().Format(time.RFC3339)
	}
	status.Cloudbeds.ConnectedProperties = fmt.Sprintf("%d/%d", connected, len(properties))

	return status
}
