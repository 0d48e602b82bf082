package usecase

import (
	"context"
	"fmt"
	"math"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
)

// TrafficService retrieves the web-traffic summary for the requested range.
// The traffic path is best-effort end to end: any failure (no credential,
// token exchange, report call) degrades the whole summary to nil and the
// dashboard renders booking data with traffic fields zeroed.
type TrafficService struct {
	api    domain.AnalyticsAPI
	logger *logger.Logger
}

// NewTrafficService accepts a nil api when the analytics credential is not
// configured; Fetch then always reports the source unavailable.
func NewTrafficService(api domain.AnalyticsAPI, logger *logger.Logger) *TrafficService {
	return &TrafficService{
		api:    api,
		logger: logger,
	}
}

// Available reports whether the analytics upstream is configured at all.
func (s *TrafficService) Available() bool {
	return s.api != nil
}

// Fetch runs the three independent report calls (summary, top pages, daily
// trend) and assembles the TrafficSummary. Returns nil when the source is
// unavailable.
func (s *TrafficService) Fetch(ctx context.Context, startDate, endDate string) *domain.TrafficSummary {
	log := s.logger.WithContext(ctx)

	if s.api == nil {
		log.Warn("Analytics source not configured, traffic summary unavailable")
		return nil
	}

	metrics, err := s.api.FetchSummaryMetrics(ctx, startDate, endDate)
	if err != nil {
		log.WithError(err).Error("Traffic summary fetch failed")
		return nil
	}

	topPages, err := s.api.FetchTopPages(ctx, startDate, endDate)
	if err != nil {
		log.WithError(err).Error("Top pages fetch failed")
		return nil
	}

	dailyTrend, err := s.api.FetchDailyTrend(ctx, startDate, endDate)
	if err != nil {
		log.WithError(err).Error("Daily trend fetch failed")
		return nil
	}

	summary := &domain.TrafficSummary{
		Sessions:          metrics.Sessions,
		PageViews:         metrics.PageViews,
		NewUsers:          metrics.NewUsers,
		ActiveUsers:       metrics.ActiveUsers,
		EngagedSessions:   metrics.EngagedSessions,
		BounceRate:        math.Round(metrics.BounceRate*100*10) / 10,
		Conversions:       metrics.Conversions,
		AvgEngagementTime: formatEngagementTime(metrics.AvgSessionDuration),
		TopPages:          topPages,
		DailyTrend:        dailyTrend,
	}

	log.WithFields(map[string]any{
		"sessions":   summary.Sessions,
		"page_views": summary.PageViews,
	}).Info("Fetched traffic summary")

	return summary
}

// formatEngagementTime renders seconds as "XmYs".
func formatEngagementTime(seconds float64) string {
	minutes := int(seconds) / 60
	remainder := int(math.Round(math.Mod(seconds, 60)))
	return fmt.Sprintf("%dm %ds", minutes, remainder)
}
