package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"
)

// GA Data API runReport request/response shapes (v1beta).
type reportRequest struct {
	DateRanges []reportDateRange `json:"dateRanges"`
	Dimensions []reportName      `json:"dimensions,omitempty"`
	Metrics    []reportName      `json:"metrics"`
	OrderBys   []reportOrderBy   `json:"orderBys,omitempty"`
	Limit      int               `json:"limit,omitempty"`
}

type reportDateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type reportName struct {
	Name string `json:"name"`
}

type reportOrderBy struct {
	Metric    *reportMetricOrder    `json:"metric,omitempty"`
	Dimension *reportDimensionOrder `json:"dimension,omitempty"`
	Desc      bool                  `json:"desc"`
}

type reportMetricOrder struct {
	MetricName string `json:"metricName"`
}

type reportDimensionOrder struct {
	DimensionName string `json:"dimensionName"`
}

type reportValue struct {
	Value string `json:"value"`
}

type reportRow struct {
	DimensionValues []reportValue `json:"dimensionValues"`
	MetricValues    []reportValue `json:"metricValues"`
}

type reportResponse struct {
	Rows []reportRow `json:"rows"`
}

func (r reportRow) metricInt(i int) int {
	if i >= len(r.MetricValues) {
		return 0
	}
	value, _ := strconv.Atoi(r.MetricValues[i].Value)
	return value
}

func (r reportRow) metricFloat(i int) float64 {
	if i >= len(r.MetricValues) {
		return 0
	}
	value, _ := strconv.ParseFloat(r.MetricValues[i].Value, 64)
	return value
}

func (r reportRow) dimension(i int) string {
	if i >= len(r.DimensionValues) {
		return ""
	}
	return r.DimensionValues[i].Value
}

// implements domain.AnalyticsAPI against the GA Data API
type AnalyticsClient struct {
	client     *http.Client
	apiURL     string
	propertyID string
	tokens     *GoogleTokenSource
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewAnalyticsClient(apiURL, propertyID string, tokens *GoogleTokenSource, timeout time.Duration, logger *logger.Logger, metrics *metrics.Metrics) *AnalyticsClient {
	return &AnalyticsClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiURL:     apiURL,
		propertyID: propertyID,
		tokens:     tokens,
		logger:     logger,
		metrics:    metrics,
	}
}

func (c *AnalyticsClient) runReport(ctx context.Context, operation string, request reportRequest) (*reportResponse, error) {
	start := time.Now()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("analytics", "token")
		return nil, err
	}

	payload, err := json.Marshal(request)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("analytics", "json_marshal")
		return nil, fmt.Errorf("failed to marshal report request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/properties/%s:runReport", c.apiURL, c.propertyID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("analytics", "request_creation")
		return nil, fmt.Errorf("failed to create report request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("analytics", "network_error")
		return nil, fmt.Errorf("report call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("analytics", "read_body")
		return nil, fmt.Errorf("failed to read report response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordUpstreamAPICall("analytics", operation, "error", time.Since(start))
		return nil, fmt.Errorf("analytics API returned status %d: %s", resp.StatusCode, string(body))
	}

	var report reportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		c.metrics.RecordUpstreamAPIFailure("analytics", "json_parse")
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}

	c.metrics.RecordUpstreamAPICall("analytics", operation, "success", time.Since(start))
	return &report, nil
}

// FetchSummaryMetrics runs the single-row summary report for the range.
func (c *AnalyticsClient) FetchSummaryMetrics(ctx context.Context, startDate, endDate string) (*domain.SummaryMetrics, error) {
	report, err := c.runReport(ctx, "summary", reportRequest{
		DateRanges: []reportDateRange{{StartDate: startDate, EndDate: endDate}},
		Metrics: []reportName{
			{Name: "sessions"},
			{Name: "screenPageViews"},
			{Name: "newUsers"},
			{Name: "averageSessionDuration"},
			{Name: "activeUsers"},
			{Name: "engagedSessions"},
			{Name: "bounceRate"},
			{Name: "conversions"},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(report.Rows) == 0 {
		return nil, fmt.Errorf("summary report returned no rows")
	}

	row := report.Rows[0]
	return &domain.SummaryMetrics{
		Sessions:           row.metricInt(0),
		PageViews:          row.metricInt(1),
		NewUsers:           row.metricInt(2),
		AvgSessionDuration: row.metricFloat(3),
		ActiveUsers:        row.metricInt(4),
		EngagedSessions:    row.metricInt(5),
		BounceRate:         row.metricFloat(6),
		Conversions:        row.metricInt(7),
	}, nil
}

// FetchTopPages runs the top-ten pages report ordered by views descending.
func (c *AnalyticsClient) FetchTopPages(ctx context.Context, startDate, endDate string) ([]domain.TopPage, error) {
	report, err := c.runReport(ctx, "top_pages", reportRequest{
		DateRanges: []reportDateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: []reportName{{Name: "pagePath"}},
		Metrics:    []reportName{{Name: "screenPageViews"}, {Name: "sessions"}},
		OrderBys:   []reportOrderBy{{Metric: &reportMetricOrder{MetricName: "screenPageViews"}, Desc: true}},
		Limit:      10,
	})
	if err != nil {
		return nil, err
	}

	pages := make([]domain.TopPage, 0, len(report.Rows))
	for _, row := range report.Rows {
		pages = append(pages, domain.TopPage{
			Path:     row.dimension(0),
			Views:    row.metricInt(0),
			Sessions: row.metricInt(1),
		})
	}
	return pages, nil
}

// FetchDailyTrend runs the per-day trend report ordered by date ascending.
func (c *AnalyticsClient) FetchDailyTrend(ctx context.Context, startDate, endDate string) ([]domain.DailyTrendPoint, error) {
	report, err := c.runReport(ctx, "daily_trend", reportRequest{
		DateRanges: []reportDateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: []reportName{{Name: "date"}},
		Metrics:    []reportName{{Name: "sessions"}, {Name: "screenPageViews"}, {Name: "newUsers"}},
		OrderBys:   []reportOrderBy{{Dimension: &reportDimensionOrder{DimensionName: "date"}, Desc: false}},
	})
	if err != nil {
		return nil, err
	}

	trend := make([]domain.DailyTrendPoint, 0, len(report.Rows))
	for _, row := range report.Rows {
		trend = append(trend, domain.DailyTrendPoint{
			Date:      row.dimension(0),
			Sessions:  row.metricInt(0),
			PageViews: row.metricInt(1),
			NewUsers:  row.metricInt(2),
		})
	}
	return trend, nil
}

// Ping runs a minimal one-metric report over yesterday..today to verify
// credentials and connectivity.
func (c *AnalyticsClient) Ping(ctx context.Context) error {
	_, err := c.runReport(ctx, "ping", reportRequest{
		DateRanges: []reportDateRange{{StartDate: "yesterday", EndDate: "today"}},
		Metrics:    []reportName{{Name: "sessions"}},
	})
	return err
}
