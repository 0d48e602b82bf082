package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"

	"golang.org/x/time/rate"
)

// flexInt decodes an integer the upstream emits either bare or quoted.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	value, err := strconv.Atoi(string(data))
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(value)
	return nil
}

type reservationsPage struct {
	Data  []domain.Reservation `json:"data"`
	Total flexInt              `json:"total"`
	Count flexInt              `json:"count"`
}

type unassignedRoomsPage struct {
	Data []struct {
		Rooms []domain.RoomRecord `json:"rooms"`
	} `json:"data"`
	Total flexInt `json:"total"`
	Count flexInt `json:"count"`
}

type dashboardPayload struct {
	Data struct {
		ArrivalsConfirmed   flexInt `json:"arrivalsConfirmed"`
		DeparturesConfirmed flexInt `json:"departuresConfirmed"`
		InHouse             flexInt `json:"inHouse"`
		Stayovers           flexInt `json:"stayovers"`
		Cancellations       flexInt `json:"cancellations"`
	} `json:"data"`
}

// implements domain.ReservationsAPI against the Cloudbeds REST API
type CloudbedsClient struct {
	client    *http.Client
	baseURL   string
	pageSize  int
	pageDelay time.Duration
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewCloudbedsClient(baseURL string, pageSize int, pageDelay, timeout time.Duration, logger *logger.Logger, metrics *metrics.Metrics) *CloudbedsClient {
	return &CloudbedsClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:   baseURL,
		pageSize:  pageSize,
		pageDelay: pageDelay,
		logger:    logger,
		metrics:   metrics,
	}
}

// pageLimiter paces one page walk: the first Wait passes immediately, every
// later page waits the fixed inter-page delay. Each walk gets its own
// limiter, so concurrently fetched properties do not coordinate pacing with
// each other (known gap: a shared token bucket is the documented extension).
func (c *CloudbedsClient) pageLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(c.pageDelay), 1)
}

func (c *CloudbedsClient) get(ctx context.Context, property domain.Property, endpoint string, params url.Values, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("cloudbeds", "request_creation")
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+property.APIKey)
	req.Header.Set("X-PROPERTY-ID", property.ID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("cloudbeds", "network_error")
		return 0, fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure("cloudbeds", "read_body")
		return resp.StatusCode, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("%s returned status %d for %s: %s", endpoint, resp.StatusCode, property.Name, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.RecordUpstreamAPIFailure("cloudbeds", "json_parse")
		return resp.StatusCode, fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	return resp.StatusCode, nil
}

// FetchReservations returns every reservation overlapping the date range,
// excluding canceled ones, walking all result pages. Pages are requested
// strictly sequentially because the total is unknown before page 1. No
// retry on failure; retry/backoff is an extension point.
func (c *CloudbedsClient) FetchReservations(ctx context.Context, property domain.Property, startDate, endDate string) ([]domain.Reservation, error) {
	start := time.Now()
	limiter := c.pageLimiter()

	var all []domain.Reservation
	pageNumber := 1

	for {
		if err := limiter.Wait(ctx); err != nil {
			c.metrics.RecordUpstreamAPIFailure("cloudbeds", "rate_limit")
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}

		params := url.Values{}
		params.Set("propertyID", property.ID)
		params.Set("resultsFrom", startDate+" 00:00:00")
		params.Set("resultsTo", endDate+" 23:59:59")
		params.Set("excludeStatuses", "canceled")
		params.Set("pageNumber", strconv.Itoa(pageNumber))
		params.Set("pageSize", strconv.Itoa(c.pageSize))

		var page reservationsPage
		if _, err := c.get(ctx, property, "getReservationsWithRateDetails", params, &page); err != nil {
			c.metrics.RecordUpstreamAPICall("cloudbeds", "reservations", "error", time.Since(start))
			return nil, fmt.Errorf("reservations fetch for %s: %w", property.Name, err)
		}

		c.metrics.RecordPageFetched("cloudbeds", "reservations")
		all = append(all, page.Data...)

		// Stop when the declared total is reached; an empty page also
		// terminates in case the upstream over-declares
		if len(all) >= int(page.Total) || len(page.Data) == 0 {
			break
		}
		pageNumber++
	}

	c.metrics.RecordUpstreamAPICall("cloudbeds", "reservations", "success", time.Since(start))

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"property": property.Name,
		"pages":    pageNumber,
		"records":  len(all),
		"duration": time.Since(start),
	}).Info("Fetched reservations")

	return all, nil
}

// FetchNoShowCount returns the declared count of no-show reservations for
// the range. Best-effort: failures degrade to zero.
func (c *CloudbedsClient) FetchNoShowCount(ctx context.Context, property domain.Property, startDate, endDate string) (int, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("propertyID", property.ID)
	params.Set("status", domain.StatusNoShow)
	params.Set("checkInFrom", startDate)
	params.Set("checkInTo", endDate)
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	var page reservationsPage
	if _, err := c.get(ctx, property, "getReservations", params, &page); err != nil {
		c.metrics.RecordUpstreamAPICall("cloudbeds", "no_show", "error", time.Since(start))
		c.logger.WithContext(ctx).WithError(err).WithField("property", property.Name).Warn("No-show count fetch failed, using zero")
		return 0, nil
	}

	c.metrics.RecordUpstreamAPICall("cloudbeds", "no_show", "success", time.Since(start))
	return int(page.Count), nil
}

// FetchUnassignedRooms walks inventory pages until the accumulated count
// reaches the declared total or a page comes back empty (defensive
// termination against inconsistent totals). The total is captured from the
// first page only.
func (c *CloudbedsClient) FetchUnassignedRooms(ctx context.Context, property domain.Property) (*domain.UnassignedInventory, error) {
	start := time.Now()
	limiter := c.pageLimiter()

	inventory := &domain.UnassignedInventory{}
	pageNumber := 1

	for {
		if err := limiter.Wait(ctx); err != nil {
			c.metrics.RecordUpstreamAPIFailure("cloudbeds", "rate_limit")
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}

		params := url.Values{}
		params.Set("propertyID", property.ID)
		params.Set("pageNumber", strconv.Itoa(pageNumber))

		var page unassignedRoomsPage
		if _, err := c.get(ctx, property, "getRoomsUnassigned", params, &page); err != nil {
			c.metrics.RecordUpstreamAPICall("cloudbeds", "unassigned_rooms", "error", time.Since(start))
			return nil, fmt.Errorf("unassigned rooms fetch for %s: %w", property.Name, err)
		}

		c.metrics.RecordPageFetched("cloudbeds", "unassigned_rooms")

		if len(page.Data) == 0 || page.Count == 0 {
			break
		}

		if pageNumber == 1 {
			inventory.TotalUnassigned = int(page.Total)
		}

		inventory.Rooms = append(inventory.Rooms, page.Data[0].Rooms...)
		pageNumber++

		if len(inventory.Rooms) >= inventory.TotalUnassigned {
			break
		}
	}

	c.metrics.RecordUpstreamAPICall("cloudbeds", "unassigned_rooms", "success", time.Since(start))

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"property":         property.Name,
		"rooms":            len(inventory.Rooms),
		"total_unassigned": inventory.TotalUnassigned,
	}).Debug("Fetched unassigned rooms")

	return inventory, nil
}

// FetchDashboardToday returns today's operational snapshot. This endpoint
// is best-effort and never blocks the rest of the pipeline: any failure
// returns the zero snapshot with a nil error.
func (c *CloudbedsClient) FetchDashboardToday(ctx context.Context, property domain.Property, date string) (domain.OperationalSnapshot, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("propertyID", property.ID)
	params.Set("date", date)

	var payload dashboardPayload
	if _, err := c.get(ctx, property, "getDashboard", params, &payload); err != nil {
		c.metrics.RecordUpstreamAPICall("cloudbeds", "dashboard", "error", time.Since(start))
		c.logger.WithContext(ctx).WithError(err).WithField("property", property.Name).Warn("Dashboard snapshot fetch failed, using zero snapshot")
		return domain.OperationalSnapshot{}, nil
	}

	c.metrics.RecordUpstreamAPICall("cloudbeds", "dashboard", "success", time.Since(start))

	return domain.OperationalSnapshot{
		CheckIns:      int(payload.Data.ArrivalsConfirmed),
		CheckOuts:     int(payload.Data.DeparturesConfirmed),
		InHouse:       int(payload.Data.InHouse),
		StayOvers:     int(payload.Data.Stayovers),
		Cancellations: int(payload.Data.Cancellations),
	}, nil
}

// Ping issues a single one-record reservations request to verify the
// property's credential and connectivity.
func (c *CloudbedsClient) Ping(ctx context.Context, property domain.Property) error {
	start := time.Now()

	params := url.Values{}
	params.Set("propertyID", property.ID)
	params.Set("pageSize", "1")

	var page reservationsPage
	if _, err := c.get(ctx, property, "getReservations", params, &page); err != nil {
		c.metrics.RecordUpstreamAPICall("cloudbeds", "ping", "error", time.Since(start))
		return fmt.Errorf("connection check for %s: %w", property.Name, err)
	}

	c.metrics.RecordUpstreamAPICall("cloudbeds", "ping", "success", time.Since(start))
	return nil
}
