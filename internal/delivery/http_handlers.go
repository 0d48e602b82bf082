package delivery

import (
	"fmt"
	"net/http"
	"time"

	"hoteldash/internal/usecase"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	dashboardService *usecase.DashboardService
	exportService    *usecase.ExportService
	logger           *logger.Logger
	metrics          *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	dashboardService *usecase.DashboardService,
	exportService *usecase.ExportService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		dashboardService: dashboardService,
		exportService:    exportService,
		logger:           logger,
		metrics:          metrics,
	}
}

// GetDashboard builds and returns the full dashboard report for a date
// range. Partial upstream failures never surface here: degraded properties
// and an unavailable traffic source still yield a 200 with zeroed fields.
func (h *HTTPHandlers) GetDashboard(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required parameters",
			"message":    "startDate and endDate query parameters are required",
			"request_id": requestID,
		})
		return
	}

	report, err := h.dashboardService.BuildReport(ctx, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid date range",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetConnectionStatus reports connectivity and last-sync timestamps for
// both upstream systems, independent of the main report.
func (h *HTTPHandlers) GetConnectionStatus(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	status := h.dashboardService.Status(c.Request.Context())
	c.JSON(http.StatusOK, status)
}

// ExportCSV builds the report for the range and streams it as a CSV
// attachment.
func (h *HTTPHandlers) ExportCSV(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required parameters",
			"message":    "startDate and endDate query parameters are required",
			"request_id": requestID,
		})
		return
	}

	report, err := h.dashboardService.BuildReport(ctx, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid date range",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	filename := fmt.Sprintf("dashboard-%s-%s.csv", startDate, endDate)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.exportService.WriteCSV(c.Writer, report, startDate, endDate); err != nil {
		h.logger.WithContext(ctx).WithError(err).Error("CSV export failed")
	}
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	apiInfo := gin.H{
		"api_version": "v1",
		"service":     "Hotel Dashboard Service",
		"version":     "1.0.0",
		"description": "Aggregates Cloudbeds booking data and Google Analytics traffic into a unified dashboard feed",
		"endpoints": gin.H{
			"dashboard": gin.H{
				"path":        "/api/v1/dashboard",
				"description": "Build the full dashboard report for a date range",
				"methods":     []string{"GET"},
				"parameters": gin.H{
					"startDate": "Required: range start (YYYY-MM-DD)",
					"endDate":   "Required: range end (YYYY-MM-DD)",
				},
				"example": "/api/v1/dashboard?startDate=2025-01-01&endDate=2025-01-31",
			},
			"status": gin.H{
				"path":        "/api/v1/status",
				"description": "Connectivity check for both upstream systems",
				"methods":     []string{"GET"},
			},
			"export": gin.H{
				"path":        "/api/v1/export/csv",
				"description": "Export the dashboard report as CSV",
				"methods":     []string{"GET"},
				"parameters": gin.H{
					"startDate": "Required: range start (YYYY-MM-DD)",
					"endDate":   "Required: range end (YYYY-MM-DD)",
				},
			},
		},
		"derived_metrics": gin.H{
			"adr":        "Average Daily Rate (revenue / bookings)",
			"revpar":     "Revenue per Available Room (ADR x occupancy fraction)",
			"occupancy":  "Percentage of capacity currently filled",
			"conversion": "Bookings per session (bookings / sessions x 100)",
		},
		"request_id": c.GetString("request_id"),
	}

	c.JSON(http.StatusOK, apiInfo)
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "hoteldash",
		"version":    "1.0.0",
		"request_id": c.GetString("request_id"),
	})
}
