package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"hoteldash/internal/domain"
)

// ExportService renders a dashboard report as CSV for download.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteCSV writes the report's summary, property table, platform breakdown
// and country breakdown as sections of one CSV document.
func (s *ExportService) WriteCSV(w io.Writer, report *domain.DashboardReport, startDate, endDate string) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	summary := [][]string{
		{"Dashboard Report", fmt.Sprintf("%s to %s", startDate, endDate)},
		{},
		{"Metric", "Value"},
		{"Total Bookings", strconv.Itoa(report.TotalBookings)},
		{"Total Revenue", formatMoney(report.TotalRevenue)},
		{"ADR", formatMoney(report.WebsiteTraffic.ADR)},
		{"RevPAR", formatMoney(report.WebsiteTraffic.RevPAR)},
		{"Overall Occupancy %", formatMoney(report.OverallOccupancy)},
		{"Beds Remaining", strconv.Itoa(report.TotalBedsLeft)},
		{"Total Capacity", strconv.Itoa(report.TotalCapacity)},
		{"Sessions", strconv.Itoa(report.WebsiteTraffic.Sessions)},
		{"Page Views", strconv.Itoa(report.WebsiteTraffic.PageViews)},
		{"Conversion %", formatMoney(report.WebsiteTraffic.Conversion)},
		{},
	}
	if err := writer.WriteAll(summary); err != nil {
		return fmt.Errorf("failed to write summary section: %w", err)
	}

	if err := writer.Write([]string{"Property", "Bookings", "Revenue", "Private Rooms", "Capacity", "Occupancy %", "Beds Remaining"}); err != nil {
		return fmt.Errorf("failed to write property header: %w", err)
	}
	for _, row := range report.PropertyData {
		record := []string{
			row.Name,
			strconv.Itoa(row.TotalBookings),
			formatMoney(row.Revenue),
			strconv.Itoa(row.PrivateRooms),
			strconv.Itoa(row.Capacity),
			strconv.Itoa(row.Occupancy),
			strconv.Itoa(row.BedsRemaining),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write property row: %w", err)
		}
	}

	if err := writer.Write([]string{"Platform", "Bookings", "Revenue", "ADR"}); err != nil {
		return fmt.Errorf("failed to write platform header: %w", err)
	}
	for _, row := range report.PlatformData {
		record := []string{row.Name, strconv.Itoa(row.Value), formatMoney(row.Revenue), formatMoney(row.ADR)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write platform row: %w", err)
		}
	}

	if err := writer.Write([]string{"Country", "Bookings", "Revenue", "ADR"}); err != nil {
		return fmt.Errorf("failed to write country header: %w", err)
	}
	for _, row := range report.CountryData {
		record := []string{row.Country, strconv.Itoa(row.Bookings), formatMoney(row.Revenue), formatMoney(row.ADR)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write country row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMoney(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
