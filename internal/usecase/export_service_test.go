package usecase

import (
	"bytes"
	"strings"
	"testing"

	"hoteldash/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	report := &domain.DashboardReport{
		TotalBookings:    42,
		TotalRevenue:     3150.5,
		OverallOccupancy: 73.25,
		TotalBedsLeft:    110,
		TotalCapacity:    414,
		WebsiteTraffic: domain.WebsiteTraffic{
			Sessions:   1200,
			PageViews:  5400,
			Conversion: 3.5,
			ADR:        75.01,
			RevPAR:     54.95,
		},
		PropertyData: []domain.PropertyRow{
			{Name: "Alpha", TotalBookings: 30, Revenue: 2000, PrivateRooms: 4, Capacity: 176, Occupancy: 80, BedsRemaining: 35},
			{Name: "Beta", TotalBookings: 12, Revenue: 1150.5, Capacity: 48, Occupancy: 60, BedsRemaining: 19},
		},
		PlatformData: []domain.PlatformRow{
			{Name: "Booking.com", Value: 25, Revenue: 1800, ADR: 72},
		},
		CountryData: []domain.CountryRow{
			{Country: "AU", Bookings: 20, Revenue: 1500, ADR: 75},
		},
	}

	var buf bytes.Buffer
	if err := NewExportService().WriteCSV(&buf, report, "2025-01-01", "2025-01-31"); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Dashboard Report,2025-01-01 to 2025-01-31",
		"Total Bookings,42",
		"Total Revenue,3150.50",
		"ADR,75.01",
		"RevPAR,54.95",
		"Overall Occupancy %,73.25",
		"Beds Remaining,110",
		"Sessions,1200",
		"Conversion %,3.50",
		"Property,Bookings,Revenue,Private Rooms,Capacity,Occupancy %,Beds Remaining",
		"Alpha,30,2000.00,4,176,80,35",
		"Beta,12,1150.50,0,48,60,19",
		"Platform,Bookings,Revenue,ADR",
		"Booking.com,25,1800.00,72.00",
		"Country,Bookings,Revenue,ADR",
		"AU,20,1500.00,75.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV output missing line %q", want)
		}
	}
}

func TestWriteCSVEmptyReport(t *testing.T) {
	report := &domain.DashboardReport{
		WebsiteTraffic: domain.WebsiteTraffic{AvgEngagementTime: "0m 0s"},
	}

	var buf bytes.Buffer
	if err := NewExportService().WriteCSV(&buf, report, "2025-01-01", "2025-01-01"); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Total Bookings,0") {
		t.Errorf("expected zeroed summary, got:\n%s", out)
	}
	if !strings.Contains(out, "Property,Bookings") || !strings.Contains(out, "Country,Bookings") {
		t.Errorf("section headers missing from empty report:\n%s", out)
	}
}
