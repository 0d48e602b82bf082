package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"
)

var dayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type revenueBucket struct {
	bookings int
	revenue  float64
}

// PortfolioService reduces every registered property's summary into the
// portfolio-wide aggregate.
type PortfolioService struct {
	properties []domain.Property
	property   *PropertyService
	batchSize  int
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewPortfolioService(properties []domain.Property, property *PropertyService, batchSize int, logger *logger.Logger, metrics *metrics.Metrics) *PortfolioService {
	if batchSize < 1 {
		batchSize = 1
	}
	return &PortfolioService{
		properties: properties,
		property:   property,
		batchSize:  batchSize,
		logger:     logger,
		metrics:    metrics,
	}
}

// Properties returns the registry this service reduces over.
func (s *PortfolioService) Properties() []domain.Property {
	return s.properties
}

// Aggregate fetches every property's summary in small concurrent batches
// (bounding simultaneous load on the upstream API), then folds every
// reservation exactly once into the country, platform, hourly and daily
// buckets and derives the portfolio metrics.
func (s *PortfolioService) Aggregate(ctx context.Context, startDate, endDate string) *domain.PortfolioAggregate {
	today := time.Now().UTC().Format("2006-01-02")
	summaries := s.fetchSummaries(ctx, startDate, endDate, today)
	return s.fold(summaries)
}

// fetchSummaries walks the registry in batches: members of a batch run
// concurrently, batches submit sequentially. Registry order is preserved.
func (s *PortfolioService) fetchSummaries(ctx context.Context, startDate, endDate, today string) []domain.PropertySummary {
	summaries := make([]domain.PropertySummary, len(s.properties))

	for start := 0; start < len(s.properties); start += s.batchSize {
		end := start + s.batchSize
		if end > len(s.properties) {
			end = len(s.properties)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				summaries[i] = s.property.Summarize(ctx, s.properties[i], startDate, endDate, today)
			}(i)
		}
		wg.Wait()
	}

	return summaries
}

func (s *PortfolioService) fold(summaries []domain.PropertySummary) *domain.PortfolioAggregate {
	aggregate := &domain.PortfolioAggregate{
		PropertyRows: make([]domain.PropertyRow, 0, len(summaries)),
	}

	countryStats := make(map[string]*revenueBucket)
	platformStats := make(map[string]*revenueBucket)
	var hourly [24]int
	daily := make(map[string]int, len(dayOrder))
	for _, day := range dayOrder {
		daily[day] = 0
	}

	for _, summary := range summaries {
		aggregate.Operational.CheckIns += summary.Snapshot.CheckIns
		aggregate.Operational.CheckOuts += summary.Snapshot.CheckOuts
		aggregate.Operational.InHouse += summary.Snapshot.InHouse
		aggregate.Operational.StayOver += summary.Snapshot.StayOvers
		aggregate.Operational.Cancellations += summary.Snapshot.Cancellations
		aggregate.Operational.NoShows += summary.NoShowCount

		aggregate.TotalBedsLeft += summary.BedsRemaining
		aggregate.TotalCapacity += summary.Capacity

		aggregate.PropertyRows = append(aggregate.PropertyRows, domain.PropertyRow{
			Name:           summary.PropertyName,
			TotalBookings:  summary.TotalBookings,
			Revenue:        summary.Revenue,
			PrivateRooms:   summary.PrivateRooms,
			Capacity:       summary.Capacity,
			Occupancy:      int(math.Round(summary.Occupancy)),
			BedsRemaining:  summary.BedsRemaining,
			AvailableRooms: summary.AvailableRooms,
		})

		aggregate.TotalBookings += summary.TotalBookings
		aggregate.TotalRevenue += summary.Revenue

		for _, reservation := range summary.Reservations {
			source := reservation.SourceName
			if source == "" {
				source = "Unknown"
			}
			country := reservation.GuestCountry
			if country == "" {
				country = "Unknown"
			}
			revenue := float64(reservation.Total)

			bucket := countryStats[country]
			if bucket == nil {
				bucket = &revenueBucket{}
				countryStats[country] = bucket
			}
			bucket.bookings++
			bucket.revenue += revenue

			bucket = platformStats[source]
			if bucket == nil {
				bucket = &revenueBucket{}
				platformStats[source] = bucket
			}
			bucket.bookings++
			bucket.revenue += revenue

			if isWebsiteSource(source) {
				aggregate.WebsiteBookings++
				aggregate.WebsiteRevenue += revenue
			}

			if createdAt, ok := reservation.CreatedAt(); ok {
				hourly[createdAt.Hour()]++
				daily[createdAt.Weekday().String()[:3]]++
			}
		}
	}

	aggregate.TotalRevenue = round2(aggregate.TotalRevenue)
	aggregate.WebsiteRevenue = round2(aggregate.WebsiteRevenue)

	aggregate.BookingSources = []domain.BookingSourceRow{
		{
			Name:   "Website/Booking Engine",
			Amount: aggregate.WebsiteRevenue,
			Count:  aggregate.WebsiteBookings,
		},
		{
			Name:   "Other Channels",
			Amount: round2(aggregate.TotalRevenue - aggregate.WebsiteRevenue),
			Count:  aggregate.TotalBookings - aggregate.WebsiteBookings,
		},
	}

	aggregate.CountryRows = topCountries(countryStats)
	aggregate.PlatformRows = topPlatforms(platformStats)

	aggregate.HourlyData = make([]domain.HourlyBucket, 24)
	for hour, bookings := range hourly {
		aggregate.HourlyData[hour] = domain.HourlyBucket{
			Hour:     fmt.Sprintf("%02d:00", hour),
			Bookings: bookings,
		}
	}

	aggregate.DailyData = make([]domain.DailyBucket, 0, len(dayOrder))
	for _, day := range dayOrder {
		aggregate.DailyData = append(aggregate.DailyData, domain.DailyBucket{Day: day, Bookings: daily[day]})
	}

	if aggregate.TotalBookings > 0 {
		aggregate.ADR = round2(aggregate.TotalRevenue / float64(aggregate.TotalBookings))
	}
	if aggregate.TotalCapacity > 0 {
		aggregate.OverallOccupancy = round2(float64(aggregate.TotalCapacity-aggregate.TotalBedsLeft) / float64(aggregate.TotalCapacity) * 100)
	}
	aggregate.RevPAR = round2(aggregate.ADR * aggregate.OverallOccupancy / 100)

	return aggregate
}

// topCountries sorts country buckets by bookings descending and keeps the
// top ten. Bucket revenue is reported to the nearest whole unit.
func topCountries(stats map[string]*revenueBucket) []domain.CountryRow {
	rows := make([]domain.CountryRow, 0, len(stats))
	for country, bucket := range stats {
		row := domain.CountryRow{
			Country:  country,
			Bookings: bucket.bookings,
			Revenue:  math.Round(bucket.revenue),
		}
		if bucket.bookings > 0 {
			row.ADR = round2(bucket.revenue / float64(bucket.bookings))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bookings != rows[j].Bookings {
			return rows[i].Bookings > rows[j].Bookings
		}
		return rows[i].Country < rows[j].Country
	})

	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows
}

// topPlatforms sorts platform buckets by bookings descending and keeps the
// top ten.
func topPlatforms(stats map[string]*revenueBucket) []domain.PlatformRow {
	rows := make([]domain.PlatformRow, 0, len(stats))
	for name, bucket := range stats {
		row := domain.PlatformRow{
			Name:    name,
			Value:   bucket.bookings,
			Revenue: round2(bucket.revenue),
		}
		if bucket.bookings > 0 {
			row.ADR = round2(bucket.revenue / float64(bucket.bookings))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Name < rows[j].Name
	})

	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows
}

// A source counts as the hotel's own website when its name mentions the
// website or the booking engine.
func isWebsiteSource(source string) bool {
	lower := strings.ToLower(source)
	return strings.Contains(lower, "website") || strings.Contains(lower, "booking engine")
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
