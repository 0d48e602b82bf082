package usecase

import (
	"context"
	"strings"
	"sync"

	"hoteldash/internal/domain"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"
)

// Room-type markers for the reservation-side private-room count.
var privateRoomMarkers = []string{"private", "single", "double", "queen", "king"}

// PropertyService builds one property's summary for a date range.
type PropertyService struct {
	api     domain.ReservationsAPI
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewPropertyService(api domain.ReservationsAPI, logger *logger.Logger, metrics *metrics.Metrics) *PropertyService {
	return &PropertyService{
		api:     api,
		logger:  logger,
		metrics: metrics,
	}
}

// Summarize fans out the reservation, no-show, snapshot and inventory
// fetches concurrently and folds the results into a PropertySummary. A
// failed reservation or inventory fetch degrades the whole property to the
// zero-valued summary so the portfolio aggregation still runs over the
// other properties.
func (s *PropertyService) Summarize(ctx context.Context, property domain.Property, startDate, endDate, today string) domain.PropertySummary {
	log := s.logger.WithContext(ctx)

	var (
		reservations []domain.Reservation
		noShowCount  int
		snapshot     domain.OperationalSnapshot
		inventory    *domain.UnassignedInventory
		resErr       error
		invErr       error
	)

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		reservations, resErr = s.api.FetchReservations(ctx, property, startDate, endDate)
	}()
	go func() {
		defer wg.Done()
		// degrades to zero internally
		noShowCount, _ = s.api.FetchNoShowCount(ctx, property, startDate, endDate)
	}()
	go func() {
		defer wg.Done()
		// degrades to the zero snapshot internally
		snapshot, _ = s.api.FetchDashboardToday(ctx, property, today)
	}()
	go func() {
		defer wg.Done()
		inventory, invErr = s.api.FetchUnassignedRooms(ctx, property)
	}()

	wg.Wait()

	if resErr != nil || invErr != nil {
		err := resErr
		if err == nil {
			err = invErr
		}
		log.WithError(err).WithFields(map[string]any{
			"property_id": property.ID,
			"property":    property.Name,
		}).Error("Property fetch failed, degrading to zero summary")
		s.metrics.RecordPropertyDegraded(property.ID)
		return domain.ZeroPropertySummary(property)
	}

	summary := domain.PropertySummary{
		PropertyID:   property.ID,
		PropertyName: property.Name,
		Capacity:     property.Capacity,
		NoShowCount:  noShowCount,
		Snapshot:     snapshot,
		Reservations: reservations,
	}

	summary.BedsRemaining, summary.AvailableRooms = classifyInventory(inventory)
	if property.Capacity > 0 {
		summary.Occupancy = round2(float64(property.Capacity-summary.BedsRemaining) / float64(property.Capacity) * 100)
	}

	for _, reservation := range reservations {
		if !strings.EqualFold(reservation.Status, domain.StatusNoShow) {
			summary.TotalBookings++
		}
		summary.Revenue += float64(reservation.Total)

		// One increment per qualifying room, so a reservation with two
		// private rooms counts twice (room-night counting, kept as-is
		// pending product sign-off)
		for _, room := range reservation.Rooms {
			if isPrivateRoomType(room.RoomTypeName) {
				summary.PrivateRooms++
			}
		}
	}
	summary.Revenue = round2(summary.Revenue)

	s.metrics.RecordReservationsProcessed(property.ID, len(reservations))

	log.WithFields(map[string]any{
		"property":       property.Name,
		"bookings":       summary.TotalBookings,
		"no_shows":       summary.NoShowCount,
		"beds_remaining": summary.BedsRemaining,
		"occupancy":      summary.Occupancy,
	}).Info("Property summarized")

	return summary
}

// classifyInventory runs the classification pass over the unassigned room
// records: test inventory and unblocked private rooms are excluded from the
// beds-remaining count, blocked rooms count once each (deduplicated by room
// id across pages), everything else is genuinely available.
func classifyInventory(inventory *domain.UnassignedInventory) (bedsRemaining int, available []domain.AvailableRoom) {
	available = []domain.AvailableRoom{}
	if inventory == nil {
		return 0, available
	}

	seenBlocked := make(map[string]bool)
	var blockedCount, testRooms, privateRooms int

	for _, room := range inventory.Rooms {
		name := strings.ToUpper(room.RoomName)
		typeName := room.RoomTypeName
		if typeName == "" {
			typeName = "Other"
		}
		typeUpper := strings.ToUpper(typeName)

		switch {
		case (strings.Contains(name, "TEST") || strings.Contains(typeUpper, "TEST")) && !room.RoomBlocked:
			testRooms++
		case strings.Contains(typeUpper, "PRIVATE") && !room.RoomBlocked:
			privateRooms++
		case room.RoomBlocked:
			if !seenBlocked[room.RoomID] {
				blockedCount++
				seenBlocked[room.RoomID] = true
			}
		default:
			available = append(available, domain.AvailableRoom{
				RoomName:     room.RoomName,
				RoomTypeName: typeName,
			})
		}
	}

	bedsRemaining = inventory.TotalUnassigned - blockedCount - testRooms - privateRooms
	if bedsRemaining < 0 {
		bedsRemaining = 0
	}
	return bedsRemaining, available
}

func isPrivateRoomType(roomTypeName string) bool {
	lower := strings.ToLower(roomTypeName)
	for _, marker := range privateRoomMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
