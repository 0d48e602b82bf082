package domain

import (
	"bytes"
	"strconv"
	"time"
)

const StatusNoShow = "no_show"

// Amount decodes a monetary value that the upstream emits either as a JSON
// number or as a quoted string ("123.45"). Empty and null decode to 0.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Unparseable totals count as zero rather than failing the page
		*a = 0
		return nil
	}
	*a = Amount(value)
	return nil
}

// ReservedRoom is one room attached to a reservation.
type ReservedRoom struct {
	RoomTypeName string `json:"roomTypeName"`
}

// Reservation is the raw booking record as returned by the reservations
// API. Transient: fetched fresh per request, never persisted.
type Reservation struct {
	SourceName     string         `json:"sourceName"`
	Total          Amount         `json:"total"`
	GuestCountry   string         `json:"guestCountry"`
	Status         string         `json:"status"`
	DateCreatedUTC string         `json:"dateCreatedUTC"`
	DateCreated    string         `json:"dateCreated"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	Rooms          []ReservedRoom `json:"rooms"`
}

var createdAtFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreatedAt parses the reservation's creation timestamp, preferring the UTC
// variant. The second return is false when the timestamp is absent or not in
// any known format.
func (r Reservation) CreatedAt() (time.Time, bool) {
	raw := r.DateCreatedUTC
	if raw == "" {
		raw = r.DateCreated
	}
	if raw == "" {
		return time.Time{}, false
	}

	for _, format := range createdAtFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
