package domain

// RoomRecord is one unassigned room as returned by the inventory API.
type RoomRecord struct {
	RoomID       string `json:"roomID"`
	RoomName     string `json:"roomName"`
	RoomTypeName string `json:"roomTypeName"`
	RoomBlocked  bool   `json:"roomBlocked"`
}

// UnassignedInventory is the full paginated inventory result for one
// property: every unassigned room record plus the total count the upstream
// declared on the first page.
type UnassignedInventory struct {
	Rooms           []RoomRecord
	TotalUnassigned int
}

// AvailableRoom is an unblocked, non-test, non-private room surfaced in the
// property table.
type AvailableRoom struct {
	RoomName     string `json:"roomName"`
	RoomTypeName string `json:"roomTypeName"`
}
