package domain

// PropertyConnection reports connectivity for one registered property.
type PropertyConnection struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Connected bool   `json:"connected"`
}

// SourceStatus reports connectivity for one upstream system. LastSync is an
// RFC3339 timestamp, empty when the source never connected.
type SourceStatus struct {
	Connected bool   `json:"connected"`
	LastSync  string `json:"lastSync,omitempty"`
}

// CloudbedsStatus extends SourceStatus with the per-property breakdown.
type CloudbedsStatus struct {
	SourceStatus
	Properties          []PropertyConnection `json:"properties"`
	ConnectedProperties string               `json:"connectedProperties"`
}

// ConnectionStatus is the status-check response covering both upstreams,
// independent of the main report.
type ConnectionStatus struct {
	GoogleAnalytics SourceStatus    `json:"googleAnalytics"`
	Cloudbeds       CloudbedsStatus `json:"cloudbeds"`
}
