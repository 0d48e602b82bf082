package domain

// Property is one registered hotel with its Cloudbeds credential.
// Capacity is static configuration keyed by property id; the registry is
// loaded once at startup and never mutated during a request.
type Property struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	APIKey   string `json:"-"`
	Capacity int    `json:"capacity"`
}
