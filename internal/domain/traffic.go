package domain

// TopPage is one page in the top-pages-by-views table.
type TopPage struct {
	Path     string `json:"path"`
	Views    int    `json:"views"`
	Sessions int    `json:"sessions"`
}

// DailyTrendPoint is one day of the traffic trend, ordered by date.
type DailyTrendPoint struct {
	Date      string `json:"date"`
	Sessions  int    `json:"sessions"`
	PageViews int    `json:"pageViews"`
	NewUsers  int    `json:"newUsers"`
}

// SummaryMetrics is the raw summary row from the analytics report: bounce
// rate still a 0..1 fraction, engagement duration still in seconds.
type SummaryMetrics struct {
	Sessions           int
	PageViews          int
	NewUsers           int
	ActiveUsers        int
	EngagedSessions    int
	BounceRate         float64
	Conversions        int
	AvgSessionDuration float64
}

// TrafficSummary holds web-traffic metrics for the requested date range.
// Independent of booking data until the dashboard join; a nil
// *TrafficSummary means the traffic source was unavailable.
type TrafficSummary struct {
	Sessions          int               `json:"sessions"`
	PageViews         int               `json:"pageViews"`
	NewUsers          int               `json:"newUsers"`
	ActiveUsers       int               `json:"activeUsers"`
	EngagedSessions   int               `json:"engagedSessions"`
	BounceRate        float64           `json:"bounceRate"`
	Conversions       int               `json:"conversions"`
	AvgEngagementTime string            `json:"avgEngagementTime"`
	TopPages          []TopPage         `json:"topPages"`
	DailyTrend        []DailyTrendPoint `json:"dailyTrend"`
}
