// internal/models/analytics.go
package models

// DashboardMetric is a headline figure with a human-readable trend.
type DashboardMetric struct {
	Value interface{} `json:"value"`
	Trend string      `json:"trend"`
}

type AnalyticsDashboard struct {
	ActiveRFPs        DashboardMetric `json:"activeRFPs"`
	PendingPlacements DashboardMetric `json:"pendingPlacements"`
	AIResponseRate    DashboardMetric `json:"aiResponseRate"`
	WinRate           DashboardMetric `json:"winRate"`
}
