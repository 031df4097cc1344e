package models

// ServiceLine is one service's contribution to a day.
type ServiceLine struct {
	ServiceName string  `json:"serviceName"`
	Count       int     `json:"count"`
	Total       float64 `json:"total"`
}

// DayRevenue aggregates one calendar day.
type DayRevenue struct {
	Date     string        `json:"date"` // "2025-03-03"
	Count    int           `json:"count"`
	Total    float64       `json:"total"`
	Services []ServiceLine `json:"services"`
}

// RevenueReportResponse is the completed-appointments revenue report over
// a period. Only FINALIZADO appointments count.
type RevenueReportResponse struct {
	TenantID   int64        `json:"tenantId"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	TotalCount int          `json:"totalCount"`
	Total      float64      `json:"total"`
	Days       []DayRevenue `json:"days"`
}
