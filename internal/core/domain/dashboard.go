package domain

// DashboardCounts partitions every credit by derived status.
type DashboardCounts struct {
	Paid    int64 `json:"paid"`
	Overdue int64 `json:"overdue"`
	Pending int64 `json:"pending"`
	Total   int64 `json:"total"`
}
