package dashboard

// Stats is the admin dashboard summary for "today".
type Stats struct {
	TotalEmployees int `json:"total_employees"`
	PresentToday   int `json:"present_today"`
	PendingPermits int `json:"pending_permits"`
	PendingSwaps   int `json:"pending_swaps"`
}
