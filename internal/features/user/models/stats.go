package models

// RecentUser is the trimmed listing used in statistics.
type RecentUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Stats aggregates the admin dashboard counters.
type Stats struct {
	TotalUsers    int            `json:"totalUsers"`
	ActiveUsers   int            `json:"activeUsers"`
	InactiveUsers int            `json:"inactiveUsers"`
	UsersByRole   map[string]int `json:"usersByRole"`
	RecentUsers   []RecentUser   `json:"recentUsers"`
}
