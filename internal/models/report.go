package models

type KPIs struct {
	UniqueUsersToday int64   `json:"unique_users_today"`
	TotalApiCalls    int64   `json:"total_api_calls"`
	ErrorRate        float64 `json:"error_rate"`
	TotalLogins      int64   `json:"total_logins"`
}

// Series is a labelled chart series; Labels and Values always have equal length.
type Series struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type Charts struct {
	ActivityOverTime Series `json:"activity_over_time"`
	TopEndpoints     Series `json:"top_endpoints"`
	ErrorBreakdown   Series `json:"error_breakdown"`
}

type DashboardReport struct {
	KPIs   KPIs   `json:"kpis"`
	Charts Charts `json:"charts"`
}
