package models

type DepartmentMetrics struct {
	Name           string  `json:"name"`
	Headcount      int     `json:"headcount"`
	OpenPositions  int     `json:"openPositions"`
	AvgPerformance float64 `json:"avgPerformance"`
	TurnoverRate   float64 `json:"turnoverRate"`
}

type HiringTrendPoint struct {
	Month      string `json:"month"`
	Hires      int    `json:"hires"`
	Departures int    `json:"departures"`
}

// AnalyticsData is the aggregate returned by GET /api/analytics.
type AnalyticsData struct {
	TotalEmployees    int                 `json:"totalEmployees"`
	NewHires          int                 `json:"newHires"`
	OpenPositions     int                 `json:"openPositions"`
	AvgTimeToHire     float64             `json:"avgTimeToHire"`
	TurnoverRate      float64             `json:"turnoverRate"`
	DepartmentMetrics []DepartmentMetrics `json:"departmentMetrics"`
	HiringTrend       []HiringTrendPoint  `json:"hiringTrend"`
	PipelineByStatus  map[string]int      `json:"pipelineByStatus"`
}

type DepartmentCount struct {
	Name          string `json:"name"`
	Count         int    `json:"count"`
	OpenPositions int    `json:"openPositions"`
}

type RecentCandidate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	Status    CandidateStatus `json:"status"`
	AppliedAt string          `json:"appliedAt"`
}

type UpcomingInterview struct {
	ID            string        `json:"id"`
	CandidateName string        `json:"candidateName"`
	Position      string        `json:"position"`
	ScheduledAt   string        `json:"scheduledAt"`
	Type          InterviewType `json:"type"`
}

type OnboardingProgress struct {
	EmployeeID     string `json:"employeeId"`
	EmployeeName   string `json:"employeeName"`
	Position       string `json:"position"`
	Progress       int    `json:"progress"`
	TasksCompleted int    `json:"tasksCompleted"`
	TotalTasks     int    `json:"totalTasks"`
}

// DashboardStats is the snapshot returned by GET /api/dashboard/stats.
type DashboardStats struct {
	TotalEmployees           int                  `json:"totalEmployees"`
	NewCandidatesMonth       int                  `json:"newCandidatesMonth"`
	CompletedInterviewsMonth int                  `json:"completedInterviewsMonth"`
	ActiveOnboardingTasks    int                  `json:"activeOnboardingTasks"`
	EmployeesOnboarding      int                  `json:"employeesOnboarding"`
	CandidatesInInterview    int                  `json:"candidatesInInterview"`
	AvgPerformanceScore      float64              `json:"avgPerformanceScore"`
	EmployeesOffboarding     int                  `json:"employeesOffboarding"`
	DepartmentBreakdown      []DepartmentCount    `json:"departmentBreakdown"`
	HiringTrend              []HiringTrendPoint   `json:"hiringTrend"`
	RecentCandidates         []RecentCandidate    `json:"recentCandidates"`
	UpcomingInterviews       []UpcomingInterview  `json:"upcomingInterviews"`
	OnboardingProgress       []OnboardingProgress `json:"onboardingProgress"`
}
