package hr

import (
	"math"
	"sort"
	"sync"
	"time"

	"talentflow/internal/query"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

const trendMonths = 6

// Analytics computes aggregates from the live stores.
type Analytics struct {
	dir *Directory
	now func() time.Time
}

func NewAnalytics(dir *Directory, now func() time.Time) *Analytics {
	return &Analytics{dir: dir, now: now}
}

// openPositionStatuses are the candidate stages that still represent an unfilled role.
var openPositionStatuses = map[models.CandidateStatus]bool{
	models.CandidateNew:       true,
	models.CandidateScreening: true,
	models.CandidateInterview: true,
	models.CandidateOffer:     true,
}

// Compute builds the analytics report.
func (a *Analytics) Compute() models.AnalyticsData {
	now := a.now()
	employees := a.dir.Employees.List()
	candidates := a.dir.Candidates.List()

	data := models.AnalyticsData{
		DepartmentMetrics: []models.DepartmentMetrics{},
		PipelineByStatus:  make(map[string]int, len(models.CandidateStatuses)),
	}
	for _, s := range models.CandidateStatuses {
		data.PipelineByStatus[string(s)] = 0
	}

	type deptAcc struct {
		headcount, open, departed, scored int
		scoreSum                          float64
	}
	depts := map[string]*deptAcc{}
	dept := func(name string) *deptAcc {
		if depts[name] == nil {
			depts[name] = &deptAcc{}
		}
		return depts[name]
	}

	yearAgo := now.AddDate(-1, 0, 0)
	departed := 0
	for _, e := range employees {
		d := dept(e.Department)
		switch e.Status {
		case models.EmployeeActive, models.EmployeeOnboarding, models.EmployeeOffboarding:
			data.TotalEmployees++
			d.headcount++
		case models.EmployeeInactive:
			departed++
			d.departed++
		}
		if e.PerformanceScore != nil {
			d.scoreSum += *e.PerformanceScore
			d.scored++
		}
		if start, ok := utils.ParseDate(e.StartDate); ok && !start.Before(yearAgo) && !start.After(now) {
			data.NewHires++
		}
	}

	var hireDays []float64
	for _, c := range candidates {
		data.PipelineByStatus[string(c.Status)]++
		if openPositionStatuses[c.Status] {
			data.OpenPositions++
			dept(c.Department).open++
		}
		if c.Status == models.CandidateHired {
			if days, ok := daysToHire(c, employees); ok {
				hireDays = append(hireDays, days)
			}
		}
	}
	data.AvgTimeToHire = round1(mean(hireDays))
	data.TurnoverRate = round1(percent(departed, data.TotalEmployees+departed))

	names := make([]string, 0, len(depts))
	for name := range depts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := depts[name]
		m := models.DepartmentMetrics{
			Name:          name,
			Headcount:     d.headcount,
			OpenPositions: d.open,
			TurnoverRate:  round1(percent(d.departed, d.headcount+d.departed)),
		}
		if d.scored > 0 {
			m.AvgPerformance = round1(d.scoreSum / float64(d.scored))
		}
		data.DepartmentMetrics = append(data.DepartmentMetrics, m)
	}

	data.HiringTrend = hiringTrend(now, employees)
	return data
}

// Dashboard builds the dashboard snapshot.
func (a *Analytics) Dashboard() models.DashboardStats {
	now := a.now()
	employees := a.dir.Employees.List()
	candidates := a.dir.Candidates.List()
	interviews := a.dir.Interviews.List()
	tasks := a.dir.Onboarding.List()

	stats := models.DashboardStats{
		DepartmentBreakdown: []models.DepartmentCount{},
		RecentCandidates:    []models.RecentCandidate{},
		UpcomingInterviews:  []models.UpcomingInterview{},
		OnboardingProgress:  []models.OnboardingProgress{},
	}

	counts := map[string]*models.DepartmentCount{}
	breakdown := func(name string) *models.DepartmentCount {
		if counts[name] == nil {
			counts[name] = &models.DepartmentCount{Name: name}
		}
		return counts[name]
	}

	var scores []float64
	for _, e := range employees {
		switch e.Status {
		case models.EmployeeOnboarding:
			stats.EmployeesOnboarding++
		case models.EmployeeOffboarding:
			stats.EmployeesOffboarding++
		case models.EmployeeActive, models.EmployeeInactive:
		}
		if e.Status != models.EmployeeInactive {
			stats.TotalEmployees++
			breakdown(e.Department).Count++
		}
		if e.PerformanceScore != nil {
			scores = append(scores, *e.PerformanceScore)
		}
	}
	stats.AvgPerformanceScore = round1(mean(scores))

	for _, c := range candidates {
		if applied, ok := utils.ParseDate(c.AppliedAt); ok && sameMonth(applied, now) {
			stats.NewCandidatesMonth++
		}
		if c.Status == models.CandidateInterview {
			stats.CandidatesInInterview++
		}
		if openPositionStatuses[c.Status] {
			breakdown(c.Department).OpenPositions++
		}
	}

	for _, i := range interviews {
		at, ok := utils.ParseTimestamp(i.ScheduledAt)
		if !ok {
			continue
		}
		if i.Status == models.InterviewCompleted && sameMonth(at, now) {
			stats.CompletedInterviewsMonth++
		}
	}

	for _, t := range tasks {
		if t.Status != models.TaskCompleted {
			stats.ActiveOnboardingTasks++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats.DepartmentBreakdown = append(stats.DepartmentBreakdown, *counts[name])
	}

	stats.HiringTrend = hiringTrend(now, employees)

	recent := query.Run(candidates, CandidateSchema, query.Params{PageSize: 5})
	for _, c := range recent.Items {
		stats.RecentCandidates = append(stats.RecentCandidates, models.RecentCandidate{
			ID: c.ID, Name: c.Name, Position: c.Position, Status: c.Status, AppliedAt: c.AppliedAt,
		})
	}

	stats.UpcomingInterviews = upcomingInterviews(now, interviews, 5)
	stats.OnboardingProgress = onboardingProgress(employees, tasks)
	return stats
}

func upcomingInterviews(now time.Time, interviews []models.Interview, limit int) []models.UpcomingInterview {
	var scheduled []models.Interview
	for _, i := range interviews {
		at, ok := utils.ParseTimestamp(i.ScheduledAt)
		if i.Status == models.InterviewScheduled && ok && !at.Before(now) {
			scheduled = append(scheduled, i)
		}
	}
	page := query.Run(scheduled, InterviewSchema, query.Params{PageSize: limit})

	out := make([]models.UpcomingInterview, 0, len(page.Items))
	for _, i := range page.Items {
		out = append(out, models.UpcomingInterview{
			ID: i.ID, CandidateName: i.CandidateName, Position: i.Position, ScheduledAt: i.ScheduledAt, Type: i.Type,
		})
	}
	return out
}

// onboardingProgress reports task completion for employees still onboarding.
func onboardingProgress(employees []models.Employee, tasks []models.OnboardingTask) []models.OnboardingProgress {
	type tally struct{ done, total int }
	byEmployee := map[string]*tally{}
	for _, t := range tasks {
		if byEmployee[t.EmployeeID] == nil {
			byEmployee[t.EmployeeID] = &tally{}
		}
		byEmployee[t.EmployeeID].total++
		if t.Status == models.TaskCompleted {
			byEmployee[t.EmployeeID].done++
		}
	}

	out := []models.OnboardingProgress{}
	for _, e := range employees {
		if e.Status != models.EmployeeOnboarding {
			continue
		}
		p := models.OnboardingProgress{EmployeeID: e.ID, EmployeeName: e.Name, Position: e.Position}
		if t := byEmployee[e.ID]; t != nil {
			p.TasksCompleted = t.done
			p.TotalTasks = t.total
			p.Progress = int(math.Round(percent(t.done, t.total)))
		}
		out = append(out, p)
	}
	return out
}

// hiringTrend counts starts and inactive employees per month over the last
// trendMonths months, oldest first. Departures are attributed to the start
// month since no end date is recorded.
func hiringTrend(now time.Time, employees []models.Employee) []models.HiringTrendPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)

	points := make([]models.HiringTrendPoint, trendMonths)
	for i := range points {
		points[i].Month = first.AddDate(0, i, 0).Format("Jan")
	}

	for _, e := range employees {
		start, ok := utils.ParseDate(e.StartDate)
		if !ok || start.Before(first) {
			continue
		}
		idx := (start.Year()-first.Year())*12 + int(start.Month()) - int(first.Month())
		if idx < 0 || idx >= trendMonths {
			continue
		}
		points[idx].Hires++
		if e.Status == models.EmployeeInactive {
			points[idx].Departures++
		}
	}
	return points
}

// daysToHire matches a hired candidate to the employee record with the same
// email and measures application to start date.
func daysToHire(c models.Candidate, employees []models.Employee) (float64, bool) {
	applied, ok := utils.ParseDate(c.AppliedAt)
	if !ok {
		return 0, false
	}
	for _, e := range employees {
		if e.Email != c.Email {
			continue
		}
		start, ok := utils.ParseDate(e.StartDate)
		if !ok || start.Before(applied) {
			return 0, false
		}
		return start.Sub(applied).Hours() / 24, true
	}
	return 0, false
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Dashboard caches the dashboard snapshot between refreshes.
type Dashboard struct {
	analytics *Analytics

	mu         sync.RWMutex
	stats      *models.DashboardStats
	computedAt time.Time
}

func NewDashboard(a *Analytics) *Dashboard {
	return &Dashboard{analytics: a}
}

// Stats returns the cached snapshot, computing it on first use.
func (d *Dashboard) Stats() (models.DashboardStats, time.Time) {
	d.mu.RLock()
	if d.stats != nil {
		defer d.mu.RUnlock()
		return *d.stats, d.computedAt
	}
	d.mu.RUnlock()
	return d.Refresh()
}

// Refresh recomputes and caches the snapshot.
func (d *Dashboard) Refresh() (models.DashboardStats, time.Time) {
	stats := d.analytics.Dashboard()
	at := d.analytics.now()

	d.mu.Lock()
	d.stats = &stats
	d.computedAt = at
	d.mu.Unlock()
	return stats, at
}
