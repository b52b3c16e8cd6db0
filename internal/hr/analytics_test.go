package hr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/pkg/models"
)

func plainHash(p string) (string, error) { return "hashed:" + p, nil }

func seededServices(t *testing.T) *Services {
	t.Helper()
	svc := newTestServices(t, Options{})
	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.NoError(t, seed.Apply(svc.Directory, plainHash))
	return svc
}

func TestDefaultSeedLoads(t *testing.T) {
	svc := seededServices(t)
	counts := svc.Directory.Counts()

	assert.Equal(t, 3, counts["users"])
	assert.Equal(t, 7, counts["candidates"])
	assert.Equal(t, 4, counts["interviews"])
	assert.Equal(t, 6, counts["employees"])
	assert.Equal(t, 5, counts["onboarding"])
	assert.Equal(t, 3, counts["offboarding"])
	assert.Equal(t, 3, counts["documents"])

	sarah, ok := svc.Directory.Users.Find(func(u models.User) bool { return u.Email == "sarah.johnson@company.com" })
	require.True(t, ok)
	assert.Equal(t, "hashed:demo123", sarah.PasswordHash)
	assert.Equal(t, models.RoleHR, sarah.Role)

	iv, err := svc.Interviews.Get("3")
	require.NoError(t, err)
	require.NotNil(t, iv.Feedback)
	assert.Equal(t, models.StrongHire, iv.Feedback.Recommendation)

	// seeded ids advance the sequence
	c, err := svc.Candidates.Create(models.CandidateInput{Name: "N", Email: "n@x.com", Position: "P"}.Candidate(svc.Today()))
	require.NoError(t, err)
	assert.Equal(t, "8", c.ID)
}

func TestSeedRecordsAreValid(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	svc := newTestServices(t, Options{})

	for _, c := range seed.Candidates {
		assert.NoError(t, svc.Candidates.validator.Check(&c), c.ID)
	}
	for _, i := range seed.Interviews {
		assert.NoError(t, svc.Interviews.validator.Check(&i), i.ID)
	}
	for _, e := range seed.Employees {
		assert.NoError(t, svc.Employees.validator.Check(&e), e.ID)
	}
	for _, task := range seed.Onboarding {
		assert.NoError(t, svc.Onboarding.validator.Check(&task), task.ID)
	}
	for _, task := range seed.Offboarding {
		assert.NoError(t, svc.Offboarding.validator.Check(&task), task.ID)
	}
	for _, d := range seed.Documents {
		assert.NoError(t, svc.Documents.validator.Check(&d), d.ID)
	}
}

func TestParseSeedRejectsGarbage(t *testing.T) {
	_, err := ParseSeed([]byte("candidates: [unterminated"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("candidates:\n  - aiScore: high\n"))
	assert.Error(t, err)
}

func TestAnalyticsReflectsStores(t *testing.T) {
	svc := seededServices(t)
	data := svc.Analytics.Compute()

	assert.Equal(t, 6, data.TotalEmployees)
	assert.Equal(t, 0.0, data.TurnoverRate)
	// new, screening, interview x2, offer
	assert.Equal(t, 5, data.OpenPositions)
	assert.Equal(t, 2, data.PipelineByStatus["interview"])
	assert.Equal(t, 1, data.PipelineByStatus["hired"])
	// Priya applied 2023-12-01 and started 2024-01-08
	assert.Equal(t, 38.0, data.AvgTimeToHire)
	assert.Equal(t, 2, data.NewHires)

	var eng models.DepartmentMetrics
	for _, m := range data.DepartmentMetrics {
		if m.Name == "Engineering" {
			eng = m
		}
	}
	assert.Equal(t, 1, eng.Headcount)
	assert.Equal(t, 2, eng.OpenPositions)
	assert.Equal(t, 4.4, eng.AvgPerformance)

	require.Len(t, data.HiringTrend, 6)
	assert.Equal(t, "Aug", data.HiringTrend[0].Month)
	assert.Equal(t, "Jan", data.HiringTrend[5].Month)
	assert.Equal(t, 2, data.HiringTrend[5].Hires)

	// a new inactive employee shows up as turnover
	_, err := svc.Employees.Create(models.EmployeeInput{
		Name: "Gone", Email: "gone@x.com", Position: "P", Department: "Sales",
		StartDate: "2024-01-02", Status: models.EmployeeInactive,
	}.Employee(svc.Today()))
	require.NoError(t, err)
	data = svc.Analytics.Compute()
	assert.Equal(t, 6, data.TotalEmployees)
	assert.Equal(t, 14.3, data.TurnoverRate)
	assert.Equal(t, 1, data.HiringTrend[5].Departures)
}

func TestDashboardSnapshot(t *testing.T) {
	svc := seededServices(t)
	stats, at := svc.Dashboard.Stats()

	assert.Equal(t, fixedNow, at)
	assert.Equal(t, 6, stats.TotalEmployees)
	assert.Equal(t, 2, stats.EmployeesOnboarding)
	assert.Equal(t, 1, stats.EmployeesOffboarding)
	assert.Equal(t, 2, stats.CandidatesInInterview)
	assert.Equal(t, 6, stats.NewCandidatesMonth)
	assert.Equal(t, 1, stats.CompletedInterviewsMonth)
	assert.Equal(t, 3, stats.ActiveOnboardingTasks)

	require.Len(t, stats.RecentCandidates, 5)
	assert.Equal(t, "Daniel Kim", stats.RecentCandidates[0].Name)

	require.Len(t, stats.UpcomingInterviews, 3)
	assert.Equal(t, "Alex Chen", stats.UpcomingInterviews[0].CandidateName)

	require.Len(t, stats.OnboardingProgress, 2)
	assert.Equal(t, "David Park", stats.OnboardingProgress[0].EmployeeName)
	assert.Equal(t, 50, stats.OnboardingProgress[0].Progress)

	// the snapshot is cached until refreshed
	_, err := svc.Employees.Delete("1")
	require.NoError(t, err)
	cached, _ := svc.Dashboard.Stats()
	assert.Equal(t, 6, cached.TotalEmployees)

	refreshed, _ := svc.Dashboard.Refresh()
	assert.Equal(t, 5, refreshed.TotalEmployees)
}

func TestHiringTrendWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	points := hiringTrend(now, []models.Employee{
		{StartDate: "2023-09-30"},
		{StartDate: "2023-10-01"},
		{StartDate: "2024-03-02", Status: models.EmployeeInactive},
		{StartDate: "not a date"},
	})

	require.Len(t, points, 6)
	assert.Equal(t, "Oct", points[0].Month)
	assert.Equal(t, 1, points[0].Hires)
	assert.Equal(t, 1, points[5].Hires)
	assert.Equal(t, 1, points[5].Departures)
}
