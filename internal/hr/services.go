package hr

import (
	"strconv"
	"time"

	"talentflow/internal/api/validation"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

type (
	CandidateService   = Service[models.Candidate, *models.Candidate]
	InterviewService   = Service[models.Interview, *models.Interview]
	EmployeeService    = Service[models.Employee, *models.Employee]
	OnboardingService  = Service[models.OnboardingTask, *models.OnboardingTask]
	OffboardingService = Service[models.OffboardingTask, *models.OffboardingTask]
)

// Services bundles everything the HTTP layer needs from this package.
type Services struct {
	Directory   *Directory
	Candidates  *CandidateService
	Interviews  *InterviewService
	Employees   *EmployeeService
	Onboarding  *OnboardingService
	Offboarding *OffboardingService
	Documents   *DocumentService
	Analytics   *Analytics
	Dashboard   *Dashboard

	// Now is the clock used for defaults such as appliedAt.
	Now func() time.Time
}

// Options configures NewServices. Zero values select defaults.
type Options struct {
	Validator *validation.Validator
	Logger    logging.Logger
	Blobs     BlobStore
	Extractor Extractor
	Jobs      JobQueue
	Now       func() time.Time
}

func NewServices(dir *Directory, opts Options) *Services {
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobalLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger.WithField("component", "hr")

	candidates := newService(dir.Candidates, CandidateSchema, opts.Validator, logger)
	candidates.conflict = func(rec, other models.Candidate) error {
		if rec.Email == other.Email {
			return ErrDuplicateEmail
		}
		return nil
	}

	analytics := NewAnalytics(dir, opts.Now)

	return &Services{
		Directory:   dir,
		Candidates:  candidates,
		Interviews:  newService(dir.Interviews, InterviewSchema, opts.Validator, logger),
		Employees:   newService(dir.Employees, EmployeeSchema, opts.Validator, logger),
		Onboarding:  newService(dir.Onboarding, OnboardingSchema, opts.Validator, logger),
		Offboarding: newService(dir.Offboarding, OffboardingSchema, opts.Validator, logger),
		Documents:   newDocumentService(dir, opts, logger),
		Analytics:   analytics,
		Dashboard:   NewDashboard(analytics),
		Now:         opts.Now,
	}
}

// Today is the current calendar date by the services' clock.
func (s *Services) Today() string {
	return utils.Today(s.Now())
}

// idNumber parses numeric ids for sorting; other ids sort first.
func idNumber(id string) float64 {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return float64(n)
}
