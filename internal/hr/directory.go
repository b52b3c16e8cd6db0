// Package hr holds the HR record collections and the services that read
// and write them.
package hr

import (
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// Directory owns one store per entity kind for the life of the process.
type Directory struct {
	Candidates  *store.Store[models.Candidate, *models.Candidate]
	Interviews  *store.Store[models.Interview, *models.Interview]
	Employees   *store.Store[models.Employee, *models.Employee]
	Onboarding  *store.Store[models.OnboardingTask, *models.OnboardingTask]
	Offboarding *store.Store[models.OffboardingTask, *models.OffboardingTask]
	Documents   *store.Store[models.Document, *models.Document]
	Users       *store.Store[models.User, *models.User]
}

func NewDirectory() *Directory {
	return &Directory{
		Candidates:  store.New[models.Candidate]("candidate"),
		Interviews:  store.New[models.Interview]("interview"),
		Employees:   store.New[models.Employee]("employee"),
		Onboarding:  store.New[models.OnboardingTask]("onboarding task"),
		Offboarding: store.New[models.OffboardingTask]("offboarding task"),
		Documents:   store.New[models.Document]("document"),
		Users:       store.New[models.User]("user"),
	}
}

// Counts reports the number of records per kind.
func (d *Directory) Counts() map[string]int {
	return map[string]int{
		"candidates":  d.Candidates.Len(),
		"interviews":  d.Interviews.Len(),
		"employees":   d.Employees.Len(),
		"onboarding":  d.Onboarding.Len(),
		"offboarding": d.Offboarding.Len(),
		"documents":   d.Documents.Len(),
		"users":       d.Users.Len(),
	}
}
