package hr

import (
	"errors"

	"talentflow/internal/api/validation"
	"talentflow/internal/logging"
	"talentflow/internal/query"
	"talentflow/internal/store"
)

// ErrDuplicateEmail is returned when a write would reuse another record's email.
var ErrDuplicateEmail = errors.New("email already exists")

// Service is the validated CRUD surface of one entity kind.
type Service[T any, P interface {
	*T
	store.Record
}] struct {
	store     *store.Store[T, P]
	schema    query.Schema[T]
	validator *validation.Validator
	logger    logging.Logger

	// conflict reports whether rec collides with an existing record. It runs
	// under the store's write lock.
	conflict func(rec, other T) error
	// assigned runs once the new record has its id, before it is stored.
	assigned func(rec *T)
}

func newService[T any, P interface {
	*T
	store.Record
}](s *store.Store[T, P], schema query.Schema[T], v *validation.Validator, logger logging.Logger) *Service[T, P] {
	return &Service[T, P]{
		store:     s,
		schema:    schema,
		validator: v,
		logger:    logger.WithField("kind", s.Kind()),
	}
}

// Schema returns the query schema used by List.
func (s *Service[T, P]) Schema() query.Schema[T] { return s.schema }

// List runs the query pipeline over a snapshot of the store.
func (s *Service[T, P]) List(p query.Params) query.Result[T] {
	return query.Run(s.store.List(), s.schema, p)
}

func (s *Service[T, P]) Get(id string) (T, error) {
	return s.store.Get(id)
}

// Create validates rec, merged with problems found while decoding the
// request, and stores it. Field validation runs before the conflict check.
func (s *Service[T, P]) Create(rec T, problems ...validation.Problem) (T, error) {
	if err := s.validator.Check(&rec, problems...); err != nil {
		var zero T
		return zero, err
	}

	created, err := s.store.Create(rec, func(rec *T, existing []T) error {
		if s.assigned != nil {
			s.assigned(rec)
		}
		return s.checkConflicts(*rec, existing)
	})
	if err != nil {
		return created, err
	}

	s.logger.Info("Record created", map[string]interface{}{"id": P(&created).GetID()})
	return created, nil
}

// Update applies patch to a copy of the stored record and commits it only
// when the merged record is valid and conflict free.
func (s *Service[T, P]) Update(id string, patch func(*T), problems ...validation.Problem) (T, error) {
	updated, err := s.store.Update(id, func(rec *T, others []T) error {
		patch(rec)
		if err := s.validator.Check(rec, problems...); err != nil {
			return err
		}
		return s.checkConflicts(*rec, others)
	})
	if err != nil {
		return updated, err
	}

	s.logger.Info("Record updated", map[string]interface{}{"id": id})
	return updated, nil
}

func (s *Service[T, P]) Delete(id string) (T, error) {
	removed, err := s.store.Delete(id)
	if err != nil {
		return removed, err
	}

	s.logger.Info("Record deleted", map[string]interface{}{"id": id})
	return removed, nil
}

func (s *Service[T, P]) checkConflicts(rec T, others []T) error {
	if s.conflict == nil {
		return nil
	}
	for _, other := range others {
		if err := s.conflict(rec, other); err != nil {
			return err
		}
	}
	return nil
}
