package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FractalFish/recruitment-portal/internal/models"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/sirupsen/logrus"
)

// CompetenceEntry is one (competence, years of experience) pair of a
// submission. Zero-valued entries (empty form rows) are skipped.
type CompetenceEntry struct {
	CompetenceID      uint
	YearsOfExperience float64
}

// AvailabilityEntry is one (from, to) date interval of a submission.
type AvailabilityEntry struct {
	FromDate time.Time
	ToDate   time.Time
}

// SubmissionForm is the full replacement payload for a person's competence
// and availability data.
type SubmissionForm struct {
	Competences    []CompetenceEntry
	Availabilities []AvailabilityEntry
}

// Page is a 0-indexed slice of a larger result set.
type Page[T any] struct {
	Content     []T   `json:"content"`
	TotalCount  int64 `json:"total_count"`
	Page        int   `json:"page"`
	Size        int   `json:"size"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ApplicationSummary is the flattened row shown on the recruiter dashboard.
type ApplicationSummary struct {
	ApplicationID uint                     `json:"application_id"`
	PersonName    string                   `json:"person_name"`
	Status        models.ApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

// CompetenceDetail is a competence name with the claimed years of experience.
type CompetenceDetail struct {
	Name              string  `json:"name"`
	YearsOfExperience float64 `json:"years_of_experience"`
}

// AvailabilityDetail is one availability interval of an applicant.
type AvailabilityDetail struct {
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
}

// ApplicationDetails joins an application with its owner and the owner's
// competence/availability breakdown. Version is included so the caller can
// issue a conditional status update afterwards.
type ApplicationDetails struct {
	ApplicationID  uint                     `json:"application_id"`
	PersonName     string                   `json:"person_name"`
	PersonEmail    string                   `json:"person_email"`
	PersonPnr      string                   `json:"person_pnr"`
	Status         models.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	Version        int                      `json:"version"`
	Competences    []CompetenceDetail       `json:"competences"`
	Availabilities []AvailabilityDetail     `json:"availabilities"`
}

type ApplicationService interface {
	Submit(ctx context.Context, personID uint, form SubmissionForm) (*models.Application, error)
	UpdateStatus(ctx context.Context, applicationID uint, newStatus models.ApplicationStatus, check pgrepo.VersionCheck) (*models.Application, error)
	GetByID(ctx context.Context, applicationID uint) (*models.Application, error)
	GetByPerson(ctx context.Context, personID uint) (*models.Application, error)
	HasApplication(ctx context.Context, personID uint) (bool, error)
	GetDetails(ctx context.Context, applicationID uint) (*ApplicationDetails, error)
	List(ctx context.Context, status *models.ApplicationStatus, page, size int) (*Page[ApplicationSummary], error)
}

type applicationService struct {
	persons        pgrepo.PersonRepository
	competences    pgrepo.CompetenceRepository
	profiles       pgrepo.CompetenceProfileRepository
	availabilities pgrepo.AvailabilityRepository
	apps           pgrepo.ApplicationRepository
	tx             pgrepo.TxRunner
	log            *logrus.Logger
}

func NewApplicationService(store *pgrepo.Store, log *logrus.Logger) ApplicationService {
	return &applicationService{
		persons:        store.Persons,
		competences:    store.Competences,
		profiles:       store.Profiles,
		availabilities: store.Availabilities,
		apps:           store.Applications,
		tx:             store,
		log:            log,
	}
}

// Submit replaces the person's competence and availability data wholesale and
// ensures a single application row exists, all within one transaction. Every
// input pair is validated before any destructive write.
func (s *applicationService) Submit(ctx context.Context, personID uint, form SubmissionForm) (*models.Application, error) {
	const op = "ApplicationService.Submit"

	if personID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "person_id is required", nil)
	}
	if _, err := s.persons.FindByID(ctx, personID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "person not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load person", err)
	}

	profiles := make([]models.CompetenceProfile, 0, len(form.Competences))
	for _, ce := range form.Competences {
		if ce.CompetenceID == 0 && ce.YearsOfExperience == 0 {
			continue // empty form row
		}
		if ce.YearsOfExperience < 0 {
			return nil, utils.E(utils.CodeInvalidArgument, op, "years of experience must not be negative", nil)
		}
		if _, err := s.competences.FindByID(ctx, ce.CompetenceID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeInvalidArgument, op,
					fmt.Sprintf("invalid competence id: %d", ce.CompetenceID), err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to resolve competence", err)
		}
		profiles = append(profiles, models.CompetenceProfile{
			PersonID:          personID,
			CompetenceID:      ce.CompetenceID,
			YearsOfExperience: ce.YearsOfExperience,
		})
	}

	availabilities := make([]models.Availability, 0, len(form.Availabilities))
	for _, ae := range form.Availabilities {
		if ae.FromDate.IsZero() && ae.ToDate.IsZero() {
			continue // empty form row
		}
		if ae.FromDate.IsZero() || ae.ToDate.IsZero() {
			return nil, utils.E(utils.CodeInvalidArgument, op, "availability requires both from and to dates", nil)
		}
		if ae.ToDate.Before(ae.FromDate) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "invalid date range: to date must not be before from date", nil)
		}
		availabilities = append(availabilities, models.Availability{
			PersonID: personID,
			FromDate: ae.FromDate,
			ToDate:   ae.ToDate,
		})
	}

	var app *models.Application
	err := s.tx.Transaction(ctx, func(store *pgrepo.Store) error {
		if err := store.Profiles.DeleteByPersonID(ctx, personID); err != nil {
			return err
		}
		if err := store.Availabilities.DeleteByPersonID(ctx, personID); err != nil {
			return err
		}
		for i := range profiles {
			if err := store.Profiles.Create(ctx, &profiles[i]); err != nil {
				return err
			}
		}
		for i := range availabilities {
			if err := store.Availabilities.Create(ctx, &availabilities[i]); err != nil {
				return err
			}
		}
		var err error
		app, err = store.Applications.FindOrCreateByPersonID(ctx, personID)
		return err
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist application", err)
	}

	s.log.WithFields(logrus.Fields{
		"person_id":      personID,
		"application_id": app.ApplicationID,
		"competences":    len(profiles),
		"availabilities": len(availabilities),
	}).Info("application submitted")

	return app, nil
}

// UpdateStatus moves an application to newStatus under the supplied version
// check. A version mismatch surfaces as CONFLICT, distinct from NOT_FOUND, so
// the caller can reload and retry. No retry is performed here.
func (s *applicationService) UpdateStatus(ctx context.Context, applicationID uint, newStatus models.ApplicationStatus, check pgrepo.VersionCheck) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if applicationID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}
	if _, err := models.ParseApplicationStatus(string(newStatus)); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	app, err := s.apps.UpdateStatus(ctx, applicationID, newStatus, check)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		case errors.Is(err, utils.ErrVersionConflict):
			return nil, utils.E(utils.CodeConflict, op, "application was modified by another user", err)
		default:
			return nil, utils.E(utils.CodeInternal, op, "failed to update application status", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"status":         newStatus,
		"version":        app.Version,
	}).Info("application status updated")

	return app, nil
}

func (s *applicationService) GetByID(ctx context.Context, applicationID uint) (*models.Application, error) {
	const op = "ApplicationService.GetByID"

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	return app, nil
}

func (s *applicationService) GetByPerson(ctx context.Context, personID uint) (*models.Application, error) {
	const op = "ApplicationService.GetByPerson"

	app, err := s.apps.FindByPersonID(ctx, personID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	return app, nil
}

func (s *applicationService) HasApplication(ctx context.Context, personID uint) (bool, error) {
	const op = "ApplicationService.HasApplication"

	ok, err := s.apps.ExistsByPersonID(ctx, personID)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to check application existence", err)
	}
	return ok, nil
}

func (s *applicationService) GetDetails(ctx context.Context, applicationID uint) (*ApplicationDetails, error) {
	const op = "ApplicationService.GetDetails"

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	profiles, err := s.profiles.ListByPersonID(ctx, app.PersonID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load competence profiles", err)
	}
	availabilities, err := s.availabilities.ListByPersonID(ctx, app.PersonID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load availabilities", err)
	}

	details := &ApplicationDetails{
		ApplicationID:  app.ApplicationID,
		PersonName:     app.Person.FullName(),
		PersonEmail:    app.Person.Email,
		PersonPnr:      app.Person.Pnr,
		Status:         app.Status,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
		Version:        app.Version,
		Competences:    make([]CompetenceDetail, 0, len(profiles)),
		Availabilities: make([]AvailabilityDetail, 0, len(availabilities)),
	}
	for _, p := range profiles {
		details.Competences = append(details.Competences, CompetenceDetail{
			Name:              p.Competence.Name,
			YearsOfExperience: p.YearsOfExperience,
		})
	}
	for _, a := range availabilities {
		details.Availabilities = append(details.Availabilities, AvailabilityDetail{
			FromDate: a.FromDate,
			ToDate:   a.ToDate,
		})
	}
	return details, nil
}

// List returns one page of application summaries, newest first, optionally
// filtered by status. Zero matching rows yield an empty page, not an error.
func (s *applicationService) List(ctx context.Context, status *models.ApplicationStatus, page, size int) (*Page[ApplicationSummary], error) {
	const op = "ApplicationService.List"

	if page < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "page must not be negative", nil)
	}
	if size < 1 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "size must be positive", nil)
	}

	apps, total, err := s.apps.List(ctx, status, page, size)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	content := make([]ApplicationSummary, 0, len(apps))
	for _, a := range apps {
		content = append(content, ApplicationSummary{
			ApplicationID: a.ApplicationID,
			PersonName:    a.Person.FullName(),
			Status:        a.Status,
			CreatedAt:     a.CreatedAt,
		})
	}

	return &Page[ApplicationSummary]{
		Content:     content,
		TotalCount:  total,
		Page:        page,
		Size:        size,
		HasNext:     int64((page+1)*size) < total,
		HasPrevious: page > 0 && total > 0,
	}, nil
}
