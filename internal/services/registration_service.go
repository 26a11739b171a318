package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/FractalFish/recruitment-portal/internal/models"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	pnrPattern   = regexp.MustCompile(`^\d{8}-\d{4}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// RegistrationForm carries the fields of the public sign-up form.
type RegistrationForm struct {
	Username string
	Password string
	Name     string
	Surname  string
	Pnr      string
	Email    string
}

type RegistrationService interface {
	RegisterApplicant(ctx context.Context, form RegistrationForm) (*models.Person, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}

type registrationService struct {
	persons pgrepo.PersonRepository
	roles   pgrepo.RoleRepository
	log     *logrus.Logger
}

func NewRegistrationService(persons pgrepo.PersonRepository, roles pgrepo.RoleRepository, log *logrus.Logger) RegistrationService {
	return &registrationService{persons: persons, roles: roles, log: log}
}

// RegisterApplicant creates a new person with the applicant role. The
// plaintext password never leaves this method unhashed.
func (s *registrationService) RegisterApplicant(ctx context.Context, form RegistrationForm) (*models.Person, error) {
	const op = "RegistrationService.RegisterApplicant"

	if err := validateRegistrationForm(form); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	taken, err := s.persons.ExistsByUsername(ctx, form.Username)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check username", err)
	}
	if taken {
		s.log.WithField("username", form.Username).Warn("registration rejected: username taken")
		return nil, utils.E(utils.CodeConflict, op, "username is already taken", nil)
	}

	if form.Email != "" {
		taken, err := s.persons.ExistsByEmail(ctx, form.Email)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
		}
		if taken {
			s.log.WithField("email", form.Email).Warn("registration rejected: email taken")
			return nil, utils.E(utils.CodeConflict, op, "email is already taken", nil)
		}
	}

	role, err := s.roles.FindByName(ctx, models.RoleApplicant)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "applicant role is not configured", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load applicant role", err)
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	person := &models.Person{
		Username: form.Username,
		Password: hash,
		Name:     form.Name,
		Surname:  form.Surname,
		Pnr:      form.Pnr,
		Email:    form.Email,
		RoleID:   role.RoleID,
		Role:     *role,
	}
	if err := s.persons.Create(ctx, person); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create person", err)
	}

	s.log.WithFields(logrus.Fields{
		"person_id": person.PersonID,
		"username":  person.Username,
	}).Info("applicant registered")

	return person, nil
}

func (s *registrationService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	const op = "RegistrationService.IsUsernameTaken"

	taken, err := s.persons.ExistsByUsername(ctx, username)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to check username", err)
	}
	return taken, nil
}

func (s *registrationService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	const op = "RegistrationService.IsEmailTaken"

	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	taken, err := s.persons.ExistsByEmail(ctx, email)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}
	return taken, nil
}

func validateRegistrationForm(form RegistrationForm) error {
	switch {
	case len(form.Username) < 3 || len(form.Username) > 50:
		return errors.New("username must be between 3 and 50 characters")
	case len(form.Password) < 6 || len(form.Password) > 100:
		return errors.New("password must be between 6 and 100 characters")
	case strings.TrimSpace(form.Name) == "" || len(form.Name) > 255:
		return errors.New("name is required")
	case strings.TrimSpace(form.Surname) == "" || len(form.Surname) > 255:
		return errors.New("surname is required")
	case form.Pnr != "" && !pnrPattern.MatchString(form.Pnr):
		return errors.New("pnr must match YYYYMMDD-NNNN")
	case form.Email != "" && !emailPattern.MatchString(form.Email):
		return errors.New("email format is invalid")
	}
	return nil
}
