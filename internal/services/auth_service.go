package services

import (
	"context"
	"errors"
	"time"

	"github.com/FractalFish/recruitment-portal/internal/models"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/sirupsen/logrus"
)

const sessionTTL = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *models.Person, error)
}

type authService struct {
	persons   pgrepo.PersonRepository
	jwtSecret string
	log       *logrus.Logger
}

func NewAuthService(persons pgrepo.PersonRepository, jwtSecret string, log *logrus.Logger) AuthService {
	return &authService{persons: persons, jwtSecret: jwtSecret, log: log}
}

// Login verifies the credentials and issues a signed session token carrying
// the person id, username and role. An unknown username and a wrong password
// produce the same UNAUTHORIZED error.
func (s *authService) Login(ctx context.Context, username, password string) (string, *models.Person, error) {
	const op = "AuthService.Login"

	if username == "" || password == "" {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "username and password are required", nil)
	}

	person, err := s.persons.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			s.log.WithField("username", username).Warn("login failed: unknown username")
			return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid username or password", nil)
		}
		return "", nil, utils.E(utils.CodeInternal, op, "failed to load person", err)
	}

	if err := utils.CheckPassword(person.Password, password); err != nil {
		s.log.WithField("username", username).Warn("login failed: wrong password")
		return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid username or password", nil)
	}

	token, err := utils.IssueToken(s.jwtSecret, person.PersonID, person.Username, person.Role.Name, sessionTTL)
	if err != nil {
		return "", nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}

	s.log.WithFields(logrus.Fields{
		"person_id": person.PersonID,
		"username":  person.Username,
		"role":      person.Role.Name,
	}).Info("login succeeded")

	return token, person, nil
}
