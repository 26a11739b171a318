package services

import (
	"context"
	"time"

	"github.com/FractalFish/recruitment-portal/internal/cache"
	"github.com/FractalFish/recruitment-portal/internal/models"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/utils"
)

const (
	competenceCatalogKey = "competence:catalog"
	competenceCatalogTTL = 10 * time.Minute
)

type CompetenceService interface {
	All(ctx context.Context) ([]models.Competence, error)
}

type competenceService struct {
	competences pgrepo.CompetenceRepository
	cache       cache.Cache
}

// NewCompetenceService serves the static competence catalog, read through an
// optional cache. A nil cache disables caching.
func NewCompetenceService(competences pgrepo.CompetenceRepository, c cache.Cache) CompetenceService {
	return &competenceService{competences: competences, cache: c}
}

func (s *competenceService) All(ctx context.Context) ([]models.Competence, error) {
	const op = "CompetenceService.All"

	if s.cache != nil {
		var cached []models.Competence
		if hit, err := s.cache.GetJSON(ctx, competenceCatalogKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	cs, err := s.competences.All(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load competences", err)
	}

	if s.cache != nil {
		// best effort; a failed cache write must not fail the read
		_ = s.cache.SetJSON(ctx, competenceCatalogKey, cs, competenceCatalogTTL)
	}
	return cs, nil
}
