package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/FractalFish/recruitment-portal/config"
	"github.com/FractalFish/recruitment-portal/internal/api/handlers"
	"github.com/FractalFish/recruitment-portal/internal/api/middleware"
	"github.com/FractalFish/recruitment-portal/internal/api/routes"
	"github.com/FractalFish/recruitment-portal/internal/cache"
	"github.com/FractalFish/recruitment-portal/internal/database"
	"github.com/FractalFish/recruitment-portal/internal/logger"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/services"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := database.Migrate(config.PostgresDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	if err := database.Seed(config.PostgresDB); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	// Init Redis (catalog cache only; the portal runs without it)
	var catalogCache cache.Cache
	if err := config.InitRedis(); err != nil {
		l.WithError(err).Warn("Redis unavailable, competence catalog caching disabled")
	} else {
		catalogCache = cache.NewRedisCache(config.RedisClient)
		l.Info("Redis connected")
	}

	store := pgrepo.NewStore(config.PostgresDB)

	authSvc := services.NewAuthService(store.Persons, os.Getenv("JWT_SECRET"), l)
	regSvc := services.NewRegistrationService(store.Persons, store.Roles, l)
	appSvc := services.NewApplicationService(store, l)
	compSvc := services.NewCompetenceService(store.Competences, catalogCache)

	// Start Gin server
	r := gin.Default()
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc, regSvc),
		Applicant: handlers.NewApplicantHandler(appSvc, compSvc),
		Recruiter: handlers.NewRecruiterHandler(appSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
