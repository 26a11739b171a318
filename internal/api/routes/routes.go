package routes

import (
	"github.com/FractalFish/recruitment-portal/internal/api/handlers"
	"github.com/FractalFish/recruitment-portal/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Applicant *handlers.ApplicantHandler
	Recruiter *handlers.RecruiterHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/competences", d.Applicant.Competences)

	applicant := auth.Group("/")
	applicant.Use(middleware.RequireApplicant())
	applicant.POST("/application", d.Applicant.Submit)
	applicant.GET("/application/me", d.Applicant.MyApplication)

	recruiter := auth.Group("/")
	recruiter.Use(middleware.RequireRecruiter())
	recruiter.GET("/applications", d.Recruiter.List)
	recruiter.GET("/applications/:id", d.Recruiter.Details)
	recruiter.PUT("/applications/:id/status", d.Recruiter.UpdateStatus)
}
