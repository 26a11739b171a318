package handlers

import (
	"net/http"
	"time"

	"github.com/FractalFish/recruitment-portal/internal/services"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type ApplicantHandler struct {
	applications services.ApplicationService
	competences  services.CompetenceService
}

func NewApplicantHandler(applications services.ApplicationService, competences services.CompetenceService) *ApplicantHandler {
	return &ApplicantHandler{applications: applications, competences: competences}
}

// Competences lists the competence catalog an applicant can pick from.
func (h *ApplicantHandler) Competences(c *gin.Context) {
	cs, err := h.competences.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

type CompetenceEntryRequest struct {
	CompetenceID      uint    `json:"competence_id"`
	YearsOfExperience float64 `json:"years_of_experience"`
}

type AvailabilityEntryRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

type SubmitApplicationRequest struct {
	Competences    []CompetenceEntryRequest   `json:"competences"`
	Availabilities []AvailabilityEntryRequest `json:"availabilities"`
}

// Submit replaces the caller's competence/availability data and ensures their
// application row exists.
func (h *ApplicantHandler) Submit(c *gin.Context) {
	personID, ok := requirePersonID(c)
	if !ok {
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicantHandler.Submit", "invalid request body", err))
		return
	}

	form := services.SubmissionForm{
		Competences:    make([]services.CompetenceEntry, 0, len(req.Competences)),
		Availabilities: make([]services.AvailabilityEntry, 0, len(req.Availabilities)),
	}
	for _, ce := range req.Competences {
		form.Competences = append(form.Competences, services.CompetenceEntry{
			CompetenceID:      ce.CompetenceID,
			YearsOfExperience: ce.YearsOfExperience,
		})
	}
	for _, ae := range req.Availabilities {
		entry, err := parseAvailability(ae)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicantHandler.Submit", err.Error(), err))
			return
		}
		form.Availabilities = append(form.Availabilities, entry)
	}

	app, err := h.applications.Submit(c.Request.Context(), personID, form)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// MyApplication returns the caller's own application, if any.
func (h *ApplicantHandler) MyApplication(c *gin.Context) {
	personID, ok := requirePersonID(c)
	if !ok {
		return
	}

	app, err := h.applications.GetByPerson(c.Request.Context(), personID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func parseAvailability(req AvailabilityEntryRequest) (services.AvailabilityEntry, error) {
	var entry services.AvailabilityEntry
	if req.FromDate == "" && req.ToDate == "" {
		return entry, nil // empty form row, skipped by the service
	}

	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return entry, err
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return entry, err
	}
	entry.FromDate = from
	entry.ToDate = to
	return entry, nil
}
