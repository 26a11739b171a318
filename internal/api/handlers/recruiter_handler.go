package handlers

import (
	"net/http"
	"strconv"

	"github.com/FractalFish/recruitment-portal/internal/models"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/services"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type RecruiterHandler struct {
	applications services.ApplicationService
}

func NewRecruiterHandler(applications services.ApplicationService) *RecruiterHandler {
	return &RecruiterHandler{applications: applications}
}

// List returns one page of application summaries, optionally filtered by
// status (?status=UNHANDLED&page=0&size=10).
func (h *RecruiterHandler) List(c *gin.Context) {
	const op = "RecruiterHandler.List"

	var status *models.ApplicationStatus
	if raw := c.Query("status"); raw != "" {
		st, err := models.ParseApplicationStatus(raw)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, err.Error(), err))
			return
		}
		status = &st
	}

	page, err := queryInt(c, "page", 0)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "page must be an integer", err))
		return
	}
	size, err := queryInt(c, "size", defaultPageSize)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "size must be an integer", err))
		return
	}

	result, err := h.applications.List(c.Request.Context(), status, page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Details returns the full application view including the current version.
func (h *RecruiterHandler) Details(c *gin.Context) {
	const op = "RecruiterHandler.Details"

	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid application id", err))
		return
	}

	details, err := h.applications.GetDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`

	// ExpectedVersion enables the optimistic-lock check; nil skips it.
	ExpectedVersion *int `json:"expected_version"`
}

// UpdateStatus moves an application to a new status. A stale
// expected_version yields 409 so the caller can reload and retry.
func (h *RecruiterHandler) UpdateStatus(c *gin.Context) {
	const op = "RecruiterHandler.UpdateStatus"

	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid application id", err))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, err.Error(), err))
		return
	}

	check := pgrepo.Unconditional()
	if req.ExpectedVersion != nil {
		check = pgrepo.ExpectedVersion(*req.ExpectedVersion)
	}

	app, err := h.applications.UpdateStatus(c.Request.Context(), id, status, check)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
