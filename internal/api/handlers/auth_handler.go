package handlers

import (
	"net/http"

	"github.com/FractalFish/recruitment-portal/internal/services"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth         services.AuthService
	registration services.RegistrationService
}

func NewAuthHandler(auth services.AuthService, registration services.RegistrationService) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Pnr      string `json:"pnr"`
	Email    string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", "invalid request body", err))
		return
	}

	person, err := h.registration.RegisterApplicant(c.Request.Context(), services.RegistrationForm{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Pnr:      req.Pnr,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, person)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	PersonID uint   `json:"person_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	token, person, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		PersonID: person.PersonID,
		Username: person.Username,
		Role:     person.Role.Name,
	})
}
