package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httpresp"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/middleware"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/account"
)

type AuthHandler struct {
	register *account.Register
	login    *account.Authenticate
	secret   string
	ttl      time.Duration
	log      *zap.Logger
}

func NewAuthHandler(
	register *account.Register,
	login *account.Authenticate,
	secret string,
	ttl time.Duration,
	log *zap.Logger,
) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{register: register, login: login, secret: secret, ttl: ttl, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// --------- Handlers ---------

// Register always creates a USER account. Admins are created from the CLI.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	user, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     domain.RoleUser,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.respondWithToken(c, user, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	user, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	h.respondWithToken(c, user, false)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user *models.User, created bool) {
	token, err := middleware.GenerateToken(h.secret, user.ID, user.Role, h.ttl)
	if err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("token_failed", err))
		return
	}

	body := authResponse{User: user, Token: token}
	if created {
		httpresp.Created(c, body)
		return
	}
	httpresp.OK(c, body)
}
