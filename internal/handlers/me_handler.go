package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httpresp"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/middleware"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/account"
)

type MeHandler struct {
	users account.Store
	log   *zap.Logger
}

func NewMeHandler(users account.Store, log *zap.Logger) *MeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MeHandler{users: users, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.ID == 0 {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("load_failed", err))
		return
	}
	if user == nil {
		httperr.Unauthorized(c, "user_not_found", "Authentication required.")
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}
