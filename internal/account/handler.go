package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/usage"
	"resume-optimizer/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	out, err := h.Svc.Overview(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound), errors.Is(err, usage.ErrUnknownUser):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "account not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load account", nil)
		}
		return
	}
	respond.OK(c, out)
}
