package experiences

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/experiences", h.listExperiences)
	rg.POST("/experiences", h.addExperience)
	rg.DELETE("/experiences/:id", h.deleteExperience)
	rg.GET("/experiences/:id/bullets", h.listBullets)
	rg.POST("/experiences/:id/bullets", h.addBullets)
	rg.PUT("/bullets/:id", h.updateBullet)
	rg.DELETE("/bullets/:id", h.deleteBullet)
}

type addBulletsRequest struct {
	Bullets []string `json:"bullets"`
	Text    string   `json:"text"`
}

type updateBulletRequest struct {
	Text string `json:"text"`
}

func (h *Handler) listExperiences(c *gin.Context) {
	exps, err := h.Svc.ListExperiences(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list experiences")
		return
	}
	respond.OK(c, exps)
}

func (h *Handler) addExperience(c *gin.Context) {
	var req ExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	exp, err := h.Svc.AddExperience(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to add experience")
		return
	}
	respond.JSON(c, http.StatusCreated, exp)
}

func (h *Handler) deleteExperience(c *gin.Context) {
	if err := h.Svc.DeleteExperience(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete experience")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) listBullets(c *gin.Context) {
	bullets, err := h.Svc.ListBullets(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to list bullets")
		return
	}
	respond.OK(c, bullets)
}

func (h *Handler) addBullets(c *gin.Context) {
	var req addBulletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	texts := req.Bullets
	if req.Text != "" {
		texts = append(texts, SplitLines(req.Text)...)
	}
	bullets, err := h.Svc.AddBullets(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), texts)
	if err != nil {
		writeError(c, err, "failed to add bullets")
		return
	}
	respond.JSON(c, http.StatusCreated, bullets)
}

func (h *Handler) updateBullet(c *gin.Context) {
	var req updateBulletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	bullet, err := h.Svc.UpdateBullet(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err, "failed to update bullet")
		return
	}
	respond.OK(c, bullet)
}

func (h *Handler) deleteBullet(c *gin.Context) {
	if err := h.Svc.DeleteBullet(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete bullet")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
