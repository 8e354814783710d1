package targetjobs

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
	rg.GET("/target-jobs", h.list)
	rg.POST("/target-jobs", h.add)
	rg.GET("/target-jobs/:id", h.get)
	rg.DELETE("/target-jobs/:id", h.delete)
	rg.PUT("/target-jobs/:id/description", h.setDescription)
	rg.POST("/target-jobs/:id/fetch", h.refetch)
}

type descriptionRequest struct {
	Description string `json:"description"`
}

func (h *Handler) list(c *gin.Context) {
	jobs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list target jobs")
		return
	}
	respond.OK(c, jobs)
}

func (h *Handler) add(c *gin.Context) {
	var req AddInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.Add(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to add target job")
		return
	}
	c.Set(middleware.TargetJobIDKey, res.Job.ID)
	respond.JSON(c, http.StatusCreated, res)
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch target job")
		return
	}
	respond.OK(c, job)
}

func (h *Handler) delete(c *gin.Context) {
	c.Set(middleware.TargetJobIDKey, c.Param("id"))
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete target job")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) setDescription(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	job, err := h.Svc.SetDescription(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Description)
	if err != nil {
		writeError(c, err, "failed to update description")
		return
	}
	respond.OK(c, job)
}

func (h *Handler) refetch(c *gin.Context) {
	c.Set(middleware.TargetJobIDKey, c.Param("id"))
	res, err := h.Svc.Refetch(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch job description")
		return
	}
	respond.OK(c, res)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "target job not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
