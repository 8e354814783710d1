package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/usage"
	"resume-optimizer/resume/render"
)

type Handler struct {
	Orchestrator *Orchestrator
}

func NewHandler(o *Orchestrator) *Handler {
	return &Handler{Orchestrator: o}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, extra ...gin.HandlerFunc) {
	handlers := append(append(make([]gin.HandlerFunc, 0, len(extra)+1), extra...), h.generate)
	rg.POST("/target-jobs/:id/generate", handlers...)
}

func (h *Handler) generate(c *gin.Context) {
	if h.Orchestrator == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	jobID := c.Param("id")
	c.Set(middleware.TargetJobIDKey, jobID)

	out, err := h.Orchestrator.Generate(c.Request.Context(), middleware.UserIDFromContext(c), jobID)
	c.Set(middleware.StateTrailKey, out.Trail.String())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, out.Resume.ID)
	respond.JSON(c, http.StatusCreated, out)
}

func writeError(c *gin.Context, err error) {
	msg := "The resume could not be generated. Please try again."
	var genErr *Error
	if errors.As(err, &genErr) {
		msg = genErr.Message()
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", msg, nil)
	case errors.Is(err, ErrMissingDescription):
		respond.Error(c, http.StatusConflict, "missing_description", msg, nil)
	case errors.Is(err, ErrNoBullets):
		respond.Error(c, http.StatusConflict, "no_bullets", msg, nil)
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusForbidden, "limit_reached", msg, nil)
	case errors.Is(err, render.ErrRenderFailed):
		respond.Error(c, http.StatusBadGateway, "render_failed", msg, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "generation_failed", msg, nil)
	}
}
