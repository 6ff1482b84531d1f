package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/improv-tovarisch/backend/pkg/gallery"
	"github.com/improv-tovarisch/backend/pkg/models"
)

type VideoHandler struct {
	svc     *gallery.Service
	sources []models.VideoSource
}

func NewVideoHandler(svc *gallery.Service, sources []models.VideoSource) *VideoHandler {
	return &VideoHandler{svc: svc, sources: sources}
}

// List godoc
// @Summary Video archive
// @Description Curated gallery entries with resolved metadata. Every entry is complete; entries the platforms refused carry generated placeholder art.
// @Tags videos
// @Produce json
// @Success 200 {array} models.VideoResource
// @Router /api/videos [get]
func (h *VideoHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.svc.ResolveVideos(c.Context(), h.sources))
}
