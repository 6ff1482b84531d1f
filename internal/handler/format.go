package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/improv-tovarisch/backend/pkg/catalog"
	"github.com/improv-tovarisch/backend/pkg/models"
)

type FormatHandler struct {
	store  *catalog.Store
	engine *catalog.Engine
}

func NewFormatHandler(store *catalog.Store, engine *catalog.Engine) *FormatHandler {
	return &FormatHandler{store: store, engine: engine}
}

// List godoc
// @Summary List formats
// @Description Filtered and sorted catalog of improv formats. All filters are AND-combined; warmups ignore length/players/difficulty.
// @Tags formats
// @Produce json
// @Param search query string false "Substring match on the format name"
// @Param category query string false "all | long-form | short-form | warmup"
// @Param length query string false "all | upTo15 | to25 | over25"
// @Param players query int false "Exact selectable player count, 0 = any"
// @Param difficulty query string false "all | beginner | intermediate | advanced"
// @Param sort query string false "default | difficulty | players | length"
// @Param reversed query bool false "Reverse the sort inside its partitions"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /api/formats [get]
func (h *FormatHandler) List(c *fiber.Ctx) error {
	formats, err := h.store.List()
	if err != nil {
		return err
	}

	criteria := catalog.Criteria{
		Search:     c.Query("search"),
		Category:   models.FormCategory(c.Query("category")),
		Length:     catalog.LengthBucket(c.Query("length")),
		Players:    c.QueryInt("players"),
		Difficulty: models.Difficulty(c.Query("difficulty")),
	}
	spec := catalog.SortSpec{
		Key:      catalog.SortKey(c.Query("sort", string(catalog.SortDefault))),
		Reversed: c.QueryBool("reversed"),
	}

	visible := h.engine.Apply(formats, criteria, spec)
	return c.JSON(fiber.Map{
		"total":   len(visible),
		"formats": visible,
	})
}

// Get godoc
// @Summary Get a format by id
// @Tags formats
// @Produce json
// @Param id path string true "Format slug"
// @Success 200 {object} models.Format
// @Failure 404 {object} ErrorResponse
// @Router /api/formats/{id} [get]
func (h *FormatHandler) Get(c *fiber.Ctx) error {
	f, err := h.store.GetByID(c.Params("id"))
	if err != nil {
		return err
	}
	if f == nil {
		return c.Status(404).JSON(ErrorResponse{Error: "format not found"})
	}
	return c.JSON(f)
}

// PlayerOptions godoc
// @Summary Selectable player counts
// @Description Distinct player counts across all structured formats, ascending.
// @Tags formats
// @Produce json
// @Success 200 {array} int
// @Failure 500 {object} ErrorResponse
// @Router /api/formats/player-options [get]
func (h *FormatHandler) PlayerOptions(c *fiber.Ctx) error {
	formats, err := h.store.List()
	if err != nil {
		return err
	}
	return c.JSON(h.engine.PlayerOptions(formats))
}
