package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/improv-tovarisch/backend/pkg/catalog"
	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/models"
)

func init() {
	logger.Init(false)
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	records := map[string]string{
		"harold.json":  `{"id":"harold","name":"Гарольд","formCategory":"long-form","explored":true,"minPlayers":6,"maxPlayers":9,"duration":"30-40 минут","difficulty":"advanced"}`,
		"freeze.json":  `{"id":"freeze","name":"Стоп-кадр","formCategory":"short-form","minPlayers":2,"maxPlayers":4,"duration":"10-15 минут","difficulty":"beginner"}`,
		"zip.json":     `{"id":"zip","name":"Зип-зап-зоп","formCategory":"warmup","warmupType":"круг","description":"Разминка"}`,
	}
	for name, body := range records {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	h := NewFormatHandler(catalog.NewStore(dir), catalog.NewEngine())

	app := fiber.New()
	app.Get("/api/formats", h.List)
	app.Get("/api/formats/player-options", h.PlayerOptions)
	app.Get("/api/formats/:id", h.Get)
	return app
}

type listResponse struct {
	Total   int             `json:"total"`
	Formats []models.Format `json:"formats"`
}

func doRequest(t *testing.T, app *fiber.App, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestFormatList(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, "/api/formats")
	require.Equal(t, 200, resp.StatusCode)

	var out listResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 3, out.Total)

	// разминка всегда в конце
	assert.Equal(t, "harold", out.Formats[0].ID)
	assert.Equal(t, "zip", out.Formats[2].ID)
}

func TestFormatList_QueryParams(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, "/api/formats?category=short-form&difficulty=beginner")
	require.Equal(t, 200, resp.StatusCode)

	var out listResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "freeze", out.Formats[0].ID)
}

func TestFormatGet(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, "/api/formats/harold")
	require.Equal(t, 200, resp.StatusCode)

	var f models.Format
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, "Гарольд", f.Name)
}

func TestFormatGet_NotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, "/api/formats/missing")
	require.Equal(t, 404, resp.StatusCode)

	var e ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "format not found", e.Error)
}

func TestFormatPlayerOptions(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, "/api/formats/player-options")
	require.Equal(t, 200, resp.StatusCode)

	var options []int
	require.NoError(t, json.Unmarshal(body, &options))
	assert.Equal(t, []int{2, 3, 4, 6, 7, 8, 9}, options)
}
