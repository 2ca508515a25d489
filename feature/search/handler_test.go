package search

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, engine *Engine) *fiber.App {
	t.Helper()
	app := fiber.New()
	feature := NewFeature(NewService(engine, nil, zap.NewNop()))
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleSearch(t *testing.T) {
	fx := buildFixture(t, 0)
	app := setupTestApp(t, fx.engine)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=c:wu&sortKey=manaValue&sortDir=desc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, []string{"Esper Charm", "Azorius Charm"}, names(page.Results))
	assert.Equal(t, SortManaValue, page.Options.SortKey)
	assert.Equal(t, Desc, page.Options.SortDir)
	assert.Equal(t, []string{"W", "U", "B"}, page.Results[0].Colors)
}

func TestHandleSearch_SetScope(t *testing.T) {
	fx := buildFixture(t, 0)
	app := setupTestApp(t, fx.engine)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?name=counterspell&set=b", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	results := body["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "oracle-counterspell", first["canonicalKey"])
	assert.Equal(t, "cs-b", first["displayPrintingId"])
	assert.Equal(t, "cs-c", first["representativePrintingId"])
	assert.NotContains(t, first, "id")
}

func TestHandleSearch_IndexUnavailable(t *testing.T) {
	app := setupTestApp(t, NewEngine(newIndexDB(t), 0, nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=bolt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "index unavailable", body["error"])
}

func TestHandleCard(t *testing.T) {
	fx := buildFixture(t, 0)
	app := setupTestApp(t, fx.engine)

	resp, err := app.Test(httptest.NewRequest("GET", "/cards/oracle-counterspell", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Counterspell", detail.Name)
	assert.Len(t, detail.Printings, 3)

	resp, err = app.Test(httptest.NewRequest("GET", "/cards/unknown-card", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	f := NewFeature(nil)
	assert.Equal(t, "search", f.Name())
	assert.False(t, f.IsEnabled())
}
