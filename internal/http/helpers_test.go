package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/planner"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/service"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/spaceindex"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

const crewQuarters = "Crew Quarters"

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI is the full router over the given repositories.
type testAPI struct {
	router *Router
	repos  repository.Repositories
	events *service.ActionLog
	clock  *simulation.Clock
}

func newTestAPI(t *testing.T, repos repository.Repositories, cfg RouterConfig) *testAPI {
	t.Helper()

	registry := spaceindex.NewRegistry(spaceindex.WithLockTimeout(time.Second))
	placementPlanner := planner.NewPlacementPlanner(registry)
	clock := simulation.NewClock(testutil.Day)
	engine := simulation.NewEngine(clock, repos.Items)
	logs := service.NewLoggingService(repos.Logs)
	events := service.NewActionLog(logs, service.ActionLogConfig{BufferSize: 64, NumWorkers: 1, WriteTimeout: time.Second})
	t.Cleanup(events.Stop)

	handler := NewHandler(Services{
		Inventory:  service.NewInventoryService(repos, registry, events),
		Placement:  service.NewPlacementService(repos, registry, placementPlanner, engine, events),
		Waste:      service.NewWasteService(repos, registry, planner.NewReturnPlanner(planner.WithPlacementPlanner(placementPlanner)), clock, events),
		Simulation: service.NewSimulationService(engine, repos.Items, events),
		Logs:       logs,
	})
	router := NewRouter(handler, NewHealthHandler(), cfg)
	t.Cleanup(router.Close)

	return &testAPI{router: router, repos: repos, events: events, clock: clock}
}

func newMemoryAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return newTestAPI(t, repository.NewMemoryRepositories(), cfg)
}

// do sends a JSON request. A string body is sent as is.
func (a *testAPI) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// upload posts content as the multipart file field.
func (a *testAPI) upload(t *testing.T, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// flushLogs drains the action log so later entries are written synchronously.
func (a *testAPI) flushLogs() {
	a.events.Stop()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func itemBody(id string, w, d, h int, priority int, zone string) map[string]any {
	return map[string]any{
		"itemId":        id,
		"name":          "Item " + id,
		"width":         w,
		"depth":         d,
		"height":        h,
		"mass":          2.5,
		"priority":      priority,
		"usageLimit":    5,
		"preferredZone": zone,
	}
}

func containerBody(id, zone string, w, d, h int) map[string]any {
	return map[string]any{"containerId": id, "zone": zone, "width": w, "depth": d, "height": h}
}

func positionBody(w1, d1, h1, w2, d2, h2 int) map[string]any {
	return map[string]any{
		"startCoordinates": map[string]int{"width": w1, "depth": d1, "height": h1},
		"endCoordinates":   map[string]int{"width": w2, "depth": d2, "height": h2},
	}
}

func (a *testAPI) seed(t *testing.T, containers []map[string]any, items ...map[string]any) {
	t.Helper()
	for _, c := range containers {
		w := a.do(t, http.MethodPost, "/api/containers", c)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	for _, it := range items {
		w := a.do(t, http.MethodPost, "/api/items", it)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func (a *testAPI) place(t *testing.T, itemID, containerID string, pos map[string]any) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/place", map[string]any{"itemId": itemID, "containerId": containerID, "position": pos})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (a *testAPI) storedLogs(t *testing.T, actionType string) []model.LogEntry {
	t.Helper()
	a.flushLogs()
	entries, err := a.repos.Logs.Query(context.Background(), model.LogQueryOptions{ActionType: actionType})
	require.NoError(t, err)
	return entries
}
