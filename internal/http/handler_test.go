//go:build !integration

package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/middleware"
	"github.com/guttosm/cargo-service/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Containers(t *testing.T) {
	api := newMemoryAPI(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "create",
			method:     http.MethodPost,
			path:       "/api/containers",
			body:       containerBody("contA", crewQuarters, 100, 85, 200),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate",
			method:     http.MethodPost,
			path:       "/api/containers",
			body:       containerBody("contA", crewQuarters, 100, 85, 200),
			wantStatus: http.StatusBadRequest,
			wantError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:       "zero width",
			method:     http.MethodPost,
			path:       "/api/containers",
			body:       containerBody("contB", crewQuarters, 0, 85, 200),
			wantStatus: http.StatusBadRequest,
			wantError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:       "get",
			method:     http.MethodGet,
			path:       "/api/containers/contA",
			wantStatus: http.StatusOK,
		},
		{
			name:       "get unknown",
			method:     http.MethodGet,
			path:       "/api/containers/nope",
			wantStatus: http.StatusNotFound,
			wantError:  dto.ErrCodeNotFound,
		},
		{
			name:       "free space of empty container",
			method:     http.MethodGet,
			path:       "/api/containers/contA/free-space",
			wantStatus: http.StatusOK,
		},
		{
			name:       "rebuild",
			method:     http.MethodPost,
			path:       "/api/containers/contA/rebuild",
			wantStatus: http.StatusOK,
		},
		{
			name:       "delete",
			method:     http.MethodDelete,
			path:       "/api/containers/contA",
			wantStatus: http.StatusOK,
		},
		{
			name:       "delete again",
			method:     http.MethodDelete,
			path:       "/api/containers/contA",
			wantStatus: http.StatusNotFound,
			wantError:  dto.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, tt.method, tt.path, tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantError != "" {
				resp := decode[dto.ErrorResponse](t, w)
				assert.Equal(t, tt.wantError, resp.Error)
				assert.NotEmpty(t, resp.RequestID)
				return
			}
			resp := decode[dto.SuccessResponse](t, w)
			assert.NotNil(t, resp.Data)
		})
	}
}

func TestHandler_DeleteContainerWithItems(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t, []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)}, itemBody("001", 10, 10, 20, 50, crewQuarters))
	api.place(t, "001", "contA", positionBody(0, 0, 0, 10, 10, 20))

	w := api.do(t, http.MethodDelete, "/api/containers/contA", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Items(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t, []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)})

	expiring := itemBody("002", 10, 10, 20, 50, crewQuarters)
	expiring["expiryDate"] = "2025-05-20"
	noExpiry := itemBody("003", 10, 10, 20, 50, crewQuarters)
	noExpiry["expiryDate"] = "N/A"
	badDate := itemBody("004", 10, 10, 20, 50, crewQuarters)
	badDate["expiryDate"] = "20/05/2025"
	negativeMass := itemBody("005", 10, 10, 20, 50, crewQuarters)
	negativeMass["mass"] = -1

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"plain item", itemBody("001", 10, 10, 20, 50, crewQuarters), http.StatusCreated},
		{"with expiry date", expiring, http.StatusCreated},
		{"N/A expiry date", noExpiry, http.StatusCreated},
		{"malformed expiry date", badDate, http.StatusBadRequest},
		{"negative mass", negativeMass, http.StatusBadRequest},
		{"missing itemId", map[string]any{"name": "x", "width": 1, "depth": 1, "height": 1}, http.StatusBadRequest},
		{"malformed JSON", `{"itemId": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/items", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	t.Run("list", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/items", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.SuccessResponse](t, w)
		items, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, items, 3)
	})

	t.Run("delete placed item frees its space", func(t *testing.T) {
		api.place(t, "001", "contA", positionBody(0, 0, 0, 10, 10, 20))

		w := api.do(t, http.MethodDelete, "/api/items/001", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/items/001", nil).Code)
		api.place(t, "002", "contA", positionBody(0, 0, 0, 10, 10, 20))
	})
}

func TestHandler_PlaceItems(t *testing.T) {
	api := newMemoryAPI(t)

	body := map[string]any{
		"containers": []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)},
		"items": []map[string]any{
			itemBody("001", 10, 10, 20, 80, crewQuarters),
			itemBody("002", 15, 15, 50, 90, crewQuarters),
			itemBody("003", 40, 40, 40, 10, crewQuarters),
			itemBody("big", 500, 500, 500, 50, crewQuarters),
		},
	}

	w := api.do(t, http.MethodPost, "/api/placement", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.PlacementResponse](t, w)
	assert.True(t, resp.Success)
	require.Len(t, resp.Placements, 3)
	for _, p := range resp.Placements {
		assert.Equal(t, "contA", p.ContainerID)
		assert.GreaterOrEqual(t, p.Position.Start.Width, 0)
		assert.LessOrEqual(t, p.Position.End.Width, 100)
		assert.LessOrEqual(t, p.Position.End.Depth, 85)
		assert.LessOrEqual(t, p.Position.End.Height, 200)
	}
	require.Len(t, resp.Unplaced, 1)
	assert.Equal(t, "big", resp.Unplaced[0].ItemID)
	assert.Equal(t, planner.StatusNoSolution, resp.Unplaced[0].Status)
	assert.NotNil(t, resp.Rearrangements)

	assert.Len(t, api.storedLogs(t, model.ActionPlacement), 3)
}

func TestHandler_PlaceItems_Validation(t *testing.T) {
	api := newMemoryAPI(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing items", map[string]any{"containers": []any{}}},
		{"invalid item", map[string]any{"items": []map[string]any{itemBody("001", -1, 10, 20, 50, crewQuarters)}}},
		{"invalid container", map[string]any{
			"items":      []map[string]any{itemBody("001", 10, 10, 20, 50, crewQuarters)},
			"containers": []map[string]any{containerBody("contA", crewQuarters, 100, 0, 200)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/placement", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestHandler_PlaceItems_IdempotentReplay(t *testing.T) {
	api := newMemoryAPI(t)
	body := map[string]any{
		"containers": []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)},
		"items":      []map[string]any{itemBody("001", 10, 10, 20, 80, crewQuarters)},
	}

	first := api.do(t, http.MethodPost, "/api/placement", body, middleware.IdempotencyKeyHeader, "batch-1")
	second := api.do(t, http.MethodPost, "/api/placement", body, middleware.IdempotencyKeyHeader, "batch-1")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Empty(t, first.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHandler_Place(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t,
		[]map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)},
		itemBody("001", 10, 10, 20, 50, crewQuarters),
		itemBody("002", 10, 10, 20, 50, crewQuarters),
	)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{
			name:       "rotated fit",
			body:       map[string]any{"itemId": "001", "containerId": "contA", "position": positionBody(0, 0, 0, 20, 10, 10), "userId": "astro-7", "timestamp": "2025-04-01T10:00:00Z"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "overlap",
			body:       map[string]any{"itemId": "002", "containerId": "contA", "position": positionBody(5, 0, 0, 25, 10, 10)},
			wantStatus: http.StatusConflict,
			wantError:  dto.ErrCodeConflict,
		},
		{
			name:       "wrong dimensions",
			body:       map[string]any{"itemId": "002", "containerId": "contA", "position": positionBody(50, 0, 0, 60, 10, 30)},
			wantStatus: http.StatusBadRequest,
			wantError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:       "outside container",
			body:       map[string]any{"itemId": "002", "containerId": "contA", "position": positionBody(95, 0, 0, 105, 10, 20)},
			wantStatus: http.StatusBadRequest,
			wantError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:       "unknown container",
			body:       map[string]any{"itemId": "002", "containerId": "nope", "position": positionBody(0, 0, 0, 10, 10, 20)},
			wantStatus: http.StatusNotFound,
			wantError:  dto.ErrCodeNotFound,
		},
		{
			name:       "degenerate box",
			body:       map[string]any{"itemId": "002", "containerId": "contA", "position": positionBody(0, 0, 0, 0, 10, 20)},
			wantStatus: http.StatusBadRequest,
			wantError:  dto.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/place", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantError != "" {
				resp := decode[dto.ErrorResponse](t, w)
				assert.Equal(t, tt.wantError, resp.Error)
				assert.NotEmpty(t, resp.Details["reason"])
				return
			}
			resp := decode[dto.PlaceResponse](t, w)
			require.NotNil(t, resp.Placement)
			assert.Equal(t, "contA", resp.Placement.ContainerID)
		})
	}

	entries := api.storedLogs(t, model.ActionPlacement)
	require.Len(t, entries, 1)
	assert.Equal(t, "astro-7", entries[0].UserID)
}

func TestHandler_SearchAndRetrieve(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t,
		[]map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)},
		itemBody("front", 10, 10, 20, 50, crewQuarters),
		itemBody("back", 10, 10, 20, 50, crewQuarters),
	)
	api.place(t, "front", "contA", positionBody(0, 0, 0, 10, 10, 20))
	api.place(t, "back", "contA", positionBody(0, 10, 0, 10, 20, 20))

	t.Run("search by id lists obstructions", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/search?itemId=back", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.SearchResponse](t, w)
		assert.True(t, resp.Found)
		assert.Equal(t, crewQuarters, resp.Zone)
		require.NotNil(t, resp.Placement)
		assert.Equal(t, "contA", resp.Placement.ContainerID)
		require.Len(t, resp.RetrievalSteps, 2)
		assert.Equal(t, planner.ActionRemove, resp.RetrievalSteps[0].Action)
		assert.Equal(t, "front", resp.RetrievalSteps[0].ItemID)
		assert.Equal(t, planner.ActionRetrieve, resp.RetrievalSteps[1].Action)
		assert.Equal(t, "back", resp.RetrievalSteps[1].ItemID)
	})

	t.Run("search by name", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/search?itemName=Item%20front", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SearchResponse](t, w)
		assert.True(t, resp.Found)
		require.Len(t, resp.RetrievalSteps, 1)
		assert.Equal(t, "front", resp.RetrievalSteps[0].ItemID)
	})

	t.Run("unknown item is not an error", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/search?itemId=nope", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SearchResponse](t, w)
		assert.False(t, resp.Found)
		assert.Empty(t, resp.RetrievalSteps)
	})

	t.Run("empty query", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("retrieve consumes a use", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/retrieve", map[string]any{"itemId": "back", "userId": "astro-7", "timestamp": "2025-04-01T12:00:00Z"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.RetrieveResponse](t, w)
		assert.Equal(t, 4, resp.RemainingUses)
		assert.False(t, resp.Depleted)

		search := decode[dto.SearchResponse](t, api.do(t, http.MethodGet, "/api/search?itemId=back", nil))
		assert.NotNil(t, search.Placement)
	})

	t.Run("retrieve unknown item", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/retrieve", map[string]any{"itemId": "nope"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	entries := api.storedLogs(t, model.ActionRetrieval)
	require.Len(t, entries, 1)
	assert.Equal(t, "astro-7", entries[0].UserID)
	assert.Equal(t, "back", entries[0].ItemID)
}

func TestHandler_UserHeaderAttributesActions(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t, []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)}, itemBody("001", 10, 10, 20, 50, crewQuarters))
	api.place(t, "001", "contA", positionBody(0, 0, 0, 10, 10, 20))

	w := api.do(t, http.MethodPost, "/api/retrieve", map[string]any{"itemId": "001"}, middleware.UserIDHeader, "astro-3")
	require.Equal(t, http.StatusOK, w.Code)

	entries := api.storedLogs(t, model.ActionRetrieval)
	require.Len(t, entries, 1)
	assert.Equal(t, "astro-3", entries[0].UserID)
	assert.NotEmpty(t, entries[0].RequestID)
}

func TestHandler_WasteLifecycle(t *testing.T) {
	api := newMemoryAPI(t)
	perishable := itemBody("w1", 10, 10, 20, 50, crewQuarters)
	perishable["expiryDate"] = "2025-04-02"
	api.seed(t,
		[]map[string]any{
			containerBody("contA", crewQuarters, 100, 85, 200),
			containerBody("contZ", "Airlock", 50, 50, 50),
		},
		perishable,
		itemBody("keep", 10, 10, 20, 50, crewQuarters),
	)
	api.place(t, "w1", "contA", positionBody(0, 0, 0, 10, 10, 20))
	api.place(t, "keep", "contA", positionBody(20, 0, 0, 30, 10, 20))

	t.Run("nothing is waste yet", func(t *testing.T) {
		resp := decode[dto.WasteResponse](t, api.do(t, http.MethodGet, "/api/waste/identify", nil))
		assert.True(t, resp.Success)
		assert.Empty(t, resp.WasteItems)
	})

	t.Run("advance past the expiry date", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/simulate/day", map[string]any{"numOfDays": 2})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.SimulateResponse](t, w)
		assert.Equal(t, "2025-04-03", resp.NewDate.String())
		require.Len(t, resp.Changes.ItemsExpired, 1)
		assert.Equal(t, "w1", resp.Changes.ItemsExpired[0].ItemID)
	})

	t.Run("identify expired item", func(t *testing.T) {
		resp := decode[dto.WasteResponse](t, api.do(t, http.MethodGet, "/api/waste/identify", nil))
		require.Len(t, resp.WasteItems, 1)
		assert.Equal(t, "w1", resp.WasteItems[0].ItemID)
		assert.Equal(t, model.WasteExpired, resp.WasteItems[0].Reason)
		assert.Equal(t, "contA", resp.WasteItems[0].ContainerID)
	})

	t.Run("undocking date in the past", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/waste/return-plan", map[string]any{"undockingContainerId": "contZ", "undockingDate": "2025-03-01", "maxWeight": 100})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("return plan", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/waste/return-plan", map[string]any{"undockingContainerId": "contZ", "undockingDate": "2025-04-10", "maxWeight": 100})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.ReturnPlanResponse](t, w)
		require.Len(t, resp.ReturnPlan, 1)
		assert.Equal(t, "w1", resp.ReturnPlan[0].ItemID)
		assert.Equal(t, "contA", resp.ReturnPlan[0].FromContainer)
		assert.Equal(t, "contZ", resp.ReturnPlan[0].ToContainer)
		require.NotEmpty(t, resp.RetrievalSteps)
		assert.Equal(t, "w1", resp.RetrievalSteps[len(resp.RetrievalSteps)-1].ItemID)
		assert.Equal(t, "contZ", resp.Manifest.ContainerID)
		require.Len(t, resp.Manifest.ReturnItems, 1)
		assert.InDelta(t, 2.5, resp.Manifest.TotalWeight, 1e-9)
		assert.Equal(t, "2025-04-10", resp.Manifest.UndockingDate.String())
	})

	t.Run("return plan leaves the placement alone", func(t *testing.T) {
		search := decode[dto.SearchResponse](t, api.do(t, http.MethodGet, "/api/search?itemId=w1", nil))
		require.NotNil(t, search.Placement)
		assert.Equal(t, "contA", search.Placement.ContainerID)
	})

	t.Run("complete undocking", func(t *testing.T) {
		api.place(t, "w1", "contZ", positionBody(0, 0, 0, 10, 10, 20))

		w := api.do(t, http.MethodPost, "/api/waste/complete-undocking", map[string]any{"undockingContainerId": "contZ", "timestamp": "2025-04-10T08:00:00Z"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.UndockingResponse](t, w)
		assert.Equal(t, 1, resp.ItemsRemoved)
		assert.Equal(t, []string{"w1"}, resp.ItemIDs)
		assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/items/w1", nil).Code)
		assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/containers/contZ", nil).Code)
	})

	assert.Len(t, api.storedLogs(t, model.ActionDisposal), 1)
}

func TestHandler_Simulate(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t, nil, itemBody("001", 10, 10, 20, 50, crewQuarters))

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantDate   string
	}{
		{"both targets", map[string]any{"numOfDays": 1, "toTimestamp": "2025-04-03"}, http.StatusBadRequest, ""},
		{"no target", map[string]any{}, http.StatusBadRequest, ""},
		{"negative days", map[string]any{"numOfDays": -1}, http.StatusBadRequest, ""},
		{"unknown item name", map[string]any{"numOfDays": 1, "itemsToBeUsedPerDay": []map[string]string{{"name": "ghost"}}}, http.StatusNotFound, ""},
		{"zero days", map[string]any{"numOfDays": 0}, http.StatusOK, "2025-04-01"},
		{"one day with usage", map[string]any{"numOfDays": 1, "itemsToBeUsedPerDay": []map[string]string{{"itemId": "001"}}}, http.StatusOK, "2025-04-02"},
		{"to a date by name", map[string]any{"toTimestamp": "2025-04-04T00:00:00Z", "itemsToBeUsedPerDay": []map[string]string{{"name": "Item 001"}}}, http.StatusOK, "2025-04-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/simulate/day", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[dto.SimulateResponse](t, w)
			assert.Equal(t, tt.wantDate, resp.NewDate.String())
			assert.NotNil(t, resp.Changes.ItemsUsed)
			assert.NotNil(t, resp.Changes.ItemsExpired)
			assert.NotNil(t, resp.Changes.ItemsDepletedToday)
		})
	}

	date := decode[dto.DateResponse](t, api.do(t, http.MethodGet, "/api/simulate/date", nil))
	assert.Equal(t, "2025-04-04", date.Date.String())

	item := decode[dto.SuccessResponse](t, api.do(t, http.MethodGet, "/api/items/001", nil))
	data, ok := item.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, data["usageLimit"])
}

func TestHandler_Import(t *testing.T) {
	api := newMemoryAPI(t)

	items := strings.Join([]string{
		"Item ID,Name,Width,Depth,Height,Mass,Priority,Expiry Date,Usage Limit,Preferred Zone",
		"001,Food Packet,10,10,20,5,80,2025-05-20,30,Crew Quarters",
		"002,Oxygen Cylinder,15,15,50,30,95,N/A,100,Airlock",
		"003,Broken,abc,10,20,5,80,,30,Lab",
	}, "\n")
	containers := strings.Join([]string{
		"Zone,Container ID,Width(cm),Depth(cm),Height(cm)",
		"Crew Quarters,contA,100,85,200",
		"Airlock,contB,50,85,200",
	}, "\n")

	t.Run("items with one bad row", func(t *testing.T) {
		w := api.upload(t, "/api/import/items", "items.csv", []byte(items))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.ImportResponse](t, w)
		require.NotNil(t, resp.ItemsImported)
		assert.Equal(t, 2, *resp.ItemsImported)
		assert.Nil(t, resp.ContainersImported)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, 4, resp.Errors[0].Row)
	})

	t.Run("containers", func(t *testing.T) {
		w := api.upload(t, "/api/import/containers", "containers.csv", []byte(containers))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.ImportResponse](t, w)
		require.NotNil(t, resp.ContainersImported)
		assert.Equal(t, 2, *resp.ContainersImported)
		assert.Empty(t, resp.Errors)
	})

	t.Run("re-importing identical containers is accepted", func(t *testing.T) {
		resp := decode[dto.ImportResponse](t, api.upload(t, "/api/import/containers", "containers.csv", []byte(containers)))
		assert.Equal(t, 2, *resp.ContainersImported)
	})

	t.Run("missing file", func(t *testing.T) {
		w := api.upload(t, "/api/import/items", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		w := api.upload(t, "/api/import/items", "items.pdf", []byte(items))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing required column", func(t *testing.T) {
		w := api.upload(t, "/api/import/items", "items.csv", []byte("itemId,name\n001,Food"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Len(t, api.storedLogs(t, model.ActionImport), 3)
}

func TestHandler_ExportArrangement(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t, []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)}, itemBody("001", 10, 10, 20, 50, crewQuarters))
	api.place(t, "001", "contA", positionBody(0, 0, 0, 10, 10, 20))

	tests := []struct {
		name        string
		query       string
		wantStatus  int
		contentType string
	}{
		{"csv by default", "", http.StatusOK, "text/csv"},
		{"xlsx", "?format=xlsx", http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"unknown format", "?format=pdf", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/export/arrangement"+tt.query, nil)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.contentType == "" {
				return
			}
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
			assert.NotEmpty(t, w.Body.Bytes())
		})
	}

	csv := api.do(t, http.MethodGet, "/api/export/arrangement", nil).Body.String()
	assert.Contains(t, csv, "Item ID,Container ID")
	assert.Contains(t, csv, `001,contA,"(0,0,0)","(10,10,20)"`)
}

func TestHandler_GetLogs(t *testing.T) {
	api := newMemoryAPI(t)
	api.seed(t, []map[string]any{containerBody("contA", crewQuarters, 100, 85, 200)},
		itemBody("001", 10, 10, 20, 50, crewQuarters),
		itemBody("002", 10, 10, 20, 50, crewQuarters),
	)
	api.place(t, "001", "contA", positionBody(0, 0, 0, 10, 10, 20))
	api.place(t, "002", "contA", positionBody(10, 0, 0, 20, 10, 20))
	api.flushLogs()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTotal  int64
	}{
		{"all placements", "?actionType=placement", http.StatusOK, 2},
		{"one item", "?itemId=002", http.StatusOK, 1},
		{"no match", "?actionType=disposal", http.StatusOK, 0},
		{"bad start date", "?startDate=yesterday", http.StatusBadRequest, 0},
		{"end before start", "?startDate=2025-04-02&endDate=2025-04-01", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/logs"+tt.query, nil)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[dto.LogsResponse](t, w)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Len(t, resp.Logs, int(tt.wantTotal))
		})
	}
}
