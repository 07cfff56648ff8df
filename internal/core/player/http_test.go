// Copyright (c) 2026 Dugout. All rights reserved.

package player_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/player"
)

func TestHandler_PlayerLifecycle(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/players", player.NewHandler(newService(newMemoryRepository(), stubDrills{})).RegisterRoutes)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
		return recorder
	}

	recorder := do(http.MethodPost, "/players", `{
		"first_name": "Mia",
		"last_name": "Ortiz",
		"bats": "L",
		"history": [{"change_type": "Joined team", "date": "2025-02-01"}]
	}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data player.Detail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.NotNil(t, created.Data.Player)
	id := created.Data.ID
	assert.Len(t, created.Data.History, 1)

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/players/"+id, "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/players/"+id, `{"team":"Hornets"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPut, "/players/"+id, `{"throws":"S"}`).Code)
	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/players/"+id+"/history", `{"change_type":"Position Change"}`).Code)

	recorder = do(http.MethodGet, "/players/"+id+"/history", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var history struct {
		Data []player.HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &history))
	assert.Len(t, history.Data, 2)

	recorder = do(http.MethodGet, "/players?limit=10", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/players/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/players/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/players/not-a-uuid", "").Code)
}
