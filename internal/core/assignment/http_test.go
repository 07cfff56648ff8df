// Copyright (c) 2026 Dugout. All rights reserved.

package assignment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/assignment"
)

func TestHandler_AssignLifecycle(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/player-drills", assignment.NewHandler(newService(newMemoryRepository())).RegisterRoutes)

	path := "/player-drills/players/" + playerA + "/drills/" + drillX

	do := func(method, target string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
		return recorder
	}

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, path+"?session_date=2025-06-01").Code)

	recorder := do(http.MethodPost, path)
	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Data assignment.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Data.AlreadyAssigned)

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, path+"?session_date=yesterday").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/player-drills/players/"+playerA+"/drills").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/player-drills/drills/"+drillX+"/players").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, path).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, path).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/player-drills/players/42/drills/"+drillX).Code)
}
