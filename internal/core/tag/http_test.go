// Copyright (c) 2026 Dugout. All rights reserved.

package tag_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/tag"
)

func newRouter() chi.Router {
	router := chi.NewRouter()
	router.Route("/tags", tag.NewHandler(newService(newMemoryRepository(), newMemoryCache())).RegisterRoutes)
	return router
}

func TestHandler_CreateAndList(t *testing.T) {
	router := newRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"name":"bunting"}`)))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"name":"bunting"}`)))
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tags", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []tag.Tag `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "bunting", body.Data[0].Name)
}

func TestHandler_CreateRejectsBadJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
