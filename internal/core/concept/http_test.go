// Copyright (c) 2026 Dugout. All rights reserved.

package concept_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/concept"
	"github.com/dugoutlab/dugout/internal/platform/storage"
)

func TestHandler_ConceptLifecycle(t *testing.T) {
	service, _ := newFixture(t)
	router := chi.NewRouter()
	router.Route("/concepts", concept.NewHandler(service, 1<<20).RegisterRoutes)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, bytes.NewBufferString(body)))
		return recorder
	}

	recorder := do(http.MethodPost, "/concepts", `{"title":"Hip Lead","category":"Hitting","body":"v1","tags":["hips"]}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var created struct {
		Data concept.Detail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	id := created.Data.ID

	recorder = do(http.MethodPost, "/concepts", `{"title":"Stride"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var other struct {
		Data concept.Detail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &other))

	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/concepts/"+id, `{"body":"v2"}`).Code)

	recorder = do(http.MethodGet, "/concepts/"+id+"/versions", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var versions struct {
		Data []concept.Version `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &versions))
	assert.Len(t, versions.Data, 2)

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/concepts/"+id+"/relations",
		`{"to_concept_id":"`+other.Data.ID+`","relation_type":"builds_on"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/concepts/"+id+"/relations",
		`{"to_concept_id":"`+id+`"}`).Code)
	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/concepts/"+id+"/links",
		`{"object_type":"player_note","object_id":"note-7"}`).Code)

	recorder = do(http.MethodGet, "/concepts/"+id, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var detail struct {
		Data concept.Detail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &detail))
	assert.Len(t, detail.Data.Relations, 1)
	assert.Len(t, detail.Data.Links, 1)

	recorder = do(http.MethodGet, "/concepts/search?query=v2", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), id)

	recorder = do(http.MethodGet, "/concepts/categories", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `["Hitting"]`, string(dataOf(t, recorder)))

	recorder = do(http.MethodGet, "/concepts/tags", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `["hips"]`, string(dataOf(t, recorder)))

	recorder = do(http.MethodGet, "/concepts?limit=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":2`)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/concepts/"+id+"/links/player_note/note-7", "").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/concepts/"+id+"/relations/"+other.Data.ID, "").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/concepts/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/concepts/"+id, "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/concepts/"+id+"/versions", "").Code)
}

func TestHandler_Upload(t *testing.T) {
	service, _ := newFixture(t)
	router := chi.NewRouter()
	router.Route("/concepts", concept.NewHandler(service, 1<<20).RegisterRoutes)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "Diagram.PNG")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/concepts/upload", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var stored storage.File
	require.NoError(t, json.Unmarshal(dataOf(t, recorder), &stored))
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, stored.Path)
	assert.Equal(t, baseURL+stored.Path, stored.URL)

	empty := &bytes.Buffer{}
	writer = multipart.NewWriter(empty)
	require.NoError(t, writer.WriteField("note", "no file"))
	require.NoError(t, writer.Close())
	request = httptest.NewRequest(http.MethodPost, "/concepts/upload", empty)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func dataOf(t *testing.T, recorder *httptest.ResponseRecorder) json.RawMessage {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}
