// Copyright (c) 2026 Dugout. All rights reserved.

package requestutil_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
)

func withParam(request *http.Request, key, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bunting"}`))
	require.NoError(t, requestutil.DecodeJSON(request, &target))
	assert.Equal(t, "bunting", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	ae := apperr.As(requestutil.DecodeJSON(request, &target))
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
}

func TestID(t *testing.T) {
	request := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "0190A6E2-7C1A-7B3E-9F00-1234567890AB")
	id, err := requestutil.ID(request, "id", "Player")
	require.NoError(t, err)
	assert.Equal(t, "0190a6e2-7c1a-7b3e-9f00-1234567890ab", id)

	request = withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42")
	_, err = requestutil.ID(request, "id", "Player")
	assert.True(t, apperr.IsNotFound(err))
}

func TestFormFile(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Tee work"))
	part, err := writer.CreateFormFile("video_file", "swing.mp4")
	require.NoError(t, err)
	_, _ = part.Write([]byte("data"))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/drills", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, requestutil.ParseMultipart(httptest.NewRecorder(), request, 1<<20))

	file, header, ok, err := requestutil.FormFile(request, "video_file")
	require.NoError(t, err)
	require.True(t, ok)
	defer file.Close()
	assert.Equal(t, "swing.mp4", header.Filename)

	_, _, ok, err = requestutil.FormFile(request, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadBody(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a\tb\n1\t2\n"))
	raw, err := requestutil.ReadBody(httptest.NewRecorder(), request, 64)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n1\t2\n", string(raw))

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 65)))
	_, err = requestutil.ReadBody(httptest.NewRecorder(), request, 64)
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperr.As(err).HTTPStatus)
}
