// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding
patterns so every handler fails the same way on bad input.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 4 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if the body is empty, malformed or too large.
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(nil, request.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and requires it to be a UUID.

A malformed identifier can never match a row, so it is reported as a
not-found of the named resource.
*/
func ID(request *http.Request, name, resource string) (string, error) {
	value := chi.URLParam(request, name)
	if !uuid.Valid(value) {
		return "", apperr.NotFound(resource)
	}
	return strings.ToLower(value), nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves a trimmed query-string value.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
ParseMultipart parses a multipart form, mapping oversized bodies to 413.
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes+constants.MaxMultipartMemory)
	if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.PayloadTooLarge("Upload exceeds the configured size limit")
		}
		return apperr.ValidationError("Invalid multipart form").WithCause(err)
	}
	return nil
}

/*
FormFile returns the named uploaded file, or ok=false when the field is absent
or was submitted empty.
*/
func FormFile(request *http.Request, field string) (multipart.File, *multipart.FileHeader, bool, error) {
	file, header, err := request.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, apperr.ValidationError("Invalid upload in field " + field).WithCause(err)
	}
	if header.Filename == "" || header.Size == 0 {
		_ = file.Close()
		return nil, nil, false, nil
	}
	return file, header, true, nil
}

/*
Body returns a size-limited reader over the raw request body.
*/
func Body(writer http.ResponseWriter, request *http.Request, maxBytes int64) io.Reader {
	return http.MaxBytesReader(writer, request.Body, maxBytes)
}

/*
ReadBody reads the whole raw request body, mapping oversized bodies to 413.
*/
func ReadBody(writer http.ResponseWriter, request *http.Request, maxBytes int64) ([]byte, error) {
	raw, err := io.ReadAll(Body(writer, request, maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.PayloadTooLarge("Body exceeds the configured size limit")
		}
		return nil, apperr.ValidationError("Unreadable request body").WithCause(err)
	}
	return raw, nil
}
