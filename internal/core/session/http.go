// Copyright (c) 2026 Dugout. All rights reserved.

package session

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
	"github.com/dugoutlab/dugout/internal/platform/respond"
)

// Handler exposes sessions under /sessions.
type Handler struct {
	service   *Service
	maxImport int64
}

// NewHandler constructs the session handler. maxImport bounds metric exports.
func NewHandler(service *Service, maxImport int64) *Handler {
	return &Handler{service: service, maxImport: maxImport}
}

// RegisterRoutes mounts the session endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createSession)
	router.Get("/player/{playerID}", handler.listForPlayer)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.getSession)
		r.Put("/", handler.updateSession)
		r.Delete("/", handler.deleteSession)
		r.Post("/metrics/import", handler.importMetrics)
	})
}

/*
POST /sessions.

Request:
  - body: CreateInput; metric values may be strings, numbers or booleans

Response:
  - 201: Session with grouped metrics
  - 400: Validation failed
  - 404: Player not found
*/
func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.CreateSession(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

func (handler *Handler) listForPlayer(writer http.ResponseWriter, request *http.Request) {
	playerID, err := requestutil.ID(request, "playerID", "Player")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.service.ListForPlayer(request.Context(), playerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sessions)
}

func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.GetSession(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) updateSession(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.UpdateSession(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) deleteSession(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSession(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /sessions/{id}/metrics/import.

Request:
  - multipart "file" field, or the raw tab-separated export as the body

Response:
  - 200: Session with the rapsodo metrics replaced
  - 400: Empty or unreadable export
*/
func (handler *Handler) importMetrics(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var export io.Reader
	if strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/") {
		if err := requestutil.ParseMultipart(writer, request, handler.maxImport); err != nil {
			respond.Error(writer, request, err)
			return
		}
		file, _, ok, err := requestutil.FormFile(request, FieldFile)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if ok {
			defer file.Close()
			export = file
		} else {
			export = strings.NewReader("")
		}
	} else {
		raw, err := requestutil.ReadBody(writer, request, handler.maxImport)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		export = bytes.NewReader(raw)
	}

	session, err := handler.service.ImportRapsodo(request.Context(), id, export)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}
