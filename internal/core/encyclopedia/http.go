// Copyright (c) 2026 Dugout. All rights reserved.

package encyclopedia

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
	"github.com/dugoutlab/dugout/internal/platform/respond"
)

// Handler exposes the combined view under /encyclopedia.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.search)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.getEntry)
}

/*
GET /encyclopedia and GET /encyclopedia/search.

Request:
  - query: string (optional)
  - category: string (optional)

Response:
  - 200: []Entry
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Search(request.Context(),
		requestutil.Query(request, "query"), requestutil.Query(request, "category"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

/*
GET /encyclopedia/{id}.

Request:
  - type: "concept" | "drill" (optional)

Response:
  - 200: Entry
  - 404: No concept or drill has the id
*/
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), id, requestutil.Query(request, "type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}
