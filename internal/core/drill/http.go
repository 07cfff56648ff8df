// Copyright (c) 2026 Dugout. All rights reserved.

package drill

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
	"github.com/dugoutlab/dugout/internal/platform/respond"
)

// Handler exposes the drill library under /drills.
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler constructs the drill handler. maxUpload bounds video uploads.
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// RegisterRoutes mounts the drill endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listDrills)
	router.Post("/", handler.createDrill)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.getDrill)
		r.Put("/", handler.updateDrill)
		r.Delete("/", handler.deleteDrill)
		r.Patch("/tags", handler.replaceTags)
	})
}

/*
GET /drills.

Request:
  - query: string (optional, title/description substring)
  - category: string (optional, exact)
  - tag: string (optional, exact tag name)

Response:
  - 200: []Drill
*/
func (handler *Handler) listDrills(writer http.ResponseWriter, request *http.Request) {
	drills, err := handler.service.ListDrills(request.Context(), Filter{
		Query:    requestutil.Query(request, "query"),
		Category: requestutil.Query(request, "category"),
		Tag:      requestutil.Query(request, "tag"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, drills)
}

/*
POST /drills (multipart/form-data).

Request:
  - title: string (required)
  - description, category: string (optional)
  - tag_names: comma separated string (optional)
  - video_file: file (optional)
  - video_link: URL (optional)

Response:
  - 201: Drill
  - 400: Validation failed
  - 413: Upload too large
*/
func (handler *Handler) createDrill(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, handler.maxUpload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CreateInput{
		Title:       request.FormValue(FieldTitle),
		Description: request.FormValue(FieldDescription),
		Category:    request.FormValue(FieldCategory),
		TagNames:    request.FormValue(FieldTagNames),
		VideoLink:   request.FormValue(FieldVideoLink),
	}

	file, header, ok, err := requestutil.FormFile(request, FieldVideoFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if ok {
		defer file.Close()
		input.Video = &Upload{Name: header.Filename, Reader: file}
	}

	drill, err := handler.service.CreateDrill(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, drill)
}

func (handler *Handler) getDrill(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	drill, err := handler.service.GetDrill(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, drill)
}

/*
PATCH /drills/{id}/tags.

Request:
  - body: JSON array of tag names, replacing the whole set

Response:
  - 200: Drill
*/
func (handler *Handler) replaceTags(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var names []string
	if err := requestutil.DecodeJSON(request, &names); err != nil {
		respond.Error(writer, request, err)
		return
	}

	drill, err := handler.service.ReplaceTags(request.Context(), id, names)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, drill)
}

func (handler *Handler) updateDrill(writer http.ResponseWriter, request *http.Request) {
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

	drill, err := handler.service.UpdateDrill(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, drill)
}

func (handler *Handler) deleteDrill(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDrill(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
