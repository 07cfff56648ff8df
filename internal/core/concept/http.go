// Copyright (c) 2026 Dugout. All rights reserved.

package concept

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
	"github.com/dugoutlab/dugout/internal/platform/respond"
	"github.com/dugoutlab/dugout/pkg/pagination"
	"github.com/dugoutlab/dugout/pkg/query"
)

// Handler exposes the encyclopedia concepts under /concepts.
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler constructs the concept handler. maxUpload bounds media uploads.
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// RegisterRoutes mounts the concept endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listConcepts)
	router.Post("/", handler.createConcept)
	router.Get("/search", handler.searchConcepts)
	router.Get("/categories", handler.listCategories)
	router.Get("/tags", handler.listTagNames)
	router.Post("/upload", handler.upload)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.getConcept)
		r.Put("/", handler.updateConcept)
		r.Delete("/", handler.deleteConcept)

		r.Get("/versions", handler.listVersions)

		r.Get("/links", handler.listLinks)
		r.Post("/links", handler.addLink)
		r.Delete("/links/{objectType}/{objectID}", handler.deleteLink)

		r.Get("/relations", handler.listRelations)
		r.Post("/relations", handler.addRelation)
		r.Delete("/relations/{toID}", handler.deleteRelation)
	})
}

func includeArchived(request *http.Request) bool {
	return query.Bool(requestutil.Query(request, "include_archived"))
}

/*
GET /concepts.

Request:
  - page, limit: int (optional)
  - include_archived: bool (optional, default false)

Response:
  - 200: []Concept with pagination meta
*/
func (handler *Handler) listConcepts(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	concepts, total, err := handler.service.ListConcepts(request.Context(), includeArchived(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, concepts, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
GET /concepts/search.

Request:
  - query: string (optional, matched against title, summary and body)
  - category: string (optional, exact)
  - include_archived: bool (optional)

Response:
  - 200: []Concept
*/
func (handler *Handler) searchConcepts(writer http.ResponseWriter, request *http.Request) {
	concepts, err := handler.service.SearchConcepts(request.Context(), Filter{
		Query:           requestutil.Query(request, "query"),
		Category:        requestutil.Query(request, "category"),
		IncludeArchived: includeArchived(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, concepts)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listTagNames(writer http.ResponseWriter, request *http.Request) {
	names, err := handler.service.TagNames(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, names)
}

/*
POST /concepts/upload (multipart/form-data).

Request:
  - file: the media file

Response:
  - 201: storage.File
  - 400: No file submitted
  - 413: Upload too large
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, handler.maxUpload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, ok, err := requestutil.FormFile(request, constants.FormFieldFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !ok {
		respond.Error(writer, request, apperr.ValidationError("No file submitted",
			apperr.FieldError{Field: constants.FormFieldFile, Message: "This field is required"}))
		return
	}
	defer file.Close()

	stored, err := handler.service.Upload(request.Context(), header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, stored)
}

/*
POST /concepts.

Request:
  - body: CreateInput

Response:
  - 201: Detail
  - 400: Validation failed
*/
func (handler *Handler) createConcept(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.CreateConcept(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, detail)
}

func (handler *Handler) getConcept(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetConcept(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) updateConcept(writer http.ResponseWriter, request *http.Request) {
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

	detail, err := handler.service.UpdateConcept(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) deleteConcept(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteConcept(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listVersions(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	versions, err := handler.service.ListVersions(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, versions)
}

// # Links

func (handler *Handler) listLinks(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	links, err := handler.service.ListLinks(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, links)
}

/*
POST /concepts/{id}/links.

Request:
  - body: {"object_type": "player_note|drill|assessment", "object_id": "..."}

Response:
  - 201: Link
  - 400: Unknown object type
  - 404: Concept not found
*/
func (handler *Handler) addLink(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LinkInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.AddLink(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, link)
}

func (handler *Handler) deleteLink(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteLink(request.Context(), id,
		requestutil.Param(request, "objectType"), requestutil.Param(request, "objectID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Relations

func (handler *Handler) listRelations(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	relations, err := handler.service.ListRelations(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, relations)
}

/*
POST /concepts/{id}/relations.

Request:
  - body: {"to_concept_id": uuid, "relation_type": "related|prerequisite|counterpoint|builds_on"}

Response:
  - 201: []Relation of the concept after the change
  - 400: Self relation or unknown type
  - 404: Either concept not found
*/
func (handler *Handler) addRelation(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RelationInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	relations, err := handler.service.AddRelation(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, relations)
}

func (handler *Handler) deleteRelation(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resource)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	toID, err := requestutil.ID(request, "toID", resourceRelation)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRelation(request.Context(), id, toID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
