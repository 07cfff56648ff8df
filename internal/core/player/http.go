// Copyright (c) 2026 Dugout. All rights reserved.

package player

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
	"github.com/dugoutlab/dugout/internal/platform/respond"
	"github.com/dugoutlab/dugout/pkg/pagination"
)

// Handler exposes player profiles and their history under /players.
type Handler struct {
	service *Service
}

// NewHandler constructs the player handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the player endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPlayers)
	router.Post("/", handler.createPlayer)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.getPlayer)
		r.Put("/", handler.updatePlayer)
		r.Delete("/", handler.deletePlayer)

		r.Get("/history", handler.listHistory)
		r.Post("/history", handler.addHistory)
		r.Delete("/history/{historyID}", handler.deleteHistory)
	})
}

/*
GET /players.

Request:
  - page, limit: int (optional)

Response:
  - 200: []Player with pagination meta
*/
func (handler *Handler) listPlayers(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	players, total, err := handler.service.ListPlayers(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, players, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
POST /players.

Request:
  - body: CreateInput (profile plus optional "history" entries)

Response:
  - 201: Detail
  - 400: Validation failed
*/
func (handler *Handler) createPlayer(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.CreatePlayer(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, detail)
}

/*
GET /players/{id}.

Response:
  - 200: Detail (profile, history by date, assigned drills)
  - 404: Player not found
*/
func (handler *Handler) getPlayer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resourcePlayer)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetPlayer(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

/*
PUT /players/{id}.

Description: Partial update; absent fields are kept.

Response:
  - 200: Detail
  - 400: Validation failed
  - 404: Player not found
*/
func (handler *Handler) updatePlayer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resourcePlayer)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.UpdatePlayer(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) deletePlayer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resourcePlayer)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePlayer(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # History

func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resourcePlayer)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.ListHistory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) addHistory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resourcePlayer)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input HistoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddHistory(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entry)
}

func (handler *Handler) deleteHistory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", resourcePlayer)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	historyID, err := requestutil.ID(request, "historyID", resourceHistory)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteHistory(request.Context(), id, historyID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
