// Copyright (c) 2026 Dugout. All rights reserved.

package assignment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dugoutlab/dugout/internal/platform/request"
	"github.com/dugoutlab/dugout/internal/platform/respond"
)

// Handler exposes assignments under /player-drills.
type Handler struct {
	service *Service
}

// NewHandler constructs the assignment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the assignment endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/players/{playerID}/drills/{drillID}", handler.assign)
	router.Delete("/players/{playerID}/drills/{drillID}", handler.unassign)
	router.Get("/players/{playerID}/drills", handler.listDrills)
	router.Get("/drills/{drillID}/players", handler.listPlayers)
}

/*
POST /player-drills/players/{playerID}/drills/{drillID}.

Request:
  - session_date: string (YYYY-MM-DD, optional, defaults to today)
  - session_id: string (UUID, optional)
  - notes: string (optional)

Response:
  - 201: Result: Newly assigned
  - 200: Result: Pair was already assigned; existing row returned unchanged
  - 400: Malformed date or session
  - 404: Player, drill or session not found
*/
func (handler *Handler) assign(writer http.ResponseWriter, request *http.Request) {
	playerID, drillID, ok := pair(writer, request)
	if !ok {
		return
	}

	result, err := handler.service.Assign(request.Context(), playerID, drillID, Input{
		SessionDate: requestutil.Query(request, FieldSessionDate),
		SessionID:   requestutil.Query(request, FieldSessionID),
		Notes:       requestutil.Query(request, FieldNotes),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.AlreadyAssigned {
		respond.OK(writer, result)
		return
	}
	respond.Created(writer, result)
}

/*
DELETE /player-drills/players/{playerID}/drills/{drillID}.

Response:
  - 204: No Content
  - 404: The pair is not assigned
*/
func (handler *Handler) unassign(writer http.ResponseWriter, request *http.Request) {
	playerID, drillID, ok := pair(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Unassign(request.Context(), playerID, drillID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listDrills(writer http.ResponseWriter, request *http.Request) {
	playerID, err := requestutil.ID(request, "playerID", "Player")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	drills, err := handler.service.ListDrillsForPlayer(request.Context(), playerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, drills)
}

func (handler *Handler) listPlayers(writer http.ResponseWriter, request *http.Request) {
	drillID, err := requestutil.ID(request, "drillID", "Drill")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	players, err := handler.service.ListPlayersForDrill(request.Context(), drillID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, players)
}

func pair(writer http.ResponseWriter, request *http.Request) (string, string, bool) {
	playerID, err := requestutil.ID(request, "playerID", "Player")
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}
	drillID, err := requestutil.ID(request, "drillID", "Drill")
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}
	return playerID, drillID, true
}
