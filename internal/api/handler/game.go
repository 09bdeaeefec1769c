package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship/internal/api/apierr"
	"github.com/mcoot/battleship/internal/api/request"
	"github.com/mcoot/battleship/internal/api/response"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/game"
	"github.com/mcoot/battleship/internal/sse"
)

// GameHandler handles game endpoints
type GameHandler struct {
	controller *game.Controller
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "api")),
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	// An empty body selects the defaults
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	g, err := h.controller.CreateGame(r.Context(), game.CreateOptions{Strategy: req.Strategy})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.controller.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.controller.GetGame(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// End handles DELETE /api/v1/games/{id}
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.controller.EndGame(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if h.hubManager != nil {
		h.hubManager.RemoveHub(id)
	}
	response.NoContent(w)
}

// Rotate handles POST /api/v1/games/{id}/rotate
func (h *GameHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	g, err := h.controller.ToggleOrientation(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Preview handles POST /api/v1/games/{id}/preview
func (h *GameHandler) Preview(w http.ResponseWriter, r *http.Request) {
	target, ok := decodeCell(w, r)
	if !ok {
		return
	}

	g, err := h.controller.PreviewPlacement(r.Context(), gameID(r), target)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// ClearPreview handles DELETE /api/v1/games/{id}/preview
func (h *GameHandler) ClearPreview(w http.ResponseWriter, r *http.Request) {
	g, err := h.controller.ClearPreview(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	target, ok := decodeCell(w, r)
	if !ok {
		return
	}

	result, err := h.controller.PlaceShip(r.Context(), gameID(r), target)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlacementResponseFromResult(result))
}

// Fire handles POST /api/v1/games/{id}/fire
func (h *GameHandler) Fire(w http.ResponseWriter, r *http.Request) {
	target, ok := decodeCell(w, r)
	if !ok {
		return
	}

	result, err := h.controller.FireAt(r.Context(), gameID(r), target)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ShotResponseFromResult(result))
}

// OpponentTurn handles POST /api/v1/games/{id}/opponent-turn.
// It resolves a pending computer reply without waiting for the delay.
func (h *GameHandler) OpponentTurn(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.PlayOpponentTurn(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ShotResponseFromResult(result))
}

// Events handles GET /api/v1/games/{id}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.controller.GetGame(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.Debug("event stream opened", slog.String("game_id", string(id)))
	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// decodeCell reads a CellRequest body, writing the error response on failure
func decodeCell(w http.ResponseWriter, r *http.Request) (model.Index, bool) {
	var req request.CellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return 0, false
	}

	target, err := req.Target()
	if err != nil {
		if errors.Is(err, model.ErrInvalidIndex) {
			apierr.WriteError(w, err)
		} else {
			apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
		}
		return 0, false
	}
	return target, true
}
