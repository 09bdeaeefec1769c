package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship/internal/api/apierr"
	"github.com/mcoot/battleship/internal/api/handler"
	"github.com/mcoot/battleship/internal/middleware"
	"github.com/mcoot/battleship/internal/services/game"
	"github.com/mcoot/battleship/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, apiPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.End).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/rotate", gameHandler.Rotate).Methods(http.MethodPost)
	games.HandleFunc("/{id}/preview", gameHandler.Preview).Methods(http.MethodPost)
	games.HandleFunc("/{id}/preview", gameHandler.ClearPreview).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	games.HandleFunc("/{id}/fire", gameHandler.Fire).Methods(http.MethodPost)
	games.HandleFunc("/{id}/opponent-turn", gameHandler.OpponentTurn).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
