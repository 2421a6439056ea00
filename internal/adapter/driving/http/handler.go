package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Hiba-Rafique/Calling-System/internal/core/service"
)

type Handler struct {
	Coordinator *service.Coordinator
}

func NewHandler(coordinator *service.Coordinator) *Handler {
	return &Handler{
		Coordinator: coordinator,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/ws", h.ServeWS)

	return r
}
