package handlers

import (
	"KomikAPI/internal/config"
	"KomikAPI/internal/middleware"
	"KomikAPI/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	komikService *service.KomikService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	komikHandler := NewKomikHandler(komikService, logger, config)

	r.Route("/api/komik", func(r chi.Router) {
		r.Post("/", komikHandler.Create)
		r.Get("/", komikHandler.List)
		r.Get("/{id}", komikHandler.Get)
		r.Put("/{id}", komikHandler.Update)
		r.Delete("/{id}", komikHandler.Delete)
	})

	return &Handler{Router: r}
}
