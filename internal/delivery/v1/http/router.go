package http

import (
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC, itemUC usecase.ItemUC, sysHandler *SystemHandler) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Get("/health", sysHandler.health)
	r.router.Get("/metrics", sysHandler.metrics)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		searchHandler := NewSearchHandler(searchUC, r.logger)
		itemHandler := NewItemHandler(itemUC, r.logger)
		registerSearchRoutes(v1, searchHandler)
		registerItemRoutes(v1, itemHandler)
	})
}

func registerSearchRoutes(router chi.Router, h *SearchHandler) {
	router.Post("/search_by_image", h.searchByImage)
	router.Post("/search_by_text", h.searchByText)
	router.Post("/search_combined", h.searchCombined)
	router.Post("/analyze_image", h.analyzeImage)
	router.Post("/generate_description", h.generateDescription)
}

func registerItemRoutes(router chi.Router, h *ItemHandler) {
	router.Post("/add_item", h.addItem)
	router.Get("/items", h.getItemsInfo)
}
