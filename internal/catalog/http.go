// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nyan/internal/platform/middleware"
	requestutil "github.com/taibuivan/nyan/internal/platform/request"
	"github.com/taibuivan/nyan/internal/platform/respond"
	"github.com/taibuivan/nyan/internal/platform/sec"
	"github.com/taibuivan/nyan/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints on the /mangas router.
// GET /{id} is owned by the activity read model.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listMangas)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createManga)
}

func (handler *Handler) listMangas(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:    request.URL.Query().Get("q"),
		Category: request.URL.Query().Get("category"),
	}

	mangas, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, mangas, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createManga(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	manga, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, manga)
}
