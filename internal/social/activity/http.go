// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nyan/internal/platform/ref"
	requestutil "github.com/taibuivan/nyan/internal/platform/request"
	"github.com/taibuivan/nyan/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /{id} on the /mangas router. The id may also be a slug.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.getMangaDetail)
}

// ProfileRoutes returns the /profiles router.
func (handler *Handler) ProfileRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{login}", handler.getUserProfile)
	return router
}

func (handler *Handler) getMangaDetail(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.MangaDetail(request.Context(), requestutil.ID(request, "id"), ref.UserID(requestutil.OptionalUserID(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) getUserProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.UserProfile(request.Context(), requestutil.ID(request, "login"), ref.UserID(requestutil.OptionalUserID(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
