// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/middleware"
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

// summaryResponse adds the caller's own rating to the aggregate when signed in.
type summaryResponse struct {
	*Summary
	MyRating *Rating `json:"my_rating,omitempty"`
}

// RegisterRoutes mounts the rating endpoints on the /mangas router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}/rating", handler.getSummary)
	router.With(middleware.RequireAuth).Post("/{id}/rate", handler.rate)
}

func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := ref.ParseMangaID(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.Rate(request.Context(), mangaID, ref.UserID(userID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

func (handler *Handler) getSummary(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := ref.ParseMangaID(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Summary(request.Context(), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := summaryResponse{Summary: summary}
	if claims := requestutil.Claims(request); claims != nil {
		mine, err := handler.service.GetRating(request.Context(), mangaID, ref.UserID(claims.UserID))
		if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
			respond.Error(writer, request, err)
			return
		}
		response.MyRating = mine
	}

	respond.OK(writer, response)
}
