// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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

// RegisterRoutes mounts the thread endpoints on the /mangas router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}/comments", handler.listComments)
	router.With(middleware.RequireAuth).Post("/{id}/comments", handler.postComment)
}

// Routes returns the /comments router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getComment)
	router.With(middleware.RequireAuth).Post("/{id}/vote", handler.vote)

	return router
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := ref.ParseMangaID(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.ListByManga(request.Context(), mangaID, ref.UserID(requestutil.OptionalUserID(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, views)
}

func (handler *Handler) postComment(writer http.ResponseWriter, request *http.Request) {
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

	var input PostInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Post(request.Context(), mangaID, ref.UserID(userID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	commentID, err := ref.ParseCommentID(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Get(request.Context(), commentID, ref.UserID(requestutil.OptionalUserID(request)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := ref.ParseCommentID(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VoteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Vote(request.Context(), commentID, ref.UserID(userID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}
