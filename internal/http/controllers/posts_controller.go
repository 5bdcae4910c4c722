package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dropDatabas3/hellopost/internal/http/dto"
	httperrors "github.com/dropDatabas3/hellopost/internal/http/errors"
	"github.com/dropDatabas3/hellopost/internal/http/services"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
)

// PostsController handles /v1/posts.
type PostsController struct {
	posts services.PostService
}

// NewPostsController creates the posts controller.
func NewPostsController(posts services.PostService) *PostsController {
	return &PostsController{posts: posts}
}

// Register mounts the post routes.
func (c *PostsController) Register(r chi.Router) {
	r.Route("/v1/posts", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/", c.list)
		r.Patch("/{id}", c.update)
		r.Delete("/{id}", c.delete)
	})
}

// create handles POST /v1/posts. The owner id is stored as given; an
// unknown owner is not an error.
func (c *PostsController) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.create"))

	var req dto.PostCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := c.posts.Create(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostCreateResponse{
		Message: "post created",
		PostID:  id,
	})
	log.Info("post created", logger.PostID(id))
}

// list handles GET /v1/posts.
func (c *PostsController) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.list"))

	posts, err := c.posts.GetAll(ctx)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewPostResponses(posts))
}

// update handles PATCH /v1/posts/{id}.
func (c *PostsController) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.update"), logger.PostID(id))

	var req dto.PostUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := c.posts.Update(ctx, id, req.ToInput())
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Updated: updated})
}

// delete handles DELETE /v1/posts/{id}.
func (c *PostsController) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.delete"), logger.PostID(id))

	deleted, err := c.posts.Delete(ctx, id)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	if !deleted {
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("post not found"))
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: true})
	log.Info("post deleted")
}

// handleError maps service errors to HTTP responses.
func (c *PostsController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, services.ErrPostMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(err.Error()))
	default:
		log.Error("post operation failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
