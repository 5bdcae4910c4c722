// Package controllers contains the HTTP controllers of the API.
package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/http/dto"
	httperrors "github.com/dropDatabas3/hellopost/internal/http/errors"
	"github.com/dropDatabas3/hellopost/internal/http/services"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
)

const maxBodySize = 64 * 1024 // 64KB

// AccountsController handles /v1/accounts.
type AccountsController struct {
	accounts services.AccountService
	posts    services.PostService
}

// NewAccountsController creates the accounts controller.
func NewAccountsController(accounts services.AccountService, posts services.PostService) *AccountsController {
	return &AccountsController{accounts: accounts, posts: posts}
}

// Register mounts the account routes.
func (c *AccountsController) Register(r chi.Router) {
	r.Route("/v1/accounts", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/", c.list)
		r.Get("/{id}", c.get)
		r.Patch("/{id}", c.update)
		r.Delete("/{id}", c.delete)
		r.Get("/{id}/posts", c.listPosts)
	})
}

// create handles POST /v1/accounts.
func (c *AccountsController) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.create"))

	var req dto.AccountCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := c.accounts.Create(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountCreateResponse{
		Message:   "account created",
		AccountID: id,
	})
	log.Info("account created", logger.AccountID(id))
}

// list handles GET /v1/accounts.
func (c *AccountsController) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.list"))

	accounts, err := c.accounts.GetAll(ctx)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.NewAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// get handles GET /v1/accounts/{id}. Malformed ids resolve to 404, never
// to a server error.
func (c *AccountsController) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.get"), logger.AccountID(id))

	acc, err := c.accounts.GetByID(ctx, id)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewAccountResponse(*acc))
}

// update handles PATCH /v1/accounts/{id}. The cascade runs through the
// coordinator; the response reflects only the account-side result.
func (c *AccountsController) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.update"), logger.AccountID(id))

	var req dto.AccountUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := c.accounts.Update(ctx, id, req.ToInput())
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Updated: updated})
}

// delete handles DELETE /v1/accounts/{id}: cascade delete of the account
// and all posts referencing it.
func (c *AccountsController) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.delete"), logger.AccountID(id))

	deleted, err := c.accounts.Delete(ctx, id)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	if !deleted {
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("account not found"))
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: true})
	log.Info("account deleted")
}

// listPosts handles GET /v1/accounts/{id}/posts. Unknown and malformed
// owners yield an empty list.
func (c *AccountsController) listPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.listPosts"), logger.AccountID(id))

	posts, err := c.posts.GetByOwner(ctx, id)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewPostResponses(posts))
}

// handleError maps service errors to HTTP responses.
func (c *AccountsController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, services.ErrAccountMissingFields),
		errors.Is(err, services.ErrAccountInvalidEmail),
		errors.Is(err, services.ErrAccountInvalidAge):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(err.Error()))
	case repository.IsDuplicateEmail(err):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("email already registered"))
	case repository.IsNotFound(err):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("account not found"))
	default:
		log.Error("account operation failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
