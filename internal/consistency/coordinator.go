// Package consistency sequences the multi-collection account operations.
//
// Accounts and posts live in independent collections with no
// cross-collection transaction. Both compound operations run post-side
// first, account-side second: a post-side failure then cannot leave the
// account record pointing at already-committed account state, and the
// account-side write is the commit point reported to the caller. A crash
// or failure between the two steps leaves a partially-applied state; the
// coordinator logs it and does not retry or compensate.
package consistency

import (
	"context"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
)

// Coordinator orchestrates the cascade update and cascade delete paths.
type Coordinator struct {
	accounts repository.AccountRepository
	posts    repository.PostRepository
}

// New creates a coordinator over the two repositories.
func New(accounts repository.AccountRepository, posts repository.PostRepository) *Coordinator {
	return &Coordinator{accounts: accounts, posts: posts}
}

// UpdateAccount propagates the changed fields to the denormalized copy on
// the account's posts, then updates the account record. Only the
// account-side result is reported; a post-side failure is logged and the
// account update still runs.
func (c *Coordinator) UpdateAccount(ctx context.Context, id string, input repository.UpdateAccountInput) (bool, error) {
	log := logger.From(ctx).With(
		logger.Layer("coordinator"),
		logger.Op("UpdateAccount"),
		logger.AccountID(id),
	)

	if !input.IsEmpty() {
		matched, err := c.posts.UpdateAllByOwner(ctx, id, input)
		if err != nil {
			log.Error("post propagation failed, account update continues", logger.Err(err))
		} else if matched > 0 {
			log.Debug("propagated account fields to posts", logger.Count(matched))
		}
	}

	return c.accounts.Update(ctx, id, input)
}

// DeleteAccount deletes every post referencing the identifier, then the
// account record. Posts are deleted keyed purely on the owner reference:
// orphan posts under a non-existing account are removed the same way. The
// returned bool reflects only whether the account record existed.
func (c *Coordinator) DeleteAccount(ctx context.Context, id string) (bool, error) {
	log := logger.From(ctx).With(
		logger.Layer("coordinator"),
		logger.Op("DeleteAccount"),
		logger.AccountID(id),
	)

	deleted, err := c.posts.DeleteAllByOwner(ctx, id)
	if err != nil {
		log.Error("post cascade failed, account delete continues", logger.Err(err))
	} else if deleted > 0 {
		log.Debug("deleted posts for account", logger.Count(deleted))
	}

	return c.accounts.Delete(ctx, id)
}
