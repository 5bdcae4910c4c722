package repository

import (
	"context"
	"time"
)

// Post represents a post record. OwnerID references an Account's id, but
// the reference is a repository-level contract only: the store does not
// enforce it, and Create does not verify the owner exists.
type Post struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	CreatedAt time.Time

	// Denormalized copy of the owning account's fields, mirrored onto the
	// post by cascade updates. Nil until a cascade update touches the post.
	OwnerName  *string
	OwnerEmail *string
	OwnerAge   *int
}

// CreatePostInput contains the data to create a post.
type CreatePostInput struct {
	OwnerID string
	Title   string
	Content string
}

// UpdatePostInput contains the updatable post fields. Nil fields are left
// unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether no field is set.
func (in UpdatePostInput) IsEmpty() bool {
	return in.Title == nil && in.Content == nil
}

// PostRepository defines operations on posts.
type PostRepository interface {
	// Create inserts a new post with CreatedAt set to now. The owner id is
	// normalized to native-key form when well-formed and stored verbatim
	// otherwise; it is not checked against the account collection.
	Create(ctx context.Context, input CreatePostInput) (string, error)

	// GetAll returns all posts in the store's natural order.
	GetAll(ctx context.Context) ([]Post, error)

	// GetByOwner returns the owner's posts sorted by CreatedAt descending
	// (newest first). Unknown or malformed owner ids yield an empty slice.
	GetByOwner(ctx context.Context, ownerID string) ([]Post, error)

	// Update applies the set fields of input. Same partial-update
	// semantics as AccountRepository.Update.
	Update(ctx context.Context, id string, input UpdatePostInput) (bool, error)

	// Delete removes a single post. Returns true iff a record existed.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteAllByOwner removes every post referencing the owner and
	// returns the number removed. Used by the cascade delete path.
	DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error)

	// UpdateAllByOwner mirrors changed account fields onto the
	// denormalized copy carried by the owner's posts and returns the
	// number of posts matched. Used by the cascade update path.
	UpdateAllByOwner(ctx context.Context, ownerID string, input UpdateAccountInput) (int64, error)
}
