// Package memory implements the store contract in process memory.
//
// It mirrors the mongo adapter's observable semantics — ObjectID-hex ids,
// unique email enforcement, permissive owner keys, newest-first owner
// queries — so tests and driver-less development runs exercise the same
// contracts as production.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/store/key"
)

// Store keeps both collections under one lock. Single-document operations
// are isolated the way the real store isolates them; there is still no
// cross-collection atomicity across coordinator sequences.
type Store struct {
	mu       sync.RWMutex
	accounts []*repository.Account
	posts    []*postRec
	seq      uint64
}

type postRec struct {
	post     repository.Post
	ownerKey key.Key
	seq      uint64 // insertion order, tie-break for equal timestamps
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Name returns the driver name.
func (s *Store) Name() string { return "memory" }

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(ctx context.Context) error { return nil }

// Accounts returns the account repository.
func (s *Store) Accounts() repository.AccountRepository { return (*AccountRepo)(s) }

// Posts returns the post repository.
func (s *Store) Posts() repository.PostRepository { return (*PostRepo)(s) }

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// AccountRepo implements repository.AccountRepository.
type AccountRepo Store

// Create inserts a new account, enforcing email uniqueness like the unique
// index does.
func (r *AccountRepo) Create(ctx context.Context, input repository.CreateAccountInput) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == input.Email {
			return "", repository.ErrDuplicateEmail
		}
	}
	acc := &repository.Account{
		ID:        newID(),
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.Age,
		CreatedAt: now(),
	}
	r.accounts = append(r.accounts, acc)
	return acc.ID, nil
}

// GetAll returns accounts in insertion order.
func (r *AccountRepo) GetAll(ctx context.Context) ([]repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

// GetByID returns ErrNotFound for unknown and opaque ids alike.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	if !key.Parse(id).Valid() {
		return nil, repository.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.ID == id {
			acc := *a
			return &acc, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update applies the set fields, reporting whether anything changed.
func (r *AccountRepo) Update(ctx context.Context, id string, input repository.UpdateAccountInput) (bool, error) {
	if input.IsEmpty() || !key.Parse(id).Valid() {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.ID != id {
			continue
		}
		changed := false
		if input.Name != nil && a.Name != *input.Name {
			a.Name = *input.Name
			changed = true
		}
		if input.Email != nil && a.Email != *input.Email {
			a.Email = *input.Email
			changed = true
		}
		if input.Age != nil && a.Age != *input.Age {
			a.Age = *input.Age
			changed = true
		}
		return changed, nil
	}
	return false, nil
}

// Delete removes the account record only; cascades are the coordinator's
// responsibility.
func (r *AccountRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !key.Parse(id).Valid() {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// PostRepo implements repository.PostRepository.
type PostRepo Store

// Create inserts a new post without checking the owner exists.
func (r *PostRepo) Create(ctx context.Context, input repository.CreatePostInput) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key.Parse(input.OwnerID)
	r.seq++
	rec := &postRec{
		post: repository.Post{
			ID:        newID(),
			OwnerID:   k.String(),
			Title:     input.Title,
			Content:   input.Content,
			CreatedAt: now(),
		},
		ownerKey: k,
		seq:      r.seq,
	}
	r.posts = append(r.posts, rec)
	return rec.post.ID, nil
}

// GetAll returns posts in insertion order.
func (r *PostRepo) GetAll(ctx context.Context) ([]repository.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p.post)
	}
	return out, nil
}

// GetByOwner returns the owner's posts newest first.
func (r *PostRepo) GetByOwner(ctx context.Context, ownerID string) ([]repository.Post, error) {
	k := key.Parse(ownerID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*postRec, 0)
	for _, p := range r.posts {
		if p.ownerKey == k {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].post.CreatedAt.Equal(matched[j].post.CreatedAt) {
			return matched[i].post.CreatedAt.After(matched[j].post.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]repository.Post, 0, len(matched))
	for _, p := range matched {
		out = append(out, p.post)
	}
	return out, nil
}

// Update applies the set fields, reporting whether anything changed.
func (r *PostRepo) Update(ctx context.Context, id string, input repository.UpdatePostInput) (bool, error) {
	if input.IsEmpty() || !key.Parse(id).Valid() {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.post.ID != id {
			continue
		}
		changed := false
		if input.Title != nil && p.post.Title != *input.Title {
			p.post.Title = *input.Title
			changed = true
		}
		if input.Content != nil && p.post.Content != *input.Content {
			p.post.Content = *input.Content
			changed = true
		}
		return changed, nil
	}
	return false, nil
}

// Delete removes a single post.
func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !key.Parse(id).Valid() {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.posts {
		if p.post.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// DeleteAllByOwner removes every post referencing the owner key.
func (r *PostRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	k := key.Parse(ownerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.posts[:0]
	var removed int64
	for _, p := range r.posts {
		if p.ownerKey == k {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.posts = kept
	return removed, nil
}

// UpdateAllByOwner writes the denormalized account copy onto every post
// referencing the owner key.
func (r *PostRepo) UpdateAllByOwner(ctx context.Context, ownerID string, input repository.UpdateAccountInput) (int64, error) {
	if input.IsEmpty() {
		return 0, nil
	}
	k := key.Parse(ownerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	var matched int64
	for _, p := range r.posts {
		if p.ownerKey != k {
			continue
		}
		matched++
		if input.Name != nil {
			v := *input.Name
			p.post.OwnerName = &v
		}
		if input.Email != nil {
			v := *input.Email
			p.post.OwnerEmail = &v
		}
		if input.Age != nil {
			v := *input.Age
			p.post.OwnerAge = &v
		}
	}
	return matched, nil
}
