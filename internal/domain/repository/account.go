package repository

import (
	"context"
	"time"
)

// Account represents an account record.
type Account struct {
	ID        string
	Name      string
	Email     string
	Age       int
	CreatedAt time.Time
}

// CreateAccountInput contains the data to create an account.
type CreateAccountInput struct {
	Name  string
	Email string
	Age   int
}

// UpdateAccountInput contains the updatable account fields. Nil fields are
// left unchanged. CreatedAt is set once at creation and never updated.
type UpdateAccountInput struct {
	Name  *string
	Email *string
	Age   *int
}

// IsEmpty reports whether no field is set.
func (in UpdateAccountInput) IsEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Age == nil
}

// AccountRepository defines operations on accounts.
type AccountRepository interface {
	// Create inserts a new account with CreatedAt set to now.
	// Returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, input CreateAccountInput) (string, error)

	// GetAll returns all accounts in the store's natural order.
	GetAll(ctx context.Context) ([]Account, error)

	// GetByID returns the account with the given id.
	// Returns ErrNotFound when it does not exist or the id is not a
	// well-formed key.
	GetByID(ctx context.Context, id string) (*Account, error)

	// Update applies the set fields of input. Returns true iff a stored
	// field actually changed. An empty input is a no-op returning false
	// without touching the store.
	Update(ctx context.Context, id string, input UpdateAccountInput) (bool, error)

	// Delete removes the account. Returns true iff a record existed.
	Delete(ctx context.Context, id string) (bool, error)
}
