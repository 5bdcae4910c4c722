// Package dto defines the JSON request/response shapes of the API.
package dto

import (
	"time"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
)

// AccountCreateRequest is the body of POST /v1/accounts.
type AccountCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// AccountCreateResponse is the body returned on creation.
type AccountCreateResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"account_id"`
}

// AccountUpdateRequest is the body of PATCH /v1/accounts/{id}. Absent
// fields are left unchanged.
type AccountUpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

// ToInput converts the request to the repository's update input.
func (r AccountUpdateRequest) ToInput() repository.UpdateAccountInput {
	return repository.UpdateAccountInput{
		Name:  r.Name,
		Email: r.Email,
		Age:   r.Age,
	}
}

// AccountResponse is the wire shape of an account. CreatedAt serializes
// as RFC 3339.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps a domain account to its wire shape.
func NewAccountResponse(a repository.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Age:       a.Age,
		CreatedAt: a.CreatedAt,
	}
}

// UpdateResponse reports whether an update changed anything.
type UpdateResponse struct {
	Updated bool `json:"updated"`
}

// DeleteResponse reports whether a delete removed anything.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
