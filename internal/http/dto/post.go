package dto

import (
	"time"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
)

// PostCreateRequest is the body of POST /v1/posts. OwnerID is accepted as
// given; the data layer normalizes it and does not require the account to
// exist.
type PostCreateRequest struct {
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostCreateResponse is the body returned on creation.
type PostCreateResponse struct {
	Message string `json:"message"`
	PostID  string `json:"post_id"`
}

// PostUpdateRequest is the body of PATCH /v1/posts/{id}.
type PostUpdateRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// ToInput converts the request to the repository's update input.
func (r PostUpdateRequest) ToInput() repository.UpdatePostInput {
	return repository.UpdatePostInput{
		Title:   r.Title,
		Content: r.Content,
	}
}

// PostResponse is the wire shape of a post. The owner_* fields expose the
// denormalized account copy when a cascade update has written one.
type PostResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	OwnerName  *string `json:"owner_name,omitempty"`
	OwnerEmail *string `json:"owner_email,omitempty"`
	OwnerAge   *int    `json:"owner_age,omitempty"`
}

// NewPostResponse maps a domain post to its wire shape.
func NewPostResponse(p repository.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		OwnerName:  p.OwnerName,
		OwnerEmail: p.OwnerEmail,
		OwnerAge:   p.OwnerAge,
	}
}

// NewPostResponses maps a slice of domain posts.
func NewPostResponses(posts []repository.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}
