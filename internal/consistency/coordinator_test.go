package consistency

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/store/memory"
)

func strPtr(s string) *string { return &s }

func seedAccountWithPosts(t *testing.T, st *memory.Store, postCount int) string {
	t.Helper()
	ctx := context.Background()

	id, err := st.Accounts().Create(ctx, repository.CreateAccountInput{
		Name:  "Ana",
		Email: "ana@example.com",
		Age:   30,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	for i := 0; i < postCount; i++ {
		_, err := st.Posts().Create(ctx, repository.CreatePostInput{
			OwnerID: id,
			Title:   "post",
			Content: "content",
		})
		if err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}
	return id
}

func TestDeleteAccount_CascadesPosts(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	id := seedAccountWithPosts(t, st, 3)

	deleted, err := New(st.Accounts(), st.Posts()).DeleteAccount(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("account existed, delete must report true")
	}

	if _, err := st.Accounts().GetByID(ctx, id); !repository.IsNotFound(err) {
		t.Fatalf("account must be gone, got %v", err)
	}
	posts, err := st.Posts().GetByOwner(ctx, id)
	if err != nil {
		t.Fatalf("getbyowner: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("posts must be gone, got %d", len(posts))
	}
}

func TestDeleteAccount_NoPosts(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	id := seedAccountWithPosts(t, st, 0)

	deleted, err := New(st.Accounts(), st.Posts()).DeleteAccount(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("account existed, delete must report true")
	}
}

func TestDeleteAccount_OrphanPostsRemoved(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	// Posts referencing an identifier with no account record behind it.
	orphanOwner := "507f1f77bcf86cd799439011"
	for i := 0; i < 2; i++ {
		if _, err := st.Posts().Create(ctx, repository.CreatePostInput{
			OwnerID: orphanOwner, Title: "orphan", Content: "c",
		}); err != nil {
			t.Fatalf("seed orphan: %v", err)
		}
	}

	deleted, err := New(st.Accounts(), st.Posts()).DeleteAccount(ctx, orphanOwner)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Fatal("no account record, delete must report false")
	}

	posts, err := st.Posts().GetByOwner(ctx, orphanOwner)
	if err != nil {
		t.Fatalf("getbyowner: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("orphan posts must still be removed, got %d", len(posts))
	}
}

func TestUpdateAccount_PropagatesToPosts(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	id := seedAccountWithPosts(t, st, 2)

	changed, err := New(st.Accounts(), st.Posts()).UpdateAccount(ctx, id, repository.UpdateAccountInput{
		Name: strPtr("Ana Maria"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !changed {
		t.Fatal("account side must report the change")
	}

	acc, err := st.Accounts().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if acc.Name != "Ana Maria" {
		t.Fatalf("account not updated: %q", acc.Name)
	}

	posts, err := st.Posts().GetByOwner(ctx, id)
	if err != nil {
		t.Fatalf("getbyowner: %v", err)
	}
	for _, p := range posts {
		if p.OwnerName == nil || *p.OwnerName != "Ana Maria" {
			t.Fatalf("denormalized copy not written: %+v", p)
		}
	}
}

func TestUpdateAccount_EmptyInputSkipsPropagation(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	id := seedAccountWithPosts(t, st, 1)

	failing := &failingPostRepo{PostRepository: st.Posts()}
	changed, err := New(st.Accounts(), failing).UpdateAccount(ctx, id, repository.UpdateAccountInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if changed {
		t.Fatal("empty update must report no change")
	}
	if failing.updateCalls != 0 {
		t.Fatalf("empty update must not touch posts, got %d calls", failing.updateCalls)
	}
}

// failingPostRepo makes the bulk operations fail while counting calls.
type failingPostRepo struct {
	repository.PostRepository
	updateCalls int
	deleteCalls int
}

var errInjected = errors.New("injected post-side failure")

func (f *failingPostRepo) UpdateAllByOwner(ctx context.Context, ownerID string, input repository.UpdateAccountInput) (int64, error) {
	f.updateCalls++
	return 0, errInjected
}

func (f *failingPostRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	f.deleteCalls++
	return 0, errInjected
}

func TestUpdateAccount_PostFailureDoesNotBlockAccount(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	id := seedAccountWithPosts(t, st, 1)

	failing := &failingPostRepo{PostRepository: st.Posts()}
	changed, err := New(st.Accounts(), failing).UpdateAccount(ctx, id, repository.UpdateAccountInput{
		Name: strPtr("Ana Maria"),
	})
	if err != nil {
		t.Fatalf("post-side failure must not surface: %v", err)
	}
	if !changed {
		t.Fatal("account side must still run and report the change")
	}
	if failing.updateCalls != 1 {
		t.Fatalf("propagation must be attempted once, got %d", failing.updateCalls)
	}

	acc, err := st.Accounts().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if acc.Name != "Ana Maria" {
		t.Fatalf("account not updated despite post-side failure: %q", acc.Name)
	}
}

func TestDeleteAccount_PostFailureDoesNotBlockAccount(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	id := seedAccountWithPosts(t, st, 1)

	failing := &failingPostRepo{PostRepository: st.Posts()}
	deleted, err := New(st.Accounts(), failing).DeleteAccount(ctx, id)
	if err != nil {
		t.Fatalf("post-side failure must not surface: %v", err)
	}
	if !deleted {
		t.Fatal("account side must still run and report the delete")
	}
	if failing.deleteCalls != 1 {
		t.Fatalf("cascade must be attempted once, got %d", failing.deleteCalls)
	}

	if _, err := st.Accounts().GetByID(ctx, id); !repository.IsNotFound(err) {
		t.Fatalf("account must be gone despite post-side failure, got %v", err)
	}
}
