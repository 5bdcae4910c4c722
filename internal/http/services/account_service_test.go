package services

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/hellopost/internal/cache"
	"github.com/dropDatabas3/hellopost/internal/consistency"
	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/http/dto"
	"github.com/dropDatabas3/hellopost/internal/store/memory"
)

// countingAccountRepo counts GetByID calls to observe cache behavior.
type countingAccountRepo struct {
	repository.AccountRepository
	getCalls int
}

func (c *countingAccountRepo) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	c.getCalls++
	return c.AccountRepository.GetByID(ctx, id)
}

func newCachedService(t *testing.T) (AccountService, *countingAccountRepo) {
	t.Helper()
	st := memory.New()
	counting := &countingAccountRepo{AccountRepository: st.Accounts()}
	svc := NewAccountService(AccountDeps{
		Accounts:    counting,
		Coordinator: consistency.New(counting, st.Posts()),
		Cache:       cache.NewMemory(time.Minute),
		CacheTTL:    time.Minute,
	})
	return svc, counting
}

func TestAccountService_GetByIDCached(t *testing.T) {
	ctx := context.Background()
	svc, counting := newCachedService(t)

	id, err := svc.Create(ctx, dto.AccountCreateRequest{Name: "Ana", Email: "ana@example.com", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		acc, err := svc.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if acc.Name != "Ana" {
			t.Fatalf("get %d: unexpected account %+v", i, acc)
		}
	}
	if counting.getCalls != 1 {
		t.Fatalf("cached reads must hit the repository once, got %d", counting.getCalls)
	}
}

func TestAccountService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, counting := newCachedService(t)

	id, err := svc.Create(ctx, dto.AccountCreateRequest{Name: "Ana", Email: "ana@example.com", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GetByID(ctx, id); err != nil {
		t.Fatalf("warm: %v", err)
	}

	name := "Ana Maria"
	changed, err := svc.Update(ctx, id, repository.UpdateAccountInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !changed {
		t.Fatal("update must report the change")
	}

	acc, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if acc.Name != "Ana Maria" {
		t.Fatalf("stale read after invalidation: %q", acc.Name)
	}
	if counting.getCalls != 2 {
		t.Fatalf("update must invalidate the entry, got %d repository reads", counting.getCalls)
	}
}

func TestAccountService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCachedService(t)

	cases := []struct {
		name string
		req  dto.AccountCreateRequest
		want error
	}{
		{"missing name", dto.AccountCreateRequest{Email: "a@b.c"}, ErrAccountMissingFields},
		{"missing email", dto.AccountCreateRequest{Name: "Ana"}, ErrAccountMissingFields},
		{"whitespace only", dto.AccountCreateRequest{Name: "  ", Email: "a@b.c"}, ErrAccountMissingFields},
		{"bad email", dto.AccountCreateRequest{Name: "Ana", Email: "not-an-email"}, ErrAccountInvalidEmail},
		{"negative age", dto.AccountCreateRequest{Name: "Ana", Email: "a@b.c", Age: -1}, ErrAccountInvalidAge},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.req); err != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, err)
		}
	}
}
