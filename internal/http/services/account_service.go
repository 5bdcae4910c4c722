// Package services contains the application services behind the controllers.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/hellopost/internal/cache"
	"github.com/dropDatabas3/hellopost/internal/consistency"
	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/http/dto"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
)

// Account service errors.
var (
	ErrAccountMissingFields = fmt.Errorf("name and email are required")
	ErrAccountInvalidEmail  = fmt.Errorf("email is not valid")
	ErrAccountInvalidAge    = fmt.Errorf("age must not be negative")
)

// AccountService exposes account operations to the HTTP surface. Reads are
// cached; writes that span collections go through the coordinator.
type AccountService interface {
	Create(ctx context.Context, req dto.AccountCreateRequest) (string, error)
	GetAll(ctx context.Context) ([]repository.Account, error)
	GetByID(ctx context.Context, id string) (*repository.Account, error)
	Update(ctx context.Context, id string, input repository.UpdateAccountInput) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AccountDeps contains the account service dependencies.
type AccountDeps struct {
	Accounts    repository.AccountRepository
	Coordinator *consistency.Coordinator
	Cache       cache.Client
	CacheTTL    time.Duration
}

type accountService struct {
	deps AccountDeps
	sf   singleflight.Group
}

// NewAccountService creates an AccountService.
func NewAccountService(deps AccountDeps) AccountService {
	return &accountService{deps: deps}
}

// Create validates the request and inserts the account.
func (s *accountService) Create(ctx context.Context, req dto.AccountCreateRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return "", ErrAccountMissingFields
	}
	if !strings.Contains(email, "@") {
		return "", ErrAccountInvalidEmail
	}
	if req.Age < 0 {
		return "", ErrAccountInvalidAge
	}

	return s.deps.Accounts.Create(ctx, repository.CreateAccountInput{
		Name:  name,
		Email: email,
		Age:   req.Age,
	})
}

// GetAll lists every account straight from the repository.
func (s *accountService) GetAll(ctx context.Context) ([]repository.Account, error) {
	return s.deps.Accounts.GetAll(ctx)
}

// GetByID reads through the cache. Concurrent misses for the same id are
// collapsed into a single repository load.
func (s *accountService) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	ck := accountCacheKey(id)

	if b, err := s.deps.Cache.Get(ctx, ck); err == nil {
		var acc repository.Account
		if err := json.Unmarshal(b, &acc); err == nil {
			return &acc, nil
		}
		// Corrupt entry: drop it and fall through to the repository.
		_ = s.deps.Cache.Delete(ctx, ck)
	}

	v, err, _ := s.sf.Do(id, func() (any, error) {
		acc, err := s.deps.Accounts.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(acc); err == nil {
			if cerr := s.deps.Cache.Set(ctx, ck, b, s.deps.CacheTTL); cerr != nil {
				logger.From(ctx).Warn("account cache set failed", logger.Err(cerr))
			}
		}
		return acc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*repository.Account), nil
}

// Update runs the cascade update through the coordinator and invalidates
// the affected cache entries.
func (s *accountService) Update(ctx context.Context, id string, input repository.UpdateAccountInput) (bool, error) {
	changed, err := s.deps.Coordinator.UpdateAccount(ctx, id, input)
	if err != nil {
		return false, err
	}
	s.invalidate(ctx, id)
	return changed, nil
}

// Delete runs the cascade delete through the coordinator and invalidates
// the affected cache entries.
func (s *accountService) Delete(ctx context.Context, id string) (bool, error) {
	existed, err := s.deps.Coordinator.DeleteAccount(ctx, id)
	if err != nil {
		return false, err
	}
	s.invalidate(ctx, id)
	return existed, nil
}

func (s *accountService) invalidate(ctx context.Context, id string) {
	if err := s.deps.Cache.Delete(ctx, accountCacheKey(id)); err != nil {
		logger.From(ctx).Warn("account cache invalidation failed", logger.AccountID(id), logger.Err(err))
	}
	if err := s.deps.Cache.Delete(ctx, ownerFeedCacheKey(id)); err != nil {
		logger.From(ctx).Warn("owner feed cache invalidation failed", logger.AccountID(id), logger.Err(err))
	}
}
