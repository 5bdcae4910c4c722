package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopost/internal/cache"
	"github.com/dropDatabas3/hellopost/internal/consistency"
	"github.com/dropDatabas3/hellopost/internal/http/controllers"
	"github.com/dropDatabas3/hellopost/internal/http/router"
	"github.com/dropDatabas3/hellopost/internal/http/services"
	"github.com/dropDatabas3/hellopost/internal/store/memory"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	st := memory.New()
	cacheClient := cache.NewMemory(time.Minute)
	coordinator := consistency.New(st.Accounts(), st.Posts())

	accountSvc := services.NewAccountService(services.AccountDeps{
		Accounts:    st.Accounts(),
		Coordinator: coordinator,
		Cache:       cacheClient,
		CacheTTL:    time.Minute,
	})
	postSvc := services.NewPostService(services.PostDeps{
		Posts:    st.Posts(),
		Cache:    cacheClient,
		CacheTTL: time.Minute,
	})

	return router.New(router.Deps{
		Accounts: controllers.NewAccountsController(accountSvc, postSvc),
		Posts:    controllers.NewPostsController(postSvc),
		Health:   controllers.NewHealthController(st),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func createAccount(t *testing.T, h http.Handler, name, email string, age int) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"name": name, "email": email, "age": age,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		AccountID string `json:"account_id"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.AccountID)
	return out.AccountID
}

func createPost(t *testing.T, h http.Handler, owner, title, content string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/v1/posts", map[string]any{
		"owner_id": owner, "title": title, "content": content,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		PostID string `json:"post_id"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.PostID)
	return out.PostID
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func TestAccountCreateAndGet(t *testing.T) {
	h := newTestAPI(t)
	id := createAccount(t, h, "Ana", "ana@example.com", 30)

	rec := doJSON(t, h, http.MethodGet, "/v1/accounts/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var acc struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Age       int    `json:"age"`
		CreatedAt string `json:"created_at"`
	}
	decode(t, rec, &acc)
	require.Equal(t, id, acc.ID)
	require.Equal(t, "Ana", acc.Name)
	require.Equal(t, "ana@example.com", acc.Email)
	require.Equal(t, 30, acc.Age)
	require.NotEmpty(t, acc.CreatedAt)
}

func TestAccountCreate_DuplicateEmail(t *testing.T) {
	h := newTestAPI(t)
	createAccount(t, h, "Ana", "ana@example.com", 30)

	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"name": "Impostor", "email": "ana@example.com", "age": 40,
	})
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var e errBody
	decode(t, rec, &e)
	require.Equal(t, "CONFLICT", e.Code)
}

func TestAccountCreate_MissingFields(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"name": "Ana"})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var e errBody
	decode(t, rec, &e)
	require.Equal(t, "MISSING_FIELDS", e.Code)
}

func TestAccountCreate_UnknownFieldRejected(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"name": "Ana", "email": "ana@example.com", "age": 30, "admin": true,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var e errBody
	decode(t, rec, &e)
	require.Equal(t, "INVALID_JSON", e.Code)
}

func TestAccountGet_MalformedIDIs404(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/accounts/not-an-objectid", nil)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	var e errBody
	decode(t, rec, &e)
	require.Equal(t, "NOT_FOUND", e.Code)
	require.NotEmpty(t, e.Message)
}

func TestAccountUpdate_PropagatesToFeed(t *testing.T) {
	h := newTestAPI(t)
	id := createAccount(t, h, "Ana", "ana@example.com", 30)
	createPost(t, h, id, "hello", "world")

	// Warm the feed cache, then update; the cascade must invalidate it.
	rec := doJSON(t, h, http.MethodGet, "/v1/accounts/"+id+"/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPatch, "/v1/accounts/"+id, map[string]any{
		"email": "ana.maria@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var upd struct {
		Updated bool `json:"updated"`
	}
	decode(t, rec, &upd)
	require.True(t, upd.Updated)

	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/"+id+"/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []struct {
		OwnerEmail *string `json:"owner_email"`
	}
	decode(t, rec, &posts)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].OwnerEmail)
	require.Equal(t, "ana.maria@example.com", *posts[0].OwnerEmail)
}

func TestAccountUpdate_EmptyBodyIsNoop(t *testing.T) {
	h := newTestAPI(t)
	id := createAccount(t, h, "Ana", "ana@example.com", 30)

	rec := doJSON(t, h, http.MethodPatch, "/v1/accounts/"+id, map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var upd struct {
		Updated bool `json:"updated"`
	}
	decode(t, rec, &upd)
	require.False(t, upd.Updated)
}

func TestAccountDelete_CascadesAndThen404(t *testing.T) {
	h := newTestAPI(t)
	id := createAccount(t, h, "Ana", "ana@example.com", 30)
	createPost(t, h, id, "one", "c1")
	createPost(t, h, id, "two", "c2")

	rec := doJSON(t, h, http.MethodDelete, "/v1/accounts/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var del struct {
		Deleted bool `json:"deleted"`
	}
	decode(t, rec, &del)
	require.True(t, del.Deleted)

	// Second delete finds nothing.
	rec = doJSON(t, h, http.MethodDelete, "/v1/accounts/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The account and its feed are gone.
	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/"+id+"/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []json.RawMessage
	decode(t, rec, &posts)
	require.Empty(t, posts)
}

func TestOwnerFeed_NewestFirst(t *testing.T) {
	h := newTestAPI(t)
	id := createAccount(t, h, "Ana", "ana@example.com", 30)
	createPost(t, h, id, "first", "c")
	createPost(t, h, id, "second", "c")
	createPost(t, h, id, "third", "c")

	rec := doJSON(t, h, http.MethodGet, "/v1/accounts/"+id+"/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []struct {
		Title string `json:"title"`
	}
	decode(t, rec, &posts)
	require.Len(t, posts, 3)
	require.Equal(t, "third", posts[0].Title)
	require.Equal(t, "second", posts[1].Title)
	require.Equal(t, "first", posts[2].Title)
}

func TestPostLifecycle(t *testing.T) {
	h := newTestAPI(t)
	id := createPost(t, h, "team-42", "hello", "world")

	rec := doJSON(t, h, http.MethodGet, "/v1/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []struct {
		ID      string `json:"id"`
		OwnerID string `json:"owner_id"`
	}
	decode(t, rec, &posts)
	require.Len(t, posts, 1)
	require.Equal(t, id, posts[0].ID)
	require.Equal(t, "team-42", posts[0].OwnerID)

	rec = doJSON(t, h, http.MethodPatch, "/v1/posts/"+id, map[string]any{"title": "renamed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var upd struct {
		Updated bool `json:"updated"`
	}
	decode(t, rec, &upd)
	require.True(t, upd.Updated)

	rec = doJSON(t, h, http.MethodDelete, "/v1/posts/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/v1/posts/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostCreate_MissingFields(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/posts", map[string]any{"title": "no owner"})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var e errBody
	decode(t, rec, &e)
	require.Equal(t, "MISSING_FIELDS", e.Code)
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	h := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
