package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/vaultkeep/vaultkeep/internal/common"
	"github.com/vaultkeep/vaultkeep/internal/logging"
	"github.com/vaultkeep/vaultkeep/internal/server/problems"
	"github.com/vaultkeep/vaultkeep/internal/server/tokens"
	"github.com/vaultkeep/vaultkeep/internal/server/users"
	"github.com/vaultkeep/vaultkeep/internal/server/vault"
)

// Secret from the client wire contract: base64 text decoding to exactly
// 32 raw bytes.
const testSecret = "FY7iq0Y1ja2loHmMurgM78VW8Kt3PUpK2oKNjSd0Tt8="

type fakeUsersRepo struct {
	mu     sync.Mutex
	users  map[string]*users.User
	nextID int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*users.User)}
}

func cloneUser(u *users.User) *users.User {
	c := *u
	c.Salt = append([]byte(nil), u.Salt...)
	c.MasterKey = append([]byte(nil), u.MasterKey...)
	return &c
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	stored := cloneUser(user)
	stored.ID = f.nextID
	f.users[user.Username] = stored
	return cloneUser(stored), nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeUsersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[username]
	return ok, nil
}

type fakeVaultRepo struct {
	mu      sync.Mutex
	entries map[int64]*vault.Entry
	nextID  int64
}

func newFakeVaultRepo() *fakeVaultRepo {
	return &fakeVaultRepo{entries: make(map[int64]*vault.Entry)}
}

func (f *fakeVaultRepo) ListByUser(ctx context.Context, userID int64) ([]*vault.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*vault.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			c := *e
			result = append(result, &c)
		}
	}
	return result, nil
}

func (f *fakeVaultRepo) Get(ctx context.Context, userID, id int64) (*vault.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeVaultRepo) Create(ctx context.Context, entry *vault.Entry) (*vault.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *entry
	stored.ID = f.nextID
	f.entries[stored.ID] = &stored
	c := stored
	return &c, nil
}

func (f *fakeVaultRepo) Update(ctx context.Context, userID, id int64, encData []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return common.ErrorNotFound
	}
	e.EncData = append([]byte(nil), encData...)
	return nil
}

func (f *fakeVaultRepo) Delete(ctx context.Context, userID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeVaultRepo) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, e := range f.entries {
		if e.UserID == userID {
			delete(f.entries, id)
			n++
		}
	}
	return n, nil
}

type harness struct {
	server *Server
	tokens *tokens.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := tokens.NewStore(15*time.Minute, 0, logger)
	t.Cleanup(ts.Close)

	usersRepo := newFakeUsersRepo()
	vaultRepo := newFakeVaultRepo()

	accounts := users.NewService(usersRepo, ts, logger)
	vs := vault.NewService(vaultRepo, usersRepo, logger)

	return &harness{
		server: NewServer(":0", logger, accounts, vs, ts),
		tokens: ts,
	}
}

func (h *harness) request(t *testing.T, method, path string, body []byte, header map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header.Add(k, v)
	}

	resp, err := h.server.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (h *harness) jsonRequest(t *testing.T, method, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return h.request(t, method, path, body, map[string]string{
		fiber.HeaderContentType: fiber.MIMEApplicationJSON,
	})
}

// register creates an account and logs it in, returning the bearer token.
func (h *harness) register(t *testing.T, username string) string {
	t.Helper()

	resp := h.jsonRequest(t, http.MethodPost, "/account", authRequest{Username: username, MasterPswd: testSecret})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.jsonRequest(t, http.MethodPost, "/account/login", authRequest{Username: username, MasterPswd: testSecret})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr tokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	return tr.AccessToken
}

func decodeProblem(t *testing.T, resp *http.Response) *problems.Problem {
	t.Helper()

	require.Equal(t, problems.MediaType, resp.Header.Get(fiber.HeaderContentType))
	var p problems.Problem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return &p
}
