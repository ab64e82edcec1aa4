package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/orchestration"
	"github.com/nhle/workspace-management/internal/server"
	"github.com/nhle/workspace-management/internal/store"
	"github.com/nhle/workspace-management/tests/testutil"
)

type serverEnv struct {
	store   store.Store
	handler http.Handler
	ws      model.Workspace
	user    model.User
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()

	st := testutil.NewTestStore(t)
	ws := testutil.SeedWorkspace(t, st, "acme", "Acme Inc")
	user := testutil.SeedUser(t, st, "alice@example.com", "Alice")

	orch := orchestration.New(st, nil, nil, orchestration.Options{}, zerolog.Nop())
	srv := server.New(":0", st, orch, zerolog.Nop())

	return &serverEnv{
		store:   st,
		handler: srv.Handler(),
		ws:      ws,
		user:    user,
	}
}

func (e *serverEnv) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestOrchestrateHappyPath(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/acme/orchestrate/",
		`{"text_input": "create project named Atlas"}`,
		map[string]string{"X-User-ID": env.user.ID})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp orchestration.FormattedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Response, "'ATLAS'")
	assert.Equal(t, "create", resp.OperationType)
}

func TestOrchestrateMissingText(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/acme/orchestrate/",
		`{"text_input": ""}`,
		map[string]string{"X-User-ID": env.user.ID})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Text input is required"}`, rec.Body.String())
}

func TestOrchestrateInvalidBody(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/acme/orchestrate/",
		`{not json`,
		map[string]string{"X-User-ID": env.user.ID})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid request body"}`, rec.Body.String())
}

func TestOrchestrateUnknownWorkspace(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/nope/orchestrate/",
		`{"text_input": "list my tasks"}`,
		map[string]string{"X-User-ID": env.user.ID})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Workspace not found"}`, rec.Body.String())
}

func TestOrchestrateMissingUserHeader(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/acme/orchestrate/",
		`{"text_input": "list my tasks"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Requesting user is required"}`, rec.Body.String())
}

func TestOrchestrateUnknownUser(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/acme/orchestrate/",
		`{"text_input": "list my tasks"}`,
		map[string]string{"X-User-ID": uuid.NewString()})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Requesting user not found"}`, rec.Body.String())
}

func TestListNotificationsEmpty(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodGet, "/api/workspaces/acme/notifications/", "",
		map[string]string{"X-User-ID": env.user.ID})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNotificationsAfterOrchestration(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workspaces/acme/orchestrate/",
		`{"text_input": "create project named Atlas"}`,
		map[string]string{"X-User-ID": env.user.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/workspaces/acme/notifications/", "",
		map[string]string{"X-User-ID": env.user.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var notifications []model.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "project", notifications[0].EntityName)

	rec = env.do(t, http.MethodPost, "/api/notifications/"+notifications[0].ID+"/read/", "",
		map[string]string{"X-User-ID": env.user.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/workspaces/acme/notifications/", "",
		map[string]string{"X-User-ID": env.user.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMarkUnknownNotificationRead(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/api/notifications/"+uuid.NewString()+"/read/", "",
		map[string]string{"X-User-ID": env.user.ID})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Notification not found"}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
