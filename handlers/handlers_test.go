package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskerpro/database"
	"taskerpro/models"
	"taskerpro/services"
	"taskerpro/utilities"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utilities.SetOutput(io.Discard)
}

type fakeVerifier map[string]models.Identity

func (f fakeVerifier) VerifyUserToken(ctx context.Context, idToken string) (models.Identity, error) {
	id, ok := f[idToken]
	if !ok {
		return models.Identity{}, errors.New("invalid token")
	}
	return id, nil
}

type fakeUsers struct {
	rows map[string]models.ApplicationUser
	err  error
}

func (f *fakeUsers) CheckOrCreateUser(ctx context.Context, identity models.Identity) (models.ApplicationUser, bool, error) {
	if f.err != nil {
		return models.ApplicationUser{}, false, f.err
	}
	if u, ok := f.rows[identity.UID]; ok {
		return u, false, nil
	}
	u := models.ApplicationUser{FirebaseUID: identity.UID, Email: identity.Email, DisplayName: identity.DisplayName}
	f.rows[identity.UID] = u
	return u, true, nil
}

func (f *fakeUsers) GetUser(ctx context.Context, uid string) (models.ApplicationUser, error) {
	if f.err != nil {
		return models.ApplicationUser{}, f.err
	}
	u, ok := f.rows[uid]
	if !ok {
		return models.ApplicationUser{}, database.ErrUserNotFound
	}
	return u, nil
}

func setup(t *testing.T) (*mux.Router, *fakeUsers) {
	t.Helper()

	repo := &fakeUsers{rows: map[string]models.ApplicationUser{}}
	InitTaskService(services.NewTaskService())
	InitAuth(fakeVerifier{
		"alice-token": {UID: "alice", Email: "alice@example.com", DisplayName: "Alice"},
		"bob-token":   {UID: "bob", Email: "bob@example.com"},
	})
	InitUsers(repo)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.HandleFunc("/auth/finalize-login", FinalizeFirebaseLoginHandler).Methods("POST")
	r.HandleFunc("/user/info", AuthMiddleware(UserHandler)).Methods("GET")
	r.HandleFunc("/task/create", AuthMiddleware(CreateTaskHandler)).Methods("POST")
	r.HandleFunc("/task/list", AuthMiddleware(ListTasksHandler)).Methods("GET")
	r.HandleFunc("/task/list/all", AuthMiddleware(ListAllTasksHandler)).Methods("GET")
	r.HandleFunc("/task/complete/{task_id}", AuthMiddleware(CompleteTaskHandler)).Methods("PUT")
	r.HandleFunc("/task/uncheck/{task_id}", AuthMiddleware(UncheckTaskHandler)).Methods("PUT")
	return r, repo
}

func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []models.TaskItem {
	t.Helper()
	var tasks []models.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func TestAuthMiddlewareRejectsMissingAndInvalidTokens(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, "GET", "/task/list", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, "GET", "/task/list", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndListTasks(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, "POST", "/task/create", "alice-token", `{"title":"Buy milk","description":"2 litres"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "alice", created.UserID)
	require.NotNil(t, created.Description)
	assert.Equal(t, "2 litres", *created.Description)

	do(r, "POST", "/task/create", "alice-token", `{"title":"Walk dog"}`)
	do(r, "POST", "/task/create", "bob-token", `{"title":"Fix bike"}`)

	alice := decodeTasks(t, do(r, "GET", "/task/list", "alice-token", ""))
	assert.Len(t, alice, 2)
	assert.Nil(t, alice[1].Description)

	bob := decodeTasks(t, do(r, "GET", "/task/list", "bob-token", ""))
	require.Len(t, bob, 1)
	assert.Equal(t, "Fix bike", bob[0].Title)

	all := decodeTasks(t, do(r, "GET", "/task/list/all", "bob-token", ""))
	assert.Len(t, all, 3)
}

func TestListTasksEmptyIsArray(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, "GET", "/task/list", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateTaskBadJSON(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, "POST", "/task/create", "alice-token", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTaskWithBlankOwnerIsRejected(t *testing.T) {
	r, _ := setup(t)
	InitAuth(fakeVerifier{"blank-token": {UID: "  "}})

	rec := do(r, "POST", "/task/create", "blank-token", `{"title":"X"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"Task rejected","reason":"owner_blank"}`, rec.Body.String())
	assert.Empty(t, taskService.GetTasks())
}

func TestCompleteAndUncheckTask(t *testing.T) {
	r, _ := setup(t)
	do(r, "POST", "/task/create", "alice-token", `{"title":"Buy milk"}`)

	rec := do(r, "PUT", "/task/complete/1", "alice-token", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	task, _ := taskService.FindTask(1)
	assert.True(t, task.IsCompleted)

	rec = do(r, "PUT", "/task/uncheck/1", "alice-token", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	task, _ = taskService.FindTask(1)
	assert.False(t, task.IsCompleted)
}

func TestCompleteTaskNotFoundOrNotOwned(t *testing.T) {
	r, _ := setup(t)
	do(r, "POST", "/task/create", "alice-token", `{"title":"Buy milk"}`)

	rec := do(r, "PUT", "/task/complete/999", "alice-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, "PUT", "/task/complete/1", "bob-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	task, _ := taskService.FindTask(1)
	assert.False(t, task.IsCompleted)

	rec = do(r, "PUT", "/task/complete/abc", "alice-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinalizeLoginSyncsUser(t *testing.T) {
	r, repo := setup(t)

	rec := do(r, "POST", "/auth/finalize-login", "", `{"idToken":"alice-token"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp finalizeLoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.FirebaseUID)
	assert.True(t, resp.Created)
	assert.Contains(t, repo.rows, "alice")

	rec = do(r, "POST", "/auth/finalize-login", "", `{"idToken":"alice-token"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Created)

	rec = do(r, "POST", "/auth/finalize-login", "", `{"idToken":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, "POST", "/auth/finalize-login", "", `{"idToken":"forged"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserInfo(t *testing.T) {
	r, repo := setup(t)

	rec := do(r, "GET", "/user/info", "alice-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	do(r, "POST", "/auth/finalize-login", "", `{"idToken":"alice-token"}`)
	rec = do(r, "GET", "/user/info", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.ApplicationUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice@example.com", user.Email)

	repo.err = errors.New("connection reset")
	rec = do(r, "GET", "/user/info", "alice-token", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUserRoutesWithoutStore(t *testing.T) {
	r, _ := setup(t)
	InitUsers(nil)

	rec := do(r, "GET", "/user/info", "alice-token", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(r, "POST", "/auth/finalize-login", "", `{"idToken":"alice-token"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoggingMiddlewareCapturesStatus(t *testing.T) {
	var buf strings.Builder
	utilities.InfoLogger.SetOutput(&buf)
	defer utilities.InfoLogger.SetOutput(io.Discard)

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "GET /brew")
	assert.Contains(t, buf.String(), "418")
}
