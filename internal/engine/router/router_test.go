package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/internal/engine/service"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/database"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	manager, err := database.NewManager(database.Database{
		Driver: database.DriverSQLite,
		SQLite: database.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	db := database.NewDatabaseAdapter(manager)
	require.NoError(t, database.Migrate(db, model.Tables()...))

	httpConf := &http.Http{ExposeMetrics: true}
	httpConf.SetDefaults()
	httpConf.Auth.SecretKey = "router-test-secret"

	repos := repo.NewRepositories(db)
	sessions := cache.NewSessionStore(cache.NewMemoryCache(), httpConf.Auth.RedisKeyPrefix)
	services := service.NewServices(httpConf.Auth, repos, sessions)
	return &testServer{t: t, app: NewRouter(httpConf, services).Router()}
}

type result struct {
	status int
	body   map[string]any
}

func (r result) detail() map[string]any {
	d, _ := r.body["detail"].(map[string]any)
	return d
}

func (r result) list() []any {
	l, _ := r.body["detail"].([]any)
	return l
}

func (s *testServer) call(method, path, token string, body any) result {
	s.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(s.t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	out := result{status: resp.StatusCode}
	_ = json.NewDecoder(resp.Body).Decode(&out.body)
	return out
}

// signup registers and logs in, returning the user id and token
func (s *testServer) signup(email string) (string, string) {
	s.t.Helper()
	res := s.call(fiber.MethodPost, "/auth/register", "", fiber.Map{"email": email, "password": "secret123", "name": email})
	require.Equal(s.t, fiber.StatusCreated, res.status, res.body)
	res = s.call(fiber.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": "secret123"})
	require.Equal(s.t, fiber.StatusOK, res.status, res.body)
	d := res.detail()
	return d["user"].(map[string]any)["userId"].(string), d["token"].(string)
}

func (s *testServer) create(path, token string, body any) map[string]any {
	s.t.Helper()
	res := s.call(fiber.MethodPost, path, token, body)
	require.Equal(s.t, fiber.StatusCreated, res.status, res.body)
	return res.detail()
}

// board sets up an org with committee "Events" and a user holding level
// on it through a single role
type board struct {
	adminToken  string
	userId      string
	userToken   string
	roleId      string
	committeeId string
}

func (s *testServer) board(roleName, level string) board {
	s.t.Helper()
	var b board
	_, b.adminToken = s.signup("admin@example.com")
	b.userId, b.userToken = s.signup("user@example.com")

	s.create("/organizations", b.adminToken, fiber.Map{"name": "Student Union"})
	b.committeeId = s.create("/committees", b.adminToken, fiber.Map{"name": "Events"})["committeeId"].(string)
	b.roleId = s.create("/roles", b.adminToken, fiber.Map{"name": roleName})["roleId"].(string)

	res := s.call(fiber.MethodPost, "/roles/permissions", b.adminToken, fiber.Map{
		"roleId":      b.roleId,
		"permissions": []fiber.Map{{"committeeId": b.committeeId, "permission": level}},
	})
	require.Equal(s.t, fiber.StatusOK, res.status, res.body)

	res = s.call(fiber.MethodPost, "/roles/assign", b.adminToken, fiber.Map{"userId": b.userId, "roleId": b.roleId})
	require.Equal(s.t, fiber.StatusCreated, res.status, res.body)
	return b
}

func (s *testServer) task(token, committeeId, title string) string {
	s.t.Helper()
	return s.create("/tasks", token, fiber.Map{"committeeId": committeeId, "title": title})["taskId"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	res := s.call(fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["status"])

	req := httptest.NewRequest(fiber.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	res = s.call(fiber.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestScenarioA_SecondOrganizationConflicts(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("admin1@example.com")

	s.create("/organizations", token, fiber.Map{"name": "First"})
	res := s.call(fiber.MethodPost, "/organizations", token, fiber.Map{"name": "Second"})
	assert.Equal(t, fiber.StatusConflict, res.status)
	assert.EqualValues(t, http.OrgAlreadyExist.Code, res.body["code"])
	assert.Equal(t, "/organizations", res.body["path"])
}

func TestScenarioB_LeaderMovesAndDeletes(t *testing.T) {
	s := newTestServer(t)
	b := s.board("Chair", "LEADER")
	taskId := s.task(b.adminToken, b.committeeId, "Book venue")

	res := s.call(fiber.MethodPatch, "/tasks/"+taskId+"/status", b.userToken, fiber.Map{"status": "IN_PROGRESS"})
	assert.Equal(t, fiber.StatusOK, res.status, res.body)
	assert.Equal(t, "IN_PROGRESS", res.detail()["status"])

	res = s.call(fiber.MethodDelete, "/tasks/"+taskId, b.userToken, nil)
	assert.Equal(t, fiber.StatusOK, res.status, res.body)

	res = s.call(fiber.MethodGet, "/tasks/"+taskId, b.userToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestScenarioC_MemberMovesAndComments(t *testing.T) {
	s := newTestServer(t)
	b := s.board("Member", "MEMBER")
	taskId := s.task(b.adminToken, b.committeeId, "Posters")

	res := s.call(fiber.MethodPost, "/tasks", b.userToken, fiber.Map{"committeeId": b.committeeId, "title": "nope"})
	assert.Equal(t, fiber.StatusForbidden, res.status)

	res = s.call(fiber.MethodPut, "/tasks/"+taskId, b.userToken, fiber.Map{"title": "renamed"})
	assert.Equal(t, fiber.StatusForbidden, res.status)

	res = s.call(fiber.MethodPatch, "/tasks/"+taskId+"/status", b.userToken, fiber.Map{"status": "DONE", "position": 4})
	assert.Equal(t, fiber.StatusOK, res.status, res.body)
	assert.EqualValues(t, 4, res.detail()["position"])

	res = s.call(fiber.MethodPost, "/tasks/"+taskId+"/comments", b.userToken, fiber.Map{"content": "printed"})
	assert.Equal(t, fiber.StatusCreated, res.status, res.body)

	res = s.call(fiber.MethodGet, "/tasks/"+taskId+"/comments", b.userToken, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Len(t, res.list(), 1)

	res = s.call(fiber.MethodGet, "/committees/"+b.committeeId+"/permissions", b.userToken, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "MEMBER", res.detail()["permission"])
	assert.Equal(t, false, res.detail()["isAdmin"])
}

func TestScenarioD_NoRolesIsForbidden(t *testing.T) {
	s := newTestServer(t)
	b := s.board("Member", "MEMBER")
	_, outsider := s.signup("w@example.com")

	res := s.call(fiber.MethodGet, "/tasks/committee/"+b.committeeId, outsider, nil)
	assert.Equal(t, fiber.StatusForbidden, res.status)

	res = s.call(fiber.MethodGet, "/tasks/committee/unknown", outsider, nil)
	assert.Equal(t, fiber.StatusForbidden, res.status)

	res = s.call(fiber.MethodGet, "/committees", outsider, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Empty(t, res.list())
}

func TestScenarioE_CommitteeDeleteCascades(t *testing.T) {
	s := newTestServer(t)
	b := s.board("Chair", "LEADER")
	s.task(b.adminToken, b.committeeId, "Stage")

	res := s.call(fiber.MethodDelete, "/committees/"+b.committeeId, b.userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.status)

	res = s.call(fiber.MethodDelete, "/committees/"+b.committeeId, b.adminToken, nil)
	require.Equal(t, fiber.StatusOK, res.status, res.body)

	res = s.call(fiber.MethodGet, "/tasks/committee/"+b.committeeId, b.adminToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.status)

	res = s.call(fiber.MethodGet, "/roles/"+b.roleId, b.adminToken, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Empty(t, res.detail()["permissions"])
}

func TestTaskBoardRoundTrip(t *testing.T) {
	s := newTestServer(t)
	b := s.board("Chair", "LEADER")
	first := s.task(b.userToken, b.committeeId, "first")
	second := s.task(b.userToken, b.committeeId, "second")

	res := s.call(fiber.MethodGet, "/tasks/"+second, b.userToken, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.EqualValues(t, 1, res.detail()["position"])

	res = s.call(fiber.MethodPatch, "/tasks/"+second+"/status", b.userToken, fiber.Map{"status": "DONE"})
	require.Equal(t, fiber.StatusOK, res.status)

	res = s.call(fiber.MethodGet, "/tasks/committee/"+b.committeeId, b.userToken, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	tasks := res.list()
	require.Len(t, tasks, 2)
	byStatus := map[string][]string{}
	for _, raw := range tasks {
		task := raw.(map[string]any)
		status := task["status"].(string)
		byStatus[status] = append(byStatus[status], task["taskId"].(string))
	}
	assert.Equal(t, []string{first}, byStatus["TODO"])
	assert.Equal(t, []string{second}, byStatus["DONE"])
}

func TestValidationAndAuthErrors(t *testing.T) {
	s := newTestServer(t)
	res := s.call(fiber.MethodPost, "/auth/register", "", fiber.Map{"email": "not-an-email", "password": "x"})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	issues, ok := res.body["error"].([]any)
	require.True(t, ok, res.body)
	assert.NotEmpty(t, issues)

	res = s.call(fiber.MethodGet, "/committees", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)

	res = s.call(fiber.MethodGet, "/committees", "garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
}

func TestDeactivationRevokesTokens(t *testing.T) {
	s := newTestServer(t)
	b := s.board("Member", "MEMBER")

	res := s.call(fiber.MethodGet, "/users/me", b.userToken, nil)
	require.Equal(t, fiber.StatusOK, res.status)

	res = s.call(fiber.MethodPost, fmt.Sprintf("/users/%s/deactivate", b.userId), b.adminToken, nil)
	require.Equal(t, fiber.StatusOK, res.status, res.body)

	res = s.call(fiber.MethodGet, "/users/me", b.userToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.EqualValues(t, http.SessionRevoked.Code, res.body["code"])

	res = s.call(fiber.MethodPost, "/auth/login", "", fiber.Map{"email": "user@example.com", "password": "secret123"})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
}
