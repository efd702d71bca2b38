package userservice_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/common/test"
	gininterceptors "github.com/shopmesh/shopmesh/http/interceptors/gin"
	"github.com/shopmesh/shopmesh/internal/userservice"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(gininterceptors.HeaderPropagationMiddleware)
	userservice.NewServer(test.NewLogger(t), userservice.NewStore()).Register(r)
	return r
}

func do(r *gin.Engine, method, path string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username, email string) {
	t.Helper()
	w := do(r, http.MethodPost, "/api/user/create", url.Values{
		"username": {username},
		"email":    {email},
		"password": {"s3cret"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/user/login", url.Values{
		"username": {username},
		"password": {"s3cret"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		APIKey string `json:"api_key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.APIKey)
	return body.APIKey
}

func TestRegisterThenLogin(t *testing.T) {
	r := newEngine(t)
	register(t, r, "maria", "maria@example.com")

	key := login(t, r, "maria")

	w := do(r, http.MethodGet, "/api/user/", nil, http.Header{"Authorization": {"Basic " + key}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"maria"`)
}

func TestLoginBadPassword(t *testing.T) {
	r := newEngine(t)
	register(t, r, "maria", "maria@example.com")

	w := do(r, http.MethodPost, "/api/user/login", url.Values{
		"username": {"maria"},
		"password": {"wrong"},
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not logged in")
}

func TestRegisterConflicts(t *testing.T) {
	r := newEngine(t)
	register(t, r, "maria", "maria@example.com")

	w := do(r, http.MethodPost, "/api/user/create", url.Values{
		"username": {"maria"},
		"email":    {"fresh@example.com"},
		"password": {"x"},
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"username"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/user/create", url.Values{
		"username": {"fresh"},
		"email":    {"maria@example.com"},
		"password": {"x"},
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"email"}`, w.Body.String())
}

func TestRegisterMissingFields(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodPost, "/api/user/create", url.Values{"username": {"maria"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentRequiresKey(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodGet, "/api/user/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/user/", nil, http.Header{"Authorization": {"Basic bogus"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesKey(t *testing.T) {
	r := newEngine(t)
	register(t, r, "maria", "maria@example.com")
	key := login(t, r, "maria")
	auth := http.Header{"Authorization": {"Basic " + key}}

	w := do(r, http.MethodPost, "/api/user/logout", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/user/", nil, auth)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExistsProbe(t *testing.T) {
	r := newEngine(t)
	register(t, r, "maria", "maria@example.com")

	w := do(r, http.MethodGet, "/api/user/maria/exists", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/user/nobody/exists", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAllUsers(t *testing.T) {
	r := newEngine(t)
	register(t, r, "alice", "alice@example.com")
	register(t, r, "bob", "bob@example.com")

	w := do(r, http.MethodGet, "/api/user/all", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result []struct {
			Username string `json:"username"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Result, 2)
	assert.Equal(t, "alice", body.Result[0].Username)
}

func TestHeadersMirroredOntoResponses(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodGet, "/api/user/ping", nil, http.Header{
		"X-Request-Id": {"req-9"},
		"X-Internal":   {"kept out"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-9", w.Header().Get("x-request-id"))
	assert.Empty(t, w.Header().Get("x-internal"))
}
