package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/internal/frontend/clients"
)

func TestUserLogin(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantKey   string
		wantError bool
	}{
		{
			name:    "successful login returns api key",
			status:  http.StatusOK,
			body:    `{"message":"logged in","api_key":"K"}`,
			wantKey: "K",
		},
		{
			name:    "null api key is a failed login, not an error",
			status:  http.StatusOK,
			body:    `{"message":"logged in","api_key":null}`,
			wantKey: "",
		},
		{
			name:    "non-2xx is a failed login, not an error",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Not logged in"}`,
			wantKey: "",
		},
		{
			name:      "malformed 2xx body is a decode error",
			status:    http.StatusOK,
			body:      `not json`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "maria", r.PostForm.Get("username"))
				assert.Equal(t, "pw", r.PostForm.Get("password"))
				// login is anonymous: no session credential attached
				assert.Empty(t, r.Header.Get("Authorization"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := clients.NewUserClient(srv.URL+"/api/user", newResty())
			key, _, err := client.Login(context.Background(), "maria", "pw", nil)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, clients.ErrDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestUserLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	client := clients.NewUserClient(srv.URL+"/api/user", newResty())
	_, _, err := client.Login(context.Background(), "maria", "pw", nil)
	require.Error(t, err)
	assert.True(t, clients.IsUnreachable(err))
}

func TestUserCurrentAttachesCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Basic K", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"result":{"id":7,"username":"maria","email":"maria@example.com"}}`))
	}))
	defer srv.Close()

	client := clients.NewUserClient(srv.URL+"/api/user", newResty())
	user, _, err := client.Current(context.Background(), "K", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "maria", user.Username)
}

func TestUserCurrentCredentialWinsOverForwardedAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Basic K", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"result":{"id":7,"username":"maria","email":"m@e.com"}}`))
	}))
	defer srv.Close()

	client := clients.NewUserClient(srv.URL+"/api/user", newResty())
	fwd := headers.ForwardedHeaderSet{"authorization": "Basic stale"}
	_, _, err := client.Current(context.Background(), "K", fwd)
	require.NoError(t, err)
}

func TestUserRegister(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantConflict bool
		wantRemote   bool
	}{
		{
			name:   "2xx is success",
			status: http.StatusOK,
			body:   `{"message":"registration successful"}`,
		},
		{
			name:         "409 surfaces as conflict",
			status:       http.StatusConflict,
			body:         `{"message":"username"}`,
			wantConflict: true,
		},
		{
			name:       "5xx surfaces as remote rejection, not success",
			status:     http.StatusInternalServerError,
			body:       `{"message":"boom"}`,
			wantRemote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "maria", r.PostForm.Get("username"))
				assert.Equal(t, "maria@example.com", r.PostForm.Get("email"))
				assert.Equal(t, "Maria", r.PostForm.Get("first_name"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := clients.NewUserClient(srv.URL+"/api/user", newResty())
			_, err := client.Register(context.Background(), clients.Registration{
				Username:  "maria",
				Email:     "maria@example.com",
				Password:  "pw",
				FirstName: "Maria",
				LastName:  "Silva",
			}, nil)

			switch {
			case tt.wantConflict:
				require.Error(t, err)
				assert.True(t, clients.IsConflict(err))
			case tt.wantRemote:
				require.Error(t, err)
				var remote *clients.RemoteError
				require.True(t, clients.AsRemote(err, &remote))
				assert.Equal(t, tt.status, remote.Status)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestUserExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user/maria/exists" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := clients.NewUserClient(srv.URL+"/api/user", newResty())

	exists, _, err := client.Exists(context.Background(), "maria", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, _, err = client.Exists(context.Background(), "nobody", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}
