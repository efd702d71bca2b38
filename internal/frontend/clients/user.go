package clients

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/internal/model"
)

// UserClient talks to the user service. Login, Register and Exists are
// anonymous; Current requires the session credential.
type UserClient struct {
	base string
	http *resty.Client
}

func NewUserClient(base string, rc *resty.Client) *UserClient {
	return &UserClient{base: baseURL(base), http: rc}
}

// Registration is the payload for creating a new account.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Login posts the credentials and returns the issued API key. A rejected
// login (non-2xx, or a null/absent api_key) returns an empty key and no
// error; only transport and decode failures are errors, so callers can tell
// "wrong password" apart from "user service is down".
func (c *UserClient) Login(ctx context.Context, username, password string, fwd headers.ForwardedHeaderSet) (string, headers.ForwardedHeaderSet, error) {
	form := map[string]string{
		"username": username,
		"password": password,
	}
	resp, respFwd, err := send(ctx, c.http, http.MethodPost, c.base+"login", form, fwd, "")
	if err != nil {
		return "", nil, err
	}
	if !isSuccess(resp) {
		return "", respFwd, nil
	}

	var body struct {
		APIKey *string `json:"api_key"`
	}
	if err := decode(resp, &body); err != nil {
		return "", respFwd, err
	}
	if body.APIKey == nil {
		return "", respFwd, nil
	}
	return *body.APIKey, respFwd, nil
}

// Current fetches the user the credential belongs to.
func (c *UserClient) Current(ctx context.Context, credential string, fwd headers.ForwardedHeaderSet) (model.User, headers.ForwardedHeaderSet, error) {
	resp, respFwd, err := send(ctx, c.http, http.MethodGet, c.base, nil, fwd, credential)
	if err != nil {
		return model.User{}, nil, err
	}
	if !isSuccess(resp) {
		return model.User{}, respFwd, remoteError(resp)
	}

	var body struct {
		Result model.User `json:"result"`
	}
	if err := decode(resp, &body); err != nil {
		return model.User{}, respFwd, err
	}
	return body.Result, respFwd, nil
}

// Register creates a new account. Only a 2xx response counts as success; a
// 409 from the user service (duplicate username or email) is surfaced as
// ErrConflict so the caller can show a meaningful message.
func (c *UserClient) Register(ctx context.Context, reg Registration, fwd headers.ForwardedHeaderSet) (headers.ForwardedHeaderSet, error) {
	form := map[string]string{
		"username":   reg.Username,
		"email":      reg.Email,
		"password":   reg.Password,
		"first_name": reg.FirstName,
		"last_name":  reg.LastName,
	}
	resp, respFwd, err := send(ctx, c.http, http.MethodPost, c.base+"create", form, fwd, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusConflict {
		return respFwd, errors.Mark(remoteError(resp), ErrConflict)
	}
	if !isSuccess(resp) {
		return respFwd, remoteError(resp)
	}
	return respFwd, nil
}

// Exists reports whether a username is taken, purely from the status code
// (200 means taken, anything else means free). The body is never parsed.
func (c *UserClient) Exists(ctx context.Context, username string, fwd headers.ForwardedHeaderSet) (bool, headers.ForwardedHeaderSet, error) {
	resp, respFwd, err := send(ctx, c.http, http.MethodGet, c.base+username+"/exists", nil, fwd, "")
	if err != nil {
		return false, nil, err
	}
	return resp.StatusCode() == http.StatusOK, respFwd, nil
}
