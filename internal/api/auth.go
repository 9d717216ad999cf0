package api

import (
	"context"
	"net/http"

	"github.com/gauthier-se/Checkpoint/internal/model"
)

// CurrentUser fetches the session user. A 200 yields the user; any non-OK
// status comes back as a domain error for the session layer to interpret.
func (c *Client) CurrentUser(ctx context.Context, cred Credential) (*model.User, error) {
	var u model.User
	if err := c.getJSON(ctx, cred, "/api/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// loginRequest mirrors the API's login contract.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a web session. On success the API answers
// with a session cookie, which is returned for the handler to forward to the
// browser. Bad credentials surface as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, email, password string) (*http.Cookie, error) {
	resp, err := c.do(ctx, NoCredential(), http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatus(resp.StatusCode)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie {
			return cookie, nil
		}
	}
	return nil, mapStatus(http.StatusBadGateway)
}

// Logout terminates the remote session. Callers decide what a failure means;
// the session layer forces local logged-out state regardless.
func (c *Client) Logout(ctx context.Context, cred Credential) error {
	resp, err := c.do(ctx, cred, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return mapStatus(resp.StatusCode)
	}
	return nil
}
