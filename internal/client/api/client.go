// Package api is a thin HTTP client for the banksim server. The session
// token travels in a cookie managed by the jar, mirroring how a browser
// would hold it; the post-login access JWT is passed explicitly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/dmitrijs2005/banksim/internal/httpapi"
)

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}, nil
}

// do sends a JSON request and decodes the response into out (if non-nil).
// A 401 is reported as common.ErrorUnauthorized; other non-2xx statuses
// carry the server's error string.
func (c *Client) do(ctx context.Context, method, path string, in, out any, bearer string) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, &body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return common.ErrorUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er httpapi.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
			return fmt.Errorf("server error: %s", er.Error)
		}
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req httpapi.RegisterRequest) (int64, error) {
	var resp httpapi.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &resp, ""); err != nil {
		return 0, err
	}
	return resp.AccountID, nil
}

func (c *Client) PasswordLogin(ctx context.Context, accountID int64, password string) error {
	req := httpapi.PasswordLoginRequest{AccountID: accountID, Password: password}
	return c.do(ctx, http.MethodPost, "/api/login/password", req, nil, "")
}

// OtacLogin submits the one-time code and returns the access JWT minted on
// promotion. The upgraded session cookie is captured by the jar.
func (c *Client) OtacLogin(ctx context.Context, code string) (string, error) {
	var resp httpapi.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login/otac", httpapi.OtacLoginRequest{Code: code}, &resp, ""); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) Session(ctx context.Context) (*httpapi.SessionResponse, error) {
	var resp httpapi.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/session", nil, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Account(ctx context.Context, accessToken string) (int64, error) {
	var resp httpapi.AccountResponse
	if err := c.do(ctx, http.MethodGet, "/api/account", nil, &resp, accessToken); err != nil {
		return 0, err
	}
	return resp.AccountID, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil, "")
}
