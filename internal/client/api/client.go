// Package api implements the HTTP client for the VaultKeep server.
// It speaks the server's JSON API and decodes application/problem+json
// error responses into Go errors.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Problem mirrors the server's RFC 7807 error body.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (p *Problem) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s %s", p.Title, p.Detail)
	}
	return p.Title
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpirationMs int64  `json:"expiration_ms"`
}

// Session holds a granted bearer token and its expiry moment.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// VaultEntry is a single encrypted record as the server returns it.
type VaultEntry struct {
	ID      int64  `json:"id"`
	EncData []byte `json:"encData"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeProblem(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func decodeProblem(resp *http.Response) error {
	var p Problem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil || p.Title == "" {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return &p
}

type authRequest struct {
	Username   string `json:"username"`
	MasterPswd string `json:"masterPswd"`
}

// Register creates a new account. The secret must be the client-side
// derived 256-bit key, never the raw master password.
func (c *Client) Register(ctx context.Context, username string, secret []byte) error {
	req := authRequest{Username: username, MasterPswd: base64.StdEncoding.EncodeToString(secret)}
	return c.do(ctx, http.MethodPost, "/account", "", req, nil)
}

// Login authenticates and returns the granted session token.
func (c *Client) Login(ctx context.Context, username string, secret []byte) (*Session, error) {
	req := authRequest{Username: username, MasterPswd: base64.StdEncoding.EncodeToString(secret)}
	var tr tokenResponse
	if err := c.do(ctx, http.MethodPost, "/account/login", "", req, &tr); err != nil {
		return nil, err
	}
	return &Session{
		Token:     tr.AccessToken,
		ExpiresAt: time.UnixMilli(tr.ExpirationMs),
	}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/account/logout", token, nil, nil)
}

func (c *Client) VaultList(ctx context.Context, token string) ([]VaultEntry, error) {
	var entries []VaultEntry
	if err := c.do(ctx, http.MethodGet, "/vault", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) VaultGet(ctx context.Context, token string, id int64) (*VaultEntry, error) {
	var entry VaultEntry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/vault/%d", id), token, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// VaultAdd uploads an encrypted blob and returns the new entry ID taken
// from the Location header of the 201 response.
func (c *Client) VaultAdd(ctx context.Context, token string, encData []byte) (int64, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/vault", bytes.NewReader(encData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, decodeProblem(resp)
	}

	location := resp.Header.Get("Location")
	idx := strings.LastIndex(location, "/")
	if idx < 0 {
		return 0, fmt.Errorf("unexpected Location header: %q", location)
	}
	id, err := strconv.ParseInt(location[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected Location header: %q", location)
	}
	return id, nil
}

// VaultUpdate replaces the encrypted blob of an existing entry.
func (c *Client) VaultUpdate(ctx context.Context, token string, id int64, encData []byte) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fmt.Sprintf("%s/vault/%d", c.baseURL, id), bytes.NewReader(encData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeProblem(resp)
	}
	return nil
}

func (c *Client) VaultDelete(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/vault/%d", id), token, nil, nil)
}

func (c *Client) VaultDeleteAll(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/vault", token, nil, nil)
}
