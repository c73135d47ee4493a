package trie_client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
)

// RESTClient talks to a running trie API.
type RESTClient struct {
	BaseURL string       // Base URL of the server (e.g., http://127.0.0.1:8080)
	Token   string       // Bearer token sent with every request when set
	Client  *http.Client // HTTP client for making requests
}

// PutResult mirrors the PUT response.
type PutResult struct {
	codec.Entry
	Replaced bool   `json:"replaced"`
	Previous string `json:"previous,omitempty"`
}

// NewRESTClient creates a new REST client with the provided base URL
func NewRESTClient(baseURL string) *RESTClient {
	return &RESTClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Login exchanges credentials for a token and keeps it for later requests.
func (c *RESTClient) Login(ctx context.Context, username, password string) (string, error) {
	body := codec.MustMarshal(map[string]string{"username": username, "password": password})
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return "", err
	}
	c.Token = out.Token
	return out.Token, nil
}

// Get fetches the value under key.
func (c *RESTClient) Get(ctx context.Context, key int64) (codec.Entry, error) {
	var e codec.Entry
	err := c.do(ctx, http.MethodGet, "/api/keys/"+strconv.FormatInt(key, 10), nil, &e)
	return e, err
}

// Put stores value under key.
func (c *RESTClient) Put(ctx context.Context, key int64, value string) (PutResult, error) {
	body := codec.MustMarshal(map[string]string{"value": value})
	var res PutResult
	err := c.do(ctx, http.MethodPut, "/api/keys/"+strconv.FormatInt(key, 10), body, &res)
	return res, err
}

// Delete removes key and returns the removed entry.
func (c *RESTClient) Delete(ctx context.Context, key int64) (codec.Entry, error) {
	var e codec.Entry
	err := c.do(ctx, http.MethodDelete, "/api/keys/"+strconv.FormatInt(key, 10), nil, &e)
	return e, err
}

// List returns up to limit entries, in descending order when reverse is set.
func (c *RESTClient) List(ctx context.Context, reverse bool, limit int) ([]codec.Entry, error) {
	q := url.Values{}
	if reverse {
		q.Set("reverse", "1")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/keys"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []codec.Entry
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Stats fetches the server trie statistics.
func (c *RESTClient) Stats(ctx context.Context) (trie_serv.Stats, error) {
	var st trie_serv.Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &st)
	return st, err
}

func (c *RESTClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = codec.Unmarshal(data, &e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", constant.ErrUnauthorized, e.Error)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", constant.ErrNotFound, e.Error)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", constant.ErrBadRequest, e.Error)
		}
		return fmt.Errorf("server: %s", e.Error)
	}
	return codec.Unmarshal(data, out)
}
