// Package upstream is the portal's client for the remote recruitment API.
// Every authenticated call goes through a Caller bound to one browser
// session, which attaches the bearer token, skips calls whose token is
// already expired, and tears the session down when the API rejects it.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/recruitment-portal/internal/config"
	"github.com/spec-kit/recruitment-portal/internal/domain"
	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/observability"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/token"
)

// Client talks to the recruitment API.
type Client struct {
	base    *url.URL
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a client from configuration.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, metrics *observability.Metrics) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Credentials is the triple the token exchange returns.
type Credentials struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
	ID    int64       `json:"id"`
}

// Login exchanges a username and password for a token, role and person id.
// Bad credentials come back as a *StatusError with status 401; no session is
// touched here because none exists yet.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/auth/generateToken", query, nil, "")
	if err != nil {
		return Credentials{}, err
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode token response: %w", err)
	}
	return creds, nil
}

// Register creates a new applicant account. No token is required.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	_, err := c.do(ctx, http.MethodPost, "/person/register", nil, reg, "")
	return err
}

// Bind couples the client to one browser session. The returned Caller reads
// the session fresh on every call and clears it through store when the token
// turns out to be dead, publishing a session_expired event.
func (c *Client) Bind(store session.Store, dispatcher events.Dispatcher, sid string) *Caller {
	return &Caller{client: c, store: store, events: dispatcher, sid: sid}
}

// Caller issues authenticated calls on behalf of one browser session.
type Caller struct {
	client *Client
	store  session.Store
	events events.Dispatcher
	sid    string
}

// Call performs one authenticated request. If the session has no token or the
// token is locally expired, no network I/O happens at all: the session is
// cleared and ErrSessionExpired returned. A 401 from upstream converges on
// the same path. Per call the session is either untouched or fully cleared,
// never partially written.
func (cl *Caller) Call(ctx context.Context, method, path string, query url.Values, jsonBody any) ([]byte, error) {
	sess, err := cl.store.Get(ctx, cl.sid)
	if err != nil {
		return nil, err
	}

	if !sess.Authenticated() || token.Expired(sess.Token) {
		cl.expire(ctx, sess, "token missing or expired before call")
		return nil, ErrSessionExpired
	}

	body, err := cl.client.do(ctx, method, path, query, jsonBody, sess.Token)
	if statusErr, ok := err.(*StatusError); ok && statusErr.Status == http.StatusUnauthorized {
		cl.expire(ctx, sess, "token rejected by recruitment API")
		return nil, ErrSessionExpired
	}
	return body, err
}

func (cl *Caller) expire(ctx context.Context, sess session.Session, detail string) {
	_ = cl.store.Clear(ctx, cl.sid)
	if cl.events != nil {
		_ = cl.events.Publish(ctx, events.Event{
			Type:      events.EventSessionExpired,
			SessionID: cl.sid,
			Role:      sess.Role,
			PersonID:  sess.PersonID,
			Detail:    detail,
		})
	}
}

// do dispatches one HTTP request and normalizes the outcome: 2xx returns the
// raw body, other statuses become *StatusError with the body text, transport
// failures become *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, jsonBody any, bearer string) ([]byte, error) {
	target := c.base.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	contentType := ""
	if jsonBody != nil {
		encoded, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream call failed", zap.String("path", path), zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	c.metrics.RecordUpstream(path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}
