package remote

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/John-Hatton/Inventory/session"
	"github.com/John-Hatton/Inventory/settings"
	"go.uber.org/zap"
)

var (
	// ErrNoServerURL is returned when no server URL has been configured.
	// It is a precondition failure: no network I/O has been attempted.
	ErrNoServerURL = errors.New("remote: server URL not configured")

	// ErrNotLoggedIn is returned when an authenticated call is made
	// without a stored token.
	ErrNotLoggedIn = errors.New("remote: no session token stored")
)

// Client issues authenticated requests against the companion server.
// It is stateless per call: every request runs on its own goroutine with
// a fresh connection, trust pinned to the bundled CA certificate, and
// reports back through exactly one of the two callbacks. Hostname
// verification stays enabled; pinning narrows trust, it does not replace
// identity checks.
type Client struct {
	settings *settings.Store
	session  *session.Store
	pool     *x509.CertPool
	timeout  time.Duration
	logger   *zap.Logger
}

// NewClient creates a Client. caCertPath may be empty, in which case the
// system trust store is used (plain-HTTP test servers never consult it).
func NewClient(st *settings.Store, ses *session.Store, caCertPath string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	var pool *x509.CertPool
	if caCertPath != "" {
		pem, err := os.ReadFile(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("remote: read CA cert: %w", err)
		}
		pool = x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("remote: no certificate found in %s", caCertPath)
		}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{settings: st, session: ses, pool: pool, timeout: timeout, logger: logger}, nil
}

// Login posts form-encoded credentials to auth/login. The raw JSON body
// ({token, role}) is handed to onSuccess.
func (c *Client) Login(username, password string, onSuccess func([]byte), onFailure func(error)) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	c.dispatch(call{
		method: http.MethodPost,
		path:   "auth/login",
		body:   strings.NewReader(form.Encode()),
		cType:  "application/x-www-form-urlencoded",
	}, onSuccess, onFailure)
}

// Register posts form-encoded registration fields to auth/register.
func (c *Client) Register(username, email, password string, onSuccess func([]byte), onFailure func(error)) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("password", password)
	c.dispatch(call{
		method: http.MethodPost,
		path:   "auth/register",
		body:   strings.NewReader(form.Encode()),
		cType:  "application/x-www-form-urlencoded",
	}, onSuccess, onFailure)
}

// ListUsers fetches all accounts. Requires a stored bearer token.
func (c *Client) ListUsers(onSuccess func([]byte), onFailure func(error)) {
	c.dispatch(call{
		method: http.MethodGet,
		path:   "api/users",
		auth:   true,
	}, onSuccess, onFailure)
}

// UpdateUserRole changes one account's role. Requires a stored bearer token.
func (c *Client) UpdateUserRole(id, role string, onSuccess func([]byte), onFailure func(error)) {
	payload, _ := json.Marshal(map[string]string{"role": role})
	c.dispatch(call{
		method: http.MethodPut,
		path:   "api/users/" + url.PathEscape(id),
		body:   bytes.NewReader(payload),
		cType:  "application/json",
		auth:   true,
	}, onSuccess, onFailure)
}

// DeleteUser removes one account. Requires a stored bearer token.
func (c *Client) DeleteUser(id string, onSuccess func([]byte), onFailure func(error)) {
	c.dispatch(call{
		method: http.MethodDelete,
		path:   "api/users/" + url.PathEscape(id),
		auth:   true,
	}, onSuccess, onFailure)
}

type call struct {
	method string
	path   string
	body   io.Reader
	cType  string
	auth   bool
}

// dispatch checks preconditions, then runs the request on its own
// goroutine. Exactly one of onSuccess/onFailure fires, never both.
func (c *Client) dispatch(cl call, onSuccess func([]byte), onFailure func(error)) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

	base := c.settings.ServerURL(ctx)
	if base == "" {
		cancel()
		go onFailure(ErrNoServerURL)
		return
	}

	var token string
	if cl.auth {
		var err error
		token, err = c.session.Token(ctx)
		if err != nil {
			cancel()
			go onFailure(ErrNotLoggedIn)
			return
		}
	}

	go func() {
		defer cancel()
		body, err := c.do(ctx, base, cl, token)
		if err != nil {
			c.logger.Warn("remote call failed",
				zap.String("method", cl.method),
				zap.String("path", cl.path),
				zap.Error(err))
			onFailure(err)
			return
		}
		onSuccess(body)
	}()
}

func (c *Client) do(ctx context.Context, base string, cl call, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, cl.method, base+cl.path, cl.body)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	if cl.cType != "" {
		req.Header.Set("Content-Type", cl.cType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Fresh connection per call, trust limited to the pinned pool.
	client := &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			TLSClientConfig:   &tls.Config{RootCAs: c.pool},
			DisableKeepAlives: true,
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: %s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote: %s %s: server returned %d", cl.method, cl.path, resp.StatusCode)
	}
	return raw, nil
}
