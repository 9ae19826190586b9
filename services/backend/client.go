// Package backend is the console's client for the institution's REST API:
// one method per endpoint, wrapping the HTTP exchange and normalizing error
// messages. The backend owns all data and business rules; nothing here is
// cached.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/classlog/console/core"
)

// genericErrMsg is shown when the backend gives us nothing better.
const genericErrMsg = "ocurrió un error"

// maxBodySize guards against a misbehaving backend; no listing comes close.
const maxBodySize = 8 << 20

// APIError is a backend rejection: a non-2xx status, or an `ok: false`
// envelope on an otherwise successful response. Message is already
// human-readable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// IsAPIError unwraps err into an *APIError if there is one in its chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type Client struct {
	base   *url.URL
	hc     *http.Client
	logger core.Logger
}

func NewClient(conf *core.Config, logger core.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(conf.Backend.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing backend base URL %q", conf.Backend.BaseURL)
	}
	return &Client{
		base:   base,
		hc:     &http.Client{Timeout: conf.Backend.Timeout},
		logger: logger,
	}, nil
}

// envelope is the backend's uniform response shape: { ok, data } on success,
// { error | message } on failure. Some endpoints return the payload bare;
// do() falls back to decoding the whole body in that case.
type envelope struct {
	OK      *bool           `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e envelope) errMsg() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return genericErrMsg
}

// do performs one backend call. A non-empty token is attached as a bearer
// credential. out, when non-nil, receives the decoded `data` payload (or the
// bare body when the endpoint skips the envelope).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Debug("backend unreachable", err, map[string]interface{}{"method": method, "path": path})
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.Wrapf(err, "reading response of %s %s", method, path)
	}

	var env envelope
	// a non-JSON body (proxies, crashes) still maps onto the generic message
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.errMsg()}
	}
	if env.OK != nil && !*env.OK {
		return &APIError{StatusCode: resp.StatusCode, Message: env.errMsg()}
	}

	if out == nil {
		return nil
	}
	payload := raw
	if len(env.Data) > 0 {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrapf(err, "decoding response of %s %s", method, path)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, token, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, token, body, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values, token string) error {
	return c.do(ctx, http.MethodDelete, path, query, token, nil, nil)
}

// pageQuery builds the standard pagination query string.
func pageQuery(pagina, limite int) url.Values {
	v := make(url.Values)
	if pagina > 0 {
		v.Set("pagina", strconv.Itoa(pagina))
	}
	if limite > 0 {
		v.Set("limite", strconv.Itoa(limite))
	}
	return v
}
