package culqi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andeslabs/culqi-gateway/infra/logger"
)

const (
	apiBaseURL = "https://api.culqi.com/v2"

	// Credential prefix that selects sandbox behavior.
	testKeyPrefix = "sk_test_"

	serverErrorUserMessage = "Culqi Server Error"

	headerTrackingID = "X-Culqi-Tracking-Id"
	headerVersion    = "X-Culqi-Version"

	defaultTimeout = 30 * time.Second
)

// Options configures a Client. The secret key prefix decides sandbox vs
// production mode; DevEmail and AppEnv drive the sandbox email rewrites.
type Options struct {
	SecretKey   string
	BaseURL     string // defaults to the Culqi production endpoint
	DevEmail    string
	AppEnv      string
	LogRequests bool
	HTTPClient  *http.Client
}

// Client is the single point of outbound communication with the Culqi
// API. It owns the transport handle and the audit store for its lifetime;
// one client per configured credential set. Safe for concurrent use, the
// configuration is immutable after construction.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	secretKey   string
	isTestEnv   bool
	appEnv      string
	devEmail    string
	logRequests bool
	logs        LogStore
}

// NewClient creates a gateway client backed by the given audit store.
func NewClient(opts Options, logs LogStore) (*Client, error) {
	if opts.SecretKey == "" {
		return nil, errors.New("culqi: secret key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = apiBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		secretKey:   opts.SecretKey,
		isTestEnv:   strings.HasPrefix(opts.SecretKey, testKeyPrefix),
		appEnv:      opts.AppEnv,
		devEmail:    opts.DevEmail,
		logRequests: opts.LogRequests,
		logs:        logs,
	}, nil
}

// IsTestEnv reports whether the configured credential is a sandbox key.
func (c *Client) IsTestEnv() bool {
	return c.isTestEnv
}

// apiCall describes one outbound request for dispatch.
type apiCall struct {
	op     Operation
	method string
	path   string
	body   any
	query  Object
}

// dispatch performs one API call: it builds the audit record, invokes the
// transport, normalizes the response into either a decoded T or an
// APIError, and persists the record regardless of outcome. It never
// returns both a value and an error.
func dispatch[T any](ctx context.Context, c *Client, call apiCall) (*T, *APIError) {
	entry := &Log{
		Operation: call.op,
		URL:       strings.TrimPrefix(call.path, "/"),
		StartedAt: time.Now().UTC(),
	}

	fullURL := c.baseURL + call.path
	if call.query != nil {
		if qs := EncodeQuery(call.query, nil); qs != "" {
			fullURL += "?" + qs
		}
		entry.Request, _ = json.Marshal(call.query)
	}

	var bodyReader io.Reader
	if call.body != nil {
		data, err := json.Marshal(call.body)
		if err != nil {
			return nil, abort(ctx, c, entry, err)
		}
		entry.Request = data
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, fullURL, bodyReader)
	if err != nil {
		return nil, abort(ctx, c, entry, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	// Identity encoding keeps the raw bytes and headers intact for the
	// audit record.
	req.Header.Set("Accept-Encoding", "identity")
	if call.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, doErr := c.httpClient.Do(req)

	var raw []byte
	if doErr == nil {
		raw, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			doErr = err
		}
	}
	entry.EndedAt = time.Now().UTC()

	var result *T
	var apiErr *APIError

	switch {
	case doErr != nil && resp == nil:
		// Pure transport failure: no interpretable response at all.
		apiErr = transportError(doErr)
	case doErr != nil:
		apiErr = transportError(doErr)
		entry.HTTPCode = resp.StatusCode
		entry.TrackingID = resp.Header.Get(headerTrackingID)
		entry.APIVersion = resp.Header.Get(headerVersion)
	default:
		entry.HTTPCode = resp.StatusCode
		entry.TrackingID = resp.Header.Get(headerTrackingID)
		entry.APIVersion = resp.Header.Get(headerVersion)
		result, apiErr = normalize[T](resp.StatusCode, raw)
		entry.Response = responseJSON(raw, apiErr)
	}

	c.persist(ctx, entry)

	return result, apiErr
}

// abort finalizes and persists the audit record when the call fails
// before reaching the transport, so even unsendable requests leave a
// trace.
func abort(ctx context.Context, c *Client, entry *Log, err error) *APIError {
	entry.EndedAt = time.Now().UTC()
	c.persist(ctx, entry)
	return transportError(err)
}

// normalize maps (status, body) to exactly one of a decoded value or an
// APIError. Statuses in [200,299] decode the body as T; anything else
// decodes it as the upstream error envelope. A body that is not a JSON
// object is treated as an upstream outage and wrapped.
func normalize[T any](status int, raw []byte) (*T, *APIError) {
	if status >= 200 && status <= 299 {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, serverError(string(raw))
		}
		return &value, nil
	}

	if !isJSONObject(raw) {
		return nil, serverError(string(raw))
	}

	var apiErr APIError
	if err := json.Unmarshal(raw, &apiErr); err != nil {
		return nil, serverError(string(raw))
	}
	return nil, &apiErr
}

// isJSONObject reports whether the body looks like the JSON error
// envelope rather than a raw string returned during an outage.
func isJSONObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// responseJSON picks what goes into the audit record's response column:
// the raw JSON body when it is valid JSON, otherwise the wrapped error.
func responseJSON(raw []byte, apiErr *APIError) json.RawMessage {
	if json.Valid(raw) && len(bytes.TrimSpace(raw)) > 0 {
		return raw
	}
	if apiErr != nil {
		wrapped, _ := json.Marshal(apiErr)
		return wrapped
	}
	return json.RawMessage("{}")
}

// persist writes the audit record. Failures are reported to the system
// logger and swallowed so an audit outage cannot break payment flows.
func (c *Client) persist(ctx context.Context, entry *Log) {
	if !c.logRequests || c.logs == nil {
		return
	}
	if entry.Response == nil {
		entry.Response = json.RawMessage("{}")
	}
	if err := c.logs.Create(ctx, entry); err != nil {
		logger.Error("culqi: audit log create failed", err, logger.LogContext{
			Operation: entry.Operation.String(),
			Fields: map[string]any{
				"url":       entry.URL,
				"http_code": entry.HTTPCode,
			},
		})
	}
}
