package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/ensigniasec/reactions/internal/validate"
)

//nolint:gochecknoglobals // default values are overwritten by WithBaseURL and WithHTTPClient.
var (
	defaultTimeout = 5 * time.Second
	defaultBaseURL = "https://chezbill.herokuapp.com"
)

// NotesClient is the transport interface used by the rating flow.
type NotesClient interface {
	// FetchRecord returns the record currently open for rating.
	FetchRecord(ctx context.Context) (Record, error)
	// SubmitNote records a rating. A second rating for the same record and
	// email fails with ErrDuplicateSubmission.
	SubmitNote(ctx context.Context, n NoteSubmission) error
}

// Client is a concrete implementation of NotesClient.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// ClientOption mutates Client configuration.
type ClientOption func(*Client)

// WithBaseURL configures the API base URL for production or tests.
func WithBaseURL(base string) ClientOption { //nolint:ireturn
	return func(c *Client) {
		if base == "" {
			return
		}
		if u, err := url.Parse(base); err == nil {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption { //nolint:ireturn
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption { //nolint:ireturn
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient constructs a new Client with defaults.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == nil {
		u, err := url.Parse(defaultBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid default baseURL: %w", err)
		}
		c.baseURL = u
	}
	if c.baseURL.Scheme != "http" && c.baseURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL %q must be http or https", ErrValidation, c.baseURL.String())
	}
	return c, nil
}

// FetchRecord implements GET /get-last-movie and returns the first record.
func (c *Client) FetchRecord(ctx context.Context) (Record, error) {
	full := c.buildURL("/get-last-movie", nil)
	req, err := c.newRequest(ctx, http.MethodGet, full, nil)
	if err != nil {
		return Record{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return Record{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Record{}, handleHTTPError(resp)
	}
	var body recordsResponse
	if err := decodeJSON(resp.Body, &body); err != nil {
		return Record{}, fmt.Errorf("decode records: %w", err)
	}
	if len(body.Movies) == 0 || body.Movies[0].ID == "" {
		return Record{}, fmt.Errorf("%w: no record open for rating", ErrNotFound)
	}
	return body.Movies[0], nil
}

// SubmitNote implements POST /add-movie-note.
// 200 => recorded, 400 => a note already exists for this record and email.
func (c *Client) SubmitNote(ctx context.Context, n NoteSubmission) error {
	if err := validate.Struct(n); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(n); err != nil {
		return err
	}
	full := c.buildURL("/add-movie-note", nil)
	req, err := c.newRequest(ctx, http.MethodPost, full, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		// Body content is not part of the contract; drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return handleHTTPError(resp)
}

// handleHTTPError maps a non-success response onto the error taxonomy.
// It consumes the response body.
func handleHTTPError(resp *http.Response) error {
	var e ErrorBody
	_ = decodeJSON(resp.Body, &e)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrDuplicateSubmission, e.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, e.Message)
	default:
		return RemoteError{StatusCode: resp.StatusCode, Remote: e}
	}
}

// --- Helpers ---

func defaultUserAgent() string {
	return fmt.Sprintf("reactions/%s (%s; %s)", BuildVersion, runtime.GOOS, runtime.GOARCH)
}

// joinURLPath joins two URL paths with exactly one slash boundary.
func joinURLPath(basePath, addPath string) string {
	switch {
	case basePath == "" || basePath == "/":
		return addPath
	case addPath == "":
		return basePath
	case hasTrailingSlash(basePath) && hasLeadingSlash(addPath):
		return basePath + addPath[1:]
	case !hasTrailingSlash(basePath) && !hasLeadingSlash(addPath):
		return basePath + "/" + addPath
	default:
		return basePath + addPath
	}
}

func hasTrailingSlash(p string) bool { return len(p) > 0 && p[len(p)-1] == '/' }
func hasLeadingSlash(p string) bool  { return len(p) > 0 && p[0] == '/' }

func (c *Client) buildURL(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = joinURLPath(u.Path, path)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, fullURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req, tagging transport failures with ErrNetwork.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return resp, nil
}

func decodeJSON[T any](r io.Reader, out *T) error {
	dec := json.NewDecoder(r)
	return dec.Decode(out)
}
