package mapper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"oras.land/oras-go/v2/registry/remote/retry"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

const defaultUserAgent = "x3mlmapper"

// Resource is an opened input. It is consumed once and never cached.
type Resource struct {
	io.ReadCloser
	// Encoding is the encoding literal content was converted to. It is empty
	// for URL resources, whose bytes are passed through as served.
	Encoding Encoding
}

// StringResource converts literal content to the encoding its XML declaration names.
func StringResource(content string) *Resource {
	enc := EncodingOf(content)
	return &Resource{
		ReadCloser: io.NopCloser(bytes.NewReader(Encode(content, enc))),
		Encoding:   enc,
	}
}

// ThesaurusFormat picks the RDF syntax of thesaurus content by its first bytes.
func ThesaurusFormat(content string) rdf.Format {
	switch {
	case strings.HasPrefix(content, "@prefix"):
		return rdf.FormatTurtle
	case strings.HasPrefix(content, "<rdf:RDF"):
		return rdf.FormatRDFXML
	default:
		return rdf.FormatNTriples
	}
}

// IsURL reports whether id is an absolute http, https or file URL.
func IsURL(id string) bool {
	u, err := url.Parse(strings.TrimSpace(id))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "file":
		return true
	}
	return false
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// ResolverOption is a functional option for NewResolver.
type ResolverOption func(*ResolverOptions)

// WithHTTPClient replaces the default retrying client.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(o *ResolverOptions) {
		o.Client = client
	}
}

// WithUserAgent sets the User-Agent header for URL fetches.
func WithUserAgent(userAgent string) ResolverOption {
	return func(o *ResolverOptions) {
		o.UserAgent = userAgent
	}
}

// WithTimeout bounds each URL fetch. Zero disables the limit.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(o *ResolverOptions) {
		o.Timeout = timeout
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(o *ResolverOptions) {
		o.Logger = logger
	}
}

// Resolver turns identifiers into readable resources.
type Resolver struct {
	client *http.Client
	logger *slog.Logger
}

// NewResolver creates a Resolver. Without WithHTTPClient it fetches through
// a retrying transport that also serves file URLs.
func NewResolver(opts ...ResolverOption) *Resolver {
	options := &ResolverOptions{}
	for _, opt := range opts {
		opt(options)
	}
	client := options.Client
	if client == nil {
		client = NewHTTPClient(options.UserAgent, options.Timeout)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{client: client, logger: logger}
}

// userAgentTransport wraps an http.RoundTripper and injects a User-Agent header.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// NewHTTPClient returns a client that retries transient failures and serves file URLs.
func NewHTTPClient(userAgent string, timeout time.Duration) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &http.Client{
		Transport: &userAgentTransport{
			base:      retry.NewTransport(base),
			userAgent: userAgent,
		},
		Timeout: timeout,
	}
}

// Resolve fetches id when it is a URL and treats it as literal content otherwise.
func (r *Resolver) Resolve(ctx context.Context, id string) (*Resource, error) {
	if IsURL(id) {
		return r.URLResource(ctx, id)
	}
	return StringResource(id), nil
}

// URLResource fetches rawURL. Failures wrap ErrResourceUnavailable.
func (r *Resolver) URLResource(ctx context.Context, rawURL string) (*Resource, error) {
	rawURL = strings.TrimSpace(rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, rawURL, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.DebugContext(ctx, "fetch failed", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		r.logger.DebugContext(ctx, "fetch rejected", "url", rawURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s: status %d", ErrResourceUnavailable, rawURL, resp.StatusCode)
	}
	return &Resource{ReadCloser: resp.Body}, nil
}
