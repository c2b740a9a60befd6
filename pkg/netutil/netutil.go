package netutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type httpOpts struct {
	client      *http.Client
	maxBytes    int64
	bearerToken string
	userAgent   string
}

type HTTPOpt func(opts *httpOpts, urlStr string) error

func WithHTTPClient(client *http.Client) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.client = client
		return nil
	}
}

const DefaultHTTPMaxBytes = 64 * 1024 * 1024 // 64 MiB

func WithHTTPMaxBytes(maxBytes int64) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.maxBytes = maxBytes
		return nil
	}
}

const DefaultUserAgent = "docsgen (+https://github.com/sampleprograms/docsgen)"

func WithUserAgent(userAgent string) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.userAgent = userAgent
		return nil
	}
}

func WithBearerToken(bearerToken string) HTTPOpt {
	return func(opts *httpOpts, _ string) error {
		opts.bearerToken = bearerToken
		return nil
	}
}

func isGitHubDomain(urlStr string) (bool, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, err
	}
	hostname := u.Hostname()
	hostname = strings.TrimSuffix(hostname, ".")
	switch hostname {
	case "github.com", "api.github.com", "raw.githubusercontent.com":
		return true, nil
	}
	return false, nil
}

// WithAutoGitHubToken automatically sends $GITHUB_TOKEN so as to relax the API rate limit.
// https://docs.github.com/en/rest/using-the-rest-api/rate-limits-for-the-rest-api
func WithAutoGitHubToken() HTTPOpt {
	return func(opts *httpOpts, urlStr string) error {
		isGH, err := isGitHubDomain(urlStr)
		if err != nil {
			return err
		}
		if isGH {
			if token := GitHubToken(); token != "" {
				opts.bearerToken = token
			}
		}
		return nil
	}
}

// GitHubToken returns $GITHUB_TOKEN, or $GH_TOKEN.
func GitHubToken() string {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		// `gh` prioritizes $GH_TOKEN over $GITHUB_TOKEN
		token = os.Getenv("GH_TOKEN")
	}
	return token
}

type UnexpectedStatusCodeError struct {
	URL        *url.URL
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusCodeError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d: %s", e.URL.Redacted(), e.StatusCode, e.Body)
}

func (o *httpOpts) apply(urlStr string, fns []HTTPOpt) error {
	for _, f := range fns {
		if err := f(o, urlStr); err != nil {
			return err
		}
	}
	if o.client == nil {
		o.client = http.DefaultClient
	}
	if o.maxBytes == 0 {
		o.maxBytes = DefaultHTTPMaxBytes
	}
	if o.userAgent == "" {
		o.userAgent = DefaultUserAgent
	}
	return nil
}

func (o *httpOpts) newRequest(ctx context.Context, method, urlStr string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", o.userAgent)
	if o.bearerToken != "" {
		req.Header.Add("Authorization", "Bearer "+o.bearerToken)
	}
	return req, nil
}

func Get(ctx context.Context, urlStr string, o ...HTTPOpt) ([]byte, error) {
	var opts httpOpts
	if err := opts.apply(urlStr, o); err != nil {
		return nil, err
	}
	req, err := opts.newRequest(ctx, http.MethodGet, urlStr)
	if err != nil {
		return nil, err
	}
	resp, err := opts.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	lr := &io.LimitedReader{
		R: resp.Body,
		N: opts.maxBytes,
	}
	body, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, &UnexpectedStatusCodeError{
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}

// Head sends a HEAD request, following redirects, and returns the final status code.
// Servers that reject HEAD with 405 are retried with GET.
func Head(ctx context.Context, urlStr string, o ...HTTPOpt) (int, error) {
	var opts httpOpts
	if err := opts.apply(urlStr, o); err != nil {
		return 0, err
	}
	status, err := opts.status(ctx, http.MethodHead, urlStr)
	if err != nil || status != http.StatusMethodNotAllowed {
		return status, err
	}
	return opts.status(ctx, http.MethodGet, urlStr)
}

func (o *httpOpts) status(ctx context.Context, method, urlStr string) (int, error) {
	req, err := o.newRequest(ctx, method, urlStr)
	if err != nil {
		return 0, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, &io.LimitedReader{R: resp.Body, N: 4096})
	return resp.StatusCode, nil
}

// IsNotFound reports whether err is an [UnexpectedStatusCodeError] with status 404.
func IsNotFound(err error) bool {
	var err2 *UnexpectedStatusCodeError
	return errors.As(err, &err2) && err2.StatusCode == http.StatusNotFound
}
