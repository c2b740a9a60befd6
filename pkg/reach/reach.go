// Package reach checks whether external pages exist.
//
// An unreachable page is an expected outcome, not an error: page builders
// render a fallback and carry on.
package reach

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sampleprograms/docsgen/pkg/netutil"
	"github.com/sampleprograms/docsgen/pkg/netutil/github"
)

// Result is the outcome of a check.
type Result struct {
	url string
	ok  bool
}

func Reachable(url string) Result {
	return Result{url: url, ok: true}
}

func Unreachable(url string) Result {
	return Result{url: url}
}

// OK reports whether the URL is reachable.
func (r Result) OK() bool {
	return r.ok
}

// URL returns the checked URL.
func (r Result) URL() string {
	return r.url
}

// Checker checks a URL.
type Checker interface {
	Check(ctx context.Context, url string) Result
}

// Prefetcher is implemented by checkers that can check URLs ahead of time.
type Prefetcher interface {
	Prefetch(ctx context.Context, urls []string) error
}

// Prefetch calls c.Prefetch if c is a [Prefetcher].
func Prefetch(ctx context.Context, c Checker, urls []string) error {
	if p, ok := c.(Prefetcher); ok {
		return p.Prefetch(ctx, urls)
	}
	return nil
}

type CheckerFunc func(ctx context.Context, url string) Result

func (f CheckerFunc) Check(ctx context.Context, url string) Result {
	return f(ctx, url)
}

// Static is a fixed set of reachable URLs.
type Static map[string]bool

func (s Static) Check(_ context.Context, url string) Result {
	if s[url] {
		return Reachable(url)
	}
	return Unreachable(url)
}

// Never treats every URL as unreachable.
func Never() Checker {
	return CheckerFunc(func(_ context.Context, url string) Result {
		return Unreachable(url)
	})
}

type ProgressEvent struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
}

type ProgressEventHandler func(context.Context, ProgressEvent)

func DefaultProgressEventHandler(ctx context.Context, ev ProgressEvent) {
	slog.DebugContext(ctx, "probe", "url", ev.URL, "reachable", ev.Reachable)
}

type opts struct {
	httpClient *http.Client
	timeout    time.Duration
	jobs       int
	cacheSize  int
	contents   *github.ContentsClient
	onProgress ProgressEventHandler
}

type Opt func(*opts) error

func WithHTTPClient(httpClient *http.Client) Opt {
	return func(opts *opts) error {
		opts.httpClient = httpClient
		return nil
	}
}

// WithTimeout bounds each probe.
func WithTimeout(timeout time.Duration) Opt {
	return func(opts *opts) error {
		opts.timeout = timeout
		return nil
	}
}

// WithJobs sets the number of parallel probes used by [HTTPChecker.Prefetch].
func WithJobs(jobs int) Opt {
	return func(opts *opts) error {
		opts.jobs = jobs
		return nil
	}
}

func WithCacheSize(size int) Opt {
	return func(opts *opts) error {
		opts.cacheSize = size
		return nil
	}
}

// WithGitHubContents answers GitHub tree/blob URLs with the contents API
// instead of fetching the pages.
func WithGitHubContents(c *github.ContentsClient) Opt {
	return func(opts *opts) error {
		opts.contents = c
		return nil
	}
}

func WithProgressEventHandler(onProgress ProgressEventHandler) Opt {
	return func(opts *opts) error {
		opts.onProgress = onProgress
		return nil
	}
}

const (
	DefaultTimeout   = 10 * time.Second
	DefaultJobs      = 8
	DefaultCacheSize = 4096
)

// New instantiates [HTTPChecker].
func New(o ...Opt) (*HTTPChecker, error) {
	var c HTTPChecker
	for _, f := range o {
		if err := f(&c.opts); err != nil {
			return nil, err
		}
	}
	if c.opts.httpClient == nil {
		c.opts.httpClient = http.DefaultClient
	}
	if c.opts.timeout <= 0 {
		c.opts.timeout = DefaultTimeout
	}
	if c.opts.jobs <= 0 {
		c.opts.jobs = DefaultJobs
	}
	if c.opts.cacheSize <= 0 {
		c.opts.cacheSize = DefaultCacheSize
	}
	if c.opts.onProgress == nil {
		c.opts.onProgress = DefaultProgressEventHandler
	}
	cache, err := lru.New[string, bool](c.opts.cacheSize)
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return &c, nil
}

// HTTPChecker probes URLs over HTTP and memoizes the results.
// It is safe for concurrent use.
type HTTPChecker struct {
	opts
	cache *lru.Cache[string, bool]
}

func (c *HTTPChecker) httpOpts() []netutil.HTTPOpt {
	return []netutil.HTTPOpt{
		netutil.WithHTTPClient(c.httpClient),
		netutil.WithAutoGitHubToken(),
	}
}

// Check probes url unless the result is cached.
func (c *HTTPChecker) Check(ctx context.Context, url string) Result {
	if ok, hit := c.cache.Get(url); hit {
		return Result{url: url, ok: ok}
	}
	ok := c.probe(ctx, url)
	if ctx.Err() != nil {
		// not memoized: the probe was cut short
		return Unreachable(url)
	}
	c.cache.Add(url, ok)
	c.onProgress(ctx, ProgressEvent{URL: url, Reachable: ok})
	return Result{url: url, ok: ok}
}

func (c *HTTPChecker) probe(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if c.contents != nil {
		if content, err := github.NewContent(url); err == nil {
			ok, err := c.contents.Exists(ctx, content)
			if err == nil {
				return ok
			}
			slog.DebugContext(ctx, "GitHub contents API failed, falling back to HTTP", "url", url, "error", err)
		}
	}
	status, err := netutil.Head(ctx, url, c.httpOpts()...)
	if err != nil {
		slog.DebugContext(ctx, "treating as unreachable", "url", url, "error", err)
		return false
	}
	return status >= 200 && status < 400
}

// Prefetch checks the distinct URLs with bounded parallelism and caches the results.
// It only fails when ctx is done.
func (c *HTTPChecker) Prefetch(ctx context.Context, urls []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok || u == "" {
			continue
		}
		seen[u] = struct{}{}
		if c.cache.Contains(u) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Check(ctx, u)
			return nil
		})
	}
	return g.Wait()
}
