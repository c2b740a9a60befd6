// Package feed reads a paginated RSS feed.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/sampleprograms/docsgen/pkg/netutil"
)

const HowToPythonURL = "https://therenegadecoder.com/series/how-to-python/feed/"

const maxPageBytes = 16 * 1024 * 1024

// Entry is an item of the feed.
type Entry struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Published   string     `json:"published,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	// Content is the HTML body of the entry.
	Content string `json:"-"`
}

type ProgressEvent struct {
	Page    int `json:"page"`
	Entries int `json:"entries"`
}

type ProgressEventHandler func(context.Context, ProgressEvent)

func DefaultProgressEventHandler(ctx context.Context, ev ProgressEvent) {
	slog.DebugContext(ctx, "feed page", "page", ev.Page, "entries", ev.Entries)
}

type opts struct {
	httpClient *http.Client
	maxPages   int
	onProgress ProgressEventHandler
}

type Opt func(*opts) error

func WithHTTPClient(httpClient *http.Client) Opt {
	return func(opts *opts) error {
		opts.httpClient = httpClient
		return nil
	}
}

// WithMaxPages stops after n pages. Zero means no limit.
func WithMaxPages(n int) Opt {
	return func(opts *opts) error {
		opts.maxPages = n
		return nil
	}
}

func WithProgressEventHandler(onProgress ProgressEventHandler) Opt {
	return func(opts *opts) error {
		opts.onProgress = onProgress
		return nil
	}
}

// New instantiates [Fetcher].
func New(o ...Opt) (*Fetcher, error) {
	var f Fetcher
	for _, fn := range o {
		if err := fn(&f.opts); err != nil {
			return nil, err
		}
	}
	if f.opts.httpClient == nil {
		f.opts.httpClient = http.DefaultClient
	}
	if f.opts.onProgress == nil {
		f.opts.onProgress = DefaultProgressEventHandler
	}
	return &f, nil
}

type Fetcher struct {
	opts
}

// PageURL returns base with the paged query parameter set to page.
func PageURL(base string, page int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("paged", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchAll reads pages 1, 2, ... of the feed at base until a page has no
// items. A missing page (404) also ends the feed.
func (f *Fetcher) FetchAll(ctx context.Context, base string) ([]Entry, error) {
	parser := gofeed.NewParser()
	var res []Entry
	for page := 1; f.maxPages == 0 || page <= f.maxPages; page++ {
		urlStr, err := PageURL(base, page)
		if err != nil {
			return nil, err
		}
		b, err := netutil.Get(ctx, urlStr,
			netutil.WithHTTPClient(f.httpClient),
			netutil.WithHTTPMaxBytes(maxPageBytes),
		)
		if err != nil {
			if netutil.IsNotFound(err) {
				break
			}
			return nil, err
		}
		parsed, err := parser.ParseString(string(b))
		if err != nil {
			return nil, fmt.Errorf("failed to parse feed page %d: %w", page, err)
		}
		f.onProgress(ctx, ProgressEvent{Page: page, Entries: len(parsed.Items)})
		if len(parsed.Items) == 0 {
			break
		}
		for _, item := range parsed.Items {
			res = append(res, newEntry(item))
		}
	}
	return res, nil
}

func newEntry(item *gofeed.Item) Entry {
	content := item.Content
	if content == "" {
		content = item.Description
	}
	return Entry{
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Published:   item.Published,
		PublishedAt: item.PublishedParsed,
		Content:     content,
	}
}

// VideoURL finds the "Video Summary" heading in content and returns the
// target of the last link in the element that follows it.
func VideoURL(content string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", false
	}
	heading := doc.Find("h2").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == "Video Summary"
	}).First()
	if heading.Length() == 0 {
		return "", false
	}
	href, ok := heading.Next().Find("a").Last().Attr("href")
	if !ok || href == "" {
		return "", false
	}
	return href, true
}
