// Package howto builds the README of the How to Python source code repository
// from the entries of the series feed.
package howto

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/sampleprograms/docsgen/pkg/document"
	"github.com/sampleprograms/docsgen/pkg/feed"
	"github.com/sampleprograms/docsgen/pkg/netutil/github"
	"github.com/sampleprograms/docsgen/pkg/reach"
)

const (
	Title   = "README"
	Heading = "How to Python - Source Code"

	DefaultRepoURL      = "https://github.com/TheRenegadeCoder/how-to-python-code"
	DefaultSeriesSuffix = " in Python"

	seriesURL   = "https://therenegadecoder.com/series/how-to-python/"
	snippetsURL = "https://therenegadecoder.com/code/python-code-snippets-for-everyday-problems/"
)

type opts struct {
	repoURL string
	suffix  string
}

type Opt func(*opts) error

// WithRepoURL sets the repository that holds the challenges, notebooks, and tests.
func WithRepoURL(repoURL string) Opt {
	return func(opts *opts) error {
		opts.repoURL = strings.TrimSuffix(repoURL, "/")
		return nil
	}
}

// WithSeriesSuffix sets the suffix stripped from titles before deriving a slug.
func WithSeriesSuffix(suffix string) Opt {
	return func(opts *opts) error {
		opts.suffix = suffix
		return nil
	}
}

type Builder struct {
	opts
	checker reach.Checker
}

// New creates a builder. A nil checker treats every URL as unreachable.
func New(checker reach.Checker, o ...Opt) (*Builder, error) {
	b := &Builder{
		opts: opts{
			repoURL: DefaultRepoURL,
			suffix:  DefaultSeriesSuffix,
		},
		checker: checker,
	}
	for _, f := range o {
		if err := f(&b.opts); err != nil {
			return nil, err
		}
	}
	if b.checker == nil {
		b.checker = reach.Never()
	}
	// the artifact URLs follow the GitHub tree/blob layout
	if _, err := github.NewRepo(b.repoURL); err != nil {
		return nil, err
	}
	return b, nil
}

// Artifacts are the companion URLs of an article.
type Artifacts struct {
	Challenge string
	Notebook  string
	Test      string
}

// Artifacts returns the companion URLs derived from title.
func (b *Builder) Artifacts(title string) Artifacts {
	hyphen := slug(title, b.suffix, "-")
	underscore := slug(title, b.suffix, "_")
	return Artifacts{
		Challenge: b.repoURL + "/tree/main/challenges/" + hyphen,
		Notebook:  b.repoURL + "/blob/main/notebooks/" + underscore + ".ipynb",
		Test:      b.repoURL + "/blob/main/testing/" + underscore + ".py",
	}
}

// Skip reports whether the entry is left out of the table.
func Skip(e feed.Entry) bool {
	return strings.Contains(e.Title, "Code Snippets")
}

// ProbeURLs returns the URLs that [Builder.Build] checks.
func (b *Builder) ProbeURLs(entries []feed.Entry) []string {
	var res []string
	for _, e := range entries {
		if Skip(e) {
			continue
		}
		a := b.Artifacts(e.Title)
		res = append(res, a.Challenge, a.Notebook, a.Test)
	}
	return res
}

// Build returns the README. Rows keep the order of entries.
func (b *Builder) Build(ctx context.Context, entries []feed.Entry) *document.Document {
	table := document.NewTable("Index", "Title", "Publish Date", "Article", "Video", "Challenge", "Notebook", "Test")
	index := 0
	for _, e := range entries {
		if Skip(e) {
			slog.DebugContext(ctx, "skipping entry", "title", e.Title)
			continue
		}
		index++
		video, hasVideo := feed.VideoURL(e.Content)
		a := b.Artifacts(e.Title)
		challenge := b.checker.Check(ctx, a.Challenge)
		notebook := b.checker.Check(ctx, a.Notebook)
		test := b.checker.Check(ctx, a.Test)
		table = table.WithRow(
			document.Text(strconv.Itoa(index)),
			document.Text(e.Title),
			document.Text(e.Published),
			document.Link("Article", e.Link),
			document.LinkIf(hasVideo, "Video", video),
			document.LinkIf(challenge.OK(), "Challenge", challenge.URL()),
			document.LinkIf(notebook.OK(), "Notebook", notebook.URL()),
			document.LinkIf(test.OK(), "Test", test.URL()),
		)
	}
	return document.New(Title,
		document.H1(Heading),
		document.P(
			document.Text("Welcome to a collection of Jupyter Notebooks from the "),
			document.Link("How to Python", seriesURL),
			document.Text(" series on The Renegade Coder. For convenience, you can access all of the articles, "+
				"videos, challenges, and source code below. Alternatively, I keep "),
			document.Link("an enormous article", snippetsURL),
			document.Text(" up to date with all these snippets as well."),
		),
		table,
	)
}

var dateSuffix = regexp.MustCompile(`\s*(\(\d{4}\)|\d{4}-\d{2}-\d{2}|[A-Z][a-z]+\.? \d{1,2}, \d{4})\s*$`)

// Slug derives the artifact name of an article from its title, joining
// words with sep.
//
//	"How to Invert a Dictionary in Python: Comprehensions, Defaultdict, and More" -> "how-to-invert-a-dictionary"
//	"How to Sum Elements of Two Lists in Python (2021)" -> "how-to-sum-elements-of-two-lists"
func Slug(title, sep string) string {
	return slug(title, DefaultSeriesSuffix, sep)
}

func slug(title, suffix, sep string) string {
	s := dateSuffix.ReplaceAllString(title, "")
	s, _, _ = strings.Cut(s, ":")
	s = strings.TrimSpace(s)
	if suffix != "" && len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		s = s[:len(s)-len(suffix)]
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r), r == '-', r == '_':
			return ' '
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), sep)
}
