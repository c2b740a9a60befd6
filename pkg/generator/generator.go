// Package generator builds the documentation pages and writes them to disk.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sampleprograms/docsgen/pkg/document"
	"github.com/sampleprograms/docsgen/pkg/feed"
	"github.com/sampleprograms/docsgen/pkg/howto"
	"github.com/sampleprograms/docsgen/pkg/reach"
	"github.com/sampleprograms/docsgen/pkg/readme"
	"github.com/sampleprograms/docsgen/pkg/repo"
	"github.com/sampleprograms/docsgen/pkg/wiki"
)

const (
	DefaultWikiDir  = "wiki"
	DefaultHowToDir = "."
)

type ProgressEvent struct {
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

type ProgressEventHandler func(context.Context, ProgressEvent)

func DefaultProgressEventHandler(ctx context.Context, ev ProgressEvent) {
	slog.DebugContext(ctx, "progress: "+ev.Message, "path", ev.Path)
}

type opts struct {
	outputDir   string
	format      document.Format
	checker     reach.Checker
	wikiBaseURL string
	howToOpts   []howto.Opt
	onProgress  ProgressEventHandler
}

type Opt func(*opts) error

// WithOutputDir sets the output directory. Each target has its own default.
func WithOutputDir(dir string) Opt {
	return func(opts *opts) error {
		opts.outputDir = dir
		return nil
	}
}

func WithFormat(f document.Format) Opt {
	return func(opts *opts) error {
		if _, err := document.ParseFormat(string(f)); err != nil {
			return err
		}
		opts.format = f
		return nil
	}
}

// WithChecker sets the reachability checker. The default treats every URL as unreachable.
func WithChecker(c reach.Checker) Opt {
	return func(opts *opts) error {
		opts.checker = c
		return nil
	}
}

func WithWikiBaseURL(baseURL string) Opt {
	return func(opts *opts) error {
		opts.wikiBaseURL = baseURL
		return nil
	}
}

func WithHowToOpts(o ...howto.Opt) Opt {
	return func(opts *opts) error {
		opts.howToOpts = append(opts.howToOpts, o...)
		return nil
	}
}

func WithProgressEventHandler(onProgress ProgressEventHandler) Opt {
	return func(opts *opts) error {
		opts.onProgress = onProgress
		return nil
	}
}

// New instantiates [Generator].
func New(o ...Opt) (*Generator, error) {
	var g Generator
	for _, f := range o {
		if err := f(&g.opts); err != nil {
			return nil, err
		}
	}
	if g.opts.format == "" {
		g.opts.format = document.FormatMarkdown
	}
	if g.opts.checker == nil {
		g.opts.checker = reach.Never()
	}
	if g.opts.onProgress == nil {
		g.opts.onProgress = DefaultProgressEventHandler
	}
	return &g, nil
}

type Generator struct {
	opts
}

func (g *Generator) write(ctx context.Context, dir string, d *document.Document) (string, error) {
	p, err := document.Write(dir, d, g.format)
	if err != nil {
		return "", fmt.Errorf("failed to write %q: %w", d.Title(), err)
	}
	g.onProgress(ctx, ProgressEvent{Message: "wrote " + d.Title(), Path: p})
	return p, nil
}

func (g *Generator) prefetch(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	g.onProgress(ctx, ProgressEvent{Message: fmt.Sprintf("checking %d URLs", len(urls))})
	return reach.Prefetch(ctx, g.checker, urls)
}

// Wiki writes the catalog and the letter pages, and returns the written paths.
func (g *Generator) Wiki(ctx context.Context, r *repo.Repo) ([]string, error) {
	dir := g.outputDir
	if dir == "" {
		dir = DefaultWikiDir
	}
	b := wiki.New(r, g.checker, g.wikiBaseURL)
	if err := g.prefetch(ctx, b.ProbeURLs()); err != nil {
		return nil, err
	}
	var res []string
	for _, d := range b.Build(ctx) {
		p, err := g.write(ctx, dir, d)
		if err != nil {
			return res, err
		}
		res = append(res, p)
	}
	return res, nil
}

// Readmes writes one README per language into <output>/<letter>/<language>,
// or into the language directory itself when no output directory is set.
func (g *Generator) Readmes(ctx context.Context, r *repo.Repo) ([]string, error) {
	b := readme.New(r, g.checker)
	if err := g.prefetch(ctx, b.ProbeURLs()); err != nil {
		return nil, err
	}
	pages, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, page := range pages {
		lc := page.Language
		dir := lc.Path()
		if g.outputDir != "" {
			dir = filepath.Join(g.outputDir, lc.FirstLetter(), lc.Name())
		}
		p, err := g.write(ctx, dir, page.Document)
		if err != nil {
			return res, err
		}
		res = append(res, p)
	}
	return res, nil
}

// HowTo writes the README built from the feed entries.
func (g *Generator) HowTo(ctx context.Context, entries []feed.Entry) (string, error) {
	dir := g.outputDir
	if dir == "" {
		dir = DefaultHowToDir
	}
	b, err := howto.New(g.checker, g.howToOpts...)
	if err != nil {
		return "", err
	}
	if err = g.prefetch(ctx, b.ProbeURLs(entries)); err != nil {
		return "", err
	}
	return g.write(ctx, dir, b.Build(ctx, entries))
}
