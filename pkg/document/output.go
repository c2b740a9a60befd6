package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Format is an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "markdown" (or "md") and "html".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "md", string(FormatMarkdown):
		return FormatMarkdown, nil
	case string(FormatHTML):
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q (expected %q or %q)", s, FormatMarkdown, FormatHTML)
}

func (f Format) Ext() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// FileName returns the slug of the title with the extension of f
// (e.g., "Alphabetical Language Catalog" -> "alphabetical-language-catalog.md").
func (d *Document) FileName(f Format) (string, error) {
	name, err := slug.Normalize(d.title)
	if err != nil {
		return "", fmt.Errorf("failed to derive a file name from %q: %w", d.title, err)
	}
	if name == "" {
		return "", fmt.Errorf("failed to derive a file name from %q", d.title)
	}
	return name + f.Ext(), nil
}

// Render renders the document in format f.
func (d *Document) Render(f Format) ([]byte, error) {
	if f == FormatHTML {
		return d.HTML()
	}
	return []byte(d.Markdown()), nil
}

// HTML renders the document as an HTML fragment.
func (d *Document) HTML() ([]byte, error) {
	return MarkdownToHTML([]byte(d.Markdown()))
}

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// MarkdownToHTML converts GitHub flavored Markdown into HTML.
func MarkdownToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("markdown conversion: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders d into dir, which is created if needed, and returns the written path.
func Write(dir string, d *Document, f Format) (string, error) {
	name, err := d.FileName(f)
	if err != nil {
		return "", err
	}
	b, err := d.Render(f)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	p := filepath.Join(dir, name)
	if err = os.WriteFile(p, b, 0o644); err != nil {
		return "", err
	}
	return p, nil
}
