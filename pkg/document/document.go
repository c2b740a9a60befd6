// Package document provides an immutable Markdown document model.
//
// A [Document] is an ordered sequence of [Node] values. Adding content
// returns a new Document, and rendering is a single pass over the nodes.
package document

import (
	"slices"
	"strings"
)

// Node is a block of content.
type Node interface {
	markdown(b *strings.Builder)
}

// Document is a titled sequence of nodes.
type Document struct {
	title string
	nodes []Node
}

// New creates a document.
func New(title string, nodes ...Node) *Document {
	return &Document{
		title: title,
		nodes: slices.Clone(nodes),
	}
}

// With returns a copy of d with nodes appended.
func (d *Document) With(nodes ...Node) *Document {
	return &Document{
		title: d.title,
		nodes: append(slices.Clone(d.nodes), nodes...),
	}
}

// Title returns the document title. It is not rendered.
func (d *Document) Title() string {
	return d.title
}

// Nodes returns the content of the document.
func (d *Document) Nodes() []Node {
	return slices.Clone(d.nodes)
}

// Markdown renders the document. Blocks are separated by a blank line.
func (d *Document) Markdown() string {
	var b strings.Builder
	for i, n := range d.nodes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		n.markdown(&b)
	}
	if len(d.nodes) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Document) String() string {
	return d.Markdown()
}

// Inline is a span of text inside a block.
type Inline struct {
	Text string
	URL  string
	Bold bool
}

// Text returns plain text.
func Text(s string) Inline {
	return Inline{Text: s}
}

// Bold returns strong text.
func Bold(s string) Inline {
	return Inline{Text: s, Bold: true}
}

// Link returns a hyperlink.
func Link(text, url string) Inline {
	return Inline{Text: text, URL: url}
}

// LinkIf returns a hyperlink if ok, or empty text otherwise.
func LinkIf(ok bool, text, url string) Inline {
	if !ok {
		return Inline{}
	}
	return Link(text, url)
}

// Empty reports whether the inline renders to nothing.
func (in Inline) Empty() bool {
	return in.Text == ""
}

func (in Inline) String() string {
	if in.Text == "" {
		return ""
	}
	s := in.Text
	if in.Bold {
		s = "**" + s + "**"
	}
	if in.URL != "" {
		s = "[" + s + "](" + in.URL + ")"
	}
	return s
}

func inlines(ins []Inline) string {
	var b strings.Builder
	for _, in := range ins {
		b.WriteString(in.String())
	}
	return b.String()
}

// Heading is a section heading of level 1 to 6.
type Heading struct {
	Level int
	Text  string
}

func (h Heading) markdown(b *strings.Builder) {
	level := min(max(h.Level, 1), 6)
	b.WriteString(strings.Repeat("#", level))
	b.WriteString(" ")
	b.WriteString(h.Text)
}

// H1 returns a level 1 heading.
func H1(text string) Heading {
	return Heading{Level: 1, Text: text}
}

// H2 returns a level 2 heading.
func H2(text string) Heading {
	return Heading{Level: 2, Text: text}
}

// Paragraph is a run of inline content.
type Paragraph []Inline

// P returns a paragraph.
func P(content ...Inline) Paragraph {
	return Paragraph(slices.Clone(content))
}

func (p Paragraph) markdown(b *strings.Builder) {
	b.WriteString(inlines(p))
}

// Table is a GitHub flavored Markdown table.
type Table struct {
	Header []Inline
	Rows   [][]Inline
}

// NewTable returns a table with a plain text header.
func NewTable(header ...string) Table {
	t := Table{Header: make([]Inline, len(header))}
	for i, h := range header {
		t.Header[i] = Text(h)
	}
	return t
}

// WithRow returns a copy of t with row appended.
func (t Table) WithRow(row ...Inline) Table {
	return Table{
		Header: t.Header,
		Rows:   append(slices.Clone(t.Rows), slices.Clone(row)),
	}
}

func (t Table) markdown(b *strings.Builder) {
	writeRow := func(cells []Inline) {
		b.WriteString("|")
		for i := range t.Header {
			b.WriteString(" ")
			if i < len(cells) {
				b.WriteString(strings.ReplaceAll(cells[i].String(), "|", `\|`))
			}
			b.WriteString(" |")
		}
	}
	writeRow(t.Header)
	b.WriteString("\n|")
	for range t.Header {
		b.WriteString(" --- |")
	}
	for _, row := range t.Rows {
		b.WriteString("\n")
		writeRow(row)
	}
}

// List is a bulleted list.
type List [][]Inline

func (l List) markdown(b *strings.Builder) {
	for i, item := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(inlines(item))
	}
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	Lang string
	Code string
}

func (c CodeBlock) markdown(b *strings.Builder) {
	b.WriteString("```")
	b.WriteString(c.Lang)
	b.WriteString("\n")
	b.WriteString(strings.TrimSuffix(c.Code, "\n"))
	b.WriteString("\n```")
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (HorizontalRule) markdown(b *strings.Builder) {
	b.WriteString("***")
}

// Raw is Markdown emitted verbatim.
type Raw string

func (r Raw) markdown(b *strings.Builder) {
	b.WriteString(strings.TrimSpace(string(r)))
}
