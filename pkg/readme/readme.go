// Package readme builds the README page of each language collection.
package readme

import (
	"context"
	"fmt"

	"github.com/sampleprograms/docsgen/pkg/document"
	"github.com/sampleprograms/docsgen/pkg/reach"
	"github.com/sampleprograms/docsgen/pkg/repo"
)

const (
	Title = "README"

	GlotterURL   = "https://github.com/auroq/glotter"
	GeneratorURL = "https://github.com/TheRenegadeCoder/sample-programs-docs-generator"
)

const testInfoTemplate = `folder:
  extension:
  naming:

container:
  image:
  tag:
  cmd:
`

// Page is the README of a single language.
type Page struct {
	Language *repo.LanguageCollection
	Document *document.Document
}

type Builder struct {
	repo    *repo.Repo
	checker reach.Checker
}

// New creates a builder. A nil checker treats every URL as unreachable.
func New(r *repo.Repo, checker reach.Checker) *Builder {
	if checker == nil {
		checker = reach.Never()
	}
	return &Builder{repo: r, checker: checker}
}

// ProbeURLs returns the URLs that [Builder.Build] checks.
func (b *Builder) ProbeURLs() []string {
	var res []string
	for _, lc := range b.repo.Languages() {
		res = append(res, lc.DocsURL())
		for _, p := range lc.Programs() {
			res = append(res, p.DocURL())
		}
	}
	return res
}

// Build returns one page per language, in repo order.
// An invalid test descriptor aborts the build.
func (b *Builder) Build(ctx context.Context) ([]Page, error) {
	var res []Page
	for _, lc := range b.repo.Languages() {
		d, err := b.Page(ctx, lc)
		if err != nil {
			return nil, err
		}
		res = append(res, Page{Language: lc, Document: d})
	}
	return res, nil
}

// Page builds the README of lc.
func (b *Builder) Page(ctx context.Context, lc *repo.LanguageCollection) (*document.Document, error) {
	name := lc.ReadableName()
	d := document.New(Title,
		document.H1("Sample Programs in "+name),
		b.intro(ctx, lc),
		document.H2("Sample Programs List"),
		document.P(document.Text("Below, you'll find a list of code snippets in this collection. "+
			"Code snippets preceded by :warning: link to a GitHub issue query featuring a possible article request issue. "+
			"If an article request issue doesn't exist, we encourage you to create one. "+
			"Meanwhile, code snippets preceded by :white_check_mark: link to an existing article which provides further documentation.")),
	)
	if programs := b.programList(ctx, lc); len(programs) > 0 {
		d = d.With(programs)
	}
	testing, err := testingSection(lc)
	if err != nil {
		return nil, err
	}
	d = d.With(document.H2("Testing"))
	d = d.With(testing...)
	return d.With(
		document.HorizontalRule{},
		document.P(
			document.Text("This page was generated automatically by the Sample Programs Docs Generator. Find out how to support "),
			document.Link("this project", GeneratorURL),
			document.Text(" on Github."),
		),
	), nil
}

func (b *Builder) intro(ctx context.Context, lc *repo.LanguageCollection) document.Paragraph {
	name := lc.ReadableName()
	welcome := document.Text("Welcome to Sample Programs in " + name + "!")
	docs := b.checker.Check(ctx, lc.DocsURL())
	if !docs.OK() {
		return document.P(welcome)
	}
	return document.P(
		welcome,
		document.Text(" To find documentation related to the "+name+" code in this repo, look "),
		document.Link("here.", docs.URL()),
	)
}

func (b *Builder) programList(ctx context.Context, lc *repo.LanguageCollection) document.List {
	var l document.List
	for _, p := range lc.Programs() {
		text := p.ReadableName() + " in " + lc.ReadableName()
		var item []document.Inline
		if doc := b.checker.Check(ctx, p.DocURL()); doc.OK() {
			item = append(item, document.Text(":white_check_mark: "), document.Link(text, doc.URL()))
		} else {
			item = append(item, document.Text(":warning: "), document.Link(text, p.IssueURL()))
		}
		item = append(item, document.Text(" "), document.Link("Requirements", p.RequirementsURL()))
		l = append(l, item)
	}
	return l
}

func testingSection(lc *repo.LanguageCollection) ([]document.Node, error) {
	ti, err := lc.TestInfo()
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", lc.Name(), err)
	}
	if ti == nil {
		return []document.Node{
			document.P(document.Text("This language currently does not feature testing. " +
				"If you'd like to help in the efforts to test all of the code in this repo, " +
				"consider creating a testinfo.yml file with the following information:")),
			document.CodeBlock{Lang: "yml", Code: testInfoTemplate},
			document.P(
				document.Text("See the "),
				document.Link("Glotter project", GlotterURL),
				document.Text(" for more information on how to create a testinfo file."),
			),
		}, nil
	}
	return []document.Node{
		document.P(document.Text("The following list shares details about what we're using to test all Sample Programs in " +
			lc.ReadableName() + ".")),
		document.List{
			{document.Text("Docker Image: " + ti.Container.Image)},
			{document.Text("Docker Tag: " + ti.Container.Tag)},
		},
		document.P(
			document.Text("See the "),
			document.Link("Glotter project", GlotterURL),
			document.Text(" for more information on how we handle testing."),
		),
	}, nil
}
