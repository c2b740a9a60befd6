// Package wiki builds the alphabetical wiki pages of a [repo.Repo].
package wiki

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sampleprograms/docsgen/pkg/document"
	"github.com/sampleprograms/docsgen/pkg/reach"
	"github.com/sampleprograms/docsgen/pkg/repo"
)

const (
	CatalogTitle = "Alphabetical Language Catalog"

	DefaultBaseURL = "/TheRenegadeCoder/sample-programs/wiki/"
)

// Builder builds wiki pages. It never mutates the repo.
type Builder struct {
	repo    *repo.Repo
	checker reach.Checker
	baseURL string
}

// New creates a builder. baseURL is the wiki page prefix; empty means [DefaultBaseURL].
func New(r *repo.Repo, checker reach.Checker, baseURL string) *Builder {
	if checker == nil {
		checker = reach.Never()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Builder{repo: r, checker: checker, baseURL: baseURL}
}

// ProbeURLs returns the URLs that [Builder.Build] checks.
func (b *Builder) ProbeURLs() []string {
	var res []string
	for _, lc := range b.repo.Languages() {
		res = append(res, lc.DocsURL())
	}
	return res
}

// Build returns the catalog followed by one page per letter.
func (b *Builder) Build(ctx context.Context) []*document.Document {
	letters := b.repo.Letters()
	pages := []*document.Document{b.Catalog()}
	for i := range letters {
		pages = append(pages, b.LetterPage(ctx, letters, i))
	}
	return pages
}

func (b *Builder) pageURL(letter string) string {
	return b.baseURL + repo.Capitalize(letter)
}

// Catalog returns the alphabet catalog: one row per letter and a totals row.
func (b *Builder) Catalog() *document.Document {
	table := document.NewTable("Collection", "# of Languages", "# of Snippets", "# of Tests")
	for _, letter := range b.repo.Letters() {
		languages := b.repo.LanguagesByLetter(letter)
		if len(languages) == 0 {
			slog.Warn("letter directory without languages", "letter", letter)
		}
		programs, tested := 0, 0
		for _, lc := range languages {
			programs += lc.TotalPrograms()
			if lc.HasTests() {
				tested++
			}
		}
		table = table.WithRow(
			document.Link(repo.Capitalize(letter), b.pageURL(letter)),
			document.Text(strconv.Itoa(len(languages))),
			document.Text(strconv.Itoa(programs)),
			document.Text(strconv.Itoa(tested)),
		)
	}
	table = table.WithRow(
		document.Bold("Totals"),
		document.Text(strconv.Itoa(b.repo.TotalLanguages())),
		document.Text(strconv.Itoa(b.repo.TotalPrograms())),
		document.Text(strconv.Itoa(b.repo.TotalTested())),
	)
	return document.New(CatalogTitle, table)
}

// LetterPage returns the page of letters[i], linked to its neighbors.
// The first and the last letter link to each other.
func (b *Builder) LetterPage(ctx context.Context, letters []string, i int) *document.Document {
	letter := letters[i]
	title := repo.Capitalize(letter)
	intro := document.P(document.Text(
		"The following table contains all the existing languages in the repository that start with the letter " + title + ":"))

	table := document.NewTable("Language", "Article(s)", "Issue(s)", "Test(s)", "# of Snippets")
	total := 0
	for _, lc := range b.repo.LanguagesByLetter(letter) {
		total += lc.TotalPrograms()
		docs := b.checker.Check(ctx, lc.DocsURL())
		table = table.WithRow(
			document.Link(lc.ReadableName(), lc.RepoURL()),
			document.LinkIf(docs.OK(), "Here", docs.URL()),
			document.Link("Here", lc.IssuesURL()),
			document.LinkIf(lc.HasTests(), "Here", lc.TestInfoURL()),
			document.Text(strconv.Itoa(lc.TotalPrograms())),
		)
	}
	table = table.WithRow(document.Bold("Totals"), document.Text(""), document.Text(""), document.Text(""),
		document.Text(strconv.Itoa(total)))

	prev := repo.Capitalize(letters[(i-1+len(letters))%len(letters)])
	next := repo.Capitalize(letters[(i+1)%len(letters)])
	nav := document.P(
		document.Text("< "),
		document.Link("Previous ("+prev+")", b.baseURL+prev),
		document.Text(" | "),
		document.Link("Next ("+next+")", b.baseURL+next),
		document.Text(" >"),
	)
	return document.New(title, intro, table, nav)
}
