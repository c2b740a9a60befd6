package wiki

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"

	"github.com/sampleprograms/docsgen/pkg/reach"
	"github.com/sampleprograms/docsgen/pkg/repo"
)

func loadRepo(t *testing.T, ops ...fs.PathOp) *repo.Repo {
	t.Helper()
	dir := fs.NewDir(t, "archive", ops...)
	t.Cleanup(dir.Remove)
	r, err := repo.Load(dir.Path())
	assert.NilError(t, err)
	return r
}

func sampleRepo(t *testing.T) *repo.Repo {
	return loadRepo(t,
		fs.WithDir("c",
			fs.WithDir("c",
				fs.WithFile("hello-world.c", "int main(void) { return 0; }\n"),
				fs.WithFile("baklava.c", "int main(void) { return 0; }\n"),
				fs.WithFile("testinfo.yml", "container:\n  image: gcc\n  tag: 8.3\n"),
			),
		),
		fs.WithDir("p",
			fs.WithDir("python",
				fs.WithFile("hello_world.py", "print('Hello, World!')\n"),
				fs.WithFile("baklava.py", "pass\n"),
				fs.WithFile("FizzBuzz.py", "pass\n"),
			),
		),
	)
}

func TestCatalog(t *testing.T) {
	r := sampleRepo(t)
	b := New(r, nil, "")

	expected := "| Collection | # of Languages | # of Snippets | # of Tests |\n" +
		"| --- | --- | --- | --- |\n" +
		"| [C](/TheRenegadeCoder/sample-programs/wiki/C) | 1 | 2 | 1 |\n" +
		"| [P](/TheRenegadeCoder/sample-programs/wiki/P) | 1 | 3 | 0 |\n" +
		"| **Totals** | 2 | 5 | 1 |\n"
	catalog := b.Catalog()
	assert.Equal(t, CatalogTitle, catalog.Title())
	assert.Equal(t, expected, catalog.Markdown())
}

func TestCatalogEmptyLetter(t *testing.T) {
	r := loadRepo(t,
		fs.WithDir("a", fs.WithDir("ada", fs.WithFile("hello.adb", ""))),
		fs.WithDir("b", fs.WithDir("bash", fs.WithFile("hello.sh", ""))),
		fs.WithDir("q", fs.WithDir("misfiled", fs.WithFile("hello.ml", ""))),
		fs.WithFile("README.md", ""),
	)
	assert.DeepEqual(t, []string{"a", "b", "q"}, r.Letters())
	md := New(r, nil, "/wiki").Catalog().Markdown()
	assert.Assert(t, cmp.Contains(md, "| [A](/wiki/A) | 1 | 1 | 0 |"))
	assert.Assert(t, cmp.Contains(md, "| [Q](/wiki/Q) | 0 | 0 | 0 |"))
	assert.Assert(t, cmp.Contains(md, "| **Totals** | 3 | 3 | 0 |"))
}

func TestLetterPage(t *testing.T) {
	r := sampleRepo(t)
	checker := reach.Static{"https://sample-programs.therenegadecoder.com/languages/c": true}
	b := New(r, checker, "")
	ctx := context.TODO()
	letters := r.Letters()

	c := b.LetterPage(ctx, letters, 0)
	assert.Equal(t, "C", c.Title())
	expected := "The following table contains all the existing languages in the repository that start with the letter C:\n" +
		"\n" +
		"| Language | Article(s) | Issue(s) | Test(s) | # of Snippets |\n" +
		"| --- | --- | --- | --- | --- |\n" +
		"| [C](https://github.com/TheRenegadeCoder/sample-programs/tree/main/archive/c/c) " +
		"| [Here](https://sample-programs.therenegadecoder.com/languages/c) " +
		"| [Here](https://github.com/TheRenegadeCoder/sample-programs/issues?utf8=%E2%9C%93&q=is%3Aissue+is%3Aopen+c) " +
		"| [Here](https://github.com/TheRenegadeCoder/sample-programs/blob/main/archive/c/c/testinfo.yml) " +
		"| 2 |\n" +
		"| **Totals** |  |  |  | 2 |\n" +
		"\n" +
		"< [Previous (P)](/TheRenegadeCoder/sample-programs/wiki/P) | [Next (P)](/TheRenegadeCoder/sample-programs/wiki/P) >\n"
	assert.Equal(t, expected, c.Markdown())

	p := b.LetterPage(ctx, letters, 1).Markdown()
	assert.Assert(t, cmp.Contains(p, "| [Python](https://github.com/TheRenegadeCoder/sample-programs/tree/main/archive/p/python) |  | "))
	assert.Assert(t, cmp.Contains(p, " |  | 3 |\n"))
	assert.Assert(t, cmp.Contains(p, "| **Totals** |  |  |  | 3 |"))
}

func TestBuildWrapsAround(t *testing.T) {
	r := loadRepo(t,
		fs.WithDir("a", fs.WithDir("ada", fs.WithFile("hello.adb", ""))),
		fs.WithDir("b", fs.WithDir("bash", fs.WithFile("hello.sh", ""))),
		fs.WithDir("c", fs.WithDir("c", fs.WithFile("hello.c", ""))),
	)
	pages := New(r, reach.Never(), "/wiki/").Build(context.TODO())
	assert.Equal(t, 4, len(pages))
	assert.Equal(t, CatalogTitle, pages[0].Title())
	assert.Assert(t, cmp.Contains(pages[1].Markdown(), "[Previous (C)](/wiki/C) | [Next (B)](/wiki/B)"))
	assert.Assert(t, cmp.Contains(pages[2].Markdown(), "[Previous (A)](/wiki/A) | [Next (C)](/wiki/C)"))
	assert.Assert(t, cmp.Contains(pages[3].Markdown(), "[Previous (B)](/wiki/B) | [Next (A)](/wiki/A)"))
}

func TestProbeURLs(t *testing.T) {
	r := sampleRepo(t)
	assert.DeepEqual(t, []string{
		"https://sample-programs.therenegadecoder.com/languages/c",
		"https://sample-programs.therenegadecoder.com/languages/python",
	}, New(r, nil, "").ProbeURLs())
}
