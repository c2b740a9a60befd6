package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

func sourceTree(t *testing.T) string {
	t.Helper()
	dir := fs.NewDir(t, "archive",
		fs.WithDir("c",
			fs.WithDir("c",
				fs.WithFile("hello-world.c", "int main(void) { return 0; }\n"),
				fs.WithFile("baklava.c", "int main(void) { return 0; }\n"),
				fs.WithFile("testinfo.yml", "container:\n  image: gcc\n  tag: \"8.3\"\n"),
			),
		),
		fs.WithDir("p",
			fs.WithDir("python",
				fs.WithFile("hello_world.py", "print('Hello, World!')\n"),
			),
		),
	)
	t.Cleanup(dir.Remove)
	return dir.Path()
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.TODO())
	return out.String(), err
}

func TestMissingSource(t *testing.T) {
	for _, sub := range []string{"wiki", "readmes", "stats"} {
		t.Run(sub, func(t *testing.T) {
			_, err := execute(t, sub)
			assert.ErrorContains(t, err, "please supply an input path")
			assert.ErrorContains(t, err, "docsgen "+sub)
		})
	}
}

func TestStats(t *testing.T) {
	out, err := execute(t, "stats", sourceTree(t))
	assert.NilError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, 3, len(lines))

	var c map[string]any
	assert.NilError(t, json.Unmarshal([]byte(lines[0]), &c))
	assert.Equal(t, "c", c["name"])
	assert.Equal(t, float64(2), c["snippets"])
	assert.Equal(t, true, c["tested"])
	assert.Equal(t, `{"totals":{"languages":2,"snippets":3,"tested":1}}`, lines[2])
}

func TestWikiOffline(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wiki")
	_, err := execute(t, "wiki", "--offline", "--output", out, sourceTree(t))
	assert.NilError(t, err)
	b, err := os.ReadFile(filepath.Join(out, "alphabetical-language-catalog.md"))
	assert.NilError(t, err)
	assert.Assert(t, cmp.Contains(string(b), "| **Totals** | 2 | 3 | 1 |"))
	_, err = os.Stat(filepath.Join(out, "p.md"))
	assert.NilError(t, err)
}

func TestReadmesOffline(t *testing.T) {
	out := t.TempDir()
	_, err := execute(t, "readmes", "--offline", "-o", out, "--format", "html", sourceTree(t))
	assert.NilError(t, err)
	b, err := os.ReadFile(filepath.Join(out, "c", "c", "readme.html"))
	assert.NilError(t, err)
	assert.Assert(t, cmp.Contains(string(b), "Sample Programs in C"))
}

func TestUnknownFormat(t *testing.T) {
	_, err := execute(t, "wiki", "--offline", "--format", "pdf", sourceTree(t))
	assert.ErrorContains(t, err, `unknown format "pdf"`)
}

func TestPreview(t *testing.T) {
	dir := fs.NewDir(t, "preview", fs.WithFile("page.md", "# Title\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n"))
	defer dir.Remove()
	out, err := execute(t, "preview", dir.Join("page.md"))
	assert.NilError(t, err)
	assert.Assert(t, cmp.Contains(out, "<h1>Title</h1>"))
	assert.Assert(t, cmp.Contains(out, "<td>1</td>"))
}
