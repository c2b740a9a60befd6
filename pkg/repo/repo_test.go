package repo

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
	tfs "gotest.tools/v3/fs"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"bubble-sort.py", "bubble-sort"},
		{"bubble_sort.py", "bubble-sort"},
		{"BubbleSort.java", "bubble-sort"},
		{"helloWorld.kt", "hello-world"},
		{"fizz-buzz_test.go", "fizz-buzz_test"},
		{"baklava.c", "baklava"},
		{"FizzBuzz2.java", "fizz-buzz2"},
		{"ROT13.java", "r-o-t13"},
		{"Main", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.file))
		})
	}
}

func TestSlugIdempotent(t *testing.T) {
	for _, file := range []string{"bubble_sort.py", "BubbleSort.java", "hello-world.c", "ROT13.java", "Main.java"} {
		slug := Slug(file)
		assert.Equal(t, slug, Slug(slug+".rs"), "file=%s", file)
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name      string
		stem, ext string
	}{
		{"hello.c", "hello", ".c"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".gitignore", ".gitignore", ""},
		{"..hidden.txt", "..hidden", ".txt"},
		{"Makefile", "Makefile", ""},
		{"README", "README", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := splitExt(tt.name)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestReadableName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"c-sharp", "C#"},
		{"google-apps-script", "Google Apps Script"},
		{"c-star", `C\*`},
		{"c-plus-plus", "C++"},
		{"python", "Python"},
		{"x86-64", "X86 64"},
		{"f-sharp", "F#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadableName(tt.name))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		file string
		want Category
	}{
		{"testinfo.yml", CategoryTestDescriptor},
		{"TESTINFO.YML", CategoryTestDescriptor},
		{"README.md", CategoryReadme},
		{"README", CategoryReadme},
		{"readme.md", CategoryIgnored},
		{"notes.md", CategoryIgnored},
		{"Makefile", CategoryIgnored},
		{".gitignore", CategoryIgnored},
		{"hello-world.py", CategorySample},
		{"Dockerfile.txt", CategorySample},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.file))
		})
	}
}

func TestNewLanguageCollection(t *testing.T) {
	dir := tfs.NewDir(t, "lang",
		tfs.WithFile("hello-world.py", "print('Hello, World!')\n"),
		tfs.WithFile("bubble_sort.py", "pass\n"),
		tfs.WithFile("Baklava.py", "x = 1\n"),
		tfs.WithFile("testinfo.yml", "container:\n  image: python\n  tag: 3.12-alpine\n"),
		tfs.WithFile("old.yml", ""),
		tfs.WithFile("README.md", "# Python\n"),
		tfs.WithFile("NOTES.md", ""),
		tfs.WithFile("Makefile", ""),
	)
	defer dir.Remove()
	files := []string{
		"hello-world.py", "bubble_sort.py", "Baklava.py", "testinfo.yml",
		"old.yml", "README.md", "NOTES.md", "Makefile",
	}

	lc, err := NewLanguageCollection("python", dir.Path(), files)
	assert.NilError(t, err)

	var names []string
	for _, p := range lc.Programs() {
		names = append(names, p.NormalizedName())
	}
	assert.DeepEqual(t, []string{"baklava", "bubble-sort", "hello-world"}, names)
	assert.Equal(t, 3, lc.TotalPrograms())
	assert.Equal(t, int64(len("print('Hello, World!')\n")+len("pass\n")+len("x = 1\n")), lc.TotalBytes())
	assert.Equal(t, "testinfo.yml", lc.TestDescriptorName())
	assert.Equal(t, filepath.Join(dir.Path(), "testinfo.yml"), lc.TestDescriptor())
	assert.Equal(t, filepath.Join(dir.Path(), "README.md"), lc.Readme())
	assert.Assert(t, cmp.Contains(lc.Ignored(), "old.yml"))

	// every file lands in exactly one category
	classified := lc.TotalPrograms() + len(lc.Ignored())
	if lc.HasTests() {
		classified++
	}
	if lc.Readme() != "" {
		classified++
	}
	assert.Equal(t, len(files), classified)

	ti, err := lc.TestInfo()
	assert.NilError(t, err)
	assert.Equal(t, "python", ti.Container.Image)
	assert.Equal(t, "3.12-alpine", ti.Container.Tag)
}

func TestNewLanguageCollectionMissingFile(t *testing.T) {
	dir := tfs.NewDir(t, "lang", tfs.WithFile("hello.c", "int main(){}\n"))
	defer dir.Remove()
	_, err := NewLanguageCollection("c", dir.Path(), []string{"hello.c", "ghost.c"})
	assert.Assert(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestSampleProgramURLs(t *testing.T) {
	p := newSampleProgram("/src/p/python", "bubble_sort.py", "python", DefaultURLs())
	assert.Equal(t, "https://sample-programs.therenegadecoder.com/projects/bubble-sort/python", p.DocURL())
	assert.Equal(t, "https://sample-programs.therenegadecoder.com/projects/bubble-sort", p.RequirementsURL())
	assert.Equal(t, "https://github.com/TheRenegadeCoder/sample-programs-website/issues?utf8=%E2%9C%93&q=is%3Aissue+is%3Aopen+bubble+sort+python", p.IssueURL())
	assert.Equal(t, "Bubble Sort", p.ReadableName())
}

func sampleTree(t *testing.T) *tfs.Dir {
	return tfs.NewDir(t, "archive",
		tfs.WithDir("c",
			tfs.WithDir("c",
				tfs.WithFile("hello-world.c", "#include <stdio.h>\n"),
				tfs.WithFile("baklava.c", "int main(void) {}\n"),
				tfs.WithFile("testinfo.yml", "container:\n  image: gcc\n  tag: 8.3\n"),
			),
			tfs.WithDir("c-sharp",
				tfs.WithFile("README.md", "# C#\n"),
			),
		),
		tfs.WithDir("p",
			tfs.WithDir("python",
				tfs.WithFile("hello_world.py", "print()\n"),
				tfs.WithFile("FizzBuzz.py", "pass\n"),
				tfs.WithFile("baklava.py", "pass\n"),
			),
		),
		tfs.WithDir("z"),
	)
}

func TestLoad(t *testing.T) {
	dir := sampleTree(t)
	defer dir.Remove()

	r, err := Load(dir.Path())
	assert.NilError(t, err)

	var names []string
	sum := 0
	tested := 0
	for _, lc := range r.Languages() {
		names = append(names, lc.Name())
		sum += lc.TotalPrograms()
		if lc.TestDescriptor() != "" {
			tested++
		}
	}
	// the empty "z" letter directory is a leaf, hence a language
	assert.DeepEqual(t, []string{"c", "c-sharp", "python", "z"}, names)
	assert.Equal(t, 4, r.TotalLanguages())
	assert.Equal(t, 5, r.TotalPrograms())
	assert.Equal(t, sum, r.TotalPrograms())
	assert.Equal(t, 1, r.TotalTested())
	assert.Equal(t, tested, r.TotalTested())
	assert.DeepEqual(t, []string{"c", "p", "z"}, r.Letters())

	csharp, ok := r.Lookup("c-sharp")
	assert.Assert(t, ok)
	assert.Equal(t, 0, csharp.TotalPrograms())
	assert.Equal(t, "c/c-sharp", csharp.RelPath())
	assert.Equal(t, "https://github.com/TheRenegadeCoder/sample-programs/tree/main/archive/c/c-sharp", csharp.RepoURL())

	c, ok := r.Lookup("c")
	assert.Assert(t, ok)
	assert.Equal(t, "https://github.com/TheRenegadeCoder/sample-programs/blob/main/archive/c/c/testinfo.yml", c.TestInfoURL())
	assert.Equal(t, "c;2;"+strconv.Itoa(len("#include <stdio.h>\n")+len("int main(void) {}\n")), c.String())

	var byC []string
	for _, lc := range r.LanguagesByLetter("c") {
		byC = append(byC, lc.Name())
	}
	assert.DeepEqual(t, []string{"c", "c-sharp"}, byC)
	assert.Equal(t, 0, len(r.LanguagesByLetter("C")))
}

func TestLoadSortsCaseInsensitively(t *testing.T) {
	dir := tfs.NewDir(t, "archive",
		tfs.WithDir("Python", tfs.WithFile("a.py", "")),
		tfs.WithDir("ada", tfs.WithFile("a.adb", "")),
		tfs.WithDir("Zig", tfs.WithFile("a.zig", "")),
	)
	defer dir.Remove()

	r, err := Load(dir.Path())
	assert.NilError(t, err)
	var names []string
	for _, lc := range r.Languages() {
		names = append(names, lc.Name())
	}
	assert.DeepEqual(t, []string{"ada", "Python", "Zig"}, names)
}

func TestLoadReadmeOnly(t *testing.T) {
	dir := tfs.NewDir(t, "archive",
		tfs.WithDir("r", tfs.WithDir("rust", tfs.WithFile("README.md", "# Rust\n"))),
	)
	defer dir.Remove()

	r, err := Load(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, 1, r.TotalLanguages())
	assert.Equal(t, 0, r.TotalPrograms())
	assert.Equal(t, 0, r.Languages()[0].TotalPrograms())
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Assert(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestWithURLs(t *testing.T) {
	dir := sampleTree(t)
	defer dir.Remove()

	r, err := Load(dir.Path(), WithURLs(URLs{
		Docs: "https://docs.example.com/",
		Repo: "https://git.example.com/samples",
	}))
	assert.NilError(t, err)
	py, ok := r.Lookup("python")
	assert.Assert(t, ok)
	assert.Equal(t, "https://docs.example.com/languages/python", py.DocsURL())
	assert.Equal(t, "https://git.example.com/samples/tree/main/p/python", py.RepoURL())
	assert.Equal(t, "https://docs.example.com/projects/baklava/python", py.Programs()[0].DocURL())
}
