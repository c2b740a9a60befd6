package repo

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Category is the classification of a file in a language directory.
type Category int

const (
	CategoryIgnored Category = iota
	CategorySample
	CategoryTestDescriptor
	CategoryReadme
)

func (c Category) String() string {
	switch c {
	case CategorySample:
		return "sample"
	case CategoryTestDescriptor:
		return "test-descriptor"
	case CategoryReadme:
		return "readme"
	default:
		return "ignored"
	}
}

// Classify returns the category of a file found in a language directory.
// Rules are evaluated in order: a ".yml" extension (any case) is a test
// descriptor, a "README" stem is a readme, any other non-empty extension
// except ".md" is a sample program, and everything else is ignored.
func Classify(fileName string) Category {
	stem, ext := splitExt(fileName)
	ext = strings.ToLower(ext)
	switch {
	case ext == ".yml":
		return CategoryTestDescriptor
	case stem == "README":
		return CategoryReadme
	case ext != "" && ext != ".md":
		return CategorySample
	default:
		return CategoryIgnored
	}
}

// LanguageCollection is the set of files found in a single leaf directory.
// It is immutable once constructed.
type LanguageCollection struct {
	name       string
	dir        string
	rel        string
	files      []string
	programs   []*SampleProgram
	testFile   string
	readme     string
	ignored    []string
	totalBytes int64
	urls       URLs
}

// NewLanguageCollection classifies files, which must be the names of the
// files directly inside dir, and computes the collection totals.
// Failing to stat a sample program is fatal.
func NewLanguageCollection(name, dir string, files []string, o ...Opt) (*LanguageCollection, error) {
	opts := opts{urls: DefaultURLs()}
	for _, f := range o {
		if err := f(&opts); err != nil {
			return nil, err
		}
	}
	opts.setDefaults()
	return newLanguageCollection(name, dir, files, opts)
}

func newLanguageCollection(name, dir string, files []string, opts opts) (*LanguageCollection, error) {
	lc := &LanguageCollection{
		name:  name,
		dir:   dir,
		rel:   name,
		files: slices.Clone(files),
		urls:  opts.urls,
	}
	if opts.root != "" {
		if rel, err := filepath.Rel(opts.root, dir); err == nil && rel != "." {
			lc.rel = filepath.ToSlash(rel)
		}
	}
	var tests, readmes []string
	for _, f := range lc.files {
		switch Classify(f) {
		case CategoryTestDescriptor:
			tests = append(tests, f)
		case CategoryReadme:
			readmes = append(readmes, f)
		case CategorySample:
			lc.programs = append(lc.programs, newSampleProgram(dir, f, name, opts.urls))
		default:
			lc.ignored = append(lc.ignored, f)
		}
	}
	// Duplicates are not an error: the lexicographically last one wins
	// and the others are ignored.
	lc.testFile, tests = pickLast(tests)
	if len(tests) > 0 {
		slog.Warn("multiple test descriptors", "language", name, "using", lc.testFile, "ignored", tests)
	}
	lc.ignored = append(lc.ignored, tests...)
	lc.readme, readmes = pickLast(readmes)
	lc.ignored = append(lc.ignored, readmes...)

	for _, p := range lc.programs {
		size, err := p.Size()
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", name, err)
		}
		lc.totalBytes += size
	}
	slices.SortStableFunc(lc.programs, func(a, b *SampleProgram) int {
		if c := compareFold(a.slug, b.slug); c != 0 {
			return c
		}
		return strings.Compare(a.fileName, b.fileName)
	})
	return lc, nil
}

func pickLast(names []string) (string, []string) {
	if len(names) == 0 {
		return "", nil
	}
	slices.Sort(names)
	return names[len(names)-1], names[:len(names)-1]
}

// Name returns the language identifier, which is the directory basename (e.g., "c-sharp").
func (lc *LanguageCollection) Name() string {
	return lc.name
}

// Path returns the language directory.
func (lc *LanguageCollection) Path() string {
	return lc.dir
}

// RelPath returns the slash-separated language directory relative to the repo root (e.g., "c/c-sharp").
func (lc *LanguageCollection) RelPath() string {
	return lc.rel
}

// FirstLetter returns the first character of the identifier.
func (lc *LanguageCollection) FirstLetter() string {
	for _, r := range lc.name {
		return string(r)
	}
	return ""
}

// Files returns every file name found in the directory.
func (lc *LanguageCollection) Files() []string {
	return slices.Clone(lc.files)
}

// Programs returns the sample programs sorted by normalized name.
func (lc *LanguageCollection) Programs() []*SampleProgram {
	return slices.Clone(lc.programs)
}

// Ignored returns the files that were not classified as a sample program,
// the test descriptor, or the readme.
func (lc *LanguageCollection) Ignored() []string {
	return slices.Clone(lc.ignored)
}

// TestDescriptor returns the path of the test descriptor, or "".
func (lc *LanguageCollection) TestDescriptor() string {
	if lc.testFile == "" {
		return ""
	}
	return filepath.Join(lc.dir, lc.testFile)
}

// TestDescriptorName returns the file name of the test descriptor, or "".
func (lc *LanguageCollection) TestDescriptorName() string {
	return lc.testFile
}

// HasTests reports whether the collection has a test descriptor.
func (lc *LanguageCollection) HasTests() bool {
	return lc.testFile != ""
}

// Readme returns the path of the readme, or "".
func (lc *LanguageCollection) Readme() string {
	if lc.readme == "" {
		return ""
	}
	return filepath.Join(lc.dir, lc.readme)
}

// TotalPrograms returns the number of sample programs.
func (lc *LanguageCollection) TotalPrograms() int {
	return len(lc.programs)
}

// TotalBytes returns the summed size of the sample programs.
func (lc *LanguageCollection) TotalBytes() int64 {
	return lc.totalBytes
}

// ReadableName returns the display name (e.g., "C#").
func (lc *LanguageCollection) ReadableName() string {
	return ReadableName(lc.name)
}

// DocsURL returns the language page on the documentation website.
func (lc *LanguageCollection) DocsURL() string {
	return lc.urls.Docs + "/languages/" + lc.name
}

// RepoURL returns the language directory in the repository browser.
func (lc *LanguageCollection) RepoURL() string {
	return fmt.Sprintf("%s/tree/%s/%s", lc.urls.Repo, lc.urls.Branch, lc.archivePath())
}

// TestInfoURL returns the test descriptor in the repository browser, or "".
func (lc *LanguageCollection) TestInfoURL() string {
	if lc.testFile == "" {
		return ""
	}
	return fmt.Sprintf("%s/blob/%s/%s/%s", lc.urls.Repo, lc.urls.Branch, lc.archivePath(), lc.testFile)
}

// IssuesURL returns an issue search for this language in the repository.
func (lc *LanguageCollection) IssuesURL() string {
	return lc.urls.Repo + "/issues?utf8=%E2%9C%93&q=is%3Aissue+is%3Aopen+" + strings.ReplaceAll(lc.name, "-", "+")
}

func (lc *LanguageCollection) archivePath() string {
	if lc.urls.Archive == "" {
		return lc.rel
	}
	return lc.urls.Archive + "/" + lc.rel
}

// TestInfo reads the test descriptor.
// TestInfo returns nil without an error when the collection has no test descriptor.
func (lc *LanguageCollection) TestInfo() (*TestInfo, error) {
	if lc.testFile == "" {
		return nil, nil
	}
	return ReadTestInfo(lc.TestDescriptor())
}

func (lc *LanguageCollection) String() string {
	return lc.name + ";" + strconv.Itoa(len(lc.programs)) + ";" + strconv.FormatInt(lc.totalBytes, 10)
}
