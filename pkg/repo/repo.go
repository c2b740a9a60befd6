// Package repo models a sample programs archive: one [LanguageCollection]
// per leaf directory, each holding its [SampleProgram] files.
//
// The model is built once by [Load] and is read-only afterwards.
package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// URLs holds the bases that derived links are built from.
type URLs struct {
	// Docs is the documentation website (e.g., "https://sample-programs.therenegadecoder.com").
	Docs string
	// Issues is an issue search prefix; query terms are appended to it.
	Issues string
	// Repo is the repository browser (e.g., "https://github.com/TheRenegadeCoder/sample-programs").
	Repo string
	// Branch is the branch used for repository links.
	Branch string
	// Archive is the directory of the source tree inside the repository.
	Archive string
}

func DefaultURLs() URLs {
	return URLs{
		Docs:    "https://sample-programs.therenegadecoder.com",
		Issues:  "https://github.com/TheRenegadeCoder/sample-programs-website/issues?utf8=%E2%9C%93&q=is%3Aissue+is%3Aopen+",
		Repo:    "https://github.com/TheRenegadeCoder/sample-programs",
		Branch:  "main",
		Archive: "archive",
	}
}

type opts struct {
	urls URLs
	root string
}

func (o *opts) setDefaults() {
	def := DefaultURLs()
	if o.urls.Docs == "" {
		o.urls.Docs = def.Docs
	}
	if o.urls.Issues == "" {
		o.urls.Issues = def.Issues
	}
	if o.urls.Repo == "" {
		o.urls.Repo = def.Repo
	}
	if o.urls.Branch == "" {
		o.urls.Branch = def.Branch
	}
	o.urls.Docs = strings.TrimSuffix(o.urls.Docs, "/")
	o.urls.Repo = strings.TrimSuffix(o.urls.Repo, "/")
	o.urls.Archive = strings.Trim(o.urls.Archive, "/")
}

type Opt func(*opts) error

// WithURLs sets the link bases. Empty fields fall back to [DefaultURLs],
// except Archive, which may be empty.
func WithURLs(urls URLs) Opt {
	return func(opts *opts) error {
		opts.urls = urls
		return nil
	}
}

// WithRoot sets the directory that [LanguageCollection.RelPath] is relative to.
// [Load] sets it to the source directory.
func WithRoot(root string) Opt {
	return func(opts *opts) error {
		opts.root = root
		return nil
	}
}

// Repo is the model of a source tree.
type Repo struct {
	opts
	dir           string
	languages     []*LanguageCollection
	letters       []string
	totalPrograms int
	totalTested   int
}

// Load walks dir and builds a [LanguageCollection] for every directory
// without subdirectories. Empty leaf directories become collections
// with zero programs.
func Load(dir string, o ...Opt) (*Repo, error) {
	r := &Repo{
		dir: filepath.Clean(dir),
	}
	r.opts.urls = DefaultURLs()
	for _, f := range o {
		if err := f(&r.opts); err != nil {
			return nil, err
		}
	}
	r.opts.root = r.dir
	r.opts.setDefaults()

	if err := r.walk(r.dir); err != nil {
		return nil, err
	}
	slices.SortStableFunc(r.languages, func(a, b *LanguageCollection) int {
		return compareFold(a.name, b.name)
	})
	for _, lc := range r.languages {
		r.totalPrograms += lc.TotalPrograms()
		if lc.HasTests() {
			r.totalTested++
		}
	}
	letters, err := topLevelDirs(r.dir)
	if err != nil {
		return nil, err
	}
	r.letters = letters
	return r, nil
}

func (r *Repo) walk(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	var (
		subdirs []string
		files   []string
		leaf    = true
	)
	for _, e := range entries {
		switch {
		case e.IsDir():
			subdirs = append(subdirs, e.Name())
			leaf = false
		case e.Type()&fs.ModeSymlink != 0 && isDir(filepath.Join(dir, e.Name())):
			// listed as a subdirectory but not followed
			leaf = false
		default:
			files = append(files, e.Name())
		}
	}
	if leaf {
		lc, err := newLanguageCollection(filepath.Base(dir), dir, files, r.opts)
		if err != nil {
			return err
		}
		r.languages = append(r.languages, lc)
	}
	for _, sub := range subdirs {
		if err := r.walk(filepath.Join(dir, sub)); err != nil {
			return err
		}
	}
	return nil
}

func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

func topLevelDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var res []string
	for _, e := range entries {
		if e.IsDir() {
			res = append(res, e.Name())
		}
	}
	slices.SortStableFunc(res, compareFold)
	return res, nil
}

// Dir returns the source directory.
func (r *Repo) Dir() string {
	return r.dir
}

// Languages returns the collections sorted case-insensitively by identifier.
func (r *Repo) Languages() []*LanguageCollection {
	return slices.Clone(r.languages)
}

// TotalLanguages returns the number of collections, including empty ones.
func (r *Repo) TotalLanguages() int {
	return len(r.languages)
}

// TotalPrograms returns the number of sample programs across all collections.
func (r *Repo) TotalPrograms() int {
	return r.totalPrograms
}

// TotalTested returns the number of collections with a test descriptor.
func (r *Repo) TotalTested() int {
	return r.totalTested
}

// Letters returns the names of the top-level directories of the source tree,
// sorted case-insensitively. A letter may have no matching collection.
func (r *Repo) Letters() []string {
	return slices.Clone(r.letters)
}

// LanguagesByLetter returns the collections whose identifier starts with letter.
// The comparison is case-sensitive.
func (r *Repo) LanguagesByLetter(letter string) []*LanguageCollection {
	var res []*LanguageCollection
	for _, lc := range r.languages {
		if strings.HasPrefix(lc.name, letter) {
			res = append(res, lc)
		}
	}
	return res
}

// Lookup returns the collection with the given identifier.
func (r *Repo) Lookup(name string) (*LanguageCollection, bool) {
	for _, lc := range r.languages {
		if lc.name == name {
			return lc, true
		}
	}
	return nil, false
}
