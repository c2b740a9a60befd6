package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SampleProgram is a single code file of a [LanguageCollection].
type SampleProgram struct {
	dir      string
	fileName string
	language string
	slug     string
	urls     URLs
}

func newSampleProgram(dir, fileName, language string, urls URLs) *SampleProgram {
	return &SampleProgram{
		dir:      dir,
		fileName: fileName,
		language: language,
		slug:     Slug(fileName),
		urls:     urls,
	}
}

// Dir returns the directory containing the program.
func (p *SampleProgram) Dir() string {
	return p.dir
}

// FileName returns the file name, including the extension.
func (p *SampleProgram) FileName() string {
	return p.fileName
}

// Path returns the path of the program file.
func (p *SampleProgram) Path() string {
	return filepath.Join(p.dir, p.fileName)
}

// Language returns the identifier of the owning language.
func (p *SampleProgram) Language() string {
	return p.language
}

// NormalizedName returns the slug of the program (e.g., "bubble-sort").
func (p *SampleProgram) NormalizedName() string {
	return p.slug
}

// ReadableName returns the slug as Title Case words (e.g., "Bubble Sort").
func (p *SampleProgram) ReadableName() string {
	return titleCase(strings.ReplaceAll(p.slug, "-", " "))
}

// Size returns the size of the program file in bytes.
func (p *SampleProgram) Size() (int64, error) {
	st, err := os.Stat(p.Path())
	if err != nil {
		return 0, fmt.Errorf("failed to stat sample program: %w", err)
	}
	return st.Size(), nil
}

// DocURL returns the URL of the article documenting this program in this language.
func (p *SampleProgram) DocURL() string {
	return fmt.Sprintf("%s/projects/%s/%s", p.urls.Docs, p.slug, p.language)
}

// RequirementsURL returns the URL of the project requirements page.
func (p *SampleProgram) RequirementsURL() string {
	return fmt.Sprintf("%s/projects/%s", p.urls.Docs, p.slug)
}

// IssueURL returns an issue search for article requests about this program.
func (p *SampleProgram) IssueURL() string {
	return p.urls.Issues + strings.ReplaceAll(p.slug, "-", "+") + "+" + p.language
}

var camelWord = regexp.MustCompile(`[a-zA-Z][^A-Z]*`)

// Slug derives the normalized name of a sample program from its file name.
//
//	bubble-sort.py   -> bubble-sort
//	bubble_sort.py   -> bubble-sort
//	BubbleSort.java  -> bubble-sort
func Slug(fileName string) string {
	stem, _ := splitExt(fileName)
	switch {
	case strings.Contains(stem, "-"):
		return stem
	case strings.Contains(stem, "_"):
		return strings.ReplaceAll(stem, "_", "-")
	default:
		return strings.ToLower(strings.Join(camelWord.FindAllString(stem, -1), "-"))
	}
}

// splitExt splits name into a stem and an extension.
// Leading dots belong to the stem, so ".gitignore" has no extension.
func splitExt(name string) (stem, ext string) {
	lead := len(name) - len(strings.TrimLeft(name, "."))
	i := strings.LastIndex(name[lead:], ".")
	if i < 0 {
		return name, ""
	}
	i += lead
	return name[:i], name[i:]
}
