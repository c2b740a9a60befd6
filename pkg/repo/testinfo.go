package repo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TestInfo is the content of a test descriptor (testinfo.yml).
type TestInfo struct {
	Folder    Folder    `yaml:"folder"`
	Container Container `yaml:"container"`
}

type Folder struct {
	Extension string `yaml:"extension,omitempty"`
	Naming    string `yaml:"naming,omitempty"`
}

type Container struct {
	Image string `yaml:"image,omitempty"`
	Tag   string `yaml:"tag,omitempty"`
	Cmd   string `yaml:"cmd,omitempty"`
}

// MissingFieldError is returned when a test descriptor lacks a required field.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Path, e.Field)
}

// ReadTestInfo reads and validates the test descriptor at path.
func ReadTestInfo(path string) (*TestInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test descriptor: %w", err)
	}
	return ParseTestInfo(path, b)
}

// ParseTestInfo parses a test descriptor. path is only used for error messages.
// container.image and container.tag must be present and non-empty.
func ParseTestInfo(path string, b []byte) (*TestInfo, error) {
	var ti TestInfo
	if err := yaml.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if ti.Container.Image == "" {
		return nil, &MissingFieldError{Path: path, Field: "container.image"}
	}
	if ti.Container.Tag == "" {
		return nil, &MissingFieldError{Path: path, Field: "container.tag"}
	}
	return &ti, nil
}
