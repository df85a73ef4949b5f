package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/toolatlas/internal/directory"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the YAML seed document.
type Catalog struct {
	Categories []CategoryFixture `yaml:"categories"`
	Tools      []ToolFixture     `yaml:"tools"`
	Workflows  []WorkflowFixture `yaml:"workflows"`
}

// CategoryFixture seeds one category.
type CategoryFixture struct {
	Slug     string            `yaml:"slug"`
	Names    map[string]string `yaml:"names"`
	Position int               `yaml:"position"`
}

// ToolFixture seeds one tool.
type ToolFixture struct {
	Slug     string            `yaml:"slug"`
	Name     string            `yaml:"name"`
	URL      string            `yaml:"url"`
	Category string            `yaml:"category"`
	Pricing  string            `yaml:"pricing"`
	Summary  map[string]string `yaml:"summary"`
	Tags     []string          `yaml:"tags"`
	Featured bool              `yaml:"featured"`
}

// WorkflowFixture seeds one workflow. Steps are numbered in file order.
type WorkflowFixture struct {
	Slug  string            `yaml:"slug"`
	Title map[string]string `yaml:"title"`
	Steps []StepFixture     `yaml:"steps"`
}

// StepFixture seeds one workflow step.
type StepFixture struct {
	Tool string            `yaml:"tool"`
	Note map[string]string `yaml:"note"`
}

// DefaultCatalog returns the embedded starter catalog.
func DefaultCatalog() (Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()
	catalog, err := Load(file)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// Load decodes a catalog and rejects unknown fields.
func Load(r io.Reader) (Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

// Category converts the fixture to a directory category.
func (f CategoryFixture) Category() directory.Category {
	return directory.Category{Slug: f.Slug, Names: f.Names, Position: f.Position}
}

// Tool converts the fixture to a directory tool.
func (f ToolFixture) Tool() directory.Tool {
	return directory.Tool{
		Slug:         f.Slug,
		Name:         f.Name,
		URL:          f.URL,
		CategorySlug: f.Category,
		Pricing:      directory.Pricing(f.Pricing),
		Summary:      f.Summary,
		Tags:         f.Tags,
		Featured:     f.Featured,
	}
}

// Workflow converts the fixture to a directory workflow.
func (f WorkflowFixture) Workflow() directory.Workflow {
	workflow := directory.Workflow{Slug: f.Slug, Title: f.Title}
	for i, step := range f.Steps {
		workflow.Steps = append(workflow.Steps, directory.WorkflowStep{Position: i + 1, ToolSlug: step.Tool, Note: step.Note})
	}
	return workflow
}
