package survey

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_schema.yaml
var defaultSchemaYAML []byte

// Category is one named slice of the ordered question list. Size is the
// number of consecutive questions the category claims.
type Category struct {
	Name       string `yaml:"name"`
	SlideTitle string `yaml:"slide_title,omitempty"`
	Size       int    `yaml:"size"`
}

// Schema is the static description of one survey version: which columns are
// reserved metadata and how the remaining ordered questions partition into
// categories. It is constructed once and treated as read-only afterwards.
type Schema struct {
	Version         string     `yaml:"version"`
	TimestampColumn string     `yaml:"timestamp_column"`
	IdentityColumn  string     `yaml:"identity_column"`
	Categories      []Category `yaml:"categories"`
}

// DefaultSchema returns the embedded schema for the current survey revision.
func DefaultSchema() *Schema {
	schema, err := parseSchema(defaultSchemaYAML)
	if err != nil {
		// The embedded schema is validated by tests; failing here means the
		// binary itself is broken.
		panic(fmt.Sprintf("embedded schema invalid: %v", err))
	}
	return schema
}

// LoadSchema reads a schema YAML from disk, falling back to the embedded
// default when path is empty.
func LoadSchema(path string) (*Schema, error) {
	if path == "" {
		return DefaultSchema(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	schema, err := parseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return schema, nil
}

func parseSchema(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

func (s *Schema) Validate() error {
	if s.TimestampColumn == "" || s.IdentityColumn == "" {
		return fmt.Errorf("schema: timestamp_column and identity_column are required")
	}
	if len(s.Categories) == 0 {
		return fmt.Errorf("schema: at least one category is required")
	}
	seen := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c.Name == "" {
			return fmt.Errorf("schema: category with empty name")
		}
		if c.Size <= 0 {
			return fmt.Errorf("schema: category %q has non-positive size %d", c.Name, c.Size)
		}
		if seen[c.Name] {
			return fmt.Errorf("schema: duplicate category %q", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// QuestionCount is the number of questions the category slicing expects.
func (s *Schema) QuestionCount() int {
	total := 0
	for _, c := range s.Categories {
		total += c.Size
	}
	return total
}

// SlideTitles maps each slide title placeholder text to its category name.
// Categories without an explicit slide_title match their own name.
func (s *Schema) SlideTitles() map[string]string {
	titles := make(map[string]string, len(s.Categories))
	for _, c := range s.Categories {
		title := c.SlideTitle
		if title == "" {
			title = c.Name
		}
		titles[title] = c.Name
	}
	return titles
}

// IsMetadata reports whether the raw column is one of the two reserved
// metadata columns.
func (s *Schema) IsMetadata(column string) bool {
	return column == s.TimestampColumn || column == s.IdentityColumn
}
