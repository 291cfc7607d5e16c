// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-history/pkg/types"
)

// InputFile is the on-disk list of articles to resolve. Each article carries
// its DYK template already split into positional and named parameters.
type InputFile struct {
	Articles []InputArticle `yaml:"articles"`
}

// InputArticle is one article and its DYK template.
type InputArticle struct {
	Title    string         `yaml:"title"`
	Template types.Template `yaml:"template"`
}

// ReadInputFile loads and validates a batch input file.
func ReadInputFile(path string) (*InputFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	var f InputFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing input file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("input file %s: %w", path, err)
	}
	return &f, nil
}

// WriteInputFile saves f to path as YAML.
func WriteInputFile(path string, f *InputFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling input file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every article has a unique, non-blank title.
func (f *InputFile) Validate() error {
	seen := make(map[string]int, len(f.Articles))
	for i, a := range f.Articles {
		if strings.TrimSpace(a.Title) == "" {
			return fmt.Errorf("article %d has no title", i+1)
		}
		if prev, ok := seen[a.Title]; ok {
			return fmt.Errorf("article %q listed twice (entries %d and %d)", a.Title, prev+1, i+1)
		}
		seen[a.Title] = i
	}
	return nil
}

// Jobs converts the file's articles into batch jobs, in file order.
func (f *InputFile) Jobs() []Job {
	jobs := make([]Job, len(f.Articles))
	for i, a := range f.Articles {
		jobs[i] = Job{Article: a.Title, Template: a.Template}
	}
	return jobs
}
