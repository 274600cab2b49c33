// Package rubric implements the classification rubric store. The rubric is a
// JSON document mapping category names to judging criteria, loaded once at
// startup and immutable for the process lifetime.
package rubric

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
)

// ErrEmptyRubric indicates the rubric document defines no categories.
var ErrEmptyRubric = errors.New("rubric defines no categories")

// Store holds the loaded rubric document.
type Store struct {
	document   string
	categories []string
}

// Load reads and parses the rubric document at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rubric %s: %w", path, err)
	}

	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyRubric, path)
	}

	// Re-marshal indented so the prompt embeds a stable, readable form
	// regardless of the source file's formatting.
	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render rubric: %w", err)
	}

	categories := make([]string, 0, len(doc))
	for name := range doc {
		categories = append(categories, name)
	}
	slices.Sort(categories)

	return &Store{
		document:   string(pretty),
		categories: categories,
	}, nil
}

// Document returns the rubric as indented JSON for prompt embedding.
func (s *Store) Document() string {
	return s.document
}

// Categories returns the sorted category names defined by the rubric.
func (s *Store) Categories() []string {
	return slices.Clone(s.categories)
}
