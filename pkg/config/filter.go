package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// FilterConfig selects tasks by id glob patterns. A task runs when it
// matches at least one include pattern (an empty include list matches
// everything) and no exclude pattern. Filtered-out tasks are recorded
// as skipped, never silently dropped.
type FilterConfig struct {
	Include []string `yaml:"include" json:"include,omitempty"`
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`
}

// TaskFilter is a compiled FilterConfig.
type TaskFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// Compile compiles the filter patterns. Invalid patterns are load-time
// errors.
func (f FilterConfig) Compile() (*TaskFilter, error) {
	filter := &TaskFilter{}

	for _, pattern := range f.Include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		filter.include = append(filter.include, g)
	}

	for _, pattern := range f.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.exclude = append(filter.exclude, g)
	}

	return filter, nil
}

// Match reports whether a task id passes the filter.
func (f *TaskFilter) Match(id string) bool {
	for _, g := range f.exclude {
		if g.Match(id) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(id) {
			return true
		}
	}
	return false
}
