package scanner

import (
	"fmt"
	"sort"

	"NewsScanner/internal/ports"
)

// Registry keeps a mapping from extractor names to their implementations.
type Registry struct {
	extractors map[string]ports.ArticleExtractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]ports.ArticleExtractor{}}
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(extractor ports.ArticleExtractor) {
	if r.extractors == nil {
		r.extractors = map[string]ports.ArticleExtractor{}
	}
	r.extractors[extractor.Name()] = extractor
}

// Resolve returns an extractor by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.ArticleExtractor, error) {
	if extractor, ok := r.extractors[name]; ok {
		return extractor, nil
	}
	return nil, fmt.Errorf("extractor %s is not registered (known: %v)", name, r.Names())
}

// Names lists registered extractors alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
