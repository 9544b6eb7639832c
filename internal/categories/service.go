package categories

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/spendtrack/spendtrack/internal/model"
)

// Service provides lookup over the fixed category set.
type Service struct {
	categories []model.Category
	byName     map[model.Category]struct{}
	byFolded   map[string]model.Category
}

// NewService creates a Service from an ordered category list.
// Duplicates and blank labels are dropped; the first occurrence wins.
func NewService(cats []model.Category) *Service {
	s := &Service{
		byName:   make(map[model.Category]struct{}, len(cats)),
		byFolded: make(map[string]model.Category, len(cats)),
	}
	for _, c := range cats {
		c = model.Category(strings.TrimSpace(string(c)))
		if c == "" {
			continue
		}
		if _, dup := s.byName[c]; dup {
			continue
		}
		s.categories = append(s.categories, c)
		s.byName[c] = struct{}{}
		folded := strings.ToLower(string(c))
		if _, ok := s.byFolded[folded]; !ok {
			s.byFolded[folded] = c
		}
	}
	return s
}

// All returns the categories in display order.
func (s *Service) All() []model.Category {
	return slices.Clone(s.categories)
}

// Labels returns the categories as plain strings, for widgets.
func (s *Service) Labels() []string {
	labels := make([]string, len(s.categories))
	for i, c := range s.categories {
		labels[i] = string(c)
	}
	return labels
}

// Exists reports whether c is exactly one of the known categories.
func (s *Service) Exists(c model.Category) bool {
	_, ok := s.byName[c]
	return ok
}

// Lookup resolves user input to a canonical category. Surrounding
// whitespace is ignored and matching falls back to case-insensitive.
func (s *Service) Lookup(input string) (model.Category, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if s.Exists(model.Category(input)) {
		return model.Category(input), true
	}
	c, ok := s.byFolded[strings.ToLower(input)]
	return c, ok
}

// Suggest returns the category closest to input by edit distance, if it is
// close enough to be a plausible typo.
func (s *Service) Suggest(input string) (model.Category, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || len(s.categories) == 0 {
		return "", false
	}

	maxDist := utf8.RuneCountInString(input) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	var best model.Category
	bestDist := maxDist + 1
	for _, c := range s.categories {
		d := levenshtein.ComputeDistance(input, strings.ToLower(string(c)))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist > maxDist {
		return "", false
	}
	return best, true
}
