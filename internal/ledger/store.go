package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendtrack/spendtrack/internal/model"
)

// CategoryResolver maps user input onto the fixed category set.
type CategoryResolver interface {
	Lookup(input string) (model.Category, bool)
	All() []model.Category
}

// Options controls amount policy.
type Options struct {
	// RejectNonPositive refuses zero and negative amounts. Off by default,
	// so negative entries act as refunds against a category.
	RejectNonPositive bool
}

// Store holds running per-category totals for one session.
type Store struct {
	categories CategoryResolver
	opts       Options
	totals     map[model.Category]decimal.Decimal
	order      []model.Category // first non-zero contribution
}

// NewStore creates an empty Store over a category set.
func NewStore(categories CategoryResolver, opts Options) *Store {
	return &Store{
		categories: categories,
		opts:       opts,
		totals:     make(map[model.Category]decimal.Decimal),
	}
}

// Record validates raw input and adds the amount to the category's total.
// A rejected call leaves the store unchanged.
func (s *Store) Record(category, amountText string) (model.Category, decimal.Decimal, error) {
	if strings.TrimSpace(category) == "" {
		return "", decimal.Zero, &ValidationError{Field: "category", Err: ErrMissingCategory}
	}
	cat, ok := s.categories.Lookup(category)
	if !ok {
		return "", decimal.Zero, &ValidationError{Field: "category", Value: category, Err: ErrUnknownCategory}
	}

	amount, err := ParseAmount(amountText)
	if err != nil {
		return "", decimal.Zero, err
	}

	if err := s.RecordAmount(cat, amount); err != nil {
		return "", decimal.Zero, err
	}
	return cat, amount, nil
}

// RecordAmount adds an already-parsed amount to a canonical category.
func (s *Store) RecordAmount(category model.Category, amount decimal.Decimal) error {
	if category == "" {
		return &ValidationError{Field: "category", Err: ErrMissingCategory}
	}
	if resolved, ok := s.categories.Lookup(string(category)); !ok || resolved != category {
		return &ValidationError{Field: "category", Value: string(category), Err: ErrUnknownCategory}
	}
	if s.opts.RejectNonPositive && !amount.IsPositive() {
		return &ValidationError{Field: "amount", Value: amount.String(), Err: ErrNonPositiveAmount}
	}

	prev, seen := s.totals[category]
	if !seen && !amount.IsZero() {
		s.order = append(s.order, category)
	}
	if seen || !amount.IsZero() {
		s.totals[category] = prev.Add(amount)
	}
	return nil
}

// Amount returns the accumulated total for a category; untouched
// categories read as zero.
func (s *Store) Amount(category model.Category) decimal.Decimal {
	if v, ok := s.totals[category]; ok {
		return v
	}
	return decimal.Zero
}

// Snapshot returns the categories with a strictly positive total, in order
// of their first non-zero contribution.
func (s *Store) Snapshot() []model.Total {
	var out []model.Total
	for _, c := range s.order {
		if amt := s.totals[c]; amt.IsPositive() {
			out = append(out, model.Total{Category: c, Amount: amt})
		}
	}
	return out
}

// Totals returns every category in display order, zero when untouched.
func (s *Store) Totals() []model.Total {
	cats := s.categories.All()
	out := make([]model.Total, len(cats))
	for i, c := range cats {
		out[i] = model.Total{Category: c, Amount: s.Amount(c)}
	}
	return out
}
