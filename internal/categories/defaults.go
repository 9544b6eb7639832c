package categories

import "github.com/spendtrack/spendtrack/internal/model"

// DefaultCategories returns the built-in category set in display order.
func DefaultCategories() []model.Category {
	return []model.Category{
		model.CategoryFood,
		model.CategoryTransportation,
		model.CategoryHousing,
		model.CategoryUtilities,
		model.CategoryEntertainment,
		model.CategoryHealthcare,
		model.CategoryOthers,
	}
}
