package model

import "github.com/shopspring/decimal"

// Category is one label from the fixed set used to bucket expenses.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryHousing        Category = "Housing"
	CategoryUtilities      Category = "Utilities"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryOthers         Category = "Others"
)

// Total is the accumulated amount for one category.
type Total struct {
	Category Category
	Amount   decimal.Decimal
}

// Categories converts plain labels into Category values, preserving order.
func Categories(labels []string) []Category {
	cats := make([]Category, len(labels))
	for i, l := range labels {
		cats[i] = Category(l)
	}
	return cats
}
