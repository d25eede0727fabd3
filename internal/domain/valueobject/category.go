package valueobject

import "fmt"

// Category is an immutable value object identifying one of the fixed risk
// categories the platform scores suppliers on. The set is closed: persistence
// and wire formats carry categories as keyed maps, so adding a category is a
// code change here, not a schema change.
type Category struct {
	value string
}

var (
	CategoryFinancial    = Category{value: "financial"}
	CategoryLegal        = Category{value: "legal"}
	CategoryESG          = Category{value: "esg"}
	CategoryGeopolitical = Category{value: "geopolitical"}
	CategoryOperational  = Category{value: "operational"}
	CategoryPricing      = Category{value: "pricing"}
	CategorySocial       = Category{value: "social"}
	CategoryPerformance  = Category{value: "performance"}
)

// Categories returns all risk categories in canonical order. The order is
// load-bearing: it defines the feature column layout for model training.
func Categories() []Category {
	return []Category{
		CategoryFinancial,
		CategoryLegal,
		CategoryESG,
		CategoryGeopolitical,
		CategoryOperational,
		CategoryPricing,
		CategorySocial,
		CategoryPerformance,
	}
}

// NumCategories is the size of the closed category set.
const NumCategories = 8

// CategoryFromString reconstructs a Category from its string representation.
func CategoryFromString(s string) (Category, error) {
	for _, c := range Categories() {
		if c.value == s {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("invalid risk category: %s", s)
}

// String returns the string representation.
func (c Category) String() string {
	return c.value
}

// IsZero returns true if the Category has not been set.
func (c Category) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Category.
func (c Category) Equal(other Category) bool {
	return c.value == other.value
}
