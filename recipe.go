package recipeimport

// Category is the meal category of a recipe.
type Category string

// Category constants. The extraction service is told to use CategoryDinner
// when it cannot decide.
const (
	CategoryBreakfast  Category = "Breakfast"
	CategoryLunch      Category = "Lunch"
	CategoryDinner     Category = "Dinner"
	CategoryBaking     Category = "Baking"
	CategorySoups      Category = "Soups"
	CategorySalads     Category = "Salads"
	CategoryDesserts   Category = "Desserts"
	CategorySnacks     Category = "Snacks"
	CategoryCondiments Category = "Condiments"
	CategoryDrinks     Category = "Drinks"
)

// DefaultCategory is used when the category is unknown.
const DefaultCategory = CategoryDinner

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryBreakfast,
		CategoryLunch,
		CategoryDinner,
		CategoryBaking,
		CategorySoups,
		CategorySalads,
		CategoryDesserts,
		CategorySnacks,
		CategoryCondiments,
		CategoryDrinks,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Ingredient is a single recipe ingredient. Qty holds quantity and unit
// together (e.g. "2 cups"); Name is the ingredient alone.
type Ingredient struct {
	Qty  string `json:"qty"`
	Name string `json:"name"`
}

// Recipe is the record returned to callers on a successful import.
type Recipe struct {
	Name        string       `json:"name"`
	Category    Category     `json:"category"`
	Ingredients []Ingredient `json:"ingredients"`
	Method      string       `json:"method"`
	Notes       string       `json:"notes"`
}

// Validate returns an error if the recipe contains invalid fields.
// Only strict mode calls it; replies pass through unvalidated by default.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "recipe name required")
	}
	if !r.Category.Valid() {
		return Errorf(EINVALID, "unknown category %q", r.Category)
	}
	for i, ing := range r.Ingredients {
		if ing.Name == "" {
			return Errorf(EINVALID, "ingredient %d name required", i+1)
		}
	}
	return nil
}
