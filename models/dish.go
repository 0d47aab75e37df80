package models

// DishCategory is the fixed set of menu sections shown to guests
type DishCategory string

const (
	CategoryMeat  DishCategory = "招牌硬菜"
	CategoryVeg   DishCategory = "时令素食"
	CategorySoup  DishCategory = "暖心汤面"
	CategoryDrink DishCategory = "特调饮品"
)

// Categories lists every valid dish category.
func Categories() []DishCategory {
	return []DishCategory{CategoryMeat, CategoryVeg, CategorySoup, CategoryDrink}
}

// ValidCategory reports whether c is one of the fixed menu sections.
func ValidCategory(c DishCategory) bool {
	switch c {
	case CategoryMeat, CategoryVeg, CategorySoup, CategoryDrink:
		return true
	}
	return false
}

type Dish struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Category    DishCategory `json:"category"`
	Image       string       `json:"image"`
	Sales       int          `json:"sales"` // monotonically increasing, bumped on order creation
	IsSoldOut   bool         `json:"isSoldOut"`
	Spiciness   int          `json:"spiciness"` // 0-5
}

// DishUpdate carries a partial dish edit; nil fields are left untouched.
type DishUpdate struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Price       *float64      `json:"price,omitempty"`
	Category    *DishCategory `json:"category,omitempty"`
	Image       *string       `json:"image,omitempty"`
	IsSoldOut   *bool         `json:"isSoldOut,omitempty"`
	Spiciness   *int          `json:"spiciness,omitempty"`
}

// Apply copies the non-nil fields of u onto d. Sales is deliberately not
// editable here: it only moves through the sales-increment path.
func (u DishUpdate) Apply(d *Dish) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.Price != nil {
		d.Price = *u.Price
	}
	if u.Category != nil {
		d.Category = *u.Category
	}
	if u.Image != nil {
		d.Image = *u.Image
	}
	if u.IsSoldOut != nil {
		d.IsSoldOut = *u.IsSoldOut
	}
	if u.Spiciness != nil {
		d.Spiciness = *u.Spiciness
	}
}

// CartItem is a dish plus a quantity. It exists only in per-session cart
// state and inside order item snapshots; it is never stored on its own.
type CartItem struct {
	Dish
	Quantity int `json:"quantity"`
}
