package models

// Category is a named group of lunch options. Items are plain strings and
// have no identity beyond their position.
type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Clone returns a deep copy so callers can edit without aliasing
func (c Category) Clone() Category {
	items := make([]string, len(c.Items))
	copy(items, c.Items)
	return Category{ID: c.ID, Name: c.Name, Items: items}
}

// CloneCategories deep-copies a category list
func CloneCategories(cats []Category) []Category {
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = c.Clone()
	}
	return out
}

// CategoryNames returns the names in list order
func CategoryNames(cats []Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}
