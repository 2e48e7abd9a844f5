// Package menu edits the category list. The functions here never modify
// their input slice; each returns a fresh list.
package menu

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/lunchwheel/internal/errors"
	"github.com/julianstephens/lunchwheel/internal/models"
)

// AddCategory appends a new empty category. newID may be empty, in which
// case a random UUID is used.
func AddCategory(cats []models.Category, name, newID string) ([]models.Category, models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Category{}, errors.Validationf("category name cannot be empty")
	}
	if newID == "" {
		newID = uuid.NewString()
	}
	if Find(cats, newID) >= 0 {
		return nil, models.Category{}, errors.Conflictf("category id %s already exists", newID)
	}

	cat := models.Category{ID: newID, Name: name, Items: []string{}}
	out := append(models.CloneCategories(cats), cat)
	return out, cat, nil
}

// DeleteCategory removes the category with the given id and its items
func DeleteCategory(cats []models.Category, id string) ([]models.Category, error) {
	idx := Find(cats, id)
	if idx < 0 {
		return nil, errors.NotFoundf("category %s not found", id)
	}
	out := models.CloneCategories(cats)
	return slices.Delete(out, idx, idx+1), nil
}

// RenameCategory changes a category's display name
func RenameCategory(cats []models.Category, id, name string) ([]models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validationf("category name cannot be empty")
	}
	idx := Find(cats, id)
	if idx < 0 {
		return nil, errors.NotFoundf("category %s not found", id)
	}
	out := models.CloneCategories(cats)
	out[idx].Name = name
	return out, nil
}

// AddItem appends a trimmed item to the category
func AddItem(cats []models.Category, id, item string) ([]models.Category, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, errors.Validationf("item cannot be empty")
	}
	idx := Find(cats, id)
	if idx < 0 {
		return nil, errors.NotFoundf("category %s not found", id)
	}
	out := models.CloneCategories(cats)
	out[idx].Items = append(out[idx].Items, item)
	return out, nil
}

// DeleteItem removes the item at index from the category
func DeleteItem(cats []models.Category, id string, index int) ([]models.Category, error) {
	idx := Find(cats, id)
	if idx < 0 {
		return nil, errors.NotFoundf("category %s not found", id)
	}
	if index < 0 || index >= len(cats[idx].Items) {
		return nil, errors.NotFoundf("category %s has no item #%d", cats[idx].Name, index+1)
	}
	out := models.CloneCategories(cats)
	out[idx].Items = slices.Delete(out[idx].Items, index, index+1)
	return out, nil
}

// Find returns the position of the category with id, or -1
func Find(cats []models.Category, id string) int {
	return slices.IndexFunc(cats, func(c models.Category) bool { return c.ID == id })
}

// Resolve looks a category up by id, then by case-insensitive name
func Resolve(cats []models.Category, ref string) (models.Category, error) {
	if idx := Find(cats, ref); idx >= 0 {
		return cats[idx], nil
	}
	ref = strings.TrimSpace(ref)
	for _, c := range cats {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return models.Category{}, errors.NotFoundf("no category matches %q", ref)
}
