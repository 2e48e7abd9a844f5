package menu

import (
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/models"
)

// Store is where an Editor reads and persists the category list
type Store interface {
	Categories() []models.Category
	SetCategories([]models.Category) error
}

// Editor applies menu edits and persists the result
type Editor struct {
	store Store
}

func NewEditor(store Store) *Editor {
	return &Editor{store: store}
}

func (e *Editor) AddCategory(name string) (models.Category, error) {
	cats, cat, err := AddCategory(e.store.Categories(), name, "")
	if err != nil {
		return models.Category{}, err
	}
	if err := e.store.SetCategories(cats); err != nil {
		return models.Category{}, err
	}
	logger.Info("Category added", "id", cat.ID, "name", cat.Name)
	return cat, nil
}

func (e *Editor) DeleteCategory(id string) error {
	cats, err := DeleteCategory(e.store.Categories(), id)
	if err != nil {
		return err
	}
	logger.Info("Category deleted", "id", id)
	return e.store.SetCategories(cats)
}

func (e *Editor) RenameCategory(id, name string) error {
	cats, err := RenameCategory(e.store.Categories(), id, name)
	if err != nil {
		return err
	}
	return e.store.SetCategories(cats)
}

func (e *Editor) AddItem(id, item string) error {
	cats, err := AddItem(e.store.Categories(), id, item)
	if err != nil {
		return err
	}
	return e.store.SetCategories(cats)
}

func (e *Editor) DeleteItem(id string, index int) error {
	cats, err := DeleteItem(e.store.Categories(), id, index)
	if err != nil {
		return err
	}
	logger.Info("Item deleted", "category", id, "index", index)
	return e.store.SetCategories(cats)
}
