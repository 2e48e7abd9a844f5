package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

type CategoryFormModel struct {
	Name string
}

// NewCategoryForm creates a new form for adding categories
func NewCategoryForm(fm *CategoryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category Name").
				Placeholder("e.g. Asian, Healthy, Fast Food").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
