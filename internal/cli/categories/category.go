package categories

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/menu"
	"github.com/julianstephens/lunchwheel/internal/models"
)

type CategoryCmd struct {
	List   CategoryListCmd   `cmd:"" help:"List categories and their items." default:"1"`
	Add    CategoryAddCmd    `cmd:"" help:"Add a category."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category and all of its items."`
}

type ItemCmd struct {
	Add    ItemAddCmd    `cmd:"" help:"Add an item to a category."`
	Delete ItemDeleteCmd `cmd:"" help:"Remove an item from a category."`
}

// editor loads the session so edits go through the same path as the TUI
func editor(ctx *cli.Context) (*menu.Editor, []models.Category, error) {
	ctrl, err := ctx.Session(nil, 0)
	if err != nil {
		return nil, nil, err
	}
	return menu.NewEditor(ctrl), ctrl.Categories(), nil
}

type CategoryListCmd struct {
	IDs bool `help:"Show category ids."`
}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	_, cats, err := editor(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		ctx.Printf("No categories yet. Add one with 'category add <name>'.\n")
		return nil
	}

	for _, cat := range cats {
		title := fmt.Sprintf("%s (%d)", cat.Name, len(cat.Items))
		if c.IDs {
			title += "  [" + cat.ID + "]"
		}
		ctx.Println(title)
		if len(cat.Items) == 0 {
			ctx.Println("  No items yet. Add some!")
			continue
		}
		for i, item := range cat.Items {
			ctx.Printf("  %d. %s\n", i+1, item)
		}
	}
	return nil
}

type CategoryAddCmd struct {
	Name  string   `arg:"" help:"Category name."`
	Items []string `help:"Items to add to the new category." sep:","`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	ed, _, err := editor(ctx)
	if err != nil {
		return err
	}
	cat, err := ed.AddCategory(c.Name)
	if err != nil {
		return err
	}
	for _, item := range c.Items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if err := ed.AddItem(cat.ID, item); err != nil {
			return err
		}
	}
	ctx.Printf("✓ Added category %s\n", cat.Name)
	return nil
}

type CategoryRenameCmd struct {
	Category string `arg:"" help:"Category name or id."`
	Name     string `arg:"" help:"New name."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	ed, cats, err := editor(ctx)
	if err != nil {
		return err
	}
	cat, err := menu.Resolve(cats, c.Category)
	if err != nil {
		return err
	}
	if err := ed.RenameCategory(cat.ID, c.Name); err != nil {
		return err
	}
	ctx.Printf("✓ Renamed %s to %s\n", cat.Name, strings.TrimSpace(c.Name))
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category name or id."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	ed, cats, err := editor(ctx)
	if err != nil {
		return err
	}
	cat, err := menu.Resolve(cats, c.Category)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s and its %d item(s)?", cat.Name, len(cat.Items)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ed.DeleteCategory(cat.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted category %s\n", cat.Name)
	return nil
}

type ItemAddCmd struct {
	Category string `arg:"" help:"Category name or id."`
	Item     string `arg:"" help:"Item to add."`
}

func (c *ItemAddCmd) Run(ctx *cli.Context) error {
	ed, cats, err := editor(ctx)
	if err != nil {
		return err
	}
	cat, err := menu.Resolve(cats, c.Category)
	if err != nil {
		return err
	}
	if err := ed.AddItem(cat.ID, c.Item); err != nil {
		return err
	}
	ctx.Printf("✓ Added %s to %s\n", strings.TrimSpace(c.Item), cat.Name)
	return nil
}

type ItemDeleteCmd struct {
	Category string `arg:"" help:"Category name or id."`
	Item     string `arg:"" help:"Item name, or its 1-based position from 'category list'."`
}

func (c *ItemDeleteCmd) Run(ctx *cli.Context) error {
	ed, cats, err := editor(ctx)
	if err != nil {
		return err
	}
	cat, err := menu.Resolve(cats, c.Category)
	if err != nil {
		return err
	}

	index, err := itemIndex(cat, c.Item)
	if err != nil {
		return err
	}
	if err := ed.DeleteItem(cat.ID, index); err != nil {
		return err
	}
	ctx.Printf("✓ Removed %s from %s\n", cat.Items[index], cat.Name)
	return nil
}

// itemIndex matches ref against item names first, then as a 1-based position
func itemIndex(cat models.Category, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, item := range cat.Items {
		if strings.EqualFold(item, ref) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(cat.Items) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("no item %q in %s", ref, cat.Name)
}
