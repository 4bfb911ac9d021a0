// Package seed loads sample catalogue data from YAML and writes it through
// the services, so seeded folders get the same paths as ones made over HTTP.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"kptshop/internal/domain"
	"kptshop/internal/domain/services"
)

// File is the seed document
type File struct {
	Categories []Category `yaml:"categories"`
	Folders    []Folder   `yaml:"folders"`
	Inventory  []Item     `yaml:"inventory"`
}

type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Folder is one node of the folder tree; children are created beneath it
type Folder struct {
	Name     string   `yaml:"name"`
	Order    int      `yaml:"order"`
	Children []Folder `yaml:"children"`
}

type Item struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Quantity    int     `yaml:"quantity"`
	ImageURL    string  `yaml:"image_url"`
	Category    string  `yaml:"category"`
}

// Services are the write paths the seeder needs
type Services struct {
	Folders    services.FolderService
	Categories services.CategoryService
	Inventory  services.InventoryService
}

// Result counts what Apply created
type Result struct {
	Categories int
	Folders    int
	Items      int
	Skipped    int
}

// Load decodes a seed document. Unknown keys are rejected so typos surface.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// Apply creates everything in f. Categories that already exist are skipped;
// any other failure stops the run.
func Apply(ctx context.Context, f *File, svcs Services, logger *slog.Logger) (*Result, error) {
	res := &Result{}

	for _, c := range f.Categories {
		_, err := svcs.Categories.CreateCategory(ctx, &services.CreateCategoryRequest{
			Name:        c.Name,
			Description: c.Description,
		})
		if errors.Is(err, domain.ErrConflict) {
			logger.Info("category exists, skipping", "name", c.Name)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("category %q: %w", c.Name, err)
		}
		res.Categories++
	}

	for _, folder := range f.Folders {
		if err := createFolderTree(ctx, svcs.Folders, folder, nil, res, logger); err != nil {
			return res, err
		}
	}

	for _, it := range f.Inventory {
		price, quantity := it.Price, it.Quantity
		item, err := svcs.Inventory.CreateItem(ctx, &services.CreateItemRequest{
			Name:        it.Name,
			Description: it.Description,
			Price:       &price,
			Quantity:    &quantity,
			ImageURL:    it.ImageURL,
			Category:    it.Category,
		})
		if err != nil {
			return res, fmt.Errorf("inventory item %q: %w", it.Name, err)
		}
		logger.Debug("seeded inventory item", "id", item.ID, "name", item.Name)
		res.Items++
	}

	logger.Info("seed applied",
		"categories", res.Categories,
		"folders", res.Folders,
		"items", res.Items,
		"skipped", res.Skipped,
	)
	return res, nil
}

func createFolderTree(ctx context.Context, folders services.FolderService, node Folder, parentID *string, res *Result, logger *slog.Logger) error {
	created, err := folders.CreateFolder(ctx, &services.CreateFolderRequest{
		Name:     node.Name,
		ParentID: parentID,
		Order:    node.Order,
	})
	if err != nil {
		return fmt.Errorf("folder %q: %w", node.Name, err)
	}
	logger.Debug("seeded folder", "id", created.ID, "path", created.Path)
	res.Folders++

	for _, child := range node.Children {
		if err := createFolderTree(ctx, folders, child, &created.ID, res, logger); err != nil {
			return err
		}
	}
	return nil
}
