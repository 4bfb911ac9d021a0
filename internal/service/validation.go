package service

import (
	"errors"
	"regexp"

	"kptshop/internal/config"
	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

// validationFailed converts ozzo validation errors into a domain error that
// names every offending field.
func validationFailed(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make(map[string]string, len(errs))
		for field, fieldErr := range errs {
			fields[field] = fieldErr.Error()
		}
		return &domain.ValidationError{Message: errs.Error(), Fields: fields}
	}
	return &domain.ValidationError{Message: err.Error()}
}

func validateCreateFolder(req *services.CreateFolderRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
		validation.Field(&req.Order, validation.Min(0)),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

func validateCategory(c *models.Category) error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(1, config.MaxCategoryNameLength)),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

// validateNewGalleryImage applies the creation rules: the hosted asset
// description must be complete, zero counts as missing.
func validateNewGalleryImage(req *services.CreateGalleryImageRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxGalleryNameLength)),
		validation.Field(&req.Detail, validation.Required, validation.RuneLength(1, config.MaxGalleryDetailLength)),
		validation.Field(&req.ImageURL, validation.Required),
		validation.Field(&req.PublicID, validation.Required),
		validation.Field(&req.Width, validation.Required, validation.Min(1)),
		validation.Field(&req.Height, validation.Required, validation.Min(1)),
		validation.Field(&req.Format, validation.Required),
		validation.Field(&req.Bytes, validation.Required, validation.Min(int64(1))),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

// validateGalleryImage applies the rules every stored gallery image satisfies
func validateGalleryImage(g *models.GalleryImage) error {
	err := validation.ValidateStruct(g,
		validation.Field(&g.Name, validation.Required, validation.RuneLength(1, config.MaxGalleryNameLength)),
		validation.Field(&g.Detail, validation.Required, validation.RuneLength(1, config.MaxGalleryDetailLength)),
		validation.Field(&g.ImageURL, validation.Required),
		validation.Field(&g.Width, validation.Min(0)),
		validation.Field(&g.Height, validation.Min(0)),
		validation.Field(&g.Bytes, validation.Min(int64(0))),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

func validateImage(img *models.Image) error {
	err := validation.ValidateStruct(img,
		validation.Field(&img.Name, validation.Required, validation.RuneLength(1, config.MaxImageNameLength)),
		validation.Field(&img.URL, validation.Required),
		validation.Field(&img.PublicID, validation.Required),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

func validateCreateItem(req *services.CreateItemRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Price, validation.NotNil, validation.Min(0.0)),
		validation.Field(&req.Quantity, validation.NotNil, validation.Min(0)),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

func validateItem(item *models.InventoryItem) error {
	err := validation.ValidateStruct(item,
		validation.Field(&item.Name, validation.Required),
		validation.Field(&item.Price, validation.Min(0.0)),
		validation.Field(&item.Quantity, validation.Min(0)),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}

func validateItemCategory(req *services.UpdateItemCategoryRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.Category, validation.Required),
	)
	if err != nil {
		return validationFailed(err)
	}
	return nil
}
