package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
)

type categoryService struct {
	repo   repositories.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.CategoryRepository, logger *slog.Logger) services.CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *services.CreateCategoryRequest) (*models.Category, error) {
	now := time.Now().UTC()
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *services.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the merged record, write only what the request named
	patch := repositories.CategoryPatch{UpdatedAt: time.Now().UTC()}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
		patch.Name = &category.Name
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
		patch.Description = &category.Description
	}

	if err := validateCategory(category); err != nil {
		return nil, err
	}

	category, err = s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category updated", "id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "id", id)
	return nil
}
