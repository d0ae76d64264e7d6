package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/models"
)

type CategoryService struct {
	DB *gorm.DB
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	var existing models.Category
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: category already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: name}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", ErrNotFound)
		}
		return nil, err
	}

	var other models.Category
	err := s.DB.WithContext(ctx).Where("name = ? AND id <> ?", name, id).First(&other).Error
	if err == nil {
		return nil, fmt.Errorf("%w: category already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = name
	if err := s.DB.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", ErrNotFound)
		}
		return nil, err
	}
	return &category, nil
}

// Delete does not check the category is empty; that is the admin's call.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: category does not exist", ErrNotFound)
	}
	return nil
}

func (s *CategoryService) DeleteAll(ctx context.Context) error {
	return s.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Category{}).Error
}
