package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/models"
	"github.com/matheusvf/loja-backend/internal/util"
)

type ProductService struct {
	DB        *gorm.DB
	PublicDir string
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
	CategoryID  uint
}

type ProductPage struct {
	Products      []models.Product `json:"products"`
	Page          int              `json:"page"`
	NumberOfPages int64            `json:"numberOfPages"`
}

// Create inserts the product and bumps the category counter in one commit
// unit; the counter moves as a SQL expression so concurrent creates cannot
// drop an increment.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	var existing models.Product
	err := s.DB.WithContext(ctx).Where("name = ?", in.Name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: product already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", ErrBadRequest)
		}
		return nil, err
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return tx.Model(&models.Category{}).Where("id = ?", in.CategoryID).
			UpdateColumn("products_count", gorm.Expr("products_count + ?", 1)).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.WithContext(ctx).Preload("Category").First(&product, product.ID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update moves the counter from the old category to the new one and applies
// the field changes, all in one transaction.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		return nil, err
	}

	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", ErrBadRequest)
		}
		return nil, err
	}

	var other models.Product
	err := s.DB.WithContext(ctx).Where("name = ? AND id <> ?", in.Name, id).First(&other).Error
	if err == nil {
		return nil, fmt.Errorf("%w: product already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	oldCategoryID := product.CategoryID

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if oldCategoryID != in.CategoryID {
			if err := tx.Model(&models.Category{}).Where("id = ?", in.CategoryID).
				UpdateColumn("products_count", gorm.Expr("products_count + ?", 1)).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Category{}).Where("id = ?", oldCategoryID).
				UpdateColumn("products_count", gorm.Expr("products_count - ?", 1)).Error; err != nil {
				return err
			}
		}

		product.Name = in.Name
		product.Description = in.Description
		product.Price = in.Price
		product.Stock = in.Stock
		product.CategoryID = in.CategoryID
		product.UpdatedAt = time.Now()
		return tx.Save(&product).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.WithContext(ctx).Preload("Category").First(&product, product.ID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).Where("id = ?", product.CategoryID).
			UpdateColumn("products_count", gorm.Expr("products_count - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// DeleteAll wipes the catalog without touching category counters. Only
// meaningful as an admin reset followed by a category reset.
func (s *ProductService) DeleteAll(ctx context.Context) error {
	return s.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Product{}).Error
}

func (s *ProductService) FindAll(ctx context.Context, page, perPage int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	if err := s.DB.WithContext(ctx).Preload("Category").
		Order("id ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:      products,
		Page:          page,
		NumberOfPages: util.TotalPages(total, perPage),
	}, nil
}

func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}

// Search matches a substring of the product name; case rules follow the
// store collation.
func (s *ProductService) Search(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Preload("Category").
		Where("name LIKE ?", "%"+name+"%").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UploadImage stores the file under a generated name, removing the previous
// image best-effort. Underlying failures surface as a single generic error.
func (s *ProductService) UploadImage(ctx context.Context, id uint, file *multipart.FileHeader) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", ErrBadRequest)
		}
		return nil, err
	}

	if product.ImgSrc != "" {
		_ = os.Remove(filepath.Join(s.PublicDir, filepath.FromSlash(product.ImgSrc)))
	}

	ext := strings.TrimPrefix(path.Ext(file.Filename), ".")
	src := fmt.Sprintf("/images/products/%s.%s", uuid.NewString(), ext)

	if err := s.saveFile(file, filepath.Join(s.PublicDir, filepath.FromSlash(src))); err != nil {
		return nil, fmt.Errorf("cannot store image: %w", err)
	}

	product.ImgSrc = src
	product.UpdatedAt = time.Now()
	if err := s.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, fmt.Errorf("cannot store image: %w", err)
	}
	return &product, nil
}

func (s *ProductService) saveFile(file *multipart.FileHeader, dst string) error {
	srcFile, err := file.Open()
	if err != nil {
		return err
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, srcFile)
	return err
}
