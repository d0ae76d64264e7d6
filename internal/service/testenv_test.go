package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/config"
	"github.com/matheusvf/loja-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to connect to in-memory db")

	require.NoError(t, config.Migrate(db), "failed to migrate tables")

	require.NoError(t, db.Create(&models.Role{Name: "user"}).Error)
	require.NoError(t, db.Create(&models.Role{Name: "admin"}).Error)

	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	svc := &CategoryService{DB: db}
	category, err := svc.Create(context.Background(), name)
	require.NoError(t, err)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, categoryID uint) *models.Product {
	t.Helper()
	svc := &ProductService{DB: db}
	product, err := svc.Create(context.Background(), ProductInput{
		Name:        name,
		Description: "test description",
		Price:       price,
		Stock:       10,
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return product
}

func registerUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	svc := &AuthService{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")}
	user, err := svc.Register(context.Background(), "Test User", email, "password")
	require.NoError(t, err)
	return user
}

func categoryCount(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var category models.Category
	require.NoError(t, db.First(&category, id).Error)
	return category.ProductsCount
}

func cartTotal(t *testing.T, db *gorm.DB, userID uint) float64 {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", userID).First(&cart).Error)
	return cart.Total
}
