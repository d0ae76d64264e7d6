package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matheusvf/loja-backend/internal/models"
)

func TestCreateProductIncrementsCategoryCount(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "books")

	product := createProduct(t, db, "dune", 30, category.ID)
	require.Equal(t, category.ID, product.CategoryID)
	require.Equal(t, "books", product.Category.Name)
	require.Equal(t, int64(1), categoryCount(t, db, category.ID))

	createProduct(t, db, "neuromancer", 25, category.ID)
	require.Equal(t, int64(2), categoryCount(t, db, category.ID))
}

func TestCreateProductDuplicateNameLeavesCatalogUnchanged(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "books")
	createProduct(t, db, "dune", 30, category.ID)

	svc := &ProductService{DB: db}
	_, err := svc.Create(context.Background(), ProductInput{
		Name: "dune", Description: "again", Price: 5, Stock: 1, CategoryID: category.ID,
	})
	require.True(t, errors.Is(err, ErrConflict))

	require.Equal(t, int64(1), categoryCount(t, db, category.ID))

	var total int64
	require.NoError(t, db.Model(&models.Product{}).Count(&total).Error)
	require.Equal(t, int64(1), total)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "books")

	svc := &ProductService{DB: db}
	_, err := svc.Create(context.Background(), ProductInput{
		Name: "dune", Description: "d", Price: 30, Stock: 1, CategoryID: 999,
	})
	require.True(t, errors.Is(err, ErrBadRequest))

	require.Equal(t, int64(0), categoryCount(t, db, category.ID))
}

func TestUpdateProductMovesCategoryCount(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	games := createCategory(t, db, "games")
	product := createProduct(t, db, "dune", 30, books.ID)

	svc := &ProductService{DB: db}
	updated, err := svc.Update(context.Background(), product.ID, ProductInput{
		Name: "dune", Description: "d", Price: 35, Stock: 5, CategoryID: games.ID,
	})
	require.NoError(t, err)
	require.Equal(t, games.ID, updated.CategoryID)
	require.Equal(t, float64(35), updated.Price)

	require.Equal(t, int64(0), categoryCount(t, db, books.ID))
	require.Equal(t, int64(1), categoryCount(t, db, games.ID))
}

func TestUpdateProductSameCategoryKeepsCount(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)

	svc := &ProductService{DB: db}
	_, err := svc.Update(context.Background(), product.ID, ProductInput{
		Name: "dune messiah", Description: "d", Price: 30, Stock: 5, CategoryID: books.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), categoryCount(t, db, books.ID))
}

func TestUpdateProductNameConflict(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	createProduct(t, db, "dune", 30, books.ID)
	other := createProduct(t, db, "neuromancer", 25, books.ID)

	svc := &ProductService{DB: db}
	_, err := svc.Update(context.Background(), other.ID, ProductInput{
		Name: "dune", Description: "d", Price: 25, Stock: 5, CategoryID: books.ID,
	})
	require.True(t, errors.Is(err, ErrConflict))
	require.Equal(t, int64(2), categoryCount(t, db, books.ID))
}

func TestDeleteProductDecrementsCategoryCount(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	p1 := createProduct(t, db, "dune", 30, books.ID)
	createProduct(t, db, "neuromancer", 25, books.ID)
	createProduct(t, db, "hyperion", 28, books.ID)
	require.Equal(t, int64(3), categoryCount(t, db, books.ID))

	svc := &ProductService{DB: db}
	require.NoError(t, svc.Delete(context.Background(), p1.ID))

	require.Equal(t, int64(2), categoryCount(t, db, books.ID))

	_, err := svc.FindByID(context.Background(), p1.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &ProductService{DB: db}
	err := svc.Delete(context.Background(), 42)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindAllPagination(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		createProduct(t, db, name, 10, books.ID)
	}

	svc := &ProductService{DB: db}
	page, err := svc.FindAll(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	require.Equal(t, 1, page.Page)
	require.Equal(t, int64(3), page.NumberOfPages)

	page, err = svc.FindAll(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
}

func TestSearchMatchesSubstring(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	createProduct(t, db, "dune", 30, books.ID)
	createProduct(t, db, "dune messiah", 28, books.ID)
	createProduct(t, db, "neuromancer", 25, books.ID)

	svc := &ProductService{DB: db}
	products, err := svc.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func makeImageUpload(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<10))
	return req.MultipartForm.File["image"][0]
}

func TestUploadImageStoresFile(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)

	dir := t.TempDir()
	svc := &ProductService{DB: db, PublicDir: dir}

	updated, err := svc.UploadImage(context.Background(), product.ID, makeImageUpload(t, "cover.png", []byte("png-bytes")))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(updated.ImgSrc, "/images/products/"))
	require.True(t, strings.HasSuffix(updated.ImgSrc, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(updated.ImgSrc)))
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)

	stored, err := svc.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, updated.ImgSrc, stored.ImgSrc)
}

func TestUploadImageReplacesPreviousFile(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)

	dir := t.TempDir()
	svc := &ProductService{DB: db, PublicDir: dir}

	first, err := svc.UploadImage(context.Background(), product.ID, makeImageUpload(t, "old.png", []byte("old")))
	require.NoError(t, err)
	firstPath := filepath.Join(dir, filepath.FromSlash(first.ImgSrc))

	second, err := svc.UploadImage(context.Background(), product.ID, makeImageUpload(t, "new.jpg", []byte("new")))
	require.NoError(t, err)
	require.NotEqual(t, first.ImgSrc, second.ImgSrc)
	require.True(t, strings.HasSuffix(second.ImgSrc, ".jpg"))

	_, err = os.Stat(firstPath)
	require.True(t, os.IsNotExist(err), "previous image should be gone")

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(second.ImgSrc)))
	require.NoError(t, err)
	require.Equal(t, []byte("new"), data)
}

func TestUploadImageUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	dir := t.TempDir()
	svc := &ProductService{DB: db, PublicDir: dir}

	_, err := svc.UploadImage(context.Background(), 999, makeImageUpload(t, "cover.png", []byte("png-bytes")))
	require.True(t, errors.Is(err, ErrBadRequest))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "nothing should be written for a missing product")
}
