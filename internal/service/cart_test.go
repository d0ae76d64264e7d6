package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/models"
)

func TestAddItemUpdatesTotal(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	item, err := svc.AddItem(context.Background(), product.ID, 2, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), item.Quantity)
	require.Equal(t, float64(60), item.SubTotal)
	require.Equal(t, "dune", item.Product.Name)

	require.Equal(t, float64(60), cartTotal(t, db, user.ID))
}

func TestAddItemTwiceConflictsAndKeepsTotal(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.AddItem(context.Background(), product.ID, 2, user.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), product.ID, 1, user.ID)
	require.True(t, errors.Is(err, ErrConflict))

	require.Equal(t, float64(60), cartTotal(t, db, user.ID))
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.AddItem(context.Background(), 999, 1, user.ID)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, float64(0), cartTotal(t, db, user.ID))
}

func TestUpdateItemRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	dune := createProduct(t, db, "dune", 30, books.ID)
	neuro := createProduct(t, db, "neuromancer", 25, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.AddItem(context.Background(), dune.ID, 2, user.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), neuro.ID, 1, user.ID)
	require.NoError(t, err)
	require.Equal(t, float64(85), cartTotal(t, db, user.ID))

	item, err := svc.UpdateItem(context.Background(), dune.ID, 3, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), item.Quantity)
	require.Equal(t, float64(90), item.SubTotal)

	require.Equal(t, float64(115), cartTotal(t, db, user.ID))
}

func TestUpdateItemMissingLine(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.UpdateItem(context.Background(), product.ID, 2, user.ID)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, float64(0), cartTotal(t, db, user.ID))
}

func TestDeleteItemSubtractsSubTotal(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	dune := createProduct(t, db, "dune", 30, books.ID)
	neuro := createProduct(t, db, "neuromancer", 25, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.AddItem(context.Background(), dune.ID, 2, user.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), neuro.ID, 1, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(context.Background(), user.ID, dune.ID))
	require.Equal(t, float64(25), cartTotal(t, db, user.ID))

	cart, err := svc.FindCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, neuro.ID, cart.Items[0].ProductID)
}

func TestDeleteItemMissingLine(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	err := svc.DeleteItem(context.Background(), user.ID, product.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindCartExpandsProducts(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.AddItem(context.Background(), product.ID, 1, user.ID)
	require.NoError(t, err)

	cart, err := svc.FindCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "dune", cart.Items[0].Product.Name)
	require.Equal(t, cart.Total, cart.Items[0].SubTotal)
}

func TestCartTotalMatchesLineSubTotals(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	dune := createProduct(t, db, "dune", 30, books.ID)
	neuro := createProduct(t, db, "neuromancer", 25, books.ID)
	user := registerUser(t, db, "a@b.com")

	svc := &CartService{DB: db}
	_, err := svc.AddItem(context.Background(), dune.ID, 2, user.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), neuro.ID, 3, user.ID)
	require.NoError(t, err)
	_, err = svc.UpdateItem(context.Background(), dune.ID, 1, user.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(context.Background(), user.ID, neuro.ID))
	_, err = svc.UpdateItem(context.Background(), dune.ID, 4, user.ID)
	require.NoError(t, err)

	var sum float64
	require.NoError(t, db.Model(&models.CartItem{}).
		Select("COALESCE(SUM(sub_total), 0)").Scan(&sum).Error)
	require.Equal(t, sum, cartTotal(t, db, user.ID))
	require.Equal(t, float64(120), sum)
}

func TestCartLineDuplicateInsertTranslates(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)

	line := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1, SubTotal: 30}
	require.NoError(t, db.Create(&line).Error)

	dup := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2, SubTotal: 60}
	err := db.Create(&dup).Error
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
