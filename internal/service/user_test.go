package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matheusvf/loja-backend/internal/models"
)

func TestAdminRoleImmutableViaUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}

	adminRole := uint(2)
	admin, err := svc.Create(context.Background(), CreateUserInput{
		Name: "Admin", Email: "admin@admin.com", Password: "admin", RoleID: &adminRole,
	})
	require.NoError(t, err)
	require.Equal(t, "admin", admin.Role.Name)

	userRole := uint(1)
	newName := "Still Admin"
	updated, err := svc.Update(context.Background(), admin.ID, UpdateUserInput{
		Name:   &newName,
		RoleID: &userRole,
	})
	require.NoError(t, err)
	require.Equal(t, "Still Admin", updated.Name)
	require.Equal(t, "admin", updated.Role.Name)
}

func TestUpdateChangesRegularUserRole(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}

	user, err := svc.Create(context.Background(), CreateUserInput{
		Name: "Regular", Email: "u@b.com", Password: "pw",
	})
	require.NoError(t, err)
	require.Equal(t, "user", user.Role.Name)

	adminRole := uint(2)
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{RoleID: &adminRole})
	require.NoError(t, err)
	require.Equal(t, "admin", updated.Role.Name)
}

func TestUpdateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name: "First", Email: "first@b.com", Password: "pw",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), CreateUserInput{
		Name: "Second", Email: "second@b.com", Password: "pw",
	})
	require.NoError(t, err)

	taken := "first@b.com"
	_, err = svc.Update(context.Background(), second.ID, UpdateUserInput{Email: &taken})
	require.True(t, errors.Is(err, ErrConflict))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name: "First", Email: "a@b.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{
		Name: "Clone", Email: "a@b.com", Password: "pw",
	})
	require.True(t, errors.Is(err, ErrConflict))
}

func TestDeleteUserRemovesCart(t *testing.T) {
	db := newTestDB(t)
	books := createCategory(t, db, "books")
	product := createProduct(t, db, "dune", 30, books.ID)
	user := registerUser(t, db, "a@b.com")

	cartSvc := &CartService{DB: db}
	_, err := cartSvc.AddItem(context.Background(), product.ID, 1, user.ID)
	require.NoError(t, err)

	svc := &UserService{DB: db}
	require.NoError(t, svc.Delete(context.Background(), user.ID))

	var carts, items int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.Equal(t, int64(0), carts)
	require.Equal(t, int64(0), items)

	_, err = svc.FindByID(context.Background(), user.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindAllUsersPagination(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}

	for _, email := range []string{"a@b.com", "b@b.com", "c@b.com"} {
		_, err := svc.Create(context.Background(), CreateUserInput{
			Name: "User", Email: email, Password: "pw",
		})
		require.NoError(t, err)
	}

	page, err := svc.FindAll(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	require.Equal(t, int64(2), page.NumberOfPages)
}
