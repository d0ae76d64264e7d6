package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := &CategoryService{DB: db}

	category, err := svc.Create(context.Background(), "books")
	require.NoError(t, err)
	require.Equal(t, int64(0), category.ProductsCount)

	_, err = svc.Create(context.Background(), "books")
	require.True(t, errors.Is(err, ErrConflict))
}

func TestUpdateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := &CategoryService{DB: db}

	books, err := svc.Create(context.Background(), "books")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "games")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), books.ID, "literature")
	require.NoError(t, err)
	require.Equal(t, "literature", updated.Name)

	_, err = svc.Update(context.Background(), books.ID, "games")
	require.True(t, errors.Is(err, ErrConflict))

	_, err = svc.Update(context.Background(), 999, "whatever")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindCategory(t *testing.T) {
	db := newTestDB(t)
	svc := &CategoryService{DB: db}

	books, err := svc.Create(context.Background(), "books")
	require.NoError(t, err)

	found, err := svc.FindByID(context.Background(), books.ID)
	require.NoError(t, err)
	require.Equal(t, "books", found.Name)

	_, err = svc.FindByID(context.Background(), 999)
	require.True(t, errors.Is(err, ErrNotFound))

	all, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDeleteCategory(t *testing.T) {
	db := newTestDB(t)
	svc := &CategoryService{DB: db}

	books, err := svc.Create(context.Background(), "books")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), books.ID))
	require.True(t, errors.Is(svc.Delete(context.Background(), books.ID), ErrNotFound))

	_, err = svc.Create(context.Background(), "a")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "b")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAll(context.Background()))

	all, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 0)
}
