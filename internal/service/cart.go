package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/models"
)

type CartService struct {
	DB *gorm.DB
}

func (s *CartService) FindCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := s.DB.WithContext(ctx).Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart does not exist", ErrNotFound)
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem inserts the line and bumps the running total in one commit unit.
// The total moves as a SQL expression, never a read-modify-write.
func (s *CartService) AddItem(ctx context.Context, productID uint, quantity int64, userID uint) (*models.CartItem, error) {
	cart, product, err := s.cartAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	var existing models.CartItem
	err = s.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: product already in cart", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subTotal := product.Price * float64(quantity)
	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		SubTotal:  subTotal,
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: product already in cart", ErrConflict)
			}
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			UpdateColumn("total", gorm.Expr("total + ?", subTotal)).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	item.Product = *product
	return &item, nil
}

// UpdateItem rewrites the line's quantity and sub-total and shifts the cart
// total by the difference, atomically.
func (s *CartService) UpdateItem(ctx context.Context, productID uint, quantity int64, userID uint) (*models.CartItem, error) {
	cart, product, err := s.cartAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	newSubTotal := product.Price * float64(quantity)

	// The line is read inside the transaction so the delta applied to the
	// total is never older than the row it replaces.
	var item models.CartItem
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: item is not in the cart", ErrNotFound)
			}
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Updates(map[string]any{"quantity": quantity, "sub_total": newSubTotal})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: item is not in the cart", ErrNotFound)
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			UpdateColumn("total", gorm.Expr("total - ? + ?", item.SubTotal, newSubTotal)).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	item.Quantity = quantity
	item.SubTotal = newSubTotal
	item.Product = *product
	return &item, nil
}

func (s *CartService) DeleteItem(ctx context.Context, userID, productID uint) error {
	cart, err := s.FindCart(ctx, userID)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: item is not in the cart", ErrNotFound)
			}
			return err
		}

		res := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: item is not in the cart", ErrNotFound)
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			UpdateColumn("total", gorm.Expr("total - ?", item.SubTotal)).Error
	})
}

func (s *CartService) cartAndProduct(ctx context.Context, userID, productID uint) (*models.Cart, *models.Product, error) {
	var cart models.Cart
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: cart does not exist", ErrNotFound)
		}
		return nil, nil, err
	}

	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		return nil, nil, err
	}

	return &cart, &product, nil
}
