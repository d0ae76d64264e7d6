package transport

import (
	"fmt"
	"net/mail"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if len(r.Name) < 3 {
		return fmt.Errorf("name must have at least 3 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type CategoryRequest struct {
	Name string `json:"name"`
}

func (r CategoryRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	CategoryID  uint    `json:"category_id"`
}

func (r ProductRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if r.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if r.CategoryID == 0 {
		return fmt.Errorf("category_id is required")
	}
	return nil
}

type CartItemRequest struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (r CartItemRequest) Validate() error {
	if r.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}
	if r.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

type CartItemUpdateRequest struct {
	Quantity int64 `json:"quantity"`
}

func (r CartItemUpdateRequest) Validate() error {
	if r.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   *uint  `json:"role_id"`
}

func (r CreateUserRequest) Validate() error {
	if len(r.Name) < 3 {
		return fmt.Errorf("name must have at least 3 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	RoleID *uint   `json:"role_id"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Name != nil && len(*r.Name) < 3 {
		return fmt.Errorf("name must have at least 3 characters")
	}
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return fmt.Errorf("invalid email")
		}
	}
	return nil
}
