package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/hash"
	"github.com/matheusvf/loja-backend/internal/models"
	"github.com/matheusvf/loja-backend/internal/util"
)

const AdminRoleName = "admin"

type UserService struct {
	DB *gorm.DB
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleID   *uint
}

type UpdateUserInput struct {
	Name   *string
	Email  *string
	RoleID *uint
}

type UserPage struct {
	Users         []models.User `json:"users"`
	Page          int           `json:"page"`
	NumberOfPages int64         `json:"numberOfPages"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	roleID := uint(1)
	if in.RoleID != nil {
		roleID = *in.RoleID
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		RoleID:       roleID,
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Cart{UserID: user.ID}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.WithContext(ctx).Preload("Role").First(&user, user.ID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies field changes; a requested role change on a user whose
// current role is administrative is silently ignored.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}

	if in.Email != nil {
		var other models.User
		err := s.DB.WithContext(ctx).Where("email = ? AND id <> ?", *in.Email, id).First(&other).Error
		if err == nil {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.RoleID != nil && user.Role.Name != AdminRoleName {
		user.RoleID = *in.RoleID
	}

	if err := s.DB.WithContext(ctx).Omit("Role").Save(&user).Error; err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindAll(ctx context.Context, page, perPage int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.DB.WithContext(ctx).Preload("Role").
		Order("id ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserPage{
		Users:         users,
		Page:          page,
		NumberOfPages: util.TotalPages(total, perPage),
	}, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes the user together with their cart and its items.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("user_id = ?", id).First(&cart).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&cart).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (s *UserService) DeleteAll(ctx context.Context) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := session.Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		if err := session.Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return session.Delete(&models.User{}).Error
	})
}

func (s *UserService) FindRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
