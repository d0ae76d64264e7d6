package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/hash"
	"github.com/matheusvf/loja-backend/internal/models"
)

type AuthService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		RoleID:       1,
	}

	// The user and their empty cart come into existence together or not at all.
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

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return s.issuePair(user.ID, user.Name, user.Role.Name)
}

// Refresh rotates a verified refresh token: the old row is revoked and a new
// access+refresh pair is issued without re-checking credentials.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*TokenPair, error) {
	claims, err := ValidateRefresh(rawToken, s.RefreshSecret, s.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	userID := uint(sub)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	if err := s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", rawToken).
		Update("revoked", true).Error; err != nil {
		return nil, err
	}

	return s.issuePair(userID, name, role)
}

func (s *AuthService) issuePair(userID uint, name, role string) (*TokenPair, error) {
	access, err := SignAccessToken(userID, name, role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := SignRefreshToken(userID, name, role, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := SaveRefreshToken(s.DB, refresh, userID); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
