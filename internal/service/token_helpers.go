package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/models"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func SignAccessToken(userID uint, name, role string, accessSecret []byte) (string, error) {
	exp := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"role": role,
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(accessSecret)
}

func SignRefreshToken(userID uint, name, role string, refreshSecret []byte) (string, error) {
	exp := time.Now().Add(refreshTokenTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(refreshSecret)
}

func SaveRefreshToken(db *gorm.DB, token string, userID uint) error {
	row := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(refreshTokenTTL).Unix(),
		Revoked:   false,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func ParseAccessToken(rawToken string, accessSecret []byte) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return accessSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse claims", ErrUnauthorized)
	}
	return claims, nil
}

// ValidateRefresh checks the signature, the refresh type claim and the stored
// token row: a revoked or rotated token fails even when cryptographically valid.
func ValidateRefresh(rawToken string, refreshSecret []byte, db *gorm.DB) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return refreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse claims", ErrUnauthorized)
	}

	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, fmt.Errorf("%w: not a refresh token", ErrUnauthorized)
	}

	var stored models.RefreshToken
	if err := db.Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token not found", ErrUnauthorized)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stored.Revoked {
		return nil, fmt.Errorf("%w: refresh token revoked", ErrUnauthorized)
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
	}

	return claims, nil
}
