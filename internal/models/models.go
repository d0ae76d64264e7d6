package models

import (
	"time"
)

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	RoleID       uint      `gorm:"not null;default:1"       json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Category struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"unique;not null"          json:"name"`
	ProductsCount int64     `gorm:"not null;default:0"       json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null"          json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Stock       int64     `gorm:"not null;default:0"       json:"stock"`
	ImgSrc      string    `json:"img_src"`
	CategoryID  uint      `gorm:"index;not null"           json:"category_id"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Cart struct {
	ID     uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint       `gorm:"uniqueIndex;not null"     json:"user_id"`
	Total  float64    `gorm:"not null;default:0"       json:"total"`
	Items  []CartItem `gorm:"foreignKey:CartID"        json:"items"`
}

// CartItem keys on (cart, product): at most one line per product per cart.
type CartItem struct {
	CartID    uint    `gorm:"primaryKey;autoIncrement:false" json:"cart_id"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int64   `gorm:"not null;check:quantity>0"      json:"quantity"`
	SubTotal  float64 `gorm:"not null"                       json:"sub_total"`
	Product   Product `json:"product"`
}
