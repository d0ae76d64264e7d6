// Seed creates the role rows and the administrative account. It runs once at
// setup time; the server itself never seeds.
package main

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/matheusvf/loja-backend/internal/config"
	"github.com/matheusvf/loja-backend/internal/hash"
	"github.com/matheusvf/loja-backend/internal/models"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := Seed(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	log.Println("seed complete")
}

func Seed(db *gorm.DB) error {
	for _, name := range []string{"user", "admin"} {
		var role models.Role
		err := db.Where("name = ?", name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	var admin models.User
	err := db.Where("email = ?", "admin@admin.com").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword("admin")
	if err != nil {
		return err
	}

	var adminRole models.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin = models.User{
			Name:         "Admin",
			Email:        "admin@admin.com",
			PasswordHash: pwHash,
			RoleID:       adminRole.ID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&models.Cart{UserID: admin.ID}).Error
	})
}
