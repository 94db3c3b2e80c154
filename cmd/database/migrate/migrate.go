package migration

import (
	"SmartCart-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.GenericProduct{}); err != nil {
		log.Fatalf("Error migrating generic product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SpecificProduct{}); err != nil {
		log.Fatalf("Error migrating specific product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ProductCache{}); err != nil {
		log.Fatalf("Error migrating product cache database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShoppingList{}); err != nil {
		log.Fatalf("Error migrating shopping list database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ListItem{}); err != nil {
		log.Fatalf("Error migrating list item database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
