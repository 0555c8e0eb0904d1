// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
)

var luxuryProducts = []models.Product{
	{
		Name:        "Rolex Submariner",
		Description: "Iconic luxury dive watch with automatic movement and 300m water resistance. Features a black dial with luminescent markers and a unidirectional rotating bezel.",
		Price:       8500,
		Category:    models.CategoryWatches,
		Brand:       "Rolex",
		Material:    "Stainless Steel",
		Dimensions:  &models.Dimensions{Length: 40, Width: 40, Height: 12},
		Weight:      155,
		StockQuantity: 5,
		Featured:      true,
		Rating:        4.9,
		Images: []string{
			"https://images.unsplash.com/photo-1523170335258-f5ed11844a49?w=800",
			"https://images.unsplash.com/photo-1547996160-81dfa63595aa?w=800",
		},
	},
	{
		Name:        "Cartier Love Bracelet",
		Description: "Timeless 18k yellow gold bracelet with screw motif design. A symbol of eternal love and commitment.",
		Price:       6500,
		Category:    models.CategoryJewelry,
		Brand:       "Cartier",
		Material:    "18k Yellow Gold",
		Dimensions:  &models.Dimensions{Length: 6.5, Width: 0.5, Height: 0.5},
		Weight:      30,
		StockQuantity: 8,
		Featured:      true,
		Rating:        4.8,
		Images: []string{
			"https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800",
			"https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=800",
		},
	},
	{
		Name:        "Hermès Birkin Bag",
		Description: "Handcrafted luxury handbag in Togo leather with palladium hardware. Features spacious interior and iconic design.",
		Price:       12000,
		Category:    models.CategoryBags,
		Brand:       "Hermès",
		Material:    "Togo Leather",
		Dimensions:  &models.Dimensions{Length: 30, Width: 22, Height: 16},
		Weight:      1200,
		StockQuantity: 3,
		Featured:      true,
		Rating:        4.9,
		Images: []string{
			"https://images.unsplash.com/photo-1584917865442-de89df76afd3?w=800",
			"https://images.unsplash.com/photo-1594223274512-ad4803739b7c?w=800",
		},
	},
	{
		Name:        "Patek Philippe Calatrava",
		Description: "Elegant dress watch with manual-winding movement. Features a clean white dial with gold hands and markers.",
		Price:       25000,
		Category:    models.CategoryWatches,
		Brand:       "Patek Philippe",
		Material:    "18k White Gold",
		Dimensions:  &models.Dimensions{Length: 39, Width: 39, Height: 9},
		Weight:      120,
		StockQuantity: 2,
		Rating:        4.9,
		Images: []string{
			"https://images.unsplash.com/photo-1524592094714-0f0654e20314?w=800",
			"https://images.unsplash.com/photo-1547996160-81dfa63595aa?w=800",
		},
	},
	{
		Name:        "Tiffany & Co. Diamond Ring",
		Description: "Classic solitaire diamond ring in platinum setting. Features a brilliant-cut diamond with excellent clarity.",
		Price:       15000,
		Category:    models.CategoryJewelry,
		Brand:       "Tiffany & Co.",
		Material:    "Platinum",
		Dimensions:  &models.Dimensions{Length: 6.5, Width: 0.3, Height: 0.3},
		Weight:      8,
		StockQuantity: 4,
		Featured:      true,
		Rating:        4.7,
		Images: []string{
			"https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=800",
			"https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800",
		},
	},
	{
		Name:        "Chanel Classic Flap Bag",
		Description: "Timeless quilted leather handbag with chain strap. Features the iconic CC logo and spacious interior.",
		Price:       8800,
		Category:    models.CategoryBags,
		Brand:       "Chanel",
		Material:    "Caviar Leather",
		Dimensions:  &models.Dimensions{Length: 25, Width: 16, Height: 7},
		Weight:      800,
		StockQuantity: 6,
		Rating:        4.8,
		Images: []string{
			"https://images.unsplash.com/photo-1594223274512-ad4803739b7c?w=800",
			"https://images.unsplash.com/photo-1584917865442-de89df76afd3?w=800",
		},
	},
	{
		Name:        "Audemars Piguet Royal Oak",
		Description: "Sporty luxury watch with distinctive octagonal bezel. Features automatic movement and integrated bracelet.",
		Price:       35000,
		Category:    models.CategoryWatches,
		Brand:       "Audemars Piguet",
		Material:    "Stainless Steel",
		Dimensions:  &models.Dimensions{Length: 41, Width: 41, Height: 10},
		Weight:      180,
		StockQuantity: 3,
		Featured:      true,
		Rating:        4.9,
		Images: []string{
			"https://images.unsplash.com/photo-1523170335258-f5ed11844a49?w=800",
			"https://images.unsplash.com/photo-1547996160-81dfa63595aa?w=800",
		},
	},
	{
		Name:        "Van Cleef & Arpels Alhambra Necklace",
		Description: "Iconic four-leaf clover motif necklace in 18k yellow gold. Features a delicate chain and timeless design.",
		Price:       3200,
		Category:    models.CategoryJewelry,
		Brand:       "Van Cleef & Arpels",
		Material:    "18k Yellow Gold",
		Dimensions:  &models.Dimensions{Length: 16, Width: 2, Height: 0.5},
		Weight:      15,
		StockQuantity: 10,
		Rating:        4.6,
		Images: []string{
			"https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800",
			"https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=800",
		},
	},
}

// SeedInitialData bootstraps the admin account and the luxury catalog.
// Safe to run repeatedly.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	if err := ensureAdminUser(db); err != nil {
		return err
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if productCount == 0 {
		for i := range luxuryProducts {
			product := luxuryProducts[i]
			product.SyncStockFlag()
			if err := db.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", product.Name, err)
			}
		}
		logrus.Infof("Seeded %d products", len(luxuryProducts))
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

func ensureAdminUser(db *gorm.DB) error {
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)
	if adminCount > 0 {
		return nil
	}

	admin := &models.User{
		Name:  "Admin User",
		Email: "admin@luxuryecommerce.com",
		Role:  models.UserRoleAdmin,
	}

	if err := admin.SetPassword("admin123"); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.Info("Default admin user created; change the credentials after first login")
	return nil
}
