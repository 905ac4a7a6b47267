// Package seeders fills a fresh database with the admin account, the starter
// category tree and optionally some demo products.
package seeders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/db/fakers"
	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// DemoProducts is how many fake products to add under the subcategories.
	DemoProducts int
	RandSeed     int64
}

type Seeder struct {
	Name string
	Run  func(tx *gorm.DB) error
}

type categorySeed struct {
	Name        string
	Description string
	ImageURL    string
	Children    []string
}

var starterCategories = []categorySeed{
	{"Skincare", "Products for skin care and maintenance", "https://example.com/skincare.jpg",
		[]string{"Face Creams", "Serums", "Cleansers", "Masks", "Sunscreen"}},
	{"Makeup", "Cosmetic products for beauty enhancement", "https://example.com/makeup.jpg",
		[]string{"Lipstick", "Foundation", "Eye Makeup", "Blush", "Brushes"}},
	{"Haircare", "Products for hair care and styling", "https://example.com/haircare.jpg",
		[]string{"Shampoo", "Conditioner", "Hair Oils", "Hair Masks", "Styling Products"}},
	{"Fragrances", "Perfumes and body sprays", "https://example.com/fragrances.jpg",
		[]string{"Women's Perfume", "Men's Cologne", "Body Mists", "Gift Sets"}},
	{"Bath & Body", "Body care and bathing products", "https://example.com/bath-body.jpg",
		[]string{"Body Wash", "Lotions", "Scrubs", "Hand Care", "Body Oils"}},
}

func SeedersRegister(opts Options) []Seeder {
	seeders := []Seeder{}
	if opts.AdminEmail != "" {
		seeders = append(seeders, Seeder{Name: "admin", Run: func(tx *gorm.DB) error { return seedAdmin(tx, opts) }})
	}
	seeders = append(seeders, Seeder{Name: "categories", Run: seedCategories})
	if opts.DemoProducts > 0 {
		r := rand.New(rand.NewSource(opts.RandSeed))
		seeders = append(seeders, Seeder{Name: "products", Run: func(tx *gorm.DB) error {
			return seedProducts(tx, r, opts.DemoProducts)
		}})
	}
	return seeders
}

// DBSeed runs every registered seeder in one transaction. Admin and category
// seeders are idempotent; demo products are added on every run.
func DBSeed(ctx context.Context, db *gorm.DB, opts Options) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, seeder := range SeedersRegister(opts) {
			if err := seeder.Run(tx); err != nil {
				return fmt.Errorf("seeder %s: %w", seeder.Name, err)
			}
			logger.Info("DBSeed: seeder finished", "seeder", seeder.Name)
		}
		return nil
	})
}

func seedAdmin(tx *gorm.DB, opts Options) error {
	if opts.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is required to create the admin user")
	}

	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	var existing models.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Info("seedAdmin: admin user already exists", "email", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	name := opts.AdminName
	if name == "" {
		name = "Admin User"
	}
	return tx.Create(&models.User{
		Name:       name,
		Email:      email,
		Password:   hash,
		Role:       models.RoleAdmin,
		IsVerified: true,
	}).Error
}

func seedCategories(tx *gorm.DB) error {
	for _, seed := range starterCategories {
		parent := models.Category{}
		err := tx.Where("name = ? AND parent_id IS NULL", seed.Name).
			Attrs(models.Category{Name: seed.Name, Description: seed.Description, ImageURL: seed.ImageURL}).
			FirstOrCreate(&parent).Error
		if err != nil {
			return err
		}

		for _, name := range seed.Children {
			child := models.Category{}
			err := tx.Where("name = ? AND parent_id = ?", name, parent.ID).
				Attrs(models.Category{
					Name:        name,
					Description: fmt.Sprintf("%s in %s category", name, seed.Name),
					ParentID:    &parent.ID,
				}).
				FirstOrCreate(&child).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedProducts(tx *gorm.DB, r *rand.Rand, n int) error {
	var leaves []models.Category
	if err := tx.Where("parent_id IS NOT NULL").Order("name").Find(&leaves).Error; err != nil {
		return err
	}
	if len(leaves) == 0 {
		return errors.New("no subcategories to attach products to")
	}

	for i := 0; i < n; i++ {
		product := fakers.ProductFaker(r, &leaves[r.Intn(len(leaves))])
		if err := tx.Create(product).Error; err != nil {
			return err
		}
	}
	return nil
}
