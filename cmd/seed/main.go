package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roomlink/internal/config"
	"roomlink/internal/db"
	"roomlink/internal/model"
)

// seedUser is one fixture account; every account gets the same dev password.
type seedUser struct {
	Name       string
	Email      string
	Role       model.Role
	University string
	City       string
}

const seedPassword = "roomlink-dev"

var seedUsers = []seedUser{
	{Name: "Amina El Fassi", Email: "amina@student.example.com", Role: model.RoleStudent, University: "Université Hassan II"},
	{Name: "Youssef Berrada", Email: "youssef@student.example.com", Role: model.RoleStudent, University: "Université Mohammed V"},
	{Name: "Karim Alaoui", Email: "karim@owner.example.com", Role: model.RoleOwner},
	{Name: "Salma Idrissi", Email: "salma@owner.example.com", Role: model.RoleOwner},
	{Name: "Platform Admin", Email: "admin@roomlink.example.com", Role: model.RoleAdmin},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Property{},
		&model.Conversation{},
		&model.Message{},
		&model.Appointment{},
		&model.Announcement{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make(map[string]*model.User, len(seedUsers))
	created := 0
	for _, su := range seedUsers {
		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
			University:   su.University,
		}
		result := gormDB.WithContext(ctx).Where("email = ?", su.Email).FirstOrCreate(user, user)
		if result.Error != nil {
			log.Fatalf("Failed to seed user %s: %v", su.Email, result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		}
		users[su.Email] = user
	}
	log.Printf("Seeded users: %d created, %d already present", created, len(seedUsers)-created)

	owner := users["karim@owner.example.com"]
	properties := []model.Property{
		{
			OwnerID:   owner.ID,
			Title:     "Bright studio near the tramway",
			Address:   "12 Rue des Orangers",
			City:      "Casablanca",
			Type:      model.PropertyTypeStudio,
			Rent:      decimal.NewFromInt(2800),
			Bedrooms:  1,
			Bathrooms: 1,
			AreaSqM:   32,
			Available: true,
		},
		{
			OwnerID:   owner.ID,
			Title:     "Shared 3-bedroom apartment, students welcome",
			Address:   "45 Avenue Allal Ben Abdellah",
			City:      "Rabat",
			Type:      model.PropertyTypeApartment,
			Rent:      decimal.NewFromInt(4500),
			Bedrooms:  3,
			Bathrooms: 2,
			AreaSqM:   95,
			Available: true,
		},
	}
	for i := range properties {
		p := &properties[i]
		err := gormDB.WithContext(ctx).
			Where("owner_id = ? AND title = ?", p.OwnerID, p.Title).
			First(&model.Property{}).Error
		if err == gorm.ErrRecordNotFound {
			if err := gormDB.WithContext(ctx).Create(p).Error; err != nil {
				log.Fatalf("Failed to seed property %q: %v", p.Title, err)
			}
			log.Printf("Seeded property %q", p.Title)
		} else if err != nil {
			log.Fatalf("Failed to check property %q: %v", p.Title, err)
		}
	}

	student := users["amina@student.example.com"]
	announcement := &model.Announcement{
		UserID:  student.ID,
		Title:   "Looking for a roommate near campus",
		Content: "Second-year student looking to share a two-bedroom close to the medical faculty.",
		Type:    model.AnnouncementLookingForRoommate,
		City:    "Casablanca",
		Budget:  decimal.NewFromInt(1800),
	}
	err = gormDB.WithContext(ctx).
		Where("user_id = ? AND title = ?", announcement.UserID, announcement.Title).
		First(&model.Announcement{}).Error
	if err == gorm.ErrRecordNotFound {
		if err := gormDB.WithContext(ctx).Create(announcement).Error; err != nil {
			log.Fatalf("Failed to seed announcement: %v", err)
		}
		log.Println("Seeded announcement")
	} else if err != nil {
		log.Fatalf("Failed to check announcement: %v", err)
	}

	log.Println("Seed completed")
}
