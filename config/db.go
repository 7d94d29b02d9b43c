package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-engine/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase fills an empty database with a starter rate table: room types,
// a few rooms and the default add-on service catalog. Idempotent; existing
// rows are left alone.
func SeedDatabase() {
	// ---------------- RoomTypes ----------------
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)

	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Standard", Description: "Standard Room"},
			{TypeName: "Superior", Description: "Superior Room"},
			{TypeName: "Deluxe", Description: "Deluxe Room"},
		}
		DB.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)

	if roomCount == 0 {
		var standard, deluxe models.RoomType
		DB.Where("type_name = ?", "Standard").First(&standard)
		DB.Where("type_name = ?", "Deluxe").First(&deluxe)

		rooms := []models.Room{
			{RoomNumber: "101", RoomTypeID: &standard.ID, NightlyPriceCents: 12000, MaxAdults: 2, MaxChildren: 1, Floor: "1"},
			{RoomNumber: "102", RoomTypeID: &standard.ID, NightlyPriceCents: 12000, MaxAdults: 2, MaxChildren: 1, Floor: "1"},
			{RoomNumber: "201", RoomTypeID: &deluxe.ID, NightlyPriceCents: 20000, MaxAdults: 3, MaxChildren: 2, Floor: "2"},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	// ---------------- Service catalog ----------------
	var svcCount int64
	DB.Model(&models.ServiceDefinition{}).Count(&svcCount)

	if svcCount == 0 {
		services := []models.ServiceDefinition{
			{ServiceKey: "breakfast", Name: "Breakfast", PriceCents: 1500, PricingMode: models.PricingPerGuest},
			{ServiceKey: "airport-transfer", Name: "Airport Transfer", PriceCents: 6000, PricingMode: models.PricingFlatOnce},
			{ServiceKey: "late-checkout", Name: "Late Checkout", PriceCents: 3000, PricingMode: models.PricingFlatOnce},
		}
		if err := DB.Create(&services).Error; err != nil {
			log.Printf("warning: failed to seed service catalog: %v", err)
		} else {
			log.Println("Service catalog seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.ServiceDefinition{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
