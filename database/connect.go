package database

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sixthsoul_bff/config"
	"sixthsoul_bff/model"
)

var DB *gorm.DB

func ConnectDB(s config.Settings) *gorm.DB {
	var err error
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName)
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	log.Info("Connection Opened to Database")
	if err := DB.AutoMigrate(
		&model.ShippingFeeConfig{},
		&model.OrderRecord{},
	); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}
	log.Info("Database Migrated")

	// khởi tạo dữ liệu
	SeedData(DB)
	return DB
}
