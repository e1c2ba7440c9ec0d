package main

import (
	"log"

	"invoice-processor-be/internal/config"
	"invoice-processor-be/internal/model"
	"invoice-processor-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	err = gormDB.AutoMigrate(
		&model.Stack{},
		&model.Document{},
		&model.InvoiceExtraction{},
		&model.IntegrationEndpoint{},
	)
	if err != nil {
		log.Panicf("Migration failed: %v", err)
	}

	log.Println("Migrations completed")
}
