package main

import (
	"context"
	"log"
	"os"

	"invoice-processor-be/internal/config"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"
	"invoice-processor-be/pkg/database"
)

// Seeds a default email source and storage endpoint from environment
// variables so a fresh deployment can import emails without touching the
// admin API first. Existing endpoints with the same name are left alone.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	if os.Getenv("SEED_IMAP_HOST") == "" {
		log.Println("SEED_IMAP_HOST not set, skipping email source seed")
	} else {
		seedEndpoint(ctx, uow, entity.NewIntegrationEndpoint(
			"default-inbox",
			entity.EndpointTypeEmailSource,
			map[string]string{
				"host":     os.Getenv("SEED_IMAP_HOST"),
				"port":     getOrDefault("SEED_IMAP_PORT", "993"),
				"username": os.Getenv("SEED_IMAP_USERNAME"),
				"password": os.Getenv("SEED_IMAP_PASSWORD"),
				"ssl":      "true",
				"folder":   "INBOX",
			},
		))
	}

	seedEndpoint(ctx, uow, entity.NewIntegrationEndpoint(
		"default-storage",
		entity.EndpointTypeStorage,
		map[string]string{
			"endpoint":  getOrDefault("SEED_S3_ENDPOINT", "localhost:9000"),
			"region":    getOrDefault("SEED_S3_REGION", "us-east-1"),
			"bucket":    getOrDefault("SEED_S3_BUCKET", "invoice-documents"),
			"accessKey": os.Getenv("SEED_S3_ACCESS_KEY"),
			"secretKey": os.Getenv("SEED_S3_SECRET_KEY"),
			"ssl":       getOrDefault("SEED_S3_SSL", "false"),
		},
	))
}

func seedEndpoint(ctx context.Context, uow unitofwork.UnitOfWork, endpoint *entity.IntegrationEndpoint) {
	existing, err := uow.IntegrationEndpointRepository().FindOne(ctx,
		specification.Filter("name", endpoint.Name),
	)
	if err != nil {
		log.Panicf("Failed to look up endpoint %s: %v", endpoint.Name, err)
	}
	if existing != nil {
		log.Printf("Endpoint %s already exists, skipping", endpoint.Name)
		return
	}

	if err := uow.IntegrationEndpointRepository().Create(ctx, endpoint); err != nil {
		log.Panicf("Failed to create endpoint %s: %v", endpoint.Name, err)
	}
	log.Printf("Seeded endpoint %s (%s)", endpoint.Name, endpoint.Type)
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
