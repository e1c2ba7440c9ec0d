package bootstrap

import (
	"log"

	"invoice-processor-be/internal/config"
	"invoice-processor-be/internal/controller"
	"invoice-processor-be/internal/pkg/logger"
	"invoice-processor-be/internal/repository/memory"
	"invoice-processor-be/internal/repository/unitofwork"
	"invoice-processor-be/internal/service"
	"invoice-processor-be/pkg/classifier"
	"invoice-processor-be/pkg/extractor"
	"invoice-processor-be/pkg/keylock"
	"invoice-processor-be/pkg/llm/factory"
	"invoice-processor-be/pkg/mailfetch"
	"invoice-processor-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	StackController    controller.IStackController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	var objectStore storage.ObjectStorage
	if cfg.Storage.Mode == "s3" {
		objectStore = storage.NewS3Storage(uowFactory)
		log.Printf("[INFO] Using object storage: S3 (endpoint-configured)")
	} else {
		objectStore = storage.NewMemoryStorage()
		log.Printf("[INFO] Using object storage: in-memory")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var invoiceExtractor extractor.InvoiceExtractor
	if cfg.Ai.LLMProvider == "stub" {
		invoiceExtractor = extractor.NewStubExtractor()
	} else {
		invoiceExtractor = extractor.NewLLMExtractor(llmProvider)
	}

	docClassifier := classifier.NewClassifier()
	fetcher := mailfetch.NewImapFetcher()
	sessionRepo := memory.NewSessionRepository()
	stackLocks := keylock.New()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, uowFactory, sysLogger)

	processingService := service.NewProcessingService(
		uowFactory,
		docClassifier,
		invoiceExtractor,
		objectStore,
		stackLocks,
		publisherService,
		sysLogger,
	)
	ingestionService := service.NewIngestionService(
		uowFactory,
		objectStore,
		fetcher,
		processingService,
		sysLogger,
	)
	stackService := service.NewStackService(uowFactory)
	documentService := service.NewDocumentService(processingService)
	chatService := service.NewChatService(
		sessionRepo,
		uowFactory,
		llmProvider,
		objectStore,
		sysLogger,
	)
	endpointService := service.NewEndpointService(uowFactory)

	// 5. Controllers
	return &Container{
		StackController:    controller.NewStackController(stackService, ingestionService),
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		AdminController:    controller.NewAdminController(endpointService),

		ConsumerService: consumerService,
	}
}
