package bootstrap

import (
	"context"
	"log"

	"ai-coursechat-be/internal/config"
	"ai-coursechat-be/internal/constant"
	"ai-coursechat-be/internal/controller"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/implementation"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/internal/repository/redisstore"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/internal/service"
	"ai-coursechat-be/pkg/embedding"
	"ai-coursechat-be/pkg/events"
	"ai-coursechat-be/pkg/llm/factory"
	"ai-coursechat-be/pkg/rag/catalog"
	"ai-coursechat-be/pkg/rag/orchestrator"
	"ai-coursechat-be/pkg/rag/tools"

	pktNats "ai-coursechat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	CourseController    controller.ICourseController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	IngestService   service.IIngestService

	Logger logger.ILogger
}

// NewContainer wires the whole dependency graph. A nil db switches every
// repository to the in-memory backend, which keeps the binary runnable
// without Postgres for local experiments and tests.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var uowFactory unitofwork.RepositoryFactory
	var courseRepo contract.CourseRepository
	var chunkRepo contract.ChunkRepository
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
		courseRepo = implementation.NewCourseRepository(db)
		chunkRepo = implementation.NewChunkRepository(db)
	} else {
		log.Printf("[WARN] No database configured, using in-memory indexes")
		memCourses := memory.NewCourseRepository()
		memChunks := memory.NewChunkRepository()
		uowFactory = memory.NewRepositoryFactory(memCourses, memChunks)
		courseRepo = memCourses
		chunkRepo = memChunks
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	apiKey := cfg.Keys.Anthropic
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Rag.SessionBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Rag.MaxHistory)
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Rag.MaxHistory)
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	// 5. NATS (best effort, audit only)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		subscribeAuditLog(natsSub, sysLogger)
	}

	// 6. Retrieval Pipeline
	resolver := catalog.NewResolver(courseRepo, embeddingProvider, cfg.Rag.ResolveThreshold)

	registry := tools.NewRegistry()
	registry.Register(tools.NewCourseSearchTool(
		resolver,
		courseRepo,
		chunkRepo,
		embeddingProvider,
		cfg.Rag.MaxResults,
		cfg.Rag.SearchThreshold,
	))
	registry.Register(tools.NewCourseOutlineTool(resolver, courseRepo))

	orch := orchestrator.New(
		llmProvider,
		registry,
		constant.AssistantSystemPrompt,
		cfg.Rag.MaxToolRounds,
		constant.DefaultTemperature,
		constant.DefaultMaxTokens,
	)

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Rag.IngestTopic, pubSub)
	ingestService := service.NewIngestService(
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Rag.IngestTopic,
		uowFactory,
		ingestService,
		sysLogger,
	)
	assistantService := service.NewAssistantService(orch, registry, sessionRepo, sysLogger)
	courseService := service.NewCourseService(uowFactory)

	// 8. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		CourseController:    controller.NewCourseController(courseService, publisherService),
		ConsumerService:     consumerService,
		IngestService:       ingestService,
		Logger:              sysLogger,
	}
}

// subscribeAuditLog mirrors ingestion events from the bus into the
// structured log, so operators can follow what other instances ingested.
func subscribeAuditLog(sub *pktNats.Subscriber, sysLogger logger.ILogger) {
	err := sub.Subscribe("events.COURSE_INGESTED", "coursechat-audit", func(ctx context.Context, event events.Event) error {
		sysLogger.Info("audit", "course ingested event received", event.Payload())
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Failed to subscribe to ingestion events: %v", err)
	}
}
