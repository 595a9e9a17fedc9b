package bootstrap

import (
	"context"
	"log"

	"ai-advising-be/internal/config"
	"ai-advising-be/internal/controller"
	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/internal/pkg/mailer"
	"ai-advising-be/internal/repository/memory"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/internal/search"
	"ai-advising-be/internal/service"
	"ai-advising-be/internal/websocket"
	"ai-advising-be/pkg/embedding"
	"ai-advising-be/pkg/embedding/jina"
	"ai-advising-be/pkg/llm/factory"
	"ai-advising-be/pkg/recommend"
	"ai-advising-be/pkg/search/fusion"
	"ai-advising-be/pkg/search/queries"
	"ai-advising-be/pkg/search/web"

	pktNats "ai-advising-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// queryTemperature keeps query generation diverse without drifting off the
// profile.
const queryTemperature = 0.7

type Container struct {
	// Controllers
	ProfileController        controller.IProfileController
	SessionController        controller.ISessionController
	RecommendationController controller.IRecommendationController
	AlumniController         controller.IAlumniController
	SystemController         controller.ISystemController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "", "")
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	}

	llmBaseURL, llmKey := "", cfg.Keys.OpenAI
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL, llmKey = cfg.Ai.OllamaBaseURL, ""
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		llmKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory Session Cache
	sessionCache := memory.NewSessionCache()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Pipeline Components
	denseRetriever := search.NewDenseRetriever(uowFactory, embeddingProvider)
	sparseRetriever := search.NewSparseRetriever(uowFactory)
	fusionEngine := fusion.NewEngine(fusion.DefaultConfig(), denseRetriever, sparseRetriever)

	diversifier := queries.NewDiversifier(llmProvider, queryTemperature)
	tavilyClient := web.NewTavilyClient(cfg.Keys.Tavily)
	webOrchestrator := web.NewOrchestrator(tavilyClient, web.DefaultConfig(), sysLogger)
	synthesizer := recommend.NewSynthesizer(llmProvider, recommend.DefaultTimeout)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	profileService := service.NewProfileService(uowFactory, llmProvider, sessionCache, natsPub, sysLogger)
	recommendationService := service.NewRecommendationService(
		uowFactory,
		sessionCache,
		diversifier,
		fusionEngine,
		webOrchestrator,
		synthesizer,
		natsPub,
		sysLogger,
	)
	alumniService := service.NewAlumniService(uowFactory, publisherService)

	// Advising office notifier (worker)
	if natsSub != nil {
		notifierService := service.NewNotifierService(natsSub, emailService, cfg.SMTP.OfficeEmail, sysLogger)
		go notifierService.Start()
	}

	// 6. Controllers
	return &Container{
		WebSocketHub:             wsHub,
		ProfileController:        controller.NewProfileController(profileService),
		SessionController:        controller.NewSessionController(recommendationService),
		RecommendationController: controller.NewRecommendationController(recommendationService, wsHub, sysLogger),
		AlumniController:         controller.NewAlumniController(alumniService),
		SystemController:         controller.NewSystemController(sysLogger),

		ConsumerService: consumerService,
	}
}
