package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"realestate-buyer-be/internal/config"
	"realestate-buyer-be/internal/controller"
	"realestate-buyer-be/internal/pkg/logger"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/internal/service"
	"realestate-buyer-be/internal/websocket"
	"realestate-buyer-be/pkg/agent"
	"realestate-buyer-be/pkg/llm/factory"

	pktNats "realestate-buyer-be/pkg/nats"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController
	ProfileController controller.IProfileController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Live activity feed
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
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

	// 3. Model Provider & Agents
	apiKey := cfg.Ai.OpenAIKey
	baseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.Provider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.Provider, cfg.Ai.Model, baseURL, apiKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	agentLogger := log.Default()
	parser := agent.NewTranscriptParser(llmProvider, agentLogger)
	strategist := agent.NewChatStrategist(llmProvider, agentLogger)
	generator := agent.NewProfileGenerator(llmProvider, agentLogger)

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
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/activity.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Preference context cache shared by intake (invalidation) and chat (reads)
	cacheTTL := time.Duration(cfg.Ai.PrefCacheTTL) * time.Second
	prefCache := gocache.New(cacheTTL, 2*cacheTTL)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.ActivityTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ActivityTopic,
		uowFactory,
		natsPub,
	)

	sessionService := service.NewSessionService(uowFactory, parser, publisherService, prefCache, sysLogger)
	chatService := service.NewChatService(uowFactory, strategist, publisherService, prefCache, sysLogger)
	profileService := service.NewProfileService(uowFactory, generator, publisherService, sysLogger)

	notifierService := service.NewNotifierService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifierService.Start()
	}

	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		ChatController:    controller.NewChatController(chatService, sysLogger),
		ProfileController: controller.NewProfileController(profileService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
	}
}
