package bootstrap

import (
	"context"
	"log"

	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/internal/controller"
	"github.com/Tarunsai01/ARIA/internal/handler"
	"github.com/Tarunsai01/ARIA/internal/pkg/logger"
	"github.com/Tarunsai01/ARIA/internal/pkg/mailer"
	"github.com/Tarunsai01/ARIA/internal/pkg/secretbox"
	"github.com/Tarunsai01/ARIA/internal/repository/implementation"
	"github.com/Tarunsai01/ARIA/internal/repository/memory"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"
	"github.com/Tarunsai01/ARIA/internal/service"
	"github.com/Tarunsai01/ARIA/internal/websocket"
	"github.com/Tarunsai01/ARIA/pkg/embedding"
	"github.com/Tarunsai01/ARIA/pkg/embedding/jina"
	"github.com/Tarunsai01/ARIA/pkg/translation"
	"github.com/Tarunsai01/ARIA/pkg/translation/stream"
	"github.com/Tarunsai01/ARIA/pkg/translation/vocabulary"

	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container holds every HTTP-facing controller plus the background
// workers main.go has to start and stop itself.
type Container struct {
	AuthController        controller.IAuthController
	OAuthController       controller.IOAuthController
	UserController        controller.IUserController
	CredentialController  controller.ICredentialController
	TranslationController controller.ITranslationController
	StreamController      controller.IStreamController
	KnowledgeController   controller.IKnowledgeController
	HistoryController     controller.IHistoryController
	FileController        controller.IFileController

	ConsumerService service.IConsumerService

	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

// NewContainer wires the whole application graph. Infrastructure that
// is down at boot (NATS, Redis) degrades to a warning; a bad
// encryption key is fatal because the credential store cannot run
// without it.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// Panic instead of Fatal so main's deferred cleanup still runs.
	sealer, err := secretbox.New(cfg.Security.EncryptionKey)
	if err != nil {
		log.Panicf("[FATAL] Invalid ENCRYPTION_KEY: %v", err)
	}
	credentialCache := memory.NewCredentialCache()

	embeddingProvider := newEmbeddingProvider(cfg)

	natsPub, natsSub := newEventBus(cfg.App.NatsURL)
	rdb := newRedisClient(cfg.App.RedisURL)

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// In-process queue feeding the embedding worker. Imports return to
	// the caller as soon as rows are persisted; vectors arrive later.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	userService := service.NewUserService(uowFactory, natsPub)
	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Security.JWTSecret)
	oauthService := service.NewOAuthService(uowFactory)
	credentialService := service.NewCredentialService(uowFactory, sealer, credentialCache)
	fileService := service.NewFileService(uowFactory, cfg.Storage.UploadDir, cfg.App.BaseURL)
	historyService := service.NewHistoryService(uowFactory)

	knowledgeService := service.NewKnowledgeService(
		uowFactory,
		publisherService,
		embeddingProvider,
		natsPub,
	)

	// The resolver's tiers: the knowledge service is tier 1, the
	// built-in catalog tier 2 and the caller's provider tier 3.
	catalog := vocabulary.NewCatalog()
	resolver := translation.NewResolver(knowledgeService, catalog)
	accumulator := stream.NewAccumulator()

	translationService := service.NewTranslationService(
		uowFactory,
		credentialService,
		fileService,
		resolver,
		natsPub,
	)
	streamService := service.NewStreamService(credentialService, accumulator)

	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	sysLogger.Info("Bootstrap", "Container initialized", map[string]interface{}{
		"environment":        cfg.App.Environment,
		"embedding_provider": cfg.Ai.EmbeddingProvider,
	})

	return &Container{
		AuthController:        controller.NewAuthController(authService),
		OAuthController:       controller.NewOAuthController(oauthService),
		UserController:        controller.NewUserController(userService),
		CredentialController:  controller.NewCredentialController(credentialService),
		TranslationController: controller.NewTranslationController(translationService),
		StreamController:      controller.NewStreamController(streamService),
		KnowledgeController:   controller.NewKnowledgeController(knowledgeService),
		HistoryController:     controller.NewHistoryController(historyService),
		FileController:        controller.NewFileController(fileService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}

// newEmbeddingProvider picks the vector backend from EMBEDDING_PROVIDER.
// Gemini is the default; Ollama covers local development without an
// API key.
func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
		return jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
	default:
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel)
	}
}

// newEventBus connects both halves of the NATS bus. Either may come
// back nil; services treat a nil publisher as "skip the event" and a
// nil subscriber disables the notification worker.
func newEventBus(url string) (*pktNats.Publisher, *pktNats.Subscriber) {
	pub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}
	return pub, sub
}

// newRedisClient accepts either a redis:// URL or a bare host:port.
func newRedisClient(rawURL string) *redis.Client {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		opt = &redis.Options{Addr: rawURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}
