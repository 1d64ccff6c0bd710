package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"github.com/sihanyu03/LawTriposChatbot/internal/config"
	"github.com/sihanyu03/LawTriposChatbot/internal/controller"
	"github.com/sihanyu03/LawTriposChatbot/internal/pkg/logger"
	"github.com/sihanyu03/LawTriposChatbot/internal/pkg/serverutils"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/memory"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/internal/service"
	"github.com/sihanyu03/LawTriposChatbot/pkg/embedding"
	"github.com/sihanyu03/LawTriposChatbot/pkg/llm/factory"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/history"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/search"
)

// Container wires the application graph once and hands the server what it
// needs to register routes.
type Container struct {
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Background services, exposed for main.go to run.
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for the ingest pipeline.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	embeddingProvider := embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OpenAIAPIKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	llmLogger := service.NewLLMLogger()

	historyStore := history.NewStore(uowFactory, memory.NewHistoryCache())
	retriever := search.NewRetriever(uowFactory, embeddingProvider, llmLogger)

	consumerService := service.NewConsumerService(pubSub, cfg.Ingest.ChunkTopic, uowFactory, embeddingProvider)

	authService := service.NewAuthService(uowFactory, historyStore, cfg.Auth.JwtSecret, cfg.Auth.TokenAlgorithm)
	chatService := service.NewChatService(llmProvider, retriever, historyStore, cfg.Ai.NumDocuments, llmLogger)

	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret, cfg.Auth.TokenAlgorithm)

	return &Container{
		AuthController:  controller.NewAuthController(authService),
		ChatController:  controller.NewChatController(chatService, jwtMiddleware),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
