package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"tutorai-be/internal/config"
	"tutorai-be/internal/constant"
	"tutorai-be/internal/controller"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/internal/pkg/serverutils"
	"tutorai-be/internal/repository/contract"
	"tutorai-be/internal/repository/implementation"
	"tutorai-be/internal/repository/memory"
	"tutorai-be/internal/service"
	"tutorai-be/pkg/database"
	"tutorai-be/pkg/llm/factory"
	"tutorai-be/pkg/storage"
	"tutorai-be/pkg/video"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AskController       controller.IAskController
	WorkspaceController controller.IWorkspaceController
	VideoController     controller.IVideoController
	ProfileController   controller.IProfileController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger  logger.ILogger
	closers []io.Closer
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Workspace storage
	target := cfg.Storage.RedisURL
	if cfg.Storage.Driver == storage.DriverSQLite {
		target = cfg.Storage.SQLitePath
	}
	backend, err := storage.NewBackend(ctx, cfg.Storage.Driver, target)
	if err != nil {
		return nil, fmt.Errorf("init storage backend: %w", err)
	}
	if closer, ok := backend.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	sysLogger.Info("BOOTSTRAP", "Storage backend ready", map[string]interface{}{"driver": cfg.Storage.Driver})

	// 2. Profile store
	var profileRepo contract.ProfileRepository
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
		if err != nil {
			return nil, fmt.Errorf("connect profile database: %w", err)
		}
		if err := implementation.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate profile database: %w", err)
		}
		profileRepo = implementation.NewProfileRepository(db)
		sysLogger.Info("BOOTSTRAP", "Profile store: PostgreSQL", nil)
	} else {
		profileRepo = memory.NewProfileRepository()
		sysLogger.Warn("BOOTSTRAP", "DB_CONNECTION_STRING not set, profiles are kept in memory", nil)
	}

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)

	// 4. Services
	llmProvider, err := factory.NewLLMProvider(cfg.Ai, cfg.Keys.Groq)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	askService := service.NewAskService(llmProvider, sysLogger)
	pdfService := service.NewPdfService(cfg.Tutor.MaxUploadBytes, sysLogger)
	publisherService := service.NewPublisherService(constant.ActivityTopic, pubSub)
	workspaceService := service.NewWorkspaceService(
		memory.NewWorkspaceRepository(time.Hour),
		backend,
		askService,
		pdfService,
		publisherService,
		sysLogger,
		service.WorkspaceOptions{
			QuotaBytes:      cfg.Storage.QuotaBytes,
			MaxContextChars: cfg.Tutor.PdfContextMaxChars,
			MaxUploadBytes:  cfg.Tutor.MaxUploadBytes,
		},
	)
	profileService := service.NewProfileService(profileRepo, sysLogger)
	videoService := service.NewVideoService(
		video.NewClient(cfg.Tutor.YouTubeBaseURL, cfg.Keys.YouTube),
		profileService,
		sysLogger,
	)

	c.ConsumerService = service.NewConsumerService(pubSub, constant.ActivityTopic, backend, sysLogger)
	c.closers = append(c.closers, pubSub)

	// 5. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)
	c.AskController = controller.NewAskController(askService, pdfService)
	c.WorkspaceController = controller.NewWorkspaceController(workspaceService, auth)
	c.VideoController = controller.NewVideoController(videoService, auth)
	c.ProfileController = controller.NewProfileController(profileService, auth)

	return c, nil
}

// Close stops the event bus and releases storage connections, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Close failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
