package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expertline/internal/config"
	"expertline/internal/controller"
	"expertline/internal/repository"
	"expertline/internal/service"
	"expertline/pkg/configwatcher"
	"expertline/pkg/database"
	"expertline/pkg/logger"
	"expertline/pkg/monitoring"
	"expertline/pkg/ratelimit"
	"expertline/pkg/security"
	"expertline/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user    *repository.UserRepository
	post    *repository.PostRepository
	topic   *repository.TopicRepository
	comment *repository.CommentRepository
	vote    *repository.VoteRepository
	request *repository.TopicRequestRepository
}

type services struct {
	auth    *service.AuthService
	oauth   *service.OAuthService
	storage *service.StorageService
	user    *service.UserService
	post    *service.PostService
	comment *service.CommentService
	vote    *service.VoteService
	topic   *service.TopicService
	request *service.RequestService
	ai      *service.AIService
	compare *service.CompareService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	post    *controller.PostController
	topic   *controller.TopicController
	request *controller.RequestController
	compare *controller.CompareController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		post:    repository.NewPostRepository(db),
		topic:   repository.NewTopicRepository(db),
		comment: repository.NewCommentRepository(db),
		vote:    repository.NewVoteRepository(db),
		request: repository.NewTopicRequestRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.oauth = service.NewOAuthService(repos.user, s.auth, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.post = service.NewPostService(repos.post, repos.topic, rdb, logger.Log)
	s.comment = service.NewCommentService(repos.comment, repos.post)
	s.vote = service.NewVoteService(db)
	s.topic = service.NewTopicService(repos.topic)
	s.request = service.NewRequestService(repos.request)
	s.ai = service.NewAIService(cfg.AI)
	s.compare = service.NewCompareService(repos.post, repos.request, service.NewKeywordTagger(), s.ai, logger.Log)

	return s
}

// newCompareLimiter 滑动窗口限流器,后台定期清理闲置 IP
func newCompareLimiter(cfg *config.Config) *ratelimit.Limiter {
	limiter := ratelimit.New()
	window := time.Duration(cfg.RateLimit.CompareWindowS) * time.Second
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			limiter.Cleanup(window)
		}
	}()
	return limiter
}

func (a *App) initControllers(s *services, db *gorm.DB, cfg *config.Config) *controllers {
	limiter := newCompareLimiter(cfg)
	return &controllers{
		auth:    controller.NewAuthController(s.auth, s.oauth),
		user:    controller.NewUserController(s.user),
		post:    controller.NewPostController(s.post, s.comment, s.vote),
		topic:   controller.NewTopicController(s.topic),
		request: controller.NewRequestController(s.request),
		compare: controller.NewCompareController(s.compare, limiter, cfg),
		health:  controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 只服务浏览去重，连不上降级运行
		logger.Log.Warn("Redis unavailable, view dedupe disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("expertline", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded", zap.String("mode", newCfg.Server.Mode))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
