package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "vidshare/internal/app"
	"vidshare/internal/bootstrap"
	"vidshare/internal/cache"
	"vidshare/internal/platform/rabbitmq"
	"vidshare/internal/repository"
	"vidshare/internal/session"
	"vidshare/internal/transport/http/handler"
	"vidshare/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = app.Config.Storage.MaxUploadMB << 20

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/uploads", app.Config.Storage.UploadDir)

	userRepo := repository.NewUserRepository(app.DB)
	videoRepo := repository.NewVideoRepository(app.DB)

	authService := appsvc.NewAuthService(userRepo)
	catalogCache := cache.NewCatalogCache(
		app.Redis,
		time.Duration(app.Config.Redis.CatalogTTLSeconds)*time.Second,
	)
	viewPublisher := rabbitmq.NewViewPublisher(app.MQConn, app.Config.RabbitMQ.ViewCountQueue)
	videoService := appsvc.NewVideoService(
		videoRepo,
		app.Store,
		catalogCache,
		viewPublisher,
		app.Config.Storage.AllowedExtensions,
	)

	sessions := session.NewManager(
		session.NewRedisStore(app.Redis),
		app.Config.Auth.SessionSecret,
		time.Duration(app.Config.Auth.SessionTTLMinute)*time.Minute,
	)

	authHandler := handler.NewAuthHandler(authService, sessions, app.Config.App.Name)
	videoHandler := handler.NewVideoHandler(videoService, app.Config.App.Name)
	healthHandler := handler.NewHealthHandler(app)

	RegisterRoutes(router, authHandler, videoHandler, healthHandler, sessions, authService)
	return router
}

// RegisterRoutes wires the six page operations plus health. Split from
// NewRouter so tests can mount the same routes over their own handlers.
func RegisterRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	videoHandler *handler.VideoHandler,
	healthHandler *handler.HealthHandler,
	sessions *session.Manager,
	users middleware.PrincipalResolver,
) {
	router.Use(middleware.Identify(sessions, users))

	router.GET("/", videoHandler.Home)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/video/:id", videoHandler.Watch)

	authed := router.Group("/")
	authed.Use(middleware.RequireLogin())
	authed.GET("/logout", authHandler.Logout)
	authed.GET("/upload", videoHandler.ShowUpload)
	authed.POST("/upload", videoHandler.Upload)

	if healthHandler != nil {
		router.GET("/healthz", healthHandler.Check)
	}
}
