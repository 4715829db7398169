package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/config"
	"github.com/prismedia/news-server/internal/handler"
	"github.com/prismedia/news-server/internal/oauth"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/service"
	"github.com/prismedia/news-server/internal/utils"
	"github.com/prismedia/news-server/pkg/observability"
)

const (
	shutdownTimeout    = 5 * time.Second
	tokenPurgeInterval = time.Hour
)

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
	tokens service.TokenService
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.Auth.TokenSecret,
		cfg.Auth.AccessTokenExpiry.Duration,
		cfg.Auth.RefreshTokenExpiry.Duration,
		infra.Logger(),
	)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	stateStore := service.NewOAuthStateStore(infra.Redis(), cfg.OAuth2.StateTTL.Duration)
	healthChecker := NewHealthChecker(infra)

	tokenService := service.NewTokenService(repos.Token, jwtManager, infra.Logger())
	userService := service.NewUserService(repos.User, cfg.Security.BCryptCost, infra.Logger())
	clusterService := service.NewNewsClusterService(repos.NewsCluster, repos.NewsItem, infra.Logger())
	itemService := service.NewNewsItemService(repos.NewsItem, clusterService, infra.Logger())

	googleClient := oauth.NewGoogleClient(
		cfg.OAuth2.GoogleClientID,
		cfg.OAuth2.GoogleClientSecret,
		cfg.OAuth2.GoogleRedirectURL(),
	)

	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.Auth.AccessTokenExpiry.Duration, infra.Logger())
	oauthHandler := handler.NewOAuthHandler(
		userService,
		tokenService,
		stateStore,
		cfg.OAuth2.AuthorizedRedirectURI,
		cfg.OAuth2.StateTTL.Duration,
		infra.Logger(),
		googleClient,
	)
	newsHandler := handler.NewNewsHandler(itemService, infra.Logger())
	clusterHandler := handler.NewClusterHandler(clusterService, infra.Logger())

	router := gin.Default()
	router.Use(otelgin.Middleware("news-server"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	router.Use(handler.AuthenticationFilter(jwtManager, repos.User, cfg.Security.AllowQueryToken, infra.Logger()))

	setupRoutes(router, cfg, authHandler, oauthHandler, newsHandler, clusterHandler, rateLimiter, healthChecker, infra)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
		tokens: tokenService,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	newsHandler *handler.NewsHandler,
	clusterHandler *handler.ClusterHandler,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	infra Infrastructure,
) {
	router.GET("/metrics", observability.PrometheusHandler(infra.MetricsHandler()))
	router.GET("/health", healthChecker.Handler)

	throttled := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		infra.Logger(),
	)

	oauth2 := router.Group("/oauth2")
	{
		oauth2.GET("/authorize/:provider", oauthHandler.Authorize)
		oauth2.GET("/callback/:provider", oauthHandler.Callback)
	}

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/info", authHandler.Info)
			auth.GET("/me", handler.RequireAuth(), authHandler.Me)
			auth.POST("/signup", throttled, authHandler.SignUp)
			auth.POST("/refresh-token", throttled, authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
		}

		news := api.Group("/news", handler.RequireAuth())
		{
			news.GET("", newsHandler.List)
			news.GET("/:id", newsHandler.Get)
			news.GET("/category/:category", newsHandler.ListByCategory)
			news.POST("", newsHandler.Create)
			news.PUT("/:id", newsHandler.Update)
			news.DELETE("/:id", newsHandler.Delete)
		}

		clusters := api.Group("/clusters", handler.RequireAuth())
		{
			clusters.GET("", clusterHandler.List)
			clusters.GET("/:id", clusterHandler.Get)
			clusters.POST("", clusterHandler.Create)
			clusters.PUT("/:id", clusterHandler.Update)
			clusters.DELETE("/:id", clusterHandler.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go runTokenPurge(ctx, a.tokens, tokenPurgeInterval, a.infra.Logger())

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

// runTokenPurge deletes expired persisted refresh tokens once at startup
// and then on every tick until the context is cancelled
func runTokenPurge(ctx context.Context, tokens service.TokenService, interval time.Duration, logger *zap.Logger) {
	purge := func() {
		if err := tokens.PurgeExpired(ctx); err != nil {
			logger.Warn("failed to purge expired refresh tokens", zap.Error(err))
		}
	}
	purge()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
