package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/go-task-api/internal/config"
	v1 "github.com/avoronov/go-task-api/internal/delivery/http/v1"
	"github.com/avoronov/go-task-api/internal/services"
	"github.com/avoronov/go-task-api/internal/storage"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	mustRegisterRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func mustRegisterRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	store := storage.NewPostgresStorage(globalLogger, globalPostgresPool)
	tokenService := services.NewTokenService(
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.AccessTokenTTL,
	)
	authService, err := services.NewAuthService(globalLogger, store, tokenService)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create auth service")
		panic(err)
	}
	taskService := services.NewTaskService(globalLogger, store)

	v1Handler := v1.New(globalLogger, authService, taskService)

	router.GET("/", v1.HandleRoot)
	router.GET("/healthz", v1.HandleHealthz)

	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/register", v1Handler.HandleRegister)

	router.GET("/user", v1Handler.HandleAuthMiddleware, v1Handler.HandleGetCurrentUser)

	taskRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	taskRouter.POST("", v1Handler.HandleCreateTask)
	taskRouter.GET("", v1Handler.HandleGetTasks)
	taskRouter.GET("/statuses", v1Handler.HandleGetTaskStatuses)
	taskRouter.GET("/:id", v1Handler.HandleGetTask)
	taskRouter.PATCH("/:id/status", v1Handler.HandleSetTaskStatus)
	taskRouter.DELETE("/:id", v1Handler.HandleArchiveTask)
}
