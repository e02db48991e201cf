package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/tawseel/dispatch/internal/pkg/config"
	"github.com/tawseel/dispatch/internal/pkg/database"
	"github.com/tawseel/dispatch/internal/pkg/health"
	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/middleware"
	"github.com/tawseel/dispatch/internal/pkg/nsq"
	"github.com/tawseel/dispatch/internal/pkg/polyline"
	"github.com/tawseel/dispatch/internal/pkg/server"
	"github.com/tawseel/dispatch/internal/pkg/websocket"
	locationgw "github.com/tawseel/dispatch/services/location/gateway"
	locationrepo "github.com/tawseel/dispatch/services/location/repository"
	locationuc "github.com/tawseel/dispatch/services/location/usecase"
	matchgw "github.com/tawseel/dispatch/services/match/gateway"
	matchhandler "github.com/tawseel/dispatch/services/match/handler"
	matchrepo "github.com/tawseel/dispatch/services/match/repository"
	matchuc "github.com/tawseel/dispatch/services/match/usecase"
	streamgw "github.com/tawseel/dispatch/services/stream/gateway"
	streamhandler "github.com/tawseel/dispatch/services/stream/handler"
	streamuc "github.com/tawseel/dispatch/services/stream/usecase"
)

func main() {
	cfg := config.InitConfig()

	appLogger, err := logger.NewZapLogger(logger.Config{
		Level:    cfg.Logger.Level,
		FilePath: cfg.Logger.FilePath,
	})
	if err != nil {
		panic(err)
	}
	defer appLogger.Close()
	logger.SetGlobalLogger(appLogger)

	logger.Info("starting dispatch service",
		logger.String("name", cfg.App.Name),
		logger.String("version", cfg.App.Version),
		logger.String("environment", cfg.App.Environment))

	// Infrastructure clients
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", logger.Err(err))
	}

	pgClient, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to postgres", logger.Err(err))
	}

	producer, err := nsq.NewProducer(cfg.NSQ.Address)
	if err != nil {
		logger.Fatal("failed to connect to nsq", logger.Err(err))
	}

	// Location registry
	registry := locationrepo.NewRegistry()
	locationUC := locationuc.NewLocationUC(registry)
	locationGW := locationgw.NewLocationGW(producer, redisClient)

	// Fan-out
	hub := streamuc.NewHub()
	pending := streamuc.NewPendingQueues()
	streamUC := streamuc.NewStreamUC(hub, pending, locationUC)
	streamGW := streamgw.NewStreamGW(producer)

	batcher := streamuc.NewBatcher(
		cfg.Stream,
		time.Duration(cfg.Location.StaleAfterSeconds)*time.Second,
		locationUC,
		locationGW,
		streamGW,
		hub,
		pending,
	)
	batcher.Start(context.Background())

	// Matching engine
	driverRepo := matchrepo.NewDriverStateRepo(pgClient)
	matchUC := matchuc.NewMatchUC(driverRepo, locationUC, matchgw.NewMatchGW(producer), polyline.NewCodec(), cfg.Match)

	// Transports
	wsManager := websocket.NewManager(cfg.JWT)
	wsHandler := streamhandler.NewWebSocketHandler(wsManager, streamUC, locationUC)

	rideConsumer, err := streamhandler.NewRideStatusConsumer(streamUC, cfg.NSQ.Address)
	if err != nil {
		logger.Fatal("failed to start ride status consumer", logger.Err(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	health.RegisterHealthEndpoints(e, cfg.App.Name)
	wsHandler.RegisterRoutes(e)
	matchhandler.NewMatchHandler(matchUC).RegisterRoutes(e, middleware.JWTAuthMiddleware(cfg.JWT))

	shutdown := server.NewShutdownManager()
	shutdown.Register(func(ctx context.Context) error {
		batcher.Stop()
		return nil
	})
	shutdown.Register(func(ctx context.Context) error {
		rideConsumer.Stop()
		producer.Stop()
		return nil
	})
	shutdown.Register(func(ctx context.Context) error {
		if err := redisClient.Close(); err != nil {
			return err
		}
		return pgClient.Close()
	})

	srv := server.NewGracefulServer(e, cfg.Server.Port)
	if err := srv.Start(); err != nil {
		logger.Error("server exited with error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(ctx); err != nil {
		logger.Error("shutdown finished with errors", logger.Err(err))
	}
}
