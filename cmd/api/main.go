package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/amity-app/amity-service/internal/api/http"
	"github.com/amity-app/amity-service/internal/api/http/handlers"
	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/config"
	"github.com/amity-app/amity-service/internal/events"
	"github.com/amity-app/amity-service/internal/observability"
	"github.com/amity-app/amity-service/internal/persistence"
	"github.com/amity-app/amity-service/internal/repository"
	"github.com/amity-app/amity-service/internal/service"
	"github.com/amity-app/amity-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	identityRepo := repository.NewIdentityRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	communityRepo := repository.NewCommunityRepository(pool)
	buildingRepo := repository.NewBuildingRepository(pool)
	bindingRepo := repository.NewBindingRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailerService := service.NewMailerService(dispatcher, logger, cfg.Mailer)
	worker.StartMailerWorker(mailerService)

	metrics := observability.NewMetrics()

	sessionService := service.NewSessionService(*cfg, service.SessionDependencies{
		IdentityRepo: identityRepo,
		ProfileRepo:  profileRepo,
	})
	credentialService := service.NewCredentialService(*cfg, service.CredentialDependencies{
		IdentityRepo: identityRepo,
		TokenRepo:    tokenRepo,
		Dispatcher:   dispatcher,
	})
	bindingService := service.NewBindingService(bindingRepo, logger)
	memberService := service.NewMemberService(*cfg, service.MemberDependencies{
		IdentityRepo: identityRepo,
		ProfileRepo:  profileRepo,
		Credentials:  credentialService,
		Binding:      bindingService,
		Dispatcher:   dispatcher,
	})
	communityService := service.NewCommunityService(communityRepo)
	buildingService := service.NewBuildingService(buildingRepo, communityRepo)

	if pool != nil {
		if err := memberService.BootstrapAdministrator(ctx, cfg.Bootstrap); err != nil {
			logger.Fatal("failed to bootstrap administrator", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(sessionService.TokenManager(), identityRepo, profileRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(sessionService, credentialService),
		Members:        handlers.NewMembersHandler(memberService, bindingService),
		Communities:    handlers.NewCommunitiesHandler(communityService),
		Buildings:      handlers.NewBuildingsHandler(buildingService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
