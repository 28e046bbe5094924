package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/config"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/handler"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/middleware"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/repository"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/router"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	repos := repository.New(cfg.DataDir, logger)
	if err := repos.Load(); err != nil {
		log.Fatalf("failed to load data files: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	accountService := service.NewAccountService(repos.Students, repos.Representatives, repos.Staff,
		validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	internshipService := service.NewInternshipService(repos.Internships, repos.Representatives,
		repos.Students, repos.Staff, validate, logger)
	applicationService := service.NewApplicationService(repos.Applications, repos.Students,
		repos.Internships, repos.Withdrawals, logger)
	withdrawalService := service.NewWithdrawalService(repos.Withdrawals, repos.Applications,
		repos.Students, repos.Internships, repos.Staff, validate, logger)

	authHandler := handler.NewAuthHandler(accountService, logger)
	internshipHandler := handler.NewInternshipHandler(internshipService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, logger)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalService, logger)
	staffHandler := handler.NewStaffHandler(accountService, internshipService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        authHandler,
		InternshipHandler:  internshipHandler,
		ApplicationHandler: applicationHandler,
		WithdrawalHandler:  withdrawalHandler,
		StaffHandler:       staffHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
