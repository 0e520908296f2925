// cmd/rsa-vault-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/rsa-vault/internal/api/rest/v1"
	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Error("failed to close database: ", err)
		}
	}()

	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db                *gorm.DB
	keyPairGeneration keys.KeyPairGenerationService
	keyPairMetadata   keys.KeyPairMetadataService
	cipher            keys.CipherService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// NewDBConnection runs the schema migration
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	log.Info("Database migrations completed successfully")

	keyPairRepo, err := persistence.NewGormKeyPairRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key pair repository: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(log, cryptography.WithSettings(cfg.KeyGeneration))
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	keyPairGenerationService, err := app.NewKeyPairGenerationService(keyPairRepo, rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key pair generation service: %w", err)
	}

	keyPairMetadataService, err := app.NewKeyPairMetadataService(keyPairRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key pair metadata service: %w", err)
	}

	cipherService, err := app.NewCipherService(keyPairRepo, rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		db:                db,
		keyPairGeneration: keyPairGenerationService,
		keyPairMetadata:   keyPairMetadataService,
		cipher:            cipherService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	r := gin.Default()
	r.Use(v1.CORSMiddleware(cfg.Server.AllowedOrigins))

	v1.SetupRoutes(r, deps.keyPairGeneration, deps.keyPairMetadata, deps.cipher)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info(fmt.Sprintf("Received signal %v, initiating graceful shutdown", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
