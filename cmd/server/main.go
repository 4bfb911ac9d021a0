package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kptshop/internal/config"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
	"kptshop/internal/handler"
	"kptshop/internal/media"
	"kptshop/internal/middleware"
	"kptshop/internal/repository/memory"
	mongorepo "kptshop/internal/repository/mongo"
	"kptshop/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"dev_mode", cfg.DevMode,
		"collection_prefix", cfg.CollectionPrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backend
	var repos repositories.Repositories
	var conn *mongorepo.Connection
	if cfg.DevMode {
		repos = memory.New()
		logger.Warn("DEV MODE: using in-memory storage, data is lost on restart")
	} else {
		conn = mongorepo.NewConnection(cfg.MongoURI, cfg.MongoDatabase, logger)
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		_, err := conn.EnsureConnected(connectCtx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}

		names := mongorepo.NewCollectionNames(cfg.CollectionPrefix)
		if err := mongorepo.EnsureIndexes(ctx, conn, names, logger); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}

		repos = mongorepo.New(&mongorepo.RepositoryConfig{
			Conn:        conn,
			Collections: names,
			Logger:      logger,
		})
		logger.Info("database connected", "database", cfg.MongoDatabase)
	}

	// Media host
	mediaHost, err := newMediaHost(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up media host: %v", err)
	}

	// Create services
	folderService := service.NewFolderService(repos.Folders, repos.Images, logger)
	categoryService := service.NewCategoryService(repos.Categories, logger)
	galleryService := service.NewGalleryService(repos.Gallery, mediaHost, logger)
	imageService := service.NewImageService(repos.Images, repos.Folders, mediaHost, cfg.UploadFolder, logger)
	inventoryService := service.NewInventoryService(repos.Inventory, mediaHost, logger)
	uploadService := service.NewUploadService(mediaHost, cfg.UploadFolder, logger)

	// Create handlers
	handlers := &handler.Handlers{
		Folders:    handler.NewFolderHandler(folderService, logger),
		Categories: handler.NewCategoryHandler(categoryService, logger),
		Gallery:    handler.NewGalleryHandler(galleryService, logger),
		Images:     handler.NewImageHandler(imageService, cfg.MaxUploadBytes, logger),
		Inventory:  handler.NewInventoryHandler(inventoryService, logger),
		Upload:     handler.NewUploadHandler(uploadService, cfg.MaxUploadBytes, logger),
		Health:     handler.NewHealthHandler(repos.Ping, logger),
	}

	logger.Info("services initialized")

	mux := handler.NewRouter(handlers, middleware.RateLimit(cfg.UploadRatePerMinute, logger))

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // uploads are forwarded to the media host inside the request
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if conn != nil {
		if err := conn.Close(shutdownCtx); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}

	logger.Info("server stopped")
}

// newMediaHost picks Cloudinary when credentials are configured. Without them
// dev runs get the placeholder host and anything else refuses to start.
func newMediaHost(cfg *config.Config, logger *slog.Logger) (services.MediaHost, error) {
	if cfg.HasCloudinary() {
		host, err := media.NewCloudinary(media.CloudinaryConfig{
			URL:       cfg.CloudinaryURL,
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("media host configured", "host", "cloudinary")
		return host, nil
	}

	if cfg.DevMode || cfg.Environment == "dev" {
		logger.Warn("Cloudinary is not configured, uploads go to a placeholder host")
		return media.NewPlaceholder(logger), nil
	}

	return nil, errors.New("cloudinary credentials are required outside dev (set CLOUDINARY_URL)")
}
