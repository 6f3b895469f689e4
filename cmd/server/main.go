package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"fileup/internal/auth"
	"fileup/internal/config"
	"fileup/internal/handler"
	"fileup/internal/middleware"
	"fileup/internal/repository/postgres"
	"fileup/internal/service"
	"fileup/internal/upload"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"upload_dir", cfg.UploadDir,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations before opening the pool
	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	sessionRepo := postgres.NewSessionRepository(repoConfig)

	// Session manager with background expiry sweep
	sessions := auth.NewSessionManager(sessionRepo, cfg.SessionTTL, logger)
	go sessions.RunJanitor(ctx)

	// Upload adapter
	policy, err := upload.LoadPolicy()
	if err != nil {
		log.Fatalf("Failed to load upload policy: %v", err)
	}
	uploads, err := upload.NewDiskStore(cfg.UploadDir, policy, logger)
	if err != nil {
		log.Fatalf("Failed to create upload store: %v", err)
	}

	// Create services
	accountService := service.NewAccountService(userRepo, fileRepo, cfg.FileListLimit, logger)
	treeService := service.NewTreeService(folderRepo, fileRepo, cfg.FileListLimit, logger)

	// Create handlers
	accountHandler := handler.NewAccountHandler(accountService, sessions, logger)
	folderHandler := handler.NewFolderHandler(treeService, uploads, logger)

	logger.Info("services initialized")

	// Protected routes carry the session check; public routes do not
	protected := middleware.Session(sessions)

	mux := http.NewServeMux()

	// Account routes
	mux.HandleFunc("POST /api/sign-up", accountHandler.SignUp)
	mux.HandleFunc("POST /api/log-in", accountHandler.LogIn)
	mux.Handle("POST /api/log-out", protected(http.HandlerFunc(accountHandler.LogOut)))
	mux.Handle("GET /api/home", protected(http.HandlerFunc(accountHandler.Home)))

	// Folder tree routes
	mux.Handle("GET /api/folders", protected(http.HandlerFunc(folderHandler.ListChildren)))
	mux.Handle("GET /api/folders/{folderId}", protected(http.HandlerFunc(folderHandler.ListChildren)))
	mux.Handle("POST /api/folders/create", protected(http.HandlerFunc(folderHandler.CreateFolder)))
	mux.Handle("POST /api/folders/{folderId}/create", protected(http.HandlerFunc(folderHandler.CreateFolder)))
	mux.Handle("POST /api/folders/upload", protected(http.HandlerFunc(folderHandler.UploadFile)))
	mux.Handle("POST /api/folders/{folderId}/upload", protected(http.HandlerFunc(folderHandler.UploadFile)))

	// Stored file bytes
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	// Build middleware chain: CORS → Recovery → Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
