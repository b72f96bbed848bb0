package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peako/config"
	"peako/core/auth"
	"peako/core/media"
	"peako/core/soundcloud"
	"peako/db"
	"peako/logger"
	"peako/repository"
	"peako/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
	})

	if err := cfg.ValidateAuth(); err != nil {
		log.Fatalf("Invalid auth configuration: %v", err)
	}
	auth.Init(cfg.JWTSecret)

	// 设置服务器超时
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 初始化 MinIO 对象存储
	store, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect GORM: %v", err)
	}
	defer db.CloseGormDB()

	if err := db.MigrateGormModels(); err != nil {
		log.Fatalf("Failed to migrate models: %v", err)
	}

	// Connect to Redis
	if err := db.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer db.CloseRedis()
	log.Println("Successfully connected to Redis")

	trackRepo := repository.NewMySQLTrackRepository()
	eventRepo := repository.NewMySQLEventRepository()
	userRepo := repository.NewMySQLUserRepository()
	contactRepo := repository.NewMySQLContactRepository()
	mediaRepo := repository.NewMediaRepository()
	aboutRepo := repository.NewAboutRepository()

	ingestor := media.NewIngestor(store)
	extractor := soundcloud.NewExtractor()

	// 初始化处理器
	apiHandler := NewAPIHandler(trackRepo, eventRepo, userRepo, contactRepo,
		mediaRepo, aboutRepo, ingestor, extractor, cfg)

	// 使用 gorilla/mux 创建路由器
	router := mux.NewRouter()

	// 添加 CORS 中间件
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// 公开的API端点
	router.HandleFunc("/api/tracks", apiHandler.GetTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/events", apiHandler.GetEventsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/about", apiHandler.GetAboutHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/contact", apiHandler.SubmitContactHandler).Methods(http.MethodPost)

	// 用户认证相关的API端点
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// SoundCloud元数据提取
	router.HandleFunc("/api/soundcloud/analyze", apiHandler.AuthMiddleware(apiHandler.AnalyzeSoundcloudHandler)).Methods(http.MethodPost)

	// 曲目管理
	router.HandleFunc("/api/tracks", apiHandler.AuthMiddleware(apiHandler.CreateTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/tracks/{id}", apiHandler.AuthMiddleware(apiHandler.UpdateTrackHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/tracks/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteTrackHandler)).Methods(http.MethodDelete)

	// 演出管理
	router.HandleFunc("/api/events", apiHandler.AuthMiddleware(apiHandler.CreateEventHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/events/{id}", apiHandler.AuthMiddleware(apiHandler.UpdateEventHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/events/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteEventHandler)).Methods(http.MethodDelete)

	// 介绍区块管理
	router.HandleFunc("/api/about", apiHandler.AuthMiddleware(apiHandler.UpsertAboutHandler)).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/about/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteAboutHandler)).Methods(http.MethodDelete)

	// 联系消息管理
	router.HandleFunc("/api/contact", apiHandler.AuthMiddleware(apiHandler.GetContactMessagesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/contact/{id}", apiHandler.AuthMiddleware(apiHandler.UpdateContactStatusHandler)).Methods(http.MethodPatch)

	// 媒体上传与管理
	router.HandleFunc("/api/upload", apiHandler.AuthMiddleware(apiHandler.UploadMediaHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/upload", apiHandler.AuthMiddleware(apiHandler.DeleteObjectHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/media", apiHandler.AuthMiddleware(apiHandler.ListMediaHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/media", apiHandler.AuthMiddleware(apiHandler.DeleteMediaHandler)).Methods(http.MethodDelete)

	server.Handler = router

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 在goroutine中启动服务器
	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("Public API: /api/tracks /api/events /api/about /api/contact")
		log.Println("Admin API requires a Bearer token from /api/auth/login")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号
	<-stop
	log.Println("Shutting down server...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
