package main

import (
	"log"
	"strings"

	config "sales-browser-api/configs"
	"sales-browser-api/pkg/handlers"
	"sales-browser-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// レコードストアはリクエスト受け付け前に一度だけロードする
	records := services.LoadSalesData(cfg.SalesDataPath, cfg.SampleRecordCount)
	log.Printf("Record store ready: %d sales records", len(records))

	// サービスの初期化
	monitoringService := services.NewMonitoringService()

	// ハンドラーの初期化
	salesHandler := handlers.NewSalesHandler(records)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// Ginルーターの初期化
	r := gin.New()

	// ミドルウェアの登録
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.Recovery))
	r.Use(monitoringService.LoggingMiddleware())
	r.Use(corsMiddleware(cfg.CORSAllowedOrigins))

	// ルートの定義
	r.GET("/health", salesHandler.HealthCheck)

	sales := r.Group("/sales")
	{
		sales.GET("", salesHandler.GetSales)
		sales.GET("/filter-options", salesHandler.GetFilterOptions)
	}

	monitoring := r.Group("/monitoring")
	{
		monitoring.GET("/logs", monitoringHandler.GetLogs)
	}

	// 未定義ルートは構造化404で応答
	r.NoRoute(handlers.NotFound)

	log.Printf("Starting sales browser API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// corsMiddleware はCORS設定を構築します。
// CORS_ALLOWED_ORIGINSが未設定の場合は全オリジンを許可します（デモ用途）。
func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	if allowedOrigins == "" {
		return cors.Default()
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	return cors.New(corsConfig)
}
