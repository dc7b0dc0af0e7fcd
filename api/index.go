package handler

import (
	"log"
	"net/http"
	"sync"

	config "sales-browser-api/configs"
	"sales-browser-api/pkg/handlers"
	"sales-browser-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	app  *gin.Engine
	once sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
// レコードストアのロードもここで行われるため、初回リクエスト以降は再ロードされません。
func setupApp() *gin.Engine {
	once.Do(func() {
		// .envファイルはプラットフォームの環境変数設定から読み込まれるため、ここではgodotenvを呼び出しません。
		cfg := config.LoadConfig()

		gin.SetMode(gin.ReleaseMode)

		// レコードストアの遅延ロード（初回リクエスト時の一度だけ）
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
		r.Use(gin.CustomRecovery(handlers.Recovery))
		r.Use(monitoringService.LoggingMiddleware())

		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		r.Use(cors.New(corsConfig))

		// ルートの定義（/apiプレフィックスはルーターが除去済みの前提）
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

		r.NoRoute(handlers.NotFound)

		app = r
	})
	return app
}

// Handler はサーバーレスプラットフォームからのすべてのリクエストを処理するエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	app := setupApp()
	app.ServeHTTP(w, r)
}
