package rest

import (
	grantapp "loyalty-server/internal/application/point_grant"
	ruleapp "loyalty-server/internal/application/point_rule"
	redemptionapp "loyalty-server/internal/application/redemption"
	catalogapp "loyalty-server/internal/application/redemption_catalog"
	"loyalty-server/internal/infrastructure/config"
	otelinfra "loyalty-server/internal/infrastructure/observability/otel"
	"loyalty-server/internal/presentation/rest/handler"
	restmiddleware "loyalty-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Router REST APIルーター
type Router struct {
	echo           *echo.Echo
	ruleHandler    *handler.PointRuleHandler
	grantHandler   *handler.PointGrantHandler
	productHandler *handler.RedemptionProductHandler
	redeemHandler  *handler.RedemptionHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	ruleService *ruleapp.RuleApplicationService,
	grantService *grantapp.GrantApplicationService,
	catalogService *catalogapp.CatalogApplicationService,
	redemptionService *redemptionapp.RedemptionApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	ruleHandler := handler.NewPointRuleHandler(ruleService)
	grantHandler := handler.NewPointGrantHandler(grantService)
	productHandler := handler.NewRedemptionProductHandler(catalogService)
	redeemHandler := handler.NewRedemptionHandler(redemptionService)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, ruleHandler, grantHandler, productHandler, redeemHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:           e,
		ruleHandler:    ruleHandler,
		grantHandler:   grantHandler,
		productHandler: productHandler,
		redeemHandler:  redeemHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-API-Key"},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	ruleHandler *handler.PointRuleHandler,
	grantHandler *handler.PointGrantHandler,
	productHandler *handler.RedemptionProductHandler,
	redeemHandler *handler.RedemptionHandler,
) {
	// API v1グループ（エージェント向け、JWT認証）
	api := e.Group("/api/v1")
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// ルール参照エンドポイント
	authGroup.GET("/rules", ruleHandler.ListRules)
	authGroup.GET("/rules/:rule_id", ruleHandler.GetRule)

	// 残高・付与履歴エンドポイント
	authGroup.GET("/me/balance", grantHandler.GetMyBalance)
	authGroup.GET("/me/grants", grantHandler.ListMyGrants)

	// 商品参照エンドポイント
	authGroup.GET("/products", productHandler.ListProducts)
	authGroup.GET("/products/:product_id", productHandler.GetProduct)

	// 商品交換エンドポイント
	authGroup.POST("/redemptions", redeemHandler.Redeem)
	authGroup.GET("/me/redemptions", redeemHandler.ListMyRedemptions)

	// 管理APIグループ（APIキー認証）
	admin := e.Group("/admin", restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))

	// ルール管理
	admin.POST("/rules", ruleHandler.CreateRule)
	admin.PUT("/rules/:rule_id", ruleHandler.UpdateRule)
	admin.DELETE("/rules/:rule_id", ruleHandler.DeleteRule)

	// ポイント付与・残高
	admin.POST("/grants", grantHandler.GrantPoints)
	admin.GET("/balances", grantHandler.ListBalances)
	admin.GET("/agents/:agent_code/balance", grantHandler.GetBalanceAdmin)
	admin.GET("/agents/:agent_code/grants", grantHandler.ListGrantsAdmin)
	admin.GET("/agents/:agent_code/redemptions", redeemHandler.ListRedemptionsAdmin)

	// 商品管理
	admin.POST("/products", productHandler.CreateProduct)
	admin.PUT("/products/:product_id", productHandler.UpdateProduct)
	admin.DELETE("/products/:product_id", productHandler.DeleteProduct)
	admin.POST("/products/:product_id/publish", productHandler.PublishProduct)
	admin.POST("/products/:product_id/off-shelf", productHandler.OffShelfProduct)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
