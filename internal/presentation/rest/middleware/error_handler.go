package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	otelinfra "loyalty-server/internal/infrastructure/observability/otel"

	"loyalty-server/internal/domain/agent"
	"loyalty-server/internal/domain/point_grant"
	"loyalty-server/internal/domain/point_rule"
	"loyalty-server/internal/domain/redemption_product"
	"loyalty-server/internal/domain/redemption_record"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// validationErrors 400で返す入力検証エラー
var validationErrors = []struct {
	err  error
	code string
}{
	{agent.ErrInvalidAgentCode, "invalid_agent_code"},
	{point_rule.ErrInvalidRuleName, "invalid_rule_name"},
	{point_rule.ErrInvalidRuleCategory, "invalid_rule_category"},
	{point_rule.ErrInvalidPointAmount, "invalid_point_amount"},
	{point_rule.ErrInvalidAnnualLimit, "invalid_annual_limit"},
	{point_grant.ErrInvalidPoints, "invalid_points"},
	{point_grant.ErrInvalidOccurredYear, "invalid_occurred_year"},
	{redemption_product.ErrInvalidTitle, "invalid_title"},
	{redemption_product.ErrInvalidCategory, "invalid_category"},
	{redemption_product.ErrInvalidStock, "invalid_stock"},
	{redemption_product.ErrInvalidRedeemPoints, "invalid_redeem_points"},
	{redemption_product.ErrInvalidMaxRedeem, "invalid_max_redeem"},
	{redemption_product.ErrInvalidValidUntil, "invalid_valid_until"},
	{redemption_record.ErrInvalidPointsCost, "invalid_points_cost"},
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// リソース未検出
	if errors.Is(err, point_rule.ErrRuleNotFound) {
		logger.Warn(ctx, "Rule not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "rule_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption_product.ErrProductNotFound) {
		logger.Warn(ctx, "Product not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "product_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, agent.ErrBalanceNotFound) {
		logger.Warn(ctx, "Balance not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "balance_not_found",
			Message: err.Error(),
		})
	}

	// 業務上の競合（残高・在庫・上限・状態遷移）
	if errors.Is(err, agent.ErrInsufficientBalance) {
		logger.Warn(ctx, "Insufficient balance", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "insufficient_balance",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption_product.ErrOutOfStock) {
		logger.Warn(ctx, "Out of stock", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "out_of_stock",
			Message: err.Error(),
		})
	}

	if errors.Is(err, point_grant.ErrAnnualLimitReached) {
		logger.Warn(ctx, "Annual grant limit reached", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "annual_limit_reached",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption_record.ErrRedeemLimitReached) {
		logger.Warn(ctx, "Redeem limit reached", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "redeem_limit_reached",
			Message: err.Error(),
		})
	}

	if errors.Is(err, point_rule.ErrRuleHasGrants) {
		logger.Warn(ctx, "Rule has grants", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "rule_has_grants",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption_product.ErrProductNotDraft) {
		logger.Warn(ctx, "Product not draft", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "product_not_draft",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption_product.ErrProductNotPublished) {
		logger.Warn(ctx, "Product not published", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "product_not_published",
			Message: err.Error(),
		})
	}

	// 有効期限切れ
	if errors.Is(err, redemption_product.ErrProductExpired) {
		logger.Warn(ctx, "Product expired", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusGone, ErrorResponse{
			Error:   "product_expired",
			Message: err.Error(),
		})
	}

	// 入力検証エラー
	for _, ve := range validationErrors {
		if errors.Is(err, ve.err) {
			logger.Warn(ctx, "Validation error", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   ve.code,
				Message: err.Error(),
			})
		}
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
