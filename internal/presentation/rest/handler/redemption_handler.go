package handler

import (
	"net/http"
	"strconv"

	redemptionapp "loyalty-server/internal/application/redemption"

	"github.com/labstack/echo/v4"
)

// RedemptionHandler 商品交換関連ハンドラー
type RedemptionHandler struct {
	redemptionService *redemptionapp.RedemptionApplicationService
}

// NewRedemptionHandler 新しいRedemptionHandlerを作成
func NewRedemptionHandler(redemptionService *redemptionapp.RedemptionApplicationService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// Redeem 商品交換ハンドラー
// @Summary 商品を交換
// @Description ポイント残高を消費して公開中の商品を交換します
// @Tags redemptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RedeemRequest true "商品交換リクエスト"
// @Success 201 {object} RedeemResponse "交換成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "商品が見つからない"
// @Failure 409 {object} ErrorResponse "残高不足・在庫切れ・交換上限到達"
// @Failure 410 {object} ErrorResponse "商品の有効期限切れ"
// @Router /redemptions [post]
func (h *RedemptionHandler) Redeem(c echo.Context) error {
	agentCode, ok := c.Get("agent_code").(string)
	if !ok || agentCode == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "agent_code not found in token")
	}

	var reqBody RedeemRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.ProductID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	req := &redemptionapp.RedeemRequest{
		ProductID: reqBody.ProductID,
		AgentCode: agentCode,
		Remark:    reqBody.Remark,
	}

	resp, err := h.redemptionService.Redeem(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, RedeemResponse{
		RecordID:     resp.RecordID,
		ProductID:    resp.ProductID,
		ProductTitle: resp.ProductTitle,
		AgentCode:    resp.AgentCode,
		PointsCost:   resp.PointsCost,
		BalanceAfter: resp.BalanceAfter,
		Status:       resp.Status,
		RedeemedAt:   resp.RedeemedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// ListMyRedemptions 交換履歴一覧取得ハンドラー（エージェントAPI用）
// @Summary 交換履歴を取得
// @Description 自分の商品交換履歴を取得します。商品でフィルタできます
// @Tags redemptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param product_id query int false "商品IDでフィルタ" example(1)
// @Success 200 {object} ListRedemptionsResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /me/redemptions [get]
func (h *RedemptionHandler) ListMyRedemptions(c echo.Context) error {
	agentCode, ok := c.Get("agent_code").(string)
	if !ok || agentCode == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "agent_code not found in token")
	}

	return h.listRedemptionsInternal(c, agentCode)
}

// ListRedemptionsAdmin 交換履歴一覧取得ハンドラー（管理API用）
// @Summary 交換履歴を取得（管理API）
// @Description 指定されたエージェントの商品交換履歴を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param agent_code path string true "エージェントコード" example(AGT00001)
// @Param X-API-Key header string true "APIキー"
// @Param product_id query int false "商品IDでフィルタ" example(1)
// @Success 200 {object} ListRedemptionsResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/agents/{agent_code}/redemptions [get]
func (h *RedemptionHandler) ListRedemptionsAdmin(c echo.Context) error {
	agentCode := c.Param("agent_code")
	if agentCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "agent_code is required")
	}

	return h.listRedemptionsInternal(c, agentCode)
}

// listRedemptionsInternal 交換履歴取得の内部実装
func (h *RedemptionHandler) listRedemptionsInternal(c echo.Context, agentCode string) error {
	var productID int64
	if productIDStr := c.QueryParam("product_id"); productIDStr != "" {
		var err error
		productID, err = strconv.ParseInt(productIDStr, 10, 64)
		if err != nil || productID < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product_id parameter")
		}
	}

	resp, err := h.redemptionService.ListRedemptions(c.Request().Context(), &redemptionapp.ListRedemptionsRequest{
		AgentCode: agentCode,
		ProductID: productID,
	})
	if err != nil {
		return err
	}

	redemptions := make([]RedemptionItem, len(resp.Redemptions))
	for i, r := range resp.Redemptions {
		redemptions[i] = RedemptionItem{
			RecordID:       r.RecordID,
			ProductID:      r.ProductID,
			ProductTitle:   r.ProductTitle,
			RedeemCategory: r.RedeemCategory,
			AgentCode:      r.AgentCode,
			PointsCost:     r.PointsCost,
			Status:         r.Status,
			Remark:         r.Remark,
			RedeemedAt:     r.RedeemedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return c.JSON(http.StatusOK, ListRedemptionsResponse{
		Redemptions: redemptions,
		Total:       resp.Total,
		TotalCost:   resp.TotalCost,
	})
}
