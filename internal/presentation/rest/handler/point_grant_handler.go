package handler

import (
	"net/http"
	"strconv"

	grantapp "loyalty-server/internal/application/point_grant"

	"github.com/labstack/echo/v4"
)

// PointGrantHandler ポイント付与・残高関連ハンドラー
type PointGrantHandler struct {
	grantService *grantapp.GrantApplicationService
}

// NewPointGrantHandler 新しいPointGrantHandlerを作成
func NewPointGrantHandler(grantService *grantapp.GrantApplicationService) *PointGrantHandler {
	return &PointGrantHandler{
		grantService: grantService,
	}
}

// GrantPoints ポイント付与ハンドラー（管理API用）
// @Summary ポイントを付与（管理API）
// @Description 指定されたエージェントにルールに基づいてポイントを付与します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Param request body GrantPointsRequest true "ポイント付与リクエスト"
// @Success 201 {object} GrantPointsResponse "ポイント付与成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "ルールが見つからない"
// @Failure 409 {object} ErrorResponse "年間付与上限に到達"
// @Router /admin/grants [post]
func (h *PointGrantHandler) GrantPoints(c echo.Context) error {
	var reqBody GrantPointsRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &grantapp.GrantRequest{
		AgentCode:    reqBody.AgentCode,
		RuleID:       reqBody.RuleID,
		Points:       reqBody.Points,
		OccurredYear: reqBody.OccurredYear,
		Remark:       reqBody.Remark,
		CreatedBy:    reqBody.CreatedBy,
	}

	resp, err := h.grantService.Grant(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, GrantPointsResponse{
		GrantID:      resp.GrantID,
		AgentCode:    resp.AgentCode,
		RuleID:       resp.RuleID,
		Points:       resp.Points,
		OccurredYear: resp.OccurredYear,
		BalanceAfter: resp.BalanceAfter,
		CreatedAt:    resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetMyBalance 残高取得ハンドラー（エージェントAPI用）
// @Summary 残高を取得
// @Description 自分のポイント残高を取得します
// @Tags balance
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} AgentBalanceResponse "残高取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /me/balance [get]
func (h *PointGrantHandler) GetMyBalance(c echo.Context) error {
	agentCode, ok := c.Get("agent_code").(string)
	if !ok || agentCode == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "agent_code not found in token")
	}

	return h.getBalanceInternal(c, agentCode)
}

// GetBalanceAdmin 残高取得ハンドラー（管理API用）
// @Summary 残高を取得（管理API）
// @Description 指定されたエージェントのポイント残高を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param agent_code path string true "エージェントコード" example(AGT00001)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} AgentBalanceResponse "残高取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/agents/{agent_code}/balance [get]
func (h *PointGrantHandler) GetBalanceAdmin(c echo.Context) error {
	agentCode := c.Param("agent_code")
	if agentCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "agent_code is required")
	}

	return h.getBalanceInternal(c, agentCode)
}

// getBalanceInternal 残高取得の内部実装
func (h *PointGrantHandler) getBalanceInternal(c echo.Context, agentCode string) error {
	resp, err := h.grantService.GetBalance(c.Request().Context(), &grantapp.GetBalanceRequest{
		AgentCode: agentCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAgentBalanceResponse(resp))
}

// ListBalances 残高一覧取得ハンドラー（管理API用）
// @Summary 残高一覧を取得（管理API）
// @Description 全エージェントのポイント残高を残高の多い順に取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} ListBalancesResponse "一覧取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/balances [get]
func (h *PointGrantHandler) ListBalances(c echo.Context) error {
	resp, err := h.grantService.ListBalances(c.Request().Context())
	if err != nil {
		return err
	}

	balances := make([]AgentBalanceResponse, len(resp.Balances))
	for i, b := range resp.Balances {
		balances[i] = toAgentBalanceResponse(b)
	}

	return c.JSON(http.StatusOK, ListBalancesResponse{
		Balances: balances,
		Total:    resp.Total,
	})
}

// ListMyGrants 付与履歴一覧取得ハンドラー（エージェントAPI用）
// @Summary 付与履歴を取得
// @Description 自分のポイント付与履歴を取得します。ルールでフィルタできます
// @Tags grants
// @Accept json
// @Produce json
// @Security Bearer
// @Param rule_id query int false "ルールIDでフィルタ" example(1)
// @Success 200 {object} ListGrantsResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /me/grants [get]
func (h *PointGrantHandler) ListMyGrants(c echo.Context) error {
	agentCode, ok := c.Get("agent_code").(string)
	if !ok || agentCode == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "agent_code not found in token")
	}

	return h.listGrantsInternal(c, agentCode)
}

// ListGrantsAdmin 付与履歴一覧取得ハンドラー（管理API用）
// @Summary 付与履歴を取得（管理API）
// @Description 指定されたエージェントのポイント付与履歴を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param agent_code path string true "エージェントコード" example(AGT00001)
// @Param X-API-Key header string true "APIキー"
// @Param rule_id query int false "ルールIDでフィルタ" example(1)
// @Success 200 {object} ListGrantsResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/agents/{agent_code}/grants [get]
func (h *PointGrantHandler) ListGrantsAdmin(c echo.Context) error {
	agentCode := c.Param("agent_code")
	if agentCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "agent_code is required")
	}

	return h.listGrantsInternal(c, agentCode)
}

// listGrantsInternal 付与履歴取得の内部実装
func (h *PointGrantHandler) listGrantsInternal(c echo.Context, agentCode string) error {
	var ruleID int64
	if ruleIDStr := c.QueryParam("rule_id"); ruleIDStr != "" {
		var err error
		ruleID, err = strconv.ParseInt(ruleIDStr, 10, 64)
		if err != nil || ruleID < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid rule_id parameter")
		}
	}

	resp, err := h.grantService.ListGrants(c.Request().Context(), &grantapp.ListGrantsRequest{
		AgentCode: agentCode,
		RuleID:    ruleID,
	})
	if err != nil {
		return err
	}

	grants := make([]GrantItem, len(resp.Grants))
	for i, g := range resp.Grants {
		grants[i] = GrantItem{
			GrantID:      g.GrantID,
			AgentCode:    g.AgentCode,
			RuleID:       g.RuleID,
			RuleName:     g.RuleName,
			RuleCategory: g.RuleCategory,
			Points:       g.Points,
			OccurredYear: g.OccurredYear,
			Remark:       g.Remark,
			CreatedAt:    g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return c.JSON(http.StatusOK, ListGrantsResponse{
		Grants:      grants,
		Total:       resp.Total,
		TotalPoints: resp.TotalPoints,
	})
}

// toAgentBalanceResponse アプリケーション層のレスポンスをRESTモデルに変換
func toAgentBalanceResponse(resp *grantapp.BalanceResponse) AgentBalanceResponse {
	r := AgentBalanceResponse{
		AgentCode:     resp.AgentCode,
		CurrentPoints: resp.CurrentPoints,
	}
	if resp.UpdatedAt != nil {
		updatedAt := resp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
		r.UpdatedAt = &updatedAt
	}
	return r
}
