package handler

import (
	"net/http"
	"strconv"

	ruleapp "loyalty-server/internal/application/point_rule"

	"github.com/labstack/echo/v4"
)

// PointRuleHandler ポイントルール関連ハンドラー
type PointRuleHandler struct {
	ruleService *ruleapp.RuleApplicationService
}

// NewPointRuleHandler 新しいPointRuleHandlerを作成
func NewPointRuleHandler(ruleService *ruleapp.RuleApplicationService) *PointRuleHandler {
	return &PointRuleHandler{
		ruleService: ruleService,
	}
}

// CreateRule ルール作成ハンドラー（管理API用）
// @Summary ポイントルールを作成（管理API）
// @Description 新しいポイント付与ルールを作成します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Param request body CreateRuleRequest true "ルール作成リクエスト"
// @Success 201 {object} RuleResponse "ルール作成成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/rules [post]
func (h *PointRuleHandler) CreateRule(c echo.Context) error {
	var reqBody CreateRuleRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &ruleapp.CreateRuleRequest{
		Name:        reqBody.Name,
		Category:    reqBody.Category,
		PointAmount: reqBody.PointAmount,
		AnnualLimit: reqBody.AnnualLimit,
		Standard:    reqBody.Standard,
		CreatedBy:   reqBody.CreatedBy,
	}

	resp, err := h.ruleService.CreateRule(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRuleResponseModel(resp))
}

// UpdateRule ルール更新ハンドラー（管理API用）
// @Summary ポイントルールを更新（管理API）
// @Description 指定されたポイントルールを部分更新します
// @Tags admin
// @Accept json
// @Produce json
// @Param rule_id path int true "ルールID" example(1)
// @Param X-API-Key header string true "APIキー"
// @Param request body UpdateRuleRequest true "ルール更新リクエスト"
// @Success 200 {object} RuleResponse "ルール更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "ルールが見つからない"
// @Router /admin/rules/{rule_id} [put]
func (h *PointRuleHandler) UpdateRule(c echo.Context) error {
	ruleID, err := parseIDParam(c, "rule_id")
	if err != nil {
		return err
	}

	var reqBody UpdateRuleRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &ruleapp.UpdateRuleRequest{
		RuleID:      ruleID,
		Name:        reqBody.Name,
		Category:    reqBody.Category,
		PointAmount: reqBody.PointAmount,
		AnnualLimit: reqBody.AnnualLimit,
		Standard:    reqBody.Standard,
	}

	resp, err := h.ruleService.UpdateRule(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRuleResponseModel(resp))
}

// DeleteRule ルール削除ハンドラー（管理API用）
// @Summary ポイントルールを削除（管理API）
// @Description 付与実績のないポイントルールを削除します
// @Tags admin
// @Accept json
// @Produce json
// @Param rule_id path int true "ルールID" example(1)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} DeleteRuleResponse "ルール削除成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "ルールが見つからない"
// @Failure 409 {object} ErrorResponse "付与実績があるため削除不可"
// @Router /admin/rules/{rule_id} [delete]
func (h *PointRuleHandler) DeleteRule(c echo.Context) error {
	ruleID, err := parseIDParam(c, "rule_id")
	if err != nil {
		return err
	}

	resp, err := h.ruleService.DeleteRule(c.Request().Context(), &ruleapp.DeleteRuleRequest{RuleID: ruleID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeleteRuleResponse{
		RuleID:    resp.RuleID,
		DeletedAt: resp.DeletedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetRule ルール取得ハンドラー
// @Summary ポイントルールを取得
// @Description 指定されたポイントルールの詳細を取得します
// @Tags rules
// @Accept json
// @Produce json
// @Security Bearer
// @Param rule_id path int true "ルールID" example(1)
// @Success 200 {object} RuleResponse "ルール取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "ルールが見つからない"
// @Router /rules/{rule_id} [get]
func (h *PointRuleHandler) GetRule(c echo.Context) error {
	ruleID, err := parseIDParam(c, "rule_id")
	if err != nil {
		return err
	}

	resp, err := h.ruleService.GetRule(c.Request().Context(), &ruleapp.GetRuleRequest{RuleID: ruleID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRuleResponseModel(resp))
}

// ListRules ルール一覧取得ハンドラー
// @Summary ポイントルール一覧を取得
// @Description ポイントルールの一覧を取得します。カテゴリでフィルタできます
// @Tags rules
// @Accept json
// @Produce json
// @Security Bearer
// @Param category query string false "カテゴリでフィルタ" example(contract)
// @Success 200 {object} ListRulesResponse "一覧取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /rules [get]
func (h *PointRuleHandler) ListRules(c echo.Context) error {
	req := &ruleapp.ListRulesRequest{
		Category: c.QueryParam("category"),
	}

	resp, err := h.ruleService.ListRules(c.Request().Context(), req)
	if err != nil {
		return err
	}

	rules := make([]RuleResponse, len(resp.Rules))
	for i, r := range resp.Rules {
		rules[i] = toRuleResponseModel(r)
	}

	return c.JSON(http.StatusOK, ListRulesResponse{
		Rules: rules,
		Total: resp.Total,
	})
}

// toRuleResponseModel アプリケーション層のレスポンスをRESTモデルに変換
func toRuleResponseModel(resp *ruleapp.RuleResponse) RuleResponse {
	return RuleResponse{
		RuleID:      resp.RuleID,
		Name:        resp.Name,
		Category:    resp.Category,
		PointAmount: resp.PointAmount,
		AnnualLimit: resp.AnnualLimit,
		Standard:    resp.Standard,
		CreatedBy:   resp.CreatedBy,
		CreatedAt:   resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   resp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// parseIDParam パスパラメータを正のIDとしてパース
func parseIDParam(c echo.Context, name string) (int64, error) {
	idStr := c.Param(name)
	if idStr == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" parameter")
	}
	return id, nil
}
