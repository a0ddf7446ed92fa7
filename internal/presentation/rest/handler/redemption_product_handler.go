package handler

import (
	"net/http"

	catalogapp "loyalty-server/internal/application/redemption_catalog"

	"github.com/labstack/echo/v4"
)

// RedemptionProductHandler 交換商品関連ハンドラー
type RedemptionProductHandler struct {
	catalogService *catalogapp.CatalogApplicationService
}

// NewRedemptionProductHandler 新しいRedemptionProductHandlerを作成
func NewRedemptionProductHandler(catalogService *catalogapp.CatalogApplicationService) *RedemptionProductHandler {
	return &RedemptionProductHandler{
		catalogService: catalogService,
	}
}

// CreateProduct 商品作成ハンドラー（管理API用）
// @Summary 交換商品を作成（管理API）
// @Description 新しい交換商品をdraft状態で作成します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Param request body CreateProductRequest true "商品作成リクエスト"
// @Success 201 {object} ProductResponse "商品作成成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/products [post]
func (h *RedemptionProductHandler) CreateProduct(c echo.Context) error {
	var reqBody CreateProductRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &catalogapp.CreateProductRequest{
		RedeemCategory:    reqBody.RedeemCategory,
		Title:             reqBody.Title,
		Description:       reqBody.Description,
		Notice:            reqBody.Notice,
		ImageURL:          reqBody.ImageURL,
		Stock:             reqBody.Stock,
		RedeemPoints:      reqBody.RedeemPoints,
		MaxRedeemPerAgent: reqBody.MaxRedeemPerAgent,
		ValidUntil:        reqBody.ValidUntil,
		CreatedBy:         reqBody.CreatedBy,
	}

	resp, err := h.catalogService.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProductResponseModel(resp))
}

// UpdateProduct 商品更新ハンドラー（管理API用）
// @Summary 交換商品を更新（管理API）
// @Description draft状態の交換商品を部分更新します
// @Tags admin
// @Accept json
// @Produce json
// @Param product_id path int true "商品ID" example(1)
// @Param X-API-Key header string true "APIキー"
// @Param request body UpdateProductRequest true "商品更新リクエスト"
// @Success 200 {object} ProductResponse "商品更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "商品が見つからない"
// @Failure 409 {object} ErrorResponse "draft状態ではない"
// @Router /admin/products/{product_id} [put]
func (h *RedemptionProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return err
	}

	var reqBody UpdateProductRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &catalogapp.UpdateProductRequest{
		ProductID:         productID,
		RedeemCategory:    reqBody.RedeemCategory,
		Title:             reqBody.Title,
		Description:       reqBody.Description,
		Notice:            reqBody.Notice,
		ImageURL:          reqBody.ImageURL,
		Stock:             reqBody.Stock,
		RedeemPoints:      reqBody.RedeemPoints,
		MaxRedeemPerAgent: reqBody.MaxRedeemPerAgent,
		ValidUntil:        reqBody.ValidUntil,
	}

	resp, err := h.catalogService.UpdateProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponseModel(resp))
}

// DeleteProduct 商品削除ハンドラー（管理API用）
// @Summary 交換商品を削除（管理API）
// @Description draft状態の交換商品を削除します
// @Tags admin
// @Accept json
// @Produce json
// @Param product_id path int true "商品ID" example(1)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} DeleteProductResponse "商品削除成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "商品が見つからない"
// @Failure 409 {object} ErrorResponse "draft状態ではない"
// @Router /admin/products/{product_id} [delete]
func (h *RedemptionProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return err
	}

	resp, err := h.catalogService.DeleteProduct(c.Request().Context(), &catalogapp.DeleteProductRequest{
		ProductID: productID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeleteProductResponse{
		ProductID: resp.ProductID,
		DeletedAt: resp.DeletedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// PublishProduct 商品公開ハンドラー（管理API用）
// @Summary 交換商品を公開（管理API）
// @Description draft状態の交換商品を公開します
// @Tags admin
// @Accept json
// @Produce json
// @Param product_id path int true "商品ID" example(1)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} ProductResponse "商品公開成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "商品が見つからない"
// @Failure 409 {object} ErrorResponse "draft状態ではない"
// @Router /admin/products/{product_id}/publish [post]
func (h *RedemptionProductHandler) PublishProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return err
	}

	resp, err := h.catalogService.PublishProduct(c.Request().Context(), &catalogapp.PublishProductRequest{
		ProductID: productID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponseModel(resp))
}

// OffShelfProduct 商品公開終了ハンドラー（管理API用）
// @Summary 交換商品の公開を終了（管理API）
// @Description 公開中の交換商品をoff_shelf状態にします
// @Tags admin
// @Accept json
// @Produce json
// @Param product_id path int true "商品ID" example(1)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} ProductResponse "公開終了成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "商品が見つからない"
// @Failure 409 {object} ErrorResponse "公開中ではない"
// @Router /admin/products/{product_id}/off-shelf [post]
func (h *RedemptionProductHandler) OffShelfProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return err
	}

	resp, err := h.catalogService.OffShelfProduct(c.Request().Context(), &catalogapp.OffShelfProductRequest{
		ProductID: productID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponseModel(resp))
}

// GetProduct 商品取得ハンドラー
// @Summary 交換商品を取得
// @Description 指定された交換商品の詳細を取得します
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param product_id path int true "商品ID" example(1)
// @Success 200 {object} ProductResponse "商品取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "商品が見つからない"
// @Router /products/{product_id} [get]
func (h *RedemptionProductHandler) GetProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return err
	}

	resp, err := h.catalogService.GetProduct(c.Request().Context(), &catalogapp.GetProductRequest{
		ProductID: productID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponseModel(resp))
}

// ListProducts 商品一覧取得ハンドラー
// @Summary 交換商品一覧を取得
// @Description 交換商品の一覧を取得します。ステータスとカテゴリでフィルタできます
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param status query string false "ステータスでフィルタ（draft/published/off_shelf）" example(published)
// @Param category query string false "カテゴリでフィルタ" example(gift)
// @Success 200 {object} ListProductsResponse "一覧取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /products [get]
func (h *RedemptionProductHandler) ListProducts(c echo.Context) error {
	req := &catalogapp.ListProductsRequest{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}

	resp, err := h.catalogService.ListProducts(c.Request().Context(), req)
	if err != nil {
		return err
	}

	products := make([]ProductResponse, len(resp.Products))
	for i, p := range resp.Products {
		products[i] = toProductResponseModel(p)
	}

	return c.JSON(http.StatusOK, ListProductsResponse{
		Products: products,
		Total:    resp.Total,
	})
}

// toProductResponseModel アプリケーション層のレスポンスをRESTモデルに変換
func toProductResponseModel(resp *catalogapp.ProductResponse) ProductResponse {
	r := ProductResponse{
		ProductID:         resp.ProductID,
		RedeemCategory:    resp.RedeemCategory,
		Title:             resp.Title,
		Description:       resp.Description,
		Notice:            resp.Notice,
		ImageURL:          resp.ImageURL,
		Status:            resp.Status,
		Stock:             resp.Stock,
		RedeemPoints:      resp.RedeemPoints,
		MaxRedeemPerAgent: resp.MaxRedeemPerAgent,
		CreatedBy:         resp.CreatedBy,
		CreatedAt:         resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         resp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if resp.ValidUntil != nil {
		validUntil := resp.ValidUntil.Format("2006-01-02T15:04:05Z07:00")
		r.ValidUntil = &validUntil
	}
	if resp.PublishedAt != nil {
		publishedAt := resp.PublishedAt.Format("2006-01-02T15:04:05Z07:00")
		r.PublishedAt = &publishedAt
	}
	if resp.OffShelfAt != nil {
		offShelfAt := resp.OffShelfAt.Format("2006-01-02T15:04:05Z07:00")
		r.OffShelfAt = &offShelfAt
	}
	return r
}
