package redemption_catalog

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loyalty-server/internal/domain/redemption_product"
	otelinfra "loyalty-server/internal/infrastructure/observability/otel"
)

// CatalogApplicationService 交換商品管理アプリケーションサービス
type CatalogApplicationService struct {
	productRepo redemption_product.Repository
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewCatalogApplicationService 新しいCatalogApplicationServiceを作成
func NewCatalogApplicationService(
	productRepo redemption_product.Repository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CatalogApplicationService {
	return &CatalogApplicationService{
		productRepo: productRepo,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("redemption-catalog-service"),
	}
}

// CreateProduct 新しい交換商品をdraft状態で作成
func (s *CatalogApplicationService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.CreateProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.title", req.Title),
		attribute.String("product.category", req.RedeemCategory),
	)

	s.logger.Info(ctx, "Creating redemption product", map[string]interface{}{
		"title":    req.Title,
		"category": req.RedeemCategory,
	})

	// 未指定の場合は1エージェントあたり1件まで
	maxRedeemPerAgent := 1
	if req.MaxRedeemPerAgent != nil {
		maxRedeemPerAgent = *req.MaxRedeemPerAgent
	}

	product, err := redemption_product.NewRedemptionProduct(
		req.RedeemCategory,
		req.Title,
		req.Description,
		req.Notice,
		req.ImageURL,
		req.Stock,
		req.RedeemPoints,
		maxRedeemPerAgent,
		req.ValidUntil,
		req.CreatedBy,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to create redemption product", err, map[string]interface{}{
			"title": req.Title,
		})
		return nil, fmt.Errorf("failed to create redemption product: %w", err)
	}

	created, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find created product: %w", err)
	}

	s.logger.Info(ctx, "Redemption product created successfully", map[string]interface{}{
		"product_id": id,
	})

	return toProductResponse(created), nil
}

// UpdateProduct 交換商品を部分更新（draft状態のみ）
func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", req.ProductID))

	s.logger.Info(ctx, "Updating redemption product", map[string]interface{}{
		"product_id": req.ProductID,
	})

	fields := redemption_product.UpdateFields{
		RedeemCategory:    req.RedeemCategory,
		Title:             req.Title,
		Description:       req.Description,
		Notice:            req.Notice,
		ImageURL:          req.ImageURL,
		Stock:             req.Stock,
		RedeemPoints:      req.RedeemPoints,
		MaxRedeemPerAgent: req.MaxRedeemPerAgent,
		ValidUntil:        req.ValidUntil,
	}
	if err := fields.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	if !product.Status().IsDraft() {
		err := redemption_product.ErrProductNotDraft
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if !fields.IsEmpty() {
		// UPDATE文側でもstatus=draftを再評価するため、直前に公開されていれば更新されない
		updated, err := s.productRepo.Update(ctx, req.ProductID, fields)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			s.logger.Error(ctx, "Failed to update redemption product", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			return nil, fmt.Errorf("failed to update redemption product: %w", err)
		}
		if !updated {
			err := redemption_product.ErrProductNotDraft
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}

	product, err = s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Redemption product updated successfully", map[string]interface{}{
		"product_id": req.ProductID,
	})

	return toProductResponse(product), nil
}

// DeleteProduct 交換商品を削除（draft状態のみ）
func (s *CatalogApplicationService) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", req.ProductID))

	s.logger.Info(ctx, "Deleting redemption product", map[string]interface{}{
		"product_id": req.ProductID,
	})

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	if !product.Status().IsDraft() {
		err := redemption_product.ErrProductNotDraft
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	deleted, err := s.productRepo.Delete(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to delete redemption product", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return nil, fmt.Errorf("failed to delete redemption product: %w", err)
	}
	if !deleted {
		err := redemption_product.ErrProductNotDraft
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Redemption product deleted successfully", map[string]interface{}{
		"product_id": req.ProductID,
	})

	return &DeleteProductResponse{
		ProductID: req.ProductID,
		DeletedAt: time.Now(),
	}, nil
}

// PublishProduct draft状態の商品を公開する
func (s *CatalogApplicationService) PublishProduct(ctx context.Context, req *PublishProductRequest) (*ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.PublishProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", req.ProductID))

	s.logger.Info(ctx, "Publishing redemption product", map[string]interface{}{
		"product_id": req.ProductID,
	})

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	published, err := s.productRepo.Publish(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to publish redemption product", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return nil, fmt.Errorf("failed to publish redemption product: %w", err)
	}
	if !published {
		err := redemption_product.ErrProductNotDraft
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Redemption product published successfully", map[string]interface{}{
		"product_id": req.ProductID,
	})

	return toProductResponse(product), nil
}

// OffShelfProduct published状態の商品を公開終了する
func (s *CatalogApplicationService) OffShelfProduct(ctx context.Context, req *OffShelfProductRequest) (*ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.OffShelfProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", req.ProductID))

	s.logger.Info(ctx, "Taking redemption product off shelf", map[string]interface{}{
		"product_id": req.ProductID,
	})

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	offShelf, err := s.productRepo.OffShelf(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to take redemption product off shelf", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return nil, fmt.Errorf("failed to take redemption product off shelf: %w", err)
	}
	if !offShelf {
		err := redemption_product.ErrProductNotPublished
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Redemption product taken off shelf successfully", map[string]interface{}{
		"product_id": req.ProductID,
	})

	return toProductResponse(product), nil
}

// GetProduct 交換商品を取得
func (s *CatalogApplicationService) GetProduct(ctx context.Context, req *GetProductRequest) (*ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", req.ProductID))

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	return toProductResponse(product), nil
}

// ListProducts 交換商品の一覧を取得
func (s *CatalogApplicationService) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.ListProducts")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.status", req.Status),
		attribute.String("product.category", req.Category),
	)

	var status redemption_product.ProductStatus
	if req.Status != "" {
		var err error
		status, err = redemption_product.NewProductStatus(req.Status)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}

	products, err := s.productRepo.List(ctx, status, req.Category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list redemption products", err, nil)
		return nil, fmt.Errorf("failed to list redemption products: %w", err)
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}

	return &ListProductsResponse{
		Products: responses,
		Total:    len(responses),
	}, nil
}

func toProductResponse(p *redemption_product.RedemptionProduct) *ProductResponse {
	return &ProductResponse{
		ProductID:         p.ID(),
		RedeemCategory:    p.RedeemCategory(),
		Title:             p.Title(),
		Description:       p.Description(),
		Notice:            p.Notice(),
		ImageURL:          p.ImageURL(),
		Status:            p.Status().String(),
		Stock:             p.Stock(),
		RedeemPoints:      p.RedeemPoints(),
		MaxRedeemPerAgent: p.MaxRedeemPerAgent(),
		ValidUntil:        p.ValidUntil(),
		PublishedAt:       p.PublishedAt(),
		OffShelfAt:        p.OffShelfAt(),
		CreatedBy:         p.CreatedBy(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}
