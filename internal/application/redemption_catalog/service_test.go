package redemption_catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"loyalty-server/internal/domain/redemption_product"
	otelinfra "loyalty-server/internal/infrastructure/observability/otel"
)

// MockProductRepository モック交換商品リポジトリ
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*redemption_product.RedemptionProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redemption_product.RedemptionProduct), args.Error(1)
}

func (m *MockProductRepository) LockForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*redemption_product.RedemptionProduct, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redemption_product.RedemptionProduct), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, status redemption_product.ProductStatus, category string) ([]*redemption_product.RedemptionProduct, error) {
	args := m.Called(ctx, status, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*redemption_product.RedemptionProduct), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *redemption_product.RedemptionProduct) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, fields redemption_product.UpdateFields) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Publish(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) OffShelf(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, id int64, now time.Time) error {
	args := m.Called(ctx, tx, id, now)
	return args.Error(0)
}

func newTestService(t *testing.T, productRepo *MockProductRepository) *CatalogApplicationService {
	t.Helper()
	tracer := otel.Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return NewCatalogApplicationService(productRepo, logger, metrics)
}

func draftProduct(id int64) *redemption_product.RedemptionProduct {
	now := time.Now()
	return redemption_product.Reconstruct(
		id, "gift", "ギフトカード", nil, nil, nil,
		redemption_product.ProductStatusDraft, 10, 500, 2, nil, nil, nil, 10, now, now,
	)
}

func publishedProduct(id int64) *redemption_product.RedemptionProduct {
	now := time.Now()
	publishedAt := now
	return redemption_product.Reconstruct(
		id, "gift", "ギフトカード", nil, nil, nil,
		redemption_product.ProductStatusPublished, 10, 500, 2, nil, &publishedAt, nil, 10, now, now,
	)
}

func TestCatalogApplicationService_CreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		req        *CreateProductRequest
		setupMocks func(*MockProductRepository)
		wantError  bool
		errorType  error
	}{
		{
			name: "正常系: 商品をdraft状態で作成",
			req: &CreateProductRequest{
				RedeemCategory:    "gift",
				Title:             "ギフトカード",
				Stock:             10,
				RedeemPoints:      500,
				MaxRedeemPerAgent: func() *int { v := 2; return &v }(),
				CreatedBy:         10,
			},
			setupMocks: func(mpr *MockProductRepository) {
				mpr.On("Create", mock.Anything, mock.AnythingOfType("*redemption_product.RedemptionProduct")).Return(int64(1), nil)
				mpr.On("FindByID", mock.Anything, int64(1)).Return(draftProduct(1), nil)
			},
			wantError: false,
		},
		{
			name: "正常系: 交換上限が未指定の場合は1件として作成",
			req: &CreateProductRequest{
				RedeemCategory: "gift",
				Title:          "ギフトカード",
				Stock:          10,
				RedeemPoints:   500,
				CreatedBy:      10,
			},
			setupMocks: func(mpr *MockProductRepository) {
				mpr.On("Create", mock.Anything, mock.MatchedBy(func(p *redemption_product.RedemptionProduct) bool {
					return p.MaxRedeemPerAgent() == 1
				})).Return(int64(1), nil)
				mpr.On("FindByID", mock.Anything, int64(1)).Return(draftProduct(1), nil)
			},
			wantError: false,
		},
		{
			name: "異常系: タイトルが空",
			req: &CreateProductRequest{
				RedeemCategory:    "gift",
				Title:             "",
				Stock:             10,
				RedeemPoints:      500,
				MaxRedeemPerAgent: func() *int { v := 2; return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {},
			wantError:  true,
			errorType:  redemption_product.ErrInvalidTitle,
		},
		{
			name: "異常系: 交換ポイントが0",
			req: &CreateProductRequest{
				RedeemCategory:    "gift",
				Title:             "ギフトカード",
				Stock:             10,
				RedeemPoints:      0,
				MaxRedeemPerAgent: func() *int { v := 2; return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {},
			wantError:  true,
			errorType:  redemption_product.ErrInvalidRedeemPoints,
		},
		{
			name: "異常系: 交換上限に明示的に0を指定",
			req: &CreateProductRequest{
				RedeemCategory:    "gift",
				Title:             "ギフトカード",
				Stock:             10,
				RedeemPoints:      500,
				MaxRedeemPerAgent: func() *int { v := 0; return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {},
			wantError:  true,
			errorType:  redemption_product.ErrInvalidMaxRedeem,
		},
		{
			name: "異常系: 有効期限が過去",
			req: &CreateProductRequest{
				RedeemCategory:    "gift",
				Title:             "ギフトカード",
				Stock:             10,
				RedeemPoints:      500,
				MaxRedeemPerAgent: func() *int { v := 2; return &v }(),
				ValidUntil:        func() *time.Time { v := time.Now().Add(-time.Hour); return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {},
			wantError:  true,
			errorType:  redemption_product.ErrInvalidValidUntil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := new(MockProductRepository)
			tt.setupMocks(productRepo)

			svc := newTestService(t, productRepo)

			got, err := svc.CreateProduct(context.Background(), tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorType != nil {
					assert.ErrorIs(t, err, tt.errorType)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), got.ProductID)
				assert.Equal(t, "draft", got.Status)
			}
		})
	}
}

func TestCatalogApplicationService_UpdateProduct(t *testing.T) {
	tests := []struct {
		name       string
		req        *UpdateProductRequest
		setupMocks func(*MockProductRepository)
		wantError  bool
		errorType  error
	}{
		{
			name: "正常系: draft商品の在庫を更新",
			req: &UpdateProductRequest{
				ProductID: 1,
				Stock:     func() *int { v := 20; return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {
				mpr.On("FindByID", mock.Anything, int64(1)).Return(draftProduct(1), nil)
				mpr.On("Update", mock.Anything, int64(1), mock.AnythingOfType("redemption_product.UpdateFields")).Return(true, nil)
			},
			wantError: false,
		},
		{
			name: "異常系: published商品は更新できない",
			req: &UpdateProductRequest{
				ProductID: 1,
				Stock:     func() *int { v := 20; return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {
				mpr.On("FindByID", mock.Anything, int64(1)).Return(publishedProduct(1), nil)
			},
			wantError: true,
			errorType: redemption_product.ErrProductNotDraft,
		},
		{
			name: "異常系: 商品が存在しない",
			req: &UpdateProductRequest{
				ProductID: 99,
				Stock:     func() *int { v := 20; return &v }(),
			},
			setupMocks: func(mpr *MockProductRepository) {
				mpr.On("FindByID", mock.Anything, int64(99)).Return(nil, redemption_product.ErrProductNotFound)
			},
			wantError: true,
			errorType: redemption_product.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := new(MockProductRepository)
			tt.setupMocks(productRepo)

			svc := newTestService(t, productRepo)

			_, err := svc.UpdateProduct(context.Background(), tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorType != nil {
					assert.ErrorIs(t, err, tt.errorType)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCatalogApplicationService_DeleteProduct(t *testing.T) {
	t.Run("正常系: draft商品を削除", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(draftProduct(1), nil)
		productRepo.On("Delete", mock.Anything, int64(1)).Return(true, nil)

		svc := newTestService(t, productRepo)

		got, err := svc.DeleteProduct(context.Background(), &DeleteProductRequest{ProductID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ProductID)
	})

	t.Run("異常系: published商品は削除できない", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(publishedProduct(1), nil)

		svc := newTestService(t, productRepo)

		_, err := svc.DeleteProduct(context.Background(), &DeleteProductRequest{ProductID: 1})
		assert.ErrorIs(t, err, redemption_product.ErrProductNotDraft)
	})
}

func TestCatalogApplicationService_PublishProduct(t *testing.T) {
	t.Run("正常系: draft商品を公開", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(draftProduct(1), nil).Once()
		productRepo.On("Publish", mock.Anything, int64(1)).Return(true, nil)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(publishedProduct(1), nil).Once()

		svc := newTestService(t, productRepo)

		got, err := svc.PublishProduct(context.Background(), &PublishProductRequest{ProductID: 1})
		require.NoError(t, err)
		assert.Equal(t, "published", got.Status)
	})

	t.Run("異常系: published商品は再公開できない", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(publishedProduct(1), nil)
		productRepo.On("Publish", mock.Anything, int64(1)).Return(false, nil)

		svc := newTestService(t, productRepo)

		_, err := svc.PublishProduct(context.Background(), &PublishProductRequest{ProductID: 1})
		assert.ErrorIs(t, err, redemption_product.ErrProductNotDraft)
	})
}

func TestCatalogApplicationService_OffShelfProduct(t *testing.T) {
	t.Run("正常系: published商品を公開終了", func(t *testing.T) {
		now := time.Now()
		offShelfAt := now
		publishedAt := now.Add(-time.Hour)
		offShelf := redemption_product.Reconstruct(
			1, "gift", "ギフトカード", nil, nil, nil,
			redemption_product.ProductStatusOffShelf, 10, 500, 2, nil, &publishedAt, &offShelfAt, 10, now, now,
		)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(publishedProduct(1), nil).Once()
		productRepo.On("OffShelf", mock.Anything, int64(1)).Return(true, nil)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(offShelf, nil).Once()

		svc := newTestService(t, productRepo)

		got, err := svc.OffShelfProduct(context.Background(), &OffShelfProductRequest{ProductID: 1})
		require.NoError(t, err)
		assert.Equal(t, "off_shelf", got.Status)
	})

	t.Run("異常系: draft商品は公開終了できない", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, int64(1)).Return(draftProduct(1), nil)
		productRepo.On("OffShelf", mock.Anything, int64(1)).Return(false, nil)

		svc := newTestService(t, productRepo)

		_, err := svc.OffShelfProduct(context.Background(), &OffShelfProductRequest{ProductID: 1})
		assert.ErrorIs(t, err, redemption_product.ErrProductNotPublished)
	})
}

func TestCatalogApplicationService_ListProducts(t *testing.T) {
	t.Run("正常系: 公開中の商品を一覧取得", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		products := []*redemption_product.RedemptionProduct{publishedProduct(1)}
		productRepo.On("List", mock.Anything, redemption_product.ProductStatusPublished, "").Return(products, nil)

		svc := newTestService(t, productRepo)

		got, err := svc.ListProducts(context.Background(), &ListProductsRequest{Status: "published"})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Total)
		assert.Equal(t, "published", got.Products[0].Status)
	})

	t.Run("異常系: 無効なステータス", func(t *testing.T) {
		productRepo := new(MockProductRepository)

		svc := newTestService(t, productRepo)

		_, err := svc.ListProducts(context.Background(), &ListProductsRequest{Status: "archived"})
		assert.Error(t, err)
	})
}
