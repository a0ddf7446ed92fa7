package handler

import (
	"context"
	"database/sql"
	"time"

	"loyalty-server/internal/domain/agent"
	"loyalty-server/internal/domain/point_grant"
	"loyalty-server/internal/domain/point_rule"
	"loyalty-server/internal/domain/redemption_product"
	"loyalty-server/internal/domain/redemption_record"

	"github.com/stretchr/testify/mock"
)

// MockRuleRepository モックポイントルールリポジトリ
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id int64) (*point_rule.PointRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*point_rule.PointRule), args.Error(1)
}

func (m *MockRuleRepository) List(ctx context.Context, category string) ([]*point_rule.PointRule, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*point_rule.PointRule), args.Error(1)
}

func (m *MockRuleRepository) Create(ctx context.Context, rule *point_rule.PointRule) (int64, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRuleRepository) Update(ctx context.Context, id int64, fields point_rule.UpdateFields) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockGrantRepository モックポイント付与リポジトリ
type MockGrantRepository struct {
	mock.Mock
}

func (m *MockGrantRepository) SaveTx(ctx context.Context, tx *sql.Tx, grant *point_grant.PointGrant) (int64, error) {
	args := m.Called(ctx, tx, grant)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGrantRepository) CountByAgentRuleYearTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, ruleID int64, occurredYear int) (int, error) {
	args := m.Called(ctx, tx, agentCode, ruleID, occurredYear)
	return args.Int(0), args.Error(1)
}

func (m *MockGrantRepository) ListByAgent(ctx context.Context, agentCode agent.Code, ruleID int64) ([]*point_grant.GrantDetail, int, error) {
	args := m.Called(ctx, agentCode, ruleID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*point_grant.GrantDetail), args.Int(1), args.Error(2)
}

func (m *MockGrantRepository) ExistsForRule(ctx context.Context, ruleID int64) (bool, error) {
	args := m.Called(ctx, ruleID)
	return args.Bool(0), args.Error(1)
}

// MockBalanceRepository モック残高リポジトリ
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) FindByAgentCode(ctx context.Context, agentCode agent.Code) (*agent.AgentBalance, error) {
	args := m.Called(ctx, agentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.AgentBalance), args.Error(1)
}

func (m *MockBalanceRepository) ListAll(ctx context.Context) ([]*agent.AgentBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.AgentBalance), args.Error(1)
}

func (m *MockBalanceRepository) EnsureRowTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code) error {
	args := m.Called(ctx, tx, agentCode)
	return args.Error(0)
}

func (m *MockBalanceRepository) LockForUpdateTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code) (*agent.AgentBalance, error) {
	args := m.Called(ctx, tx, agentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.AgentBalance), args.Error(1)
}

func (m *MockBalanceRepository) AddPointsTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, points int) error {
	args := m.Called(ctx, tx, agentCode, points)
	return args.Error(0)
}

func (m *MockBalanceRepository) DeductPointsTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, points int) error {
	args := m.Called(ctx, tx, agentCode, points)
	return args.Error(0)
}

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

// MockRecordRepository モック交換履歴リポジトリ
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) SaveTx(ctx context.Context, tx *sql.Tx, record *redemption_record.RedemptionRecord) (int64, error) {
	args := m.Called(ctx, tx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) CountSuccessByProductAgentTx(ctx context.Context, tx *sql.Tx, productID int64, agentCode agent.Code) (int, error) {
	args := m.Called(ctx, tx, productID, agentCode)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordRepository) ListByAgent(ctx context.Context, agentCode agent.Code, productID int64) ([]*redemption_record.RecordDetail, int, error) {
	args := m.Called(ctx, agentCode, productID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*redemption_record.RecordDetail), args.Int(1), args.Error(2)
}

// MockTransactionManager モックトランザクションマネージャー
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if fn != nil {
		if err := fn(nil); err != nil {
			return err
		}
	}
	return args.Error(0)
}
