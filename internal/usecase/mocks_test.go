package usecase

import (
	"context"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// ---------- トランザクション ----------

// テスト用。fnをそのまま実行するだけ。
type fakeTxManager struct {
	repos fakeTxRepos
}

type fakeTxRepos struct {
	orders     *MockOrderRepository
	orderItems *MockOrderItemRepository
	products   *MockProductRepository
	inventory  *MockInventoryRepository
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}

func (f fakeTxRepos) Orders() repo.OrderRepository         { return f.orders }
func (f fakeTxRepos) OrderItems() repo.OrderItemRepository { return f.orderItems }
func (f fakeTxRepos) Products() repo.ProductRepository     { return f.products }
func (f fakeTxRepos) Inventory() repo.InventoryRepository  { return f.inventory }

func newFakeTx() (*fakeTxManager, *MockOrderRepository, *MockOrderItemRepository, *MockProductRepository, *MockInventoryRepository) {
	orders := new(MockOrderRepository)
	items := new(MockOrderItemRepository)
	products := new(MockProductRepository)
	inventory := new(MockInventoryRepository)
	tx := &fakeTxManager{repos: fakeTxRepos{
		orders:     orders,
		orderItems: items,
		products:   products,
		inventory:  inventory,
	}}
	return tx, orders, items, products, inventory
}

// ---------- 注文 ----------

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	args := m.Called(ctx, orderNumber)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) PaidRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) DailyPaidRevenue(ctx context.Context, from, to time.Time) ([]repo.DailyRevenue, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repo.DailyRevenue), args.Error(1)
}

// ---------- 注文明細 ----------

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

// ---------- 商品 ----------

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) ListFeatured(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListTopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) IncrementViewCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SetActive(ctx context.Context, id int64, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockProductRepository) CategorySales(ctx context.Context) ([]repo.CategorySales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repo.CategorySales), args.Error(1)
}

// ---------- 在庫 ----------

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) RestoreStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *MockInventoryRepository) CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

// ---------- ユーザー ----------

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListByAccountStatus(ctx context.Context, status model.AccountStatus) ([]model.User, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListCustomers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

// ---------- 通知 ----------

// 呼び出しを記録するだけの通知先
type recordingNotifier struct {
	confirmations []model.Order
	statusUpdates []model.OrderStatus
	welcomed      []model.User
	approved      []model.User
	rejected      []model.User
}

func (n *recordingNotifier) OrderConfirmation(user model.User, order model.Order, items []model.OrderItem) {
	n.confirmations = append(n.confirmations, order)
}

func (n *recordingNotifier) OrderStatusUpdate(user model.User, order model.Order, previousStatus model.OrderStatus) {
	n.statusUpdates = append(n.statusUpdates, previousStatus)
}

func (n *recordingNotifier) Welcome(user model.User) {
	n.welcomed = append(n.welcomed, user)
}

func (n *recordingNotifier) AccountApproved(user model.User) {
	n.approved = append(n.approved, user)
}

func (n *recordingNotifier) AccountRejected(user model.User, reason string) {
	n.rejected = append(n.rejected, user)
}
