package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// 共有モック
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, page int, limit int) ([]model.Product, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Search(ctx context.Context, f repo.ProductSearchFilter) ([]model.Product, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *ProductRepoMock) AdjustStock(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *ProductRepoMock) ListLowStock(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

type SupplierRepoMock struct{ mock.Mock }

func (m *SupplierRepoMock) List(ctx context.Context, page int, limit int) ([]model.Supplier, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Supplier)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *SupplierRepoMock) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Supplier)
	return s, args.Error(1)
}

func (m *SupplierRepoMock) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Supplier)
	return created, args.Error(1)
}

func (m *SupplierRepoMock) Update(ctx context.Context, s model.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SupplierRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SupplierRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type SupplierContactRepoMock struct{ mock.Mock }

func (m *SupplierContactRepoMock) FindBySupplierID(ctx context.Context, supplierID int64) (model.SupplierContact, error) {
	args := m.Called(ctx, supplierID)
	c, _ := args.Get(0).(model.SupplierContact)
	return c, args.Error(1)
}

func (m *SupplierContactRepoMock) Create(ctx context.Context, c model.SupplierContact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *SupplierContactRepoMock) Update(ctx context.Context, c model.SupplierContact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *SupplierContactRepoMock) DeleteBySupplierID(ctx context.Context, supplierID int64) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

type SaleRepoMock struct{ mock.Mock }

func (m *SaleRepoMock) Create(ctx context.Context, s model.Sale) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SaleRepoMock) FindByID(ctx context.Context, saleID int64) (model.Sale, error) {
	args := m.Called(ctx, saleID)
	s, _ := args.Get(0).(model.Sale)
	return s, args.Error(1)
}

func (m *SaleRepoMock) List(ctx context.Context, page int, limit int) ([]model.Sale, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Sale)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *SaleRepoMock) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	args := m.Called(ctx, from, to)
	items, _ := args.Get(0).([]model.Sale)
	return items, args.Error(1)
}

func (m *SaleRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SaleRepoMock) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

type SalesItemRepoMock struct{ mock.Mock }

func (m *SalesItemRepoMock) CreateBulk(ctx context.Context, saleID int64, items []model.SalesItem) error {
	args := m.Called(ctx, saleID, items)
	return args.Error(0)
}

func (m *SalesItemRepoMock) ListBySaleID(ctx context.Context, saleID int64) ([]model.SalesItem, error) {
	args := m.Called(ctx, saleID)
	items, _ := args.Get(0).([]model.SalesItem)
	return items, args.Error(1)
}

func (m *SalesItemRepoMock) FindByID(ctx context.Context, itemID int64) (model.SalesItem, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(model.SalesItem)
	return item, args.Error(1)
}

type PurchaseOrderRepoMock struct{ mock.Mock }

func (m *PurchaseOrderRepoMock) List(ctx context.Context, page int, limit int) ([]model.PurchaseOrder, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.PurchaseOrder)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PurchaseOrderRepoMock) FindByID(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	po, _ := args.Get(0).(model.PurchaseOrder)
	return po, args.Error(1)
}

func (m *PurchaseOrderRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	po, _ := args.Get(0).(model.PurchaseOrder)
	return po, args.Error(1)
}

func (m *PurchaseOrderRepoMock) Create(ctx context.Context, po model.PurchaseOrder) (model.PurchaseOrder, error) {
	args := m.Called(ctx, po)
	created, _ := args.Get(0).(model.PurchaseOrder)
	return created, args.Error(1)
}

func (m *PurchaseOrderRepoMock) Update(ctx context.Context, po model.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *PurchaseOrderRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryAlertRepoMock struct{ mock.Mock }

func (m *InventoryAlertRepoMock) List(ctx context.Context) ([]model.InventoryAlert, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.InventoryAlert)
	return items, args.Error(1)
}

func (m *InventoryAlertRepoMock) FindByProductAndType(ctx context.Context, productID int64, alertType string) (model.InventoryAlert, error) {
	args := m.Called(ctx, productID, alertType)
	a, _ := args.Get(0).(model.InventoryAlert)
	return a, args.Error(1)
}

func (m *InventoryAlertRepoMock) Upsert(ctx context.Context, a model.InventoryAlert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *InventoryAlertRepoMock) DeleteByProductAndType(ctx context.Context, productID int64, alertType string) error {
	args := m.Called(ctx, productID, alertType)
	return args.Error(0)
}

func (m *InventoryAlertRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ReturnRepoMock struct{ mock.Mock }

func (m *ReturnRepoMock) Create(ctx context.Context, r model.Return) (model.Return, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Return)
	return created, args.Error(1)
}

func (m *ReturnRepoMock) List(ctx context.Context, page int, limit int) ([]model.Return, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Return)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ReturnRepoMock) SumQuantityBySalesItem(ctx context.Context, salesItemID int64) (int64, error) {
	args := m.Called(ctx, salesItemID)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Txまわりのスタブ
// =====================

// WithinTxへ渡す束。使わないものはnilのままでよい
type txReposStub struct {
	products   *ProductRepoMock
	categories *CategoryRepoMock
	suppliers  *SupplierRepoMock
	contacts   *SupplierContactRepoMock
	sales      *SaleRepoMock
	items      *SalesItemRepoMock
	orders     *PurchaseOrderRepoMock
	alerts     *InventoryAlertRepoMock
	returns    *ReturnRepoMock
}

func (s *txReposStub) Products() repo.ProductRepository                 { return s.products }
func (s *txReposStub) Categories() repo.CategoryRepository              { return s.categories }
func (s *txReposStub) Suppliers() repo.SupplierRepository               { return s.suppliers }
func (s *txReposStub) SupplierContacts() repo.SupplierContactRepository { return s.contacts }
func (s *txReposStub) Sales() repo.SaleRepository                       { return s.sales }
func (s *txReposStub) SalesItems() repo.SalesItemRepository             { return s.items }
func (s *txReposStub) PurchaseOrders() repo.PurchaseOrderRepository     { return s.orders }
func (s *txReposStub) InventoryAlerts() repo.InventoryAlertRepository   { return s.alerts }
func (s *txReposStub) Returns() repo.ReturnRepository                   { return s.returns }

// 本物と違いcommit/rollbackはしない。fnの結果をそのまま返す
type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

// =====================
// ヘルパー
// =====================

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}
