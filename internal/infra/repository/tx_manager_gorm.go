package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products         repo.ProductRepository
	categories       repo.CategoryRepository
	suppliers        repo.SupplierRepository
	supplierContacts repo.SupplierContactRepository
	sales            repo.SaleRepository
	salesItems       repo.SalesItemRepository
	purchaseOrders   repo.PurchaseOrderRepository
	inventoryAlerts  repo.InventoryAlertRepository
	returns          repo.ReturnRepository
}

func (r *txReposGorm) Products() repo.ProductRepository                 { return r.products }
func (r *txReposGorm) Categories() repo.CategoryRepository              { return r.categories }
func (r *txReposGorm) Suppliers() repo.SupplierRepository               { return r.suppliers }
func (r *txReposGorm) SupplierContacts() repo.SupplierContactRepository { return r.supplierContacts }
func (r *txReposGorm) Sales() repo.SaleRepository                       { return r.sales }
func (r *txReposGorm) SalesItems() repo.SalesItemRepository             { return r.salesItems }
func (r *txReposGorm) PurchaseOrders() repo.PurchaseOrderRepository     { return r.purchaseOrders }
func (r *txReposGorm) InventoryAlerts() repo.InventoryAlertRepository   { return r.inventoryAlerts }
func (r *txReposGorm) Returns() repo.ReturnRepository                   { return r.returns }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// 成功でcommit、エラー/panicでrollback。出口は必ずどちらか
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:         NewProductGormRepository(tx),
			categories:       NewCategoryGormRepository(tx),
			suppliers:        NewSupplierGormRepository(tx),
			supplierContacts: NewSupplierContactGormRepository(tx),
			sales:            NewSaleGormRepository(tx),
			salesItems:       NewSalesItemGormRepository(tx),
			purchaseOrders:   NewPurchaseOrderGormRepository(tx),
			inventoryAlerts:  NewInventoryAlertGormRepository(tx),
			returns:          NewReturnGormRepository(tx),
		}
		return fn(r)
	})
}
