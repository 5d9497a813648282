package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Suppliers() SupplierRepository
	SupplierContacts() SupplierContactRepository
	Sales() SaleRepository
	SalesItems() SalesItemRepository
	PurchaseOrders() PurchaseOrderRepository
	InventoryAlerts() InventoryAlertRepository
	Returns() ReturnRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
