package repository

import (
	"context"

	"app/internal/domain/model"
)

type SupplierRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Supplier, int64, error)
	FindByID(ctx context.Context, id int64) (model.Supplier, error)
	Create(ctx context.Context, s model.Supplier) (model.Supplier, error)
	Update(ctx context.Context, s model.Supplier) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// 連絡先は仕入先につき0..1件
type SupplierContactRepository interface {
	FindBySupplierID(ctx context.Context, supplierID int64) (model.SupplierContact, error)
	Create(ctx context.Context, c model.SupplierContact) error
	Update(ctx context.Context, c model.SupplierContact) error
	DeleteBySupplierID(ctx context.Context, supplierID int64) error
}
