package repository

import (
	"context"

	"app/internal/domain/model"
)

type PurchaseOrderRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.PurchaseOrder, int64, error)
	FindByID(ctx context.Context, id int64) (model.PurchaseOrder, error)

	// 受領処理の二重実行防止に行ロックで取る
	FindByIDForUpdate(ctx context.Context, id int64) (model.PurchaseOrder, error)

	Create(ctx context.Context, po model.PurchaseOrder) (model.PurchaseOrder, error)
	Update(ctx context.Context, po model.PurchaseOrder) error
	Delete(ctx context.Context, id int64) error
}
