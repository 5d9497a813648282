package repository

import (
	"context"

	"app/internal/domain/model"
)

type InventoryAlertRepository interface {
	List(ctx context.Context) ([]model.InventoryAlert, error)
	FindByProductAndType(ctx context.Context, productID int64, alertType string) (model.InventoryAlert, error)

	// (product_id, alert_type)キーでinsert-or-update
	Upsert(ctx context.Context, a model.InventoryAlert) error

	DeleteByProductAndType(ctx context.Context, productID int64, alertType string) error
	Count(ctx context.Context) (int64, error)
}
