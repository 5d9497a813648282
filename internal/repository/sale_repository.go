package repository

import (
	"context"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type SaleRepository interface {
	Create(ctx context.Context, s model.Sale) (int64, error)
	FindByID(ctx context.Context, saleID int64) (model.Sale, error)
	List(ctx context.Context, page int, limit int) ([]model.Sale, int64, error)
	ListBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

type SalesItemRepository interface {
	CreateBulk(ctx context.Context, saleID int64, items []model.SalesItem) error
	ListBySaleID(ctx context.Context, saleID int64) ([]model.SalesItem, error)
	FindByID(ctx context.Context, itemID int64) (model.SalesItem, error)
}
