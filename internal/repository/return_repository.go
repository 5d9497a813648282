package repository

import (
	"context"

	"app/internal/domain/model"
)

type ReturnRepository interface {
	Create(ctx context.Context, r model.Return) (model.Return, error)
	List(ctx context.Context, page int, limit int) ([]model.Return, int64, error)

	// 同じ明細に対する返品済み数量の合計
	SumQuantityBySalesItem(ctx context.Context, salesItemID int64) (int64, error)
}
