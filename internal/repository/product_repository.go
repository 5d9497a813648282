package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// チャット検索の条件。nilのフィールドは条件に入れない
type ProductSearchFilter struct {
	Name     *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Category *string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Product, int64, error)
	Search(ctx context.Context, f ProductSearchFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// 行ロック付き取得（SELECT ... FOR UPDATE）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
	ListNames(ctx context.Context) ([]string, error)

	// stock = stock + delta（deltaは負も可）
	AdjustStock(ctx context.Context, id int64, delta int64) error

	ListLowStock(ctx context.Context) ([]model.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
