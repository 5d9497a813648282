package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ReturnUsecase struct {
	tx         repo.TransactionManager
	returnRepo repo.ReturnRepository
}

// DI
func NewReturnUsecase(tx repo.TransactionManager, returnRepo repo.ReturnRepository) *ReturnUsecase {
	return &ReturnUsecase{tx: tx, returnRepo: returnRepo}
}

type CreateReturnInput struct {
	SalesItemID int64
	Quantity    int64
	Reason      string
}

// 返品。販売数量（過去の返品を差し引いた残り）を超える返品は拒否。
// 返金額は数量×販売単価。在庫は同じロック規律で戻す
func (u *ReturnUsecase) CreateReturn(ctx context.Context, in CreateReturnInput) (model.Return, error) {
	if in.SalesItemID <= 0 {
		return model.Return{}, NewHTTPError(http.StatusBadRequest, "invalid sales_item_id")
	}
	if in.Quantity <= 0 {
		return model.Return{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	var out model.Return

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.SalesItems().FindByID(ctx, in.SalesItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "sales item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 在庫行を先にロックしてから返品数量を確定する
		if _, err := r.Products().FindByIDForUpdate(ctx, item.ProductID); err != nil {
			return fromRepoErr(err)
		}

		returned, err := r.Returns().SumQuantityBySalesItem(ctx, in.SalesItemID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if in.Quantity > item.Quantity-returned {
			return NewHTTPError(http.StatusBadRequest, "return quantity exceeds sold quantity")
		}

		refund := item.UnitPrice.Mul(decimal.NewFromInt(in.Quantity))

		created, err := r.Returns().Create(ctx, model.Return{
			SalesItemID:  in.SalesItemID,
			Quantity:     in.Quantity,
			RefundAmount: refund,
			Reason:       in.Reason,
		})
		if err != nil {
			return fromRepoErr(err)
		}

		if err := r.Products().AdjustStock(ctx, item.ProductID, in.Quantity); err != nil {
			return fromRepoErr(err)
		}

		out = created
		return nil
	})

	if err != nil {
		return model.Return{}, err
	}
	return out, nil
}

type ReturnListOutput struct {
	Items []model.Return `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (u *ReturnUsecase) ListReturns(ctx context.Context, page int, limit int) (ReturnListOutput, error) {
	if page < 1 {
		return ReturnListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return ReturnListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	returns, total, err := u.returnRepo.List(ctx, page, limit)
	if err != nil {
		return ReturnListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ReturnListOutput{Items: returns, Total: total, Page: page, Limit: limit}, nil
}
