package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type PurchaseOrderUsecase struct {
	tx           repo.TransactionManager
	poRepo       repo.PurchaseOrderRepository
	productRepo  repo.ProductRepository
	supplierRepo repo.SupplierRepository
}

// DI
func NewPurchaseOrderUsecase(
	tx repo.TransactionManager,
	poRepo repo.PurchaseOrderRepository,
	productRepo repo.ProductRepository,
	supplierRepo repo.SupplierRepository,
) *PurchaseOrderUsecase {
	return &PurchaseOrderUsecase{
		tx:           tx,
		poRepo:       poRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

type CreatePurchaseOrderInput struct {
	SupplierID int64
	ProductID  int64
	Quantity   int64
}

func (u *PurchaseOrderUsecase) CreatePurchaseOrder(ctx context.Context, in CreatePurchaseOrderInput) (model.PurchaseOrder, error) {
	if in.SupplierID <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid supplier_id")
	}
	if in.ProductID <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	// 参照先の存在確認
	if _, err := u.supplierRepo.FindByID(ctx, in.SupplierID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "supplier not found")
		}
		return model.PurchaseOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "product not found")
		}
		return model.PurchaseOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.poRepo.Create(ctx, model.PurchaseOrder{
		SupplierID: in.SupplierID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Status:     model.POStatusPending,
	})
	if err != nil {
		return model.PurchaseOrder{}, fromRepoErr(err)
	}
	return created, nil
}

type UpdatePurchaseOrderInput struct {
	Quantity *int64
	Status   *model.PurchaseOrderStatus
}

// 発注の更新。received/canceledは終端で、そこからの遷移は409。
// receivedへの遷移で発注数量ぶんの在庫を1回だけ加算する
func (u *PurchaseOrderUsecase) UpdatePurchaseOrder(ctx context.Context, poID int64, in UpdatePurchaseOrderInput) (model.PurchaseOrder, error) {
	if poID <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid purchase order id")
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}
	if in.Status != nil && !in.Status.IsValid() {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.PurchaseOrder

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 行ロックで取り、二重受領を防ぐ
		po, err := r.PurchaseOrders().FindByIDForUpdate(ctx, poID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "purchase order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		receiving := false
		if in.Status != nil {
			// 終端状態からは動かせない。同じ値の再送も409
			if po.Status.IsTerminal() {
				return NewHTTPError(http.StatusConflict, "purchase order already "+string(po.Status))
			}
			if *in.Status == model.POStatusReceived {
				receiving = true
			}
			po.Status = *in.Status
		}
		if in.Quantity != nil {
			// 受領後の数量変更は在庫と食い違うので拒否
			if po.Status == model.POStatusReceived && !receiving {
				return NewHTTPError(http.StatusConflict, "cannot change quantity of received order")
			}
			po.Quantity = *in.Quantity
		}

		if err := r.PurchaseOrders().Update(ctx, po); err != nil {
			return fromRepoErr(err)
		}

		// 受領への遷移でだけ在庫を加算。ガードにより2回は通らない
		if receiving {
			if err := r.Products().AdjustStock(ctx, po.ProductID, po.Quantity); err != nil {
				return fromRepoErr(err)
			}
		}

		out = po
		return nil
	})

	if err != nil {
		return model.PurchaseOrder{}, err
	}
	return out, nil
}

type PurchaseOrderListOutput struct {
	Items []model.PurchaseOrder `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

func (u *PurchaseOrderUsecase) ListPurchaseOrders(ctx context.Context, page int, limit int) (PurchaseOrderListOutput, error) {
	if page < 1 {
		return PurchaseOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return PurchaseOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, total, err := u.poRepo.List(ctx, page, limit)
	if err != nil {
		return PurchaseOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return PurchaseOrderListOutput{Items: orders, Total: total, Page: page, Limit: limit}, nil
}

func (u *PurchaseOrderUsecase) GetPurchaseOrder(ctx context.Context, poID int64) (model.PurchaseOrder, error) {
	if poID <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid purchase order id")
	}
	po, err := u.poRepo.FindByID(ctx, poID)
	if err != nil {
		return model.PurchaseOrder{}, fromRepoErr(err)
	}
	return po, nil
}

func (u *PurchaseOrderUsecase) DeletePurchaseOrder(ctx context.Context, poID int64) error {
	if poID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid purchase order id")
	}
	return fromRepoErr(u.poRepo.Delete(ctx, poID))
}
