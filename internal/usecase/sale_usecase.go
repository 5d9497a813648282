package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 消費税は固定5%
var taxRate = decimal.NewFromFloat(0.05)

// アラート行が無い商品に使う閾値
const defaultLowStockThreshold = 10

type SaleUsecase struct {
	tx        repo.TransactionManager
	saleRepo  repo.SaleRepository
	itemRepo  repo.SalesItemRepository
	threshold int64
}

// DI
func NewSaleUsecase(tx repo.TransactionManager, saleRepo repo.SaleRepository, itemRepo repo.SalesItemRepository) *SaleUsecase {
	return &SaleUsecase{
		tx:        tx,
		saleRepo:  saleRepo,
		itemRepo:  itemRepo,
		threshold: defaultLowStockThreshold,
	}
}

type SaleItemInput struct {
	ProductID int64
	Quantity  int64
	// nilなら商品マスタの価格を使う
	UnitPrice *decimal.Decimal
}

type CreateSaleInput struct {
	UserID *int64
	Items  []SaleItemInput
}

type SaleItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

type SaleOutput struct {
	ID        int64            `json:"id"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Tax       decimal.Decimal  `json:"tax"`
	Total     decimal.Decimal  `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
	Items     []SaleItemOutput `json:"items"`
}

// 売上作成。商品行をロック→在庫確認→ヘッダ＋明細→在庫減算→
// 閾値を見てアラートをupsertまたは削除。全部1トランザクション
func (u *SaleUsecase) CreateSale(ctx context.Context, in CreateSaleInput) (SaleOutput, error) {
	if len(in.Items) == 0 {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity <= 0 {
			return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "unit_price must be >= 0")
		}
	}

	var out SaleOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()

		items := make([]model.SalesItem, 0, len(in.Items))
		outItems := make([]SaleItemOutput, 0, len(in.Items))
		subtotal := decimal.Zero

		// 商品は1回だけロックし、残量を明細をまたいで引き継ぐ。
		// 同一商品が複数行に分かれていても累計で在庫判定する
		type lockedProduct struct {
			product   model.Product
			remaining int64
		}
		locked := make(map[int64]*lockedProduct, len(in.Items))
		lockOrder := make([]int64, 0, len(in.Items))

		for _, it := range in.Items {
			lp, ok := locked[it.ProductID]
			if !ok {
				// 行ロック。同時販売での売り越しを防ぐ
				p, err := r.Products().FindByIDForUpdate(ctx, it.ProductID)
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, "product not found")
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				lp = &lockedProduct{product: p, remaining: p.Stock}
				locked[it.ProductID] = lp
				lockOrder = append(lockOrder, it.ProductID)
			}

			// 在庫は負にしない。足りなければ書き込み前に拒否
			if lp.remaining < it.Quantity {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock")
			}
			lp.remaining -= it.Quantity

			unitPrice := lp.product.Price
			if it.UnitPrice != nil {
				unitPrice = *it.UnitPrice
			}
			itemTotal := unitPrice.Mul(decimal.NewFromInt(it.Quantity))
			subtotal = subtotal.Add(itemTotal)

			items = append(items, model.SalesItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: unitPrice,
				ItemTotal: itemTotal,
				CreatedAt: now,
			})
			outItems = append(outItems, SaleItemOutput{
				ProductID: it.ProductID,
				Name:      lp.product.Name,
				Quantity:  it.Quantity,
				UnitPrice: unitPrice,
				ItemTotal: itemTotal,
			})
		}

		tax := subtotal.Mul(taxRate).Round(2)
		total := subtotal.Add(tax)

		saleID, err := r.Sales().Create(ctx, model.Sale{
			UserID:    in.UserID,
			Subtotal:  subtotal,
			Tax:       tax,
			Total:     total,
			CreatedAt: now,
		})
		if err != nil {
			return fromRepoErr(err)
		}

		if err := r.SalesItems().CreateBulk(ctx, saleID, items); err != nil {
			return fromRepoErr(err)
		}

		// 減算とアラート評価は商品ごとに1回、確定後の残量で行う
		for _, productID := range lockOrder {
			lp := locked[productID]
			if err := r.Products().AdjustStock(ctx, productID, lp.remaining-lp.product.Stock); err != nil {
				return fromRepoErr(err)
			}
			if err := u.reevaluateAlert(ctx, r, productID, lp.remaining, now); err != nil {
				return err
			}
		}

		out = SaleOutput{
			ID:        saleID,
			Subtotal:  subtotal,
			Tax:       tax,
			Total:     total,
			CreatedAt: now,
			Items:     outItems,
		}
		return nil
	})

	if err != nil {
		return SaleOutput{}, err
	}
	return out, nil
}

// 新しい在庫が閾値以下ならアラートをupsert（時刻を更新）。
// 閾値を上回っていて既存アラートがあれば消す。商品につき高々1行
func (u *SaleUsecase) reevaluateAlert(ctx context.Context, r repo.TxRepos, productID int64, newStock int64, now time.Time) error {
	threshold := u.threshold

	existing, err := r.InventoryAlerts().FindByProductAndType(ctx, productID, model.AlertTypeLowStock)
	switch {
	case err == nil:
		threshold = existing.Threshold
	case errors.Is(err, repo.ErrNotFound):
		// デフォルト閾値で判定
	default:
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if newStock <= threshold {
		err := r.InventoryAlerts().Upsert(ctx, model.InventoryAlert{
			ProductID:   productID,
			AlertType:   model.AlertTypeLowStock,
			Threshold:   threshold,
			LastAlertAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	}

	if err := r.InventoryAlerts().DeleteByProductAndType(ctx, productID, model.AlertTypeLowStock); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SaleListOutput struct {
	Items []model.Sale `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *SaleUsecase) ListSales(ctx context.Context, page int, limit int) (SaleListOutput, error) {
	if page < 1 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	sales, total, err := u.saleRepo.List(ctx, page, limit)
	if err != nil {
		return SaleListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SaleListOutput{Items: sales, Total: total, Page: page, Limit: limit}, nil
}

type InvoiceOutput struct {
	SaleID    int64             `json:"sale_id"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Tax       decimal.Decimal   `json:"tax"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []model.SalesItem `json:"items"`
}

// 請求書表示用。売上ヘッダ＋明細
func (u *SaleUsecase) GetInvoice(ctx context.Context, saleID int64) (InvoiceOutput, error) {
	if saleID <= 0 {
		return InvoiceOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sale id")
	}

	s, err := u.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return InvoiceOutput{}, fromRepoErr(err)
	}

	items, err := u.itemRepo.ListBySaleID(ctx, saleID)
	if err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return InvoiceOutput{
		SaleID:    s.ID,
		Subtotal:  s.Subtotal,
		Tax:       s.Tax,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
		Items:     items,
	}, nil
}
