package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReturnFixture() (*SalesItemRepoMock, *ProductRepoMock, *ReturnRepoMock, *usecase.ReturnUsecase) {
	items := new(SalesItemRepoMock)
	products := new(ProductRepoMock)
	returns := new(ReturnRepoMock)

	tx := &txManagerStub{repos: &txReposStub{
		items:    items,
		products: products,
		returns:  returns,
	}}

	return items, products, returns, usecase.NewReturnUsecase(tx, returns)
}

func TestReturnUsecase_Create_InvalidInput(t *testing.T) {
	_, _, _, uc := newReturnFixture()

	_, err := uc.CreateReturn(context.Background(), usecase.CreateReturnInput{SalesItemID: 0, Quantity: 1})
	assertHTTPStatus(t, err, 400)

	_, err = uc.CreateReturn(context.Background(), usecase.CreateReturnInput{SalesItemID: 1, Quantity: 0})
	assertHTTPStatus(t, err, 400)
}

func TestReturnUsecase_Create_ItemNotFound(t *testing.T) {
	items, _, _, uc := newReturnFixture()

	items.On("FindByID", mock.Anything, int64(99)).Return(model.SalesItem{}, repo.ErrNotFound)

	_, err := uc.CreateReturn(context.Background(), usecase.CreateReturnInput{SalesItemID: 99, Quantity: 1})
	assertHTTPStatus(t, err, 404)
}

// 過去返品ぶんを差し引いた残りを超える返品は拒否
func TestReturnUsecase_Create_ExceedsSoldQuantity(t *testing.T) {
	items, products, returns, uc := newReturnFixture()

	items.On("FindByID", mock.Anything, int64(1)).Return(model.SalesItem{
		ID: 1, ProductID: 10, Quantity: 3, UnitPrice: decimal.NewFromInt(10),
	}, nil)
	products.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Product{ID: 10, Stock: 5}, nil)
	returns.On("SumQuantityBySalesItem", mock.Anything, int64(1)).Return(int64(2), nil)

	_, err := uc.CreateReturn(context.Background(), usecase.CreateReturnInput{SalesItemID: 1, Quantity: 2})
	assertHTTPStatus(t, err, 400)

	returns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

// 返金額は数量×販売単価。在庫は返品数量ぶん戻る
func TestReturnUsecase_Create_Success(t *testing.T) {
	items, products, returns, uc := newReturnFixture()

	items.On("FindByID", mock.Anything, int64(1)).Return(model.SalesItem{
		ID: 1, ProductID: 10, Quantity: 3, UnitPrice: decimal.RequireFromString("9.99"),
	}, nil)
	products.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Product{ID: 10, Stock: 5}, nil)
	returns.On("SumQuantityBySalesItem", mock.Anything, int64(1)).Return(int64(0), nil)

	returns.On("Create", mock.Anything, mock.MatchedBy(func(r model.Return) bool {
		return r.SalesItemID == 1 &&
			r.Quantity == 2 &&
			r.RefundAmount.Equal(decimal.RequireFromString("19.98")) &&
			r.Reason == "damaged"
	})).Return(model.Return{ID: 7, SalesItemID: 1, Quantity: 2, RefundAmount: decimal.RequireFromString("19.98")}, nil)

	products.On("AdjustStock", mock.Anything, int64(10), int64(2)).Return(nil)

	out, err := uc.CreateReturn(context.Background(), usecase.CreateReturnInput{
		SalesItemID: 1, Quantity: 2, Reason: "damaged",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "19.98", out.RefundAmount.StringFixed(2))

	returns.AssertExpectations(t)
	products.AssertExpectations(t)
}
