package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /salesと/billing/invoiceのHTTP
type SaleHandler struct {
	uc *usecase.SaleUsecase
}

// DI
func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

type SaleItemRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type CreateSaleRequest struct {
	UserID *int64            `json:"user_id,omitempty"`
	Items  []SaleItemRequest `json:"items"`
}

func (h *SaleHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/sales", h.list)
	e.POST("/sales", h.create)
	e.GET("/billing/invoice/:sales_id", h.invoice)
}

func (h *SaleHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListSales(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SaleHandler) create(c echo.Context) error {
	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.SaleItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	out, err := h.uc.CreateSale(c.Request().Context(), usecase.CreateSaleInput{
		UserID: req.UserID,
		Items:  items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SaleHandler) invoice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("sales_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sales_id"})
	}

	out, err := h.uc.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
