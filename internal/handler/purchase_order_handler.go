package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /purchase-ordersのHTTP
type PurchaseOrderHandler struct {
	uc *usecase.PurchaseOrderUsecase
}

// DI
func NewPurchaseOrderHandler(uc *usecase.PurchaseOrderUsecase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

type CreatePurchaseOrderRequest struct {
	SupplierID int64 `json:"supplier_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
}

type UpdatePurchaseOrderRequest struct {
	Quantity *int64  `json:"quantity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (h *PurchaseOrderHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/purchase-orders", h.list)
	e.GET("/purchase-orders/:id", h.detail)
	e.POST("/purchase-orders", h.create)
	e.PUT("/purchase-orders/:id", h.update)
	e.DELETE("/purchase-orders/:id", h.delete)
}

func (h *PurchaseOrderHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListPurchaseOrders(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PurchaseOrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	po, err := h.uc.GetPurchaseOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandler) create(c echo.Context) error {
	var req CreatePurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	created, err := h.uc.CreatePurchaseOrder(c.Request().Context(), usecase.CreatePurchaseOrderInput{
		SupplierID: req.SupplierID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *PurchaseOrderHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdatePurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdatePurchaseOrderInput{Quantity: req.Quantity}
	if req.Status != nil {
		status := model.PurchaseOrderStatus(*req.Status)
		in.Status = &status
	}

	po, err := h.uc.UpdatePurchaseOrder(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeletePurchaseOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
