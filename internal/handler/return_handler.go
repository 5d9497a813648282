package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /returnsのHTTP
type ReturnHandler struct {
	uc *usecase.ReturnUsecase
}

// DI
func NewReturnHandler(uc *usecase.ReturnUsecase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

type CreateReturnRequest struct {
	SalesItemID int64  `json:"sales_item_id"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason"`
}

func (h *ReturnHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/returns", h.list)
	e.POST("/returns", h.create)
}

func (h *ReturnHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListReturns(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReturnHandler) create(c echo.Context) error {
	var req CreateReturnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	created, err := h.uc.CreateReturn(c.Request().Context(), usecase.CreateReturnInput{
		SalesItemID: req.SalesItemID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}
