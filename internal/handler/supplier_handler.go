package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /suppliersのHTTP
type SupplierHandler struct {
	uc *usecase.SupplierUsecase
}

// DI
func NewSupplierHandler(uc *usecase.SupplierUsecase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

type SupplierRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
}

func (h *SupplierHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/suppliers", h.list)
	e.GET("/suppliers/:id", h.detail)
	e.POST("/suppliers", h.create)
	e.PUT("/suppliers/:id", h.update)
	e.DELETE("/suppliers/:id", h.delete)
}

func (h *SupplierHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListSuppliers(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) create(c echo.Context) error {
	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	created, err := h.uc.CreateSupplier(c.Request().Context(), usecase.SupplierInput{
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *SupplierHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err = h.uc.UpdateSupplier(c.Request().Context(), id, usecase.SupplierInput{
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *SupplierHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteSupplier(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
