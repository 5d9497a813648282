package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /dashboard, /reports, /inventory-alertsのHTTP
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/dashboard/stats", h.dashboardStats)
	e.GET("/inventory-alerts", h.inventoryAlerts)

	// レポートはログイン必須
	g := e.Group("/reports")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/sales", h.salesReport)
	g.GET("/low-stock", h.lowStock)
}

func (h *ReportHandler) dashboardStats(c echo.Context) error {
	stats, err := h.uc.GetDashboardStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) inventoryAlerts(c echo.Context) error {
	alerts, err := h.uc.ListInventoryAlerts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// from/toはYYYY-MM-DD。省略時は直近30日
func (h *ReportHandler) salesReport(c echo.Context) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = parsed
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		// to日付の終わりまで含める
		to = parsed.AddDate(0, 0, 1)
	}

	report, err := h.uc.GetSalesReport(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) lowStock(c echo.Context) error {
	products, err := h.uc.ListLowStockProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}
