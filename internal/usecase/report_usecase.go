package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportUsecase struct {
	productRepo  repo.ProductRepository
	supplierRepo repo.SupplierRepository
	saleRepo     repo.SaleRepository
	alertRepo    repo.InventoryAlertRepository
}

// DI
func NewReportUsecase(
	productRepo repo.ProductRepository,
	supplierRepo repo.SupplierRepository,
	saleRepo repo.SaleRepository,
	alertRepo repo.InventoryAlertRepository,
) *ReportUsecase {
	return &ReportUsecase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		saleRepo:     saleRepo,
		alertRepo:    alertRepo,
	}
}

type DashboardStats struct {
	ProductCount  int64           `json:"product_count"`
	SupplierCount int64           `json:"supplier_count"`
	SaleCount     int64           `json:"sale_count"`
	AlertCount    int64           `json:"alert_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func (u *ReportUsecase) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	suppliers, err := u.supplierRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	sales, err := u.saleRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	alerts, err := u.alertRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	revenue, err := u.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardStats{
		ProductCount:  products,
		SupplierCount: suppliers,
		SaleCount:     sales,
		AlertCount:    alerts,
		TotalRevenue:  revenue,
	}, nil
}

type SalesReport struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Sales    []model.Sale    `json:"sales"`
}

// 期間指定の売上レポート。toは排他側
func (u *ReportUsecase) GetSalesReport(ctx context.Context, from time.Time, to time.Time) (SalesReport, error) {
	if !from.Before(to) {
		return SalesReport{}, NewHTTPError(http.StatusBadRequest, "from must be before to")
	}

	sales, err := u.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return SalesReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	report := SalesReport{
		From:     from,
		To:       to,
		Count:    len(sales),
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
		Sales:    sales,
	}
	for _, s := range sales {
		report.Subtotal = report.Subtotal.Add(s.Subtotal)
		report.Tax = report.Tax.Add(s.Tax)
		report.Total = report.Total.Add(s.Total)
	}
	return report, nil
}

func (u *ReportUsecase) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListLowStock(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ReportUsecase) ListInventoryAlerts(ctx context.Context) ([]model.InventoryAlert, error) {
	alerts, err := u.alertRepo.List(ctx)
	if err != nil {
		return []model.InventoryAlert{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return alerts, nil
}
