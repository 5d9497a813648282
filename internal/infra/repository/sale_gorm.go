package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

// DI
func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Create(ctx context.Context, s model.Sale) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return 0, classifyErr(err)
	}
	return s.ID, nil
}

func (r *SaleGormRepository) FindByID(ctx context.Context, saleID int64) (model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, saleID).Error
	if isNotFound(err) {
		return model.Sale{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

func (r *SaleGormRepository) List(ctx context.Context, page int, limit int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Sale{})
	if err := tx.Count(&total).Error; err != nil {
		return []model.Sale{}, 0, err
	}

	offset := (page - 1) * limit
	if err := tx.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&sales).Error; err != nil {
		return []model.Sale{}, 0, err
	}
	return sales, total, nil
}

func (r *SaleGormRepository) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc").
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

func (r *SaleGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *SaleGormRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var out struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

type SalesItemGormRepository struct {
	db *gorm.DB
}

func NewSalesItemGormRepository(db *gorm.DB) *SalesItemGormRepository {
	return &SalesItemGormRepository{db: db}
}

func (r *SalesItemGormRepository) CreateBulk(ctx context.Context, saleID int64, items []model.SalesItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].SaleID = saleID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return classifyErr(err)
	}
	return nil
}

func (r *SalesItemGormRepository) ListBySaleID(ctx context.Context, saleID int64) ([]model.SalesItem, error) {
	var items []model.SalesItem
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.SalesItem{}, err
	}
	return items, nil
}

func (r *SalesItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.SalesItem, error) {
	var it model.SalesItem
	err := r.db.WithContext(ctx).First(&it, itemID).Error
	if isNotFound(err) {
		return model.SalesItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SalesItem{}, err
	}
	return it, nil
}
