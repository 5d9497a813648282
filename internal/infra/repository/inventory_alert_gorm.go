package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryAlertGormRepository struct {
	db *gorm.DB
}

// DI
func NewInventoryAlertGormRepository(db *gorm.DB) *InventoryAlertGormRepository {
	return &InventoryAlertGormRepository{db: db}
}

func (r *InventoryAlertGormRepository) List(ctx context.Context) ([]model.InventoryAlert, error) {
	var alerts []model.InventoryAlert
	if err := r.db.WithContext(ctx).Order("product_id asc").Find(&alerts).Error; err != nil {
		return []model.InventoryAlert{}, err
	}
	return alerts, nil
}

func (r *InventoryAlertGormRepository) FindByProductAndType(ctx context.Context, productID int64, alertType string) (model.InventoryAlert, error) {
	var a model.InventoryAlert
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND alert_type = ?", productID, alertType).
		First(&a).Error
	if isNotFound(err) {
		return model.InventoryAlert{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryAlert{}, err
	}
	return a, nil
}

// (product_id, alert_type)をキーにinsert-or-update。重複行は作らない
func (r *InventoryAlertGormRepository) Upsert(ctx context.Context, a model.InventoryAlert) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "alert_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"threshold":     a.Threshold,
			"last_alert_at": a.LastAlertAt,
		}),
	}).Create(&a).Error
	if err != nil {
		return classifyErr(err)
	}
	return nil
}

func (r *InventoryAlertGormRepository) DeleteByProductAndType(ctx context.Context, productID int64, alertType string) error {
	// 0件でもエラーにしない
	return r.db.WithContext(ctx).
		Where("product_id = ? AND alert_type = ?", productID, alertType).
		Delete(&model.InventoryAlert{}).Error
}

func (r *InventoryAlertGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.InventoryAlert{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
