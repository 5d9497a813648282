package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type ReturnGormRepository struct {
	db *gorm.DB
}

// DI
func NewReturnGormRepository(db *gorm.DB) *ReturnGormRepository {
	return &ReturnGormRepository{db: db}
}

func (r *ReturnGormRepository) Create(ctx context.Context, ret model.Return) (model.Return, error) {
	if err := r.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return model.Return{}, classifyErr(err)
	}
	return ret, nil
}

func (r *ReturnGormRepository) List(ctx context.Context, page int, limit int) ([]model.Return, int64, error) {
	var returns []model.Return
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Return{})
	if err := tx.Count(&total).Error; err != nil {
		return []model.Return{}, 0, err
	}

	offset := (page - 1) * limit
	if err := tx.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&returns).Error; err != nil {
		return []model.Return{}, 0, err
	}
	return returns, total, nil
}

func (r *ReturnGormRepository) SumQuantityBySalesItem(ctx context.Context, salesItemID int64) (int64, error) {
	var out struct {
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.Return{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("sales_item_id = ?", salesItemID).
		Scan(&out).Error
	if err != nil {
		return 0, err
	}
	return out.Total, nil
}
