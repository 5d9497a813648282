package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewPurchaseOrderGormRepository(db *gorm.DB) *PurchaseOrderGormRepository {
	return &PurchaseOrderGormRepository{db: db}
}

func (r *PurchaseOrderGormRepository) List(ctx context.Context, page int, limit int) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.PurchaseOrder{})
	if err := tx.Count(&total).Error; err != nil {
		return []model.PurchaseOrder{}, 0, err
	}

	offset := (page - 1) * limit
	if err := tx.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return []model.PurchaseOrder{}, 0, err
	}
	return orders, total, nil
}

func (r *PurchaseOrderGormRepository) FindByID(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).First(&po, id).Error
	if isNotFound(err) {
		return model.PurchaseOrder{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PurchaseOrder{}, err
	}
	return po, nil
}

// 受領の二重実行防止。Tx内でのみ使う
func (r *PurchaseOrderGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&po, id).Error
	if isNotFound(err) {
		return model.PurchaseOrder{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PurchaseOrder{}, err
	}
	return po, nil
}

func (r *PurchaseOrderGormRepository) Create(ctx context.Context, po model.PurchaseOrder) (model.PurchaseOrder, error) {
	if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
		return model.PurchaseOrder{}, classifyErr(err)
	}
	return po, nil
}

func (r *PurchaseOrderGormRepository) Update(ctx context.Context, po model.PurchaseOrder) error {
	res := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).Where("id = ?", po.ID).Updates(map[string]interface{}{
		"supplier_id": po.SupplierID,
		"product_id":  po.ProductID,
		"quantity":    po.Quantity,
		"status":      po.Status,
	})
	if res.Error != nil {
		return classifyErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.PurchaseOrder{}, id)
	if res.Error != nil {
		return classifyErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
