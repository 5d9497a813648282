package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type SupplierGormRepository struct {
	db *gorm.DB
}

// DI
func NewSupplierGormRepository(db *gorm.DB) *SupplierGormRepository {
	return &SupplierGormRepository{db: db}
}

func (r *SupplierGormRepository) List(ctx context.Context, page int, limit int) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Supplier{})
	if err := tx.Count(&total).Error; err != nil {
		return []model.Supplier{}, 0, err
	}

	offset := (page - 1) * limit
	if err := tx.Order("id asc").Offset(offset).Limit(limit).Find(&suppliers).Error; err != nil {
		return []model.Supplier{}, 0, err
	}
	return suppliers, total, nil
}

func (r *SupplierGormRepository) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	if isNotFound(err) {
		return model.Supplier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Supplier{}, err
	}
	return s, nil
}

func (r *SupplierGormRepository) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Supplier{}, classifyErr(err)
	}
	return s, nil
}

func (r *SupplierGormRepository) Update(ctx context.Context, s model.Supplier) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":    s.Name,
		"address": s.Address,
	})
	if res.Error != nil {
		return classifyErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SupplierGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Supplier{}, id)
	if res.Error != nil {
		// 発注から参照されている仕入先は消せない
		return classifyErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SupplierGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Supplier{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

type SupplierContactGormRepository struct {
	db *gorm.DB
}

func NewSupplierContactGormRepository(db *gorm.DB) *SupplierContactGormRepository {
	return &SupplierContactGormRepository{db: db}
}

func (r *SupplierContactGormRepository) FindBySupplierID(ctx context.Context, supplierID int64) (model.SupplierContact, error) {
	var c model.SupplierContact
	err := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).First(&c).Error
	if isNotFound(err) {
		return model.SupplierContact{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SupplierContact{}, err
	}
	return c, nil
}

func (r *SupplierContactGormRepository) Create(ctx context.Context, c model.SupplierContact) error {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return classifyErr(err)
	}
	return nil
}

func (r *SupplierContactGormRepository) Update(ctx context.Context, c model.SupplierContact) error {
	res := r.db.WithContext(ctx).Model(&model.SupplierContact{}).
		Where("supplier_id = ?", c.SupplierID).
		Updates(map[string]interface{}{
			"contact_person": c.ContactPerson,
			"phone_number":   c.PhoneNumber,
		})
	if res.Error != nil {
		return classifyErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SupplierContactGormRepository) DeleteBySupplierID(ctx context.Context, supplierID int64) error {
	// 0件でもエラーにしない（連絡先は任意）
	return r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Delete(&model.SupplierContact{}).Error
}
