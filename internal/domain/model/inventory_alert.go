package model

import "time"

const AlertTypeLowStock = "low_stock"

// (product, alert_type)につき1件だけ（upsert運用）
type InventoryAlert struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64     `gorm:"not null;uniqueIndex:idx_alert_product_type" json:"product_id"`
	AlertType   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_alert_product_type" json:"alert_type"`
	Threshold   int64     `gorm:"not null" json:"threshold"`
	LastAlertAt time.Time `gorm:"not null" json:"last_alert_at"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
