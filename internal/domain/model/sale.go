package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64          `gorm:"index" json:"user_id,omitempty"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

type SalesItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID    int64           `gorm:"not null;index" json:"sale_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	ItemTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"item_total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
