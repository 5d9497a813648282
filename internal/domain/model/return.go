package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Return struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SalesItemID  int64           `gorm:"not null;index" json:"sales_item_id"`
	Quantity     int64           `gorm:"not null" json:"quantity"`
	RefundAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"refund_amount"`
	Reason       string          `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
