package model

import "time"

type PurchaseOrderStatus string

const (
	POStatusPending  PurchaseOrderStatus = "pending"
	POStatusShipped  PurchaseOrderStatus = "shipped"
	POStatusReceived PurchaseOrderStatus = "received"
	POStatusCanceled PurchaseOrderStatus = "canceled"
)

// received/canceledからは遷移できない
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == POStatusReceived || s == POStatusCanceled
}

func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case POStatusPending, POStatusShipped, POStatusReceived, POStatusCanceled:
		return true
	}
	return false
}

type PurchaseOrder struct {
	ID         int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID int64               `gorm:"not null;index" json:"supplier_id"`
	ProductID  int64               `gorm:"not null;index" json:"product_id"`
	Quantity   int64               `gorm:"not null" json:"quantity"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt  time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
