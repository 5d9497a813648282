package model

import "time"

type Supplier struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 仕入先につき0..1件
type SupplierContact struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID    int64     `gorm:"not null;uniqueIndex" json:"supplier_id"`
	ContactPerson string    `gorm:"type:varchar(255)" json:"contact_person"`
	PhoneNumber   string    `gorm:"type:varchar(50)" json:"phone_number"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
