package model

import "time"

type AuditAction string

const (
	AuditActionAdvanceStatus AuditAction = "ADVANCE_STATUS"
	AuditActionCancelOrder   AuditAction = "CANCEL_ORDER"
)

// AuditLog records who moved an order and from which status to which.
type AuditLog struct {
	ID           string      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Actor        string      `gorm:"type:varchar(100);not null" json:"actor"`
	Action       AuditAction `gorm:"type:varchar(32);not null" json:"action"`
	OrderID      string      `gorm:"type:varchar(100);not null;index" json:"orderId"`
	BeforeStatus OrderStatus `gorm:"type:varchar(32)" json:"beforeStatus"`
	AfterStatus  OrderStatus `gorm:"type:varchar(32)" json:"afterStatus"`
	Reason       string      `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt    time.Time   `gorm:"not null;index" json:"createdAt"`
}
