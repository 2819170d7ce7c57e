package models

import "time"

type AuditAction string

const (
	AuditActionReplace AuditAction = "replace" // Toplu yükleme
	AuditActionAppend  AuditAction = "append"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionClear   AuditAction = "clear"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Aynı işlemden doğan logları gruplamak için
	CorrelationID string `gorm:"size:36;index" json:"correlation_id"`

	Platform string `gorm:"size:20;index" json:"platform"`

	// Hangi kayıt? (ör: "product", "order_line", "exchange_rate", "platform")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityKey  string `gorm:"size:255" json:"entity_key"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Önceki ve sonraki hal (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
