package models

import "time"

// AuditLog records admin moderation actions for later inspection.
type AuditLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AdminID      uint      `json:"adminID" gorm:"index"`
	Action       string    `json:"action" gorm:"not null;index"`
	ResourceType string    `json:"resourceType" gorm:"not null"`
	ResourceID   uint      `json:"resourceID"`
	BeforeJSON   string    `json:"beforeJSON" gorm:"type:text"`
	AfterJSON    string    `json:"afterJSON" gorm:"type:text"`
	IPAddress    string    `json:"ipAddress"`
	CreatedAt    time.Time `json:"createdAt"`
}
