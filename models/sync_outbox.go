package models

import (
	"time"
)

const (
	OutboxPending = "pending"
	OutboxDone    = "done"
	OutboxFailed  = "failed"
)

// SyncOutbox holds a remote mutation that could not be delivered when the
// local write happened.
type SyncOutbox struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Entity      string     `gorm:"column:entity;type:varchar(50);not null;index:idx_outbox_entity" json:"entity"`
	RecordID    string     `gorm:"column:recordId;type:varchar(64);not null;index:idx_outbox_entity" json:"recordId"`
	Method      string     `gorm:"column:method;type:varchar(10);not null" json:"method"`
	Path        string     `gorm:"column:path;type:varchar(255);not null" json:"path"`
	Body        *string    `gorm:"column:body;type:text" json:"body"`
	Status      string     `gorm:"column:status;type:varchar(15);not null;default:'pending';index:idx_outbox_status" json:"status"`
	Attempts    int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError   *string    `gorm:"column:lastError;type:text" json:"lastError"`
	CreatedAt   time.Time  `gorm:"column:createdAt;index:idx_outbox_status" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
	ProcessedAt *time.Time `gorm:"column:processedAt" json:"processedAt"`
}

func (SyncOutbox) TableName() string {
	return "sync_outbox"
}
