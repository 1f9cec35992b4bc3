package models

import (
	"time"

	"gorm.io/datatypes"
)

// Car event types.
const (
	EventCarCreated       = "CAR_CREATED"
	EventCarUpdated       = "CAR_UPDATED"
	EventCarDeleted       = "CAR_DELETED"
	EventDocumentAttached = "DOCUMENT_ATTACHED"
)

// CarEvent is an append-only audit row recorded on every car mutation.
// Rows outlive their car so the trail survives deletion.
type CarEvent struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CarID     uint           `gorm:"column:car_id;not null;index" json:"carId"`
	EventType string         `gorm:"column:event_type;type:varchar(30);not null" json:"eventType"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"eventData"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (CarEvent) TableName() string {
	return "CarEvents"
}
