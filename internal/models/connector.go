package models

import (
	"time"
)

// Connector is a single EVSE socket belonging to a charge point. Connectors
// are managed through the admin surface only; the public API exposes them as
// a read-only projection nested under their owner.
type Connector struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	EVSENumber    string     `gorm:"column:evse_number;size:32;uniqueIndex;not null" json:"evse_number"`
	ChargePointID uint       `gorm:"index;not null" json:"charge_point_id"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `gorm:"index" json:"deleted_at"`

	ChargePoint ChargePoint `gorm:"foreignKey:ChargePointID" json:"-"`
}

func (cn *Connector) Alive() bool {
	return cn.DeletedAt == nil
}
