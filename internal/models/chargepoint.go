package models

import (
	"time"
)

type Status string

const (
	StatusReady    Status = "ready"
	StatusCharging Status = "charging"
	StatusWaiting  Status = "waiting"
	StatusError    Status = "error"
)

// StatusChoices lists every valid charge point status, in declaration order.
var StatusChoices = []Status{StatusReady, StatusCharging, StatusWaiting, StatusError}

func (s Status) Valid() bool {
	for _, c := range StatusChoices {
		if s == c {
			return true
		}
	}
	return false
}

// ChargePoint is a charging station unit. The name is unique across every
// row, soft-deleted ones included: a dead row keeps occupying the namespace.
// DeletedAt is a plain nullable column, not gorm.DeletedAt; visibility is
// decided by the explicit repository scopes, never implicitly.
type ChargePoint struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:32;uniqueIndex;not null" json:"name"`
	Status    Status     `gorm:"size:16;index;default:ready" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Connectors []Connector `gorm:"foreignKey:ChargePointID;constraint:OnDelete:CASCADE" json:"connectors,omitempty"`
}

func (cp *ChargePoint) Alive() bool {
	return cp.DeletedAt == nil
}
