package models

import (
	"time"

	"github.com/google/uuid"
)

// Rent links a user to a transport for a period of time. StoppedAt is NULL
// while the rent is active; at most one active rent exists per transport.
type Rent struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	User        *User      `gorm:"foreignKey:UserID"`
	TransportID uuid.UUID  `gorm:"column:transport_id;type:uuid;not null;index"`
	Transport   *Transport `gorm:"foreignKey:TransportID"`
	FromDate    time.Time  `gorm:"column:from_date;not null"`
	ToDate      *time.Time `gorm:"column:to_date"`
	StoppedAt   *time.Time `gorm:"column:stopped_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
