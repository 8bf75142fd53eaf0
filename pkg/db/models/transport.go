package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transportly/transportly-backend/pkg/enums"
)

// TransportDescription is the technical sheet embedded in a transport row.
type TransportDescription struct {
	Description *string             `gorm:"column:description"`
	MaxSpeed    *int                `gorm:"column:max_speed"`
	Type        enums.TransportType `gorm:"column:type;type:text;not null"`
	Weight      *float64            `gorm:"column:weight;type:numeric(10,2)"`
	Seats       *int                `gorm:"column:seats"`
	Power       *int                `gorm:"column:power"`
	Color       *string             `gorm:"column:color"`
	LicenceType *enums.LicenceType  `gorm:"column:licence_type;type:text"`
}

// Transport represents a rentable vehicle listing.
type Transport struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string                `gorm:"column:title;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Status      enums.TransportStatus `gorm:"column:status;type:text;not null;default:FREE"`
	Description TransportDescription  `gorm:"embedded"`
	ImageID     *uuid.UUID            `gorm:"column:image_id;type:uuid"`
	Image       *File                 `gorm:"foreignKey:ImageID"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
