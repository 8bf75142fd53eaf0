package models

import (
	"time"

	"github.com/google/uuid"
)

// File captures metadata for uploaded objects. FileSrc is the object-store
// key; public URLs are assembled at response time, never persisted.
type File struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Encoding  string    `gorm:"column:encoding"`
	MimeType  string    `gorm:"column:mime_type;not null"`
	SizeBytes int64     `gorm:"column:size_bytes;not null"`
	FileSrc   string    `gorm:"column:file_src;not null;unique"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
