package files

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transportly/transportly-backend/pkg/db/models"
)

// FileDTO is the transport shape for uploaded files. FileSrc carries the
// fully-qualified public URL, never the raw object key.
type FileDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Encoding  string    `json:"encoding,omitempty"`
	MimeType  string    `json:"mimeType"`
	SizeBytes int64     `json:"size"`
	FileSrc   string    `json:"fileSrc"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicURL joins the media base URL and an object key.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// FromModel maps a file row to its DTO, rewriting the stored key into a
// public URL under the provided base.
func FromModel(f *models.File, base string) *FileDTO {
	if f == nil {
		return nil
	}
	return &FileDTO{
		ID:        f.ID,
		Name:      f.Name,
		Encoding:  f.Encoding,
		MimeType:  f.MimeType,
		SizeBytes: f.SizeBytes,
		FileSrc:   PublicURL(base, f.FileSrc),
		CreatedAt: f.CreatedAt,
	}
}
