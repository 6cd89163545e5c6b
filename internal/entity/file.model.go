package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxFileSize is the upper bound for a dataset file, in bytes (100 MiB).
const MaxFileSize = 100 * 1024 * 1024

// AllowedFileType checks a declared file type against the supported
// formats. The check is case-insensitive; the stored value keeps the
// original casing.
func AllowedFileType(t string) bool {
	return strings.EqualFold(t, "csv") || strings.EqualFold(t, "json") || strings.EqualFold(t, "arff")
}

type DatasetFile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	DatasetID uuid.UUID `json:"dataset_id" gorm:"type:uuid;not null;index"`
	FileName  string    `json:"file_name" gorm:"type:varchar(255);not null"`
	FilePath  string    `json:"file_path" gorm:"type:varchar(512);not null"`
	FileSize  int64     `json:"file_size" gorm:"not null"`
	FileType  string    `json:"file_type" gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *DatasetFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
