package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileType string

const (
	ProfileLecturer ProfileType = "lecturer"
	ProfileStudent  ProfileType = "student"
)

func (t ProfileType) Valid() bool {
	return t == ProfileLecturer || t == ProfileStudent
}

// Profile holds the academic metadata of a user. A user has at most one
// profile, enforced by the unique index on user_id.
type Profile struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Type        ProfileType `gorm:"type:varchar(32);not null" json:"type"`
	Institution string      `gorm:"type:varchar(255);not null" json:"institution"`
	Department  string      `gorm:"type:varchar(255);not null" json:"department"`
	ORCID       *string     `gorm:"column:orcid;type:varchar(64)" json:"orcid"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
