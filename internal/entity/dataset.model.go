package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DatasetStatus string

const (
	StatusDraft     DatasetStatus = "draft"
	StatusReview    DatasetStatus = "review"
	StatusApproved  DatasetStatus = "approved"
	StatusPublished DatasetStatus = "published"
)

func (s DatasetStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusApproved, StatusPublished:
		return true
	}
	return false
}

type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessPrivate    AccessLevel = "private"
	AccessRestricted AccessLevel = "restricted"
)

func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessRestricted:
		return true
	}
	return false
}

type Dataset struct {
	ID              uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	Title           string        `json:"title" gorm:"type:varchar(255);not null"`
	Description     string        `json:"description" gorm:"type:text"`
	Domain          string        `json:"domain" gorm:"type:varchar(255)"`
	Task            string        `json:"task" gorm:"type:varchar(255)"`
	License         string        `json:"license" gorm:"type:varchar(100)"`
	DOI             *string       `json:"doi" gorm:"column:doi;type:varchar(255)"`
	AccessLevel     AccessLevel   `json:"access_level" gorm:"type:varchar(32);not null;default:'public'"`
	Status          DatasetStatus `json:"status" gorm:"type:varchar(32);not null;default:'draft'"`
	ContributorID   uuid.UUID     `json:"contributor_id" gorm:"type:uuid;not null;index"`
	PublicationYear int           `json:"publication_year" gorm:"not null"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Contributor *User            `json:"contributor,omitempty" gorm:"foreignKey:ContributorID"`
	Files       []DatasetFile    `json:"files,omitempty" gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE"`
	Reviews     []CurationReview `json:"reviews,omitempty" gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE"`
}

func (d *Dataset) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
