package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// CurationReview records a curator's judgment on a dataset. A reviewer
// files at most one review per dataset, enforced by the composite
// unique index.
type CurationReview struct {
	ID         uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	DatasetID  uuid.UUID    `json:"dataset_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_dataset_reviewer"`
	ReviewerID uuid.UUID    `json:"reviewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_dataset_reviewer"`
	Status     ReviewStatus `json:"status" gorm:"type:varchar(32);not null;default:'pending'"`
	Notes      *string      `json:"notes" gorm:"type:text"`
	ReviewedAt time.Time    `json:"reviewed_at" gorm:"not null"`
	CreatedAt  time.Time    `json:"created_at"`

	Reviewer *User    `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Dataset  *Dataset `json:"dataset,omitempty" gorm:"foreignKey:DatasetID"`
}

func (r *CurationReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
