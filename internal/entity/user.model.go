package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleViewer      UserRole = "viewer"
	RoleContributor UserRole = "contributor"
	RoleCurator     UserRole = "curator"
	RoleAdmin       UserRole = "admin"
)

// CanSubmitDatasets reports whether the role is allowed to register datasets.
func (r UserRole) CanSubmitDatasets() bool {
	return r == RoleContributor || r == RoleCurator || r == RoleAdmin
}

// CanReview reports whether the role is allowed to file curation reviews.
func (r UserRole) CanReview() bool {
	return r == RoleCurator || r == RoleAdmin
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleViewer, RoleContributor, RoleCurator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(32);not null;default:'viewer'"`
	Name      *string   `json:"name" gorm:"type:varchar(255)"`
	ORCID     *string   `json:"orcid" gorm:"column:orcid;type:varchar(64)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile  *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Datasets []Dataset `json:"datasets,omitempty" gorm:"foreignKey:ContributorID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName is the name used in listings and citations: the display
// name when set, the email otherwise.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
