// Package workflow implements the dataset curation workflow: role-gated
// dataset registration, curation reviews, and the status state machine
// draft -> review -> approved -> published driven by review outcomes.
package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

// NextStatus computes the dataset status resulting from a review
// outcome. An approving review promotes the dataset only when it is
// currently under review; a rejecting review always sends it back to
// draft; a pending review changes nothing. The second return value
// reports whether the status should be written.
func NextStatus(current entity.DatasetStatus, outcome entity.ReviewStatus) (entity.DatasetStatus, bool) {
	switch outcome {
	case entity.ReviewApproved:
		if current == entity.StatusReview {
			return entity.StatusApproved, true
		}
	case entity.ReviewRejected:
		return entity.StatusDraft, true
	}
	return current, false
}

type CreateDatasetInput struct {
	Title           string               `json:"title" binding:"required"`
	Description     string               `json:"description"`
	Domain          string               `json:"domain"`
	Task            string               `json:"task"`
	License         string               `json:"license"`
	DOI             *string              `json:"doi"`
	AccessLevel     entity.AccessLevel   `json:"access_level"`
	Status          entity.DatasetStatus `json:"status"`
	ContributorID   uuid.UUID            `json:"contributor_id" binding:"required"`
	PublicationYear int                  `json:"publication_year" binding:"required"`
}

// CreateDataset registers a dataset for a contributor. The contributor
// must exist and hold a role allowed to submit datasets.
func CreateDataset(db *gorm.DB, in CreateDatasetInput) (*entity.Dataset, error) {
	var contributor entity.User
	if err := db.First(&contributor, "id = ?", in.ContributorID).Error; err != nil {
		return nil, fmt.Errorf("contributor %s: %w", in.ContributorID, apperrors.Translate(err))
	}
	if !contributor.Role.CanSubmitDatasets() {
		return nil, fmt.Errorf("role %q cannot submit datasets: %w", contributor.Role, apperrors.ErrPermissionDenied)
	}

	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, status)
	}
	access := in.AccessLevel
	if access == "" {
		access = entity.AccessPublic
	}
	if !access.Valid() {
		return nil, fmt.Errorf("%w: invalid access level %q", apperrors.ErrValidation, access)
	}

	dataset := entity.Dataset{
		Title:           in.Title,
		Description:     in.Description,
		Domain:          in.Domain,
		Task:            in.Task,
		License:         in.License,
		DOI:             in.DOI,
		AccessLevel:     access,
		Status:          status,
		ContributorID:   contributor.ID,
		PublicationYear: in.PublicationYear,
	}
	if err := db.Create(&dataset).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return &dataset, nil
}

type CreateReviewInput struct {
	DatasetID  uuid.UUID           `json:"dataset_id" binding:"required"`
	ReviewerID uuid.UUID           `json:"reviewer_id" binding:"required"`
	Status     entity.ReviewStatus `json:"status" binding:"required"`
	Notes      *string             `json:"notes"`
	ReviewedAt *time.Time          `json:"reviewed_at"`
}

// CreateReview files a curation review and applies the resulting status
// transition to the dataset. The reviewer must hold the curator or
// admin role, and may file at most one review per dataset. The review
// record is created even when the dataset status is left unchanged.
func CreateReview(db *gorm.DB, in CreateReviewInput) (*entity.CurationReview, error) {
	var reviewer entity.User
	if err := db.First(&reviewer, "id = ?", in.ReviewerID).Error; err != nil {
		return nil, fmt.Errorf("reviewer %s: %w", in.ReviewerID, apperrors.Translate(err))
	}
	if !reviewer.Role.CanReview() {
		return nil, fmt.Errorf("role %q cannot review datasets: %w", reviewer.Role, apperrors.ErrPermissionDenied)
	}

	var dataset entity.Dataset
	if err := db.First(&dataset, "id = ?", in.DatasetID).Error; err != nil {
		return nil, fmt.Errorf("dataset %s: %w", in.DatasetID, apperrors.Translate(err))
	}

	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid review status %q", apperrors.ErrValidation, in.Status)
	}

	var count int64
	if err := db.Model(&entity.CurationReview{}).
		Where("dataset_id = ? AND reviewer_id = ?", in.DatasetID, in.ReviewerID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("reviewer %s already reviewed dataset %s: %w", in.ReviewerID, in.DatasetID, apperrors.ErrConflict)
	}

	reviewedAt := time.Now()
	if in.ReviewedAt != nil {
		reviewedAt = *in.ReviewedAt
	}
	review := entity.CurationReview{
		DatasetID:  in.DatasetID,
		ReviewerID: in.ReviewerID,
		Status:     in.Status,
		Notes:      in.Notes,
		ReviewedAt: reviewedAt,
	}
	if err := db.Create(&review).Error; err != nil {
		return nil, apperrors.Translate(err)
	}

	if next, changed := NextStatus(dataset.Status, review.Status); changed {
		if err := db.Model(&dataset).Update("status", next).Error; err != nil {
			return nil, err
		}
	}
	return &review, nil
}

// UpdateDataset applies a partial update. It does not validate status
// transitions: direct overwrites are allowed as an administrative
// correction path.
func UpdateDataset(db *gorm.DB, id uuid.UUID, patch DatasetPatch) (*entity.Dataset, error) {
	var dataset entity.Dataset
	if err := db.First(&dataset, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("dataset %s: %w", id, apperrors.Translate(err))
	}

	updates, err := patch.changes()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := db.Model(&dataset).Updates(updates).Error; err != nil {
			return nil, apperrors.Translate(err)
		}
	}
	return &dataset, nil
}
