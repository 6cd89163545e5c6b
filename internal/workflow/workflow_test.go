package workflow

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Dataset{}, &entity.DatasetFile{}, &entity.CurationReview{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role entity.UserRole) *entity.User {
	t.Helper()
	user := entity.User{
		Email:    fmt.Sprintf("%s@example.edu", uuid.NewString()),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedDataset(t *testing.T, db *gorm.DB, contributor *entity.User, status entity.DatasetStatus) *entity.Dataset {
	t.Helper()
	dataset := entity.Dataset{
		Title:           "Air Quality Measurements",
		AccessLevel:     entity.AccessPublic,
		Status:          status,
		ContributorID:   contributor.ID,
		PublicationYear: 2023,
	}
	require.NoError(t, db.Create(&dataset).Error)
	return &dataset
}

func reloadDataset(t *testing.T, db *gorm.DB, id uuid.UUID) *entity.Dataset {
	t.Helper()
	var dataset entity.Dataset
	require.NoError(t, db.First(&dataset, "id = ?", id).Error)
	return &dataset
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current entity.DatasetStatus
		outcome entity.ReviewStatus
		want    entity.DatasetStatus
		changed bool
	}{
		{entity.StatusReview, entity.ReviewApproved, entity.StatusApproved, true},
		{entity.StatusDraft, entity.ReviewApproved, entity.StatusDraft, false},
		{entity.StatusApproved, entity.ReviewApproved, entity.StatusApproved, false},
		{entity.StatusPublished, entity.ReviewApproved, entity.StatusPublished, false},
		{entity.StatusDraft, entity.ReviewRejected, entity.StatusDraft, true},
		{entity.StatusReview, entity.ReviewRejected, entity.StatusDraft, true},
		{entity.StatusApproved, entity.ReviewRejected, entity.StatusDraft, true},
		{entity.StatusPublished, entity.ReviewRejected, entity.StatusDraft, true},
		{entity.StatusReview, entity.ReviewPending, entity.StatusReview, false},
		{entity.StatusDraft, entity.ReviewPending, entity.StatusDraft, false},
	}
	for _, tt := range tests {
		got, changed := NextStatus(tt.current, tt.outcome)
		assert.Equal(t, tt.want, got, "%s + %s", tt.current, tt.outcome)
		assert.Equal(t, tt.changed, changed, "%s + %s", tt.current, tt.outcome)
	}
}

func TestCreateDatasetRoleGate(t *testing.T) {
	db := setupDB(t)

	viewer := seedUser(t, db, entity.RoleViewer)
	_, err := CreateDataset(db, CreateDatasetInput{
		Title:           "T",
		ContributorID:   viewer.ID,
		PublicationYear: 2024,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	for _, role := range []entity.UserRole{entity.RoleContributor, entity.RoleCurator, entity.RoleAdmin} {
		contributor := seedUser(t, db, role)
		dataset, err := CreateDataset(db, CreateDatasetInput{
			Title:           "T",
			ContributorID:   contributor.ID,
			PublicationYear: 2024,
		})
		require.NoError(t, err, "role %s", role)
		assert.Equal(t, entity.StatusDraft, dataset.Status)
		assert.Equal(t, entity.AccessPublic, dataset.AccessLevel)
	}
}

func TestCreateDatasetUnknownContributor(t *testing.T) {
	db := setupDB(t)

	_, err := CreateDataset(db, CreateDatasetInput{
		Title:           "T",
		ContributorID:   uuid.New(),
		PublicationYear: 2024,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateDatasetCallerSuppliedStatus(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)

	dataset, err := CreateDataset(db, CreateDatasetInput{
		Title:           "T",
		Status:          entity.StatusReview,
		ContributorID:   contributor.ID,
		PublicationYear: 2024,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReview, dataset.Status)

	_, err = CreateDataset(db, CreateDatasetInput{
		Title:           "T",
		Status:          "archived",
		ContributorID:   contributor.ID,
		PublicationYear: 2024,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateReviewApprovePromotesOnlyFromReview(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)

	underReview := seedDataset(t, db, contributor, entity.StatusReview)
	curator := seedUser(t, db, entity.RoleCurator)
	_, err := CreateReview(db, CreateReviewInput{
		DatasetID:  underReview.ID,
		ReviewerID: curator.ID,
		Status:     entity.ReviewApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, reloadDataset(t, db, underReview.ID).Status)

	for _, status := range []entity.DatasetStatus{entity.StatusDraft, entity.StatusApproved, entity.StatusPublished} {
		dataset := seedDataset(t, db, contributor, status)
		reviewer := seedUser(t, db, entity.RoleCurator)
		review, err := CreateReview(db, CreateReviewInput{
			DatasetID:  dataset.ID,
			ReviewerID: reviewer.ID,
			Status:     entity.ReviewApproved,
		})
		require.NoError(t, err, "status %s", status)
		assert.NotEqual(t, uuid.Nil, review.ID)
		assert.Equal(t, status, reloadDataset(t, db, dataset.ID).Status, "status %s must not change", status)
	}
}

func TestCreateReviewRejectAlwaysResetsToDraft(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)

	for _, status := range []entity.DatasetStatus{entity.StatusDraft, entity.StatusReview, entity.StatusApproved, entity.StatusPublished} {
		dataset := seedDataset(t, db, contributor, status)
		reviewer := seedUser(t, db, entity.RoleAdmin)
		_, err := CreateReview(db, CreateReviewInput{
			DatasetID:  dataset.ID,
			ReviewerID: reviewer.ID,
			Status:     entity.ReviewRejected,
		})
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, entity.StatusDraft, reloadDataset(t, db, dataset.ID).Status, "from %s", status)
	}
}

func TestCreateReviewPendingLeavesStatus(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusReview)
	curator := seedUser(t, db, entity.RoleCurator)

	review, err := CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: curator.ID,
		Status:     entity.ReviewPending,
	})
	require.NoError(t, err)
	assert.False(t, review.ReviewedAt.IsZero())
	assert.Equal(t, entity.StatusReview, reloadDataset(t, db, dataset.ID).Status)
}

func TestCreateReviewGates(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusReview)

	_, err := CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: contributor.ID,
		Status:     entity.ReviewApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	curator := seedUser(t, db, entity.RoleCurator)
	_, err = CreateReview(db, CreateReviewInput{
		DatasetID:  uuid.New(),
		ReviewerID: curator.ID,
		Status:     entity.ReviewApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: uuid.New(),
		Status:     entity.ReviewApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateReviewDuplicateReviewerConflict(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusReview)
	curator := seedUser(t, db, entity.RoleCurator)

	_, err := CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: curator.ID,
		Status:     entity.ReviewPending,
	})
	require.NoError(t, err)

	_, err = CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: curator.ID,
		Status:     entity.ReviewApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	other := seedUser(t, db, entity.RoleCurator)
	_, err = CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: other.ID,
		Status:     entity.ReviewApproved,
	})
	assert.NoError(t, err)
}

func TestCreateReviewExplicitReviewedAt(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusDraft)
	curator := seedUser(t, db, entity.RoleCurator)

	reviewedAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	review, err := CreateReview(db, CreateReviewInput{
		DatasetID:  dataset.ID,
		ReviewerID: curator.ID,
		Status:     entity.ReviewPending,
		ReviewedAt: &reviewedAt,
	})
	require.NoError(t, err)
	assert.True(t, review.ReviewedAt.Equal(reviewedAt))
}

func TestUpdateDatasetPartial(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusDraft)
	doi := "10.1000/xyz"
	require.NoError(t, db.Model(dataset).Update("doi", doi).Error)

	var patch DatasetPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Renamed"}`), &patch))
	updated, err := UpdateDataset(db, dataset.ID, patch)
	require.NoError(t, err)

	got := reloadDataset(t, db, dataset.ID)
	assert.Equal(t, "Renamed", got.Title)
	require.NotNil(t, got.DOI)
	assert.Equal(t, doi, *got.DOI)
	assert.Equal(t, updated.ID, got.ID)
}

func TestUpdateDatasetNullClearsDOI(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusDraft)
	require.NoError(t, db.Model(dataset).Update("doi", "10.1000/xyz").Error)

	var patch DatasetPatch
	require.NoError(t, json.Unmarshal([]byte(`{"doi":null}`), &patch))
	require.True(t, patch.DOI.Set)

	_, err := UpdateDataset(db, dataset.ID, patch)
	require.NoError(t, err)
	assert.Nil(t, reloadDataset(t, db, dataset.ID).DOI)
}

func TestUpdateDatasetDirectStatusOverwrite(t *testing.T) {
	db := setupDB(t)
	contributor := seedUser(t, db, entity.RoleContributor)
	dataset := seedDataset(t, db, contributor, entity.StatusApproved)

	var patch DatasetPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"published"}`), &patch))
	_, err := UpdateDataset(db, dataset.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPublished, reloadDataset(t, db, dataset.ID).Status)

	require.NoError(t, json.Unmarshal([]byte(`{"status":"bogus"}`), &patch))
	_, err = UpdateDataset(db, dataset.ID, patch)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateDatasetNotFound(t *testing.T) {
	db := setupDB(t)

	_, err := UpdateDataset(db, uuid.New(), DatasetPatch{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPatchFieldAbsentVsNull(t *testing.T) {
	var patch DatasetPatch
	require.NoError(t, json.Unmarshal([]byte(`{"description":"d","doi":null}`), &patch))

	assert.True(t, patch.Description.Set)
	assert.Equal(t, "d", patch.Description.Value)
	assert.True(t, patch.DOI.Set)
	assert.Nil(t, patch.DOI.Value)
	assert.False(t, patch.Title.Set)
}
