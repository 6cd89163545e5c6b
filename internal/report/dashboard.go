package report

import (
	"time"

	"gorm.io/gorm"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

type DashboardStats struct {
	TotalDatasets     int64 `json:"totalDatasets"`
	PublishedDatasets int64 `json:"publishedDatasets"`
	DatasetsInReview  int64 `json:"datasetsInReview"`
	TotalContributors int64 `json:"totalContributors"`
	TotalCurators     int64 `json:"totalCurators"`
	RecentSubmissions int64 `json:"recentSubmissions"`
	PendingReviews    int64 `json:"pendingReviews"`
}

// Dashboard takes a snapshot of repository-wide counters. Recent
// submissions cover the last 30 days by creation time, boundary
// inclusive.
func Dashboard(db *gorm.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}
	cutoff := time.Now().AddDate(0, 0, -30)

	queries := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalDatasets, db.Model(&entity.Dataset{})},
		{&stats.PublishedDatasets, db.Model(&entity.Dataset{}).Where("status = ?", entity.StatusPublished)},
		{&stats.DatasetsInReview, db.Model(&entity.Dataset{}).Where("status = ?", entity.StatusReview)},
		{&stats.TotalContributors, db.Model(&entity.User{}).Where("role = ?", entity.RoleContributor)},
		{&stats.TotalCurators, db.Model(&entity.User{}).Where("role = ?", entity.RoleCurator)},
		{&stats.RecentSubmissions, db.Model(&entity.Dataset{}).Where("created_at >= ?", cutoff)},
		{&stats.PendingReviews, db.Model(&entity.CurationReview{}).Where("status = ?", entity.ReviewPending)},
	}
	for _, q := range queries {
		if err := q.query.Count(q.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}
