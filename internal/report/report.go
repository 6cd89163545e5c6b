// Package report computes cross-entity statistics over datasets. Year
// and contributor filters scope every statistic; profile filters only
// take effect on the aggregates that join through the contributor's
// profile, because a dataset carries no department of its own.
package report

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

type Filters struct {
	StartYear     *int
	EndYear       *int
	ContributorID *uuid.UUID
	ProfileType   *entity.ProfileType
	Department    *string
}

// baseScope applies the dataset-only filters: publication year range
// and contributor.
func (f Filters) baseScope(db *gorm.DB) *gorm.DB {
	q := db.Model(&entity.Dataset{})
	if f.StartYear != nil {
		q = q.Where("datasets.publication_year >= ?", *f.StartYear)
	}
	if f.EndYear != nil {
		q = q.Where("datasets.publication_year <= ?", *f.EndYear)
	}
	if f.ContributorID != nil {
		q = q.Where("datasets.contributor_id = ?", *f.ContributorID)
	}
	return q
}

// contributorScope extends baseScope with the user join and a left join
// to profiles, and applies the profile filters. Keep the asymmetry:
// profile filters must never leak into baseScope.
func (f Filters) contributorScope(db *gorm.DB) *gorm.DB {
	q := f.baseScope(db).
		Joins("JOIN users ON users.id = datasets.contributor_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id")
	if f.ProfileType != nil {
		q = q.Where("profiles.type = ?", *f.ProfileType)
	}
	if f.Department != nil {
		q = q.Where("profiles.department = ?", *f.Department)
	}
	return q
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

type ContributorCount struct {
	ContributorID uuid.UUID `json:"contributor_id"`
	Name          string    `json:"name"`
	Count         int64     `json:"count"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type StudentInvolvement struct {
	Contributors int64 `json:"contributors"`
	Datasets     int64 `json:"datasets"`
}

type Report struct {
	TotalDatasets         int64              `json:"totalDatasets"`
	DatasetsByYear        []YearCount        `json:"datasetsByYear"`
	DatasetsByContributor []ContributorCount `json:"datasetsByContributor"`
	StudentInvolvement    StudentInvolvement `json:"studentInvolvement"`
	DepartmentBreakdown   []DepartmentCount  `json:"departmentBreakdown"`
}

// Generate computes the report statistics under the given filters.
func Generate(db *gorm.DB, f Filters) (*Report, error) {
	r := &Report{
		DatasetsByYear:        []YearCount{},
		DatasetsByContributor: []ContributorCount{},
		DepartmentBreakdown:   []DepartmentCount{},
	}

	if err := f.baseScope(db).Count(&r.TotalDatasets).Error; err != nil {
		return nil, err
	}

	if err := f.baseScope(db).
		Select("datasets.publication_year AS year, COUNT(*) AS count").
		Group("datasets.publication_year").
		Order("year ASC").
		Scan(&r.DatasetsByYear).Error; err != nil {
		return nil, err
	}

	if err := f.contributorScope(db).
		Select("users.id AS contributor_id, COALESCE(NULLIF(users.name, ''), users.email) AS name, COUNT(datasets.id) AS count").
		Group("users.id, users.name, users.email").
		Order("count DESC").
		Scan(&r.DatasetsByContributor).Error; err != nil {
		return nil, err
	}

	var student struct {
		Contributors int64
		Datasets     int64
	}
	if err := f.baseScope(db).
		Joins("JOIN users ON users.id = datasets.contributor_id").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.type = ?", entity.ProfileStudent).
		Select("COUNT(DISTINCT datasets.contributor_id) AS contributors, COUNT(datasets.id) AS datasets").
		Scan(&student).Error; err != nil {
		return nil, err
	}
	r.StudentInvolvement = StudentInvolvement{Contributors: student.Contributors, Datasets: student.Datasets}

	if err := f.contributorScope(db).
		Where("profiles.department IS NOT NULL").
		Select("profiles.department AS department, COUNT(datasets.id) AS count").
		Group("profiles.department").
		Order("count DESC").
		Scan(&r.DepartmentBreakdown).Error; err != nil {
		return nil, err
	}

	return r, nil
}
