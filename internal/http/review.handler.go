package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/workflow"
)

func CreateReview(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		review, err := workflow.CreateReview(ctx.DB, input)
		if err != nil {
			respondError(ctx, c, err, "Failed to create review")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}

func ListReviews(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := ctx.DB.Model(&entity.CurationReview{}).
			Select("curation_reviews.*, COALESCE(NULLIF(users.name, ''), users.email) AS reviewer_name, datasets.title AS dataset_title").
			Joins("JOIN users ON users.id = curation_reviews.reviewer_id").
			Joins("JOIN datasets ON datasets.id = curation_reviews.dataset_id")

		if raw := c.Query("dataset_id"); raw != "" {
			datasetID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID"})
				return
			}
			q = q.Where("curation_reviews.dataset_id = ?", datasetID)
		}
		if raw := c.Query("reviewer_id"); raw != "" {
			reviewerID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID"})
				return
			}
			q = q.Where("curation_reviews.reviewer_id = ?", reviewerID)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("curation_reviews.status = ?", status)
		}
		if raw := c.Query("from"); raw != "" {
			from, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
				return
			}
			q = q.Where("curation_reviews.reviewed_at >= ?", from)
		}
		if raw := c.Query("to"); raw != "" {
			to, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
				return
			}
			q = q.Where("curation_reviews.reviewed_at <= ?", to)
		}

		var reviews []struct {
			ID           uuid.UUID           `json:"id"`
			DatasetID    uuid.UUID           `json:"dataset_id"`
			ReviewerID   uuid.UUID           `json:"reviewer_id"`
			Status       entity.ReviewStatus `json:"status"`
			Notes        *string             `json:"notes"`
			ReviewedAt   time.Time           `json:"reviewed_at"`
			CreatedAt    time.Time           `json:"created_at"`
			ReviewerName string              `json:"reviewer_name"`
			DatasetTitle string              `json:"dataset_title"`
		}
		if err := q.Order("curation_reviews.reviewed_at DESC").Scan(&reviews).Error; err != nil {
			ctx.Logger.Error("Failed to fetch reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}
