package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/workflow"
)

func CreateDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.CreateDatasetInput
		if err := c.ShouldBindJSON(&input); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		dataset, err := workflow.CreateDataset(ctx.DB, input)
		if err != nil {
			respondError(ctx, c, err, "Failed to create dataset")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"dataset": dataset})
	}
}

func GetDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasetID, err := uuid.Parse(c.Param("datasetID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID"})
			return
		}

		var dataset entity.Dataset
		if err := ctx.DB.First(&dataset, "id = ?", datasetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"dataset": nil})
				return
			}
			ctx.Logger.Error("Failed to fetch dataset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dataset"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"dataset": dataset})
	}
}

func UpdateDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasetID, err := uuid.Parse(c.Param("datasetID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID"})
			return
		}

		var patch workflow.DatasetPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		dataset, err := workflow.UpdateDataset(ctx.DB, datasetID, patch)
		if err != nil {
			respondError(ctx, c, err, "Failed to update dataset")
			return
		}

		c.JSON(http.StatusOK, gin.H{"dataset": dataset})
	}
}

func SearchDatasets(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := ctx.DB.Model(&entity.Dataset{})

		if query := c.Query("query"); query != "" {
			pattern := "%" + strings.ToLower(query) + "%"
			q = q.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(domain) LIKE ? OR LOWER(task) LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
		if domain := c.Query("domain"); domain != "" {
			q = q.Where("domain = ?", domain)
		}
		if task := c.Query("task"); task != "" {
			q = q.Where("task = ?", task)
		}
		if year := c.Query("publication_year"); year != "" {
			y, err := strconv.Atoi(year)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication year"})
				return
			}
			q = q.Where("publication_year = ?", y)
		}
		if access := c.Query("access_level"); access != "" {
			q = q.Where("access_level = ?", access)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		offset := 0
		if raw := c.Query("offset"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				offset = n
			}
		}

		var datasets []entity.Dataset
		if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&datasets).Error; err != nil {
			ctx.Logger.Error("Failed to search datasets", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search datasets"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"datasets": datasets})
	}
}

func GetDatasetsByContributor(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var datasets []entity.Dataset
		if err := ctx.DB.Where("contributor_id = ?", userID).Order("created_at DESC").Find(&datasets).Error; err != nil {
			ctx.Logger.Error("Failed to fetch datasets", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch datasets"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"datasets": datasets})
	}
}
