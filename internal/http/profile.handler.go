package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

func CreateProfile(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createProfileRequest struct {
			UserID      uuid.UUID          `json:"user_id" binding:"required"`
			Type        entity.ProfileType `json:"type" binding:"required,oneof=lecturer student"`
			Institution string             `json:"institution" binding:"required"`
			Department  string             `json:"department" binding:"required"`
			ORCID       *string            `json:"orcid"`
		}

		var request createProfileRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		var user entity.User
		if err := ctx.DB.First(&user, "id = ?", request.UserID).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "User not found")
			return
		}

		var count int64
		if err := ctx.DB.Model(&entity.Profile{}).Where("user_id = ?", request.UserID).Count(&count).Error; err != nil {
			ctx.Logger.Error("Failed to check existing profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}
		if count > 0 {
			respondError(ctx, c, apperrors.ErrConflict, "User already has a profile")
			return
		}

		profile := entity.Profile{
			UserID:      request.UserID,
			Type:        request.Type,
			Institution: request.Institution,
			Department:  request.Department,
			ORCID:       request.ORCID,
		}
		if err := ctx.DB.Create(&profile).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "Failed to create profile")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"profile": profile})
	}
}

func ListProfiles(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profiles []entity.Profile
		if err := ctx.DB.Preload("User").Order("created_at DESC").Find(&profiles).Error; err != nil {
			ctx.Logger.Error("Failed to fetch profiles", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profiles"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	}
}

func GetProfileByUserID(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var profile entity.Profile
		if err := ctx.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"profile": nil})
				return
			}
			ctx.Logger.Error("Failed to fetch profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}
