package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/utils"
)

func CreateUser(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createUserRequest struct {
			Email    string          `json:"email" binding:"required,email"`
			Password string          `json:"password" binding:"required,min=8"`
			Role     entity.UserRole `json:"role" binding:"omitempty,oneof=viewer contributor curator admin"`
			Name     *string         `json:"name"`
			ORCID    *string         `json:"orcid"`
		}

		var request createUserRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		hash, err := utils.HashPassword(request.Password)
		if err != nil {
			ctx.Logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		role := request.Role
		if role == "" {
			role = entity.RoleViewer
		}

		user := entity.User{
			Email:    request.Email,
			Password: hash,
			Role:     role,
			Name:     request.Name,
			ORCID:    request.ORCID,
		}
		if err := ctx.DB.Create(&user).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "Failed to create user")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

func ListUsers(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []entity.User
		if err := ctx.DB.Order("created_at DESC").Find(&users).Error; err != nil {
			ctx.Logger.Error("Failed to fetch users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

func UpdateUser(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		type updateUserRequest struct {
			Email    *string          `json:"email" binding:"omitempty,email"`
			Password *string          `json:"password" binding:"omitempty,min=8"`
			Role     *entity.UserRole `json:"role" binding:"omitempty,oneof=viewer contributor curator admin"`
			Name     *string          `json:"name"`
			ORCID    *string          `json:"orcid"`
		}

		var request updateUserRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		var user entity.User
		if err := ctx.DB.First(&user, "id = ?", userID).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "User not found")
			return
		}

		updates := map[string]interface{}{}
		if request.Email != nil && *request.Email != user.Email {
			var count int64
			if err := ctx.DB.Model(&entity.User{}).Where("email = ? AND id <> ?", *request.Email, userID).Count(&count).Error; err != nil {
				ctx.Logger.Error("Failed to check email uniqueness", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
			if count > 0 {
				respondError(ctx, c, apperrors.ErrConflict, "Email already in use")
				return
			}
			updates["email"] = *request.Email
		}
		if request.Password != nil {
			hash, err := utils.HashPassword(*request.Password)
			if err != nil {
				ctx.Logger.Error("Failed to hash password", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			updates["password"] = hash
		}
		if request.Role != nil {
			updates["role"] = *request.Role
		}
		if request.Name != nil {
			updates["name"] = *request.Name
		}
		if request.ORCID != nil {
			updates["orcid"] = *request.ORCID
		}

		if len(updates) > 0 {
			if err := ctx.DB.Model(&user).Updates(updates).Error; err != nil {
				respondError(ctx, c, apperrors.Translate(err), "Failed to update user")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func Login(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type loginRequest struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		var request loginRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		var user entity.User
		if err := ctx.DB.First(&user, "email = ?", request.Email).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "user": nil})
			return
		}
		if !utils.CheckPassword(user.Password, request.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "user": nil})
			return
		}

		token, err := utils.GenerateJWT(user.ID.String(), ctx.JWTSecret)
		if err != nil {
			ctx.Logger.Error("Failed to generate token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	}
}
