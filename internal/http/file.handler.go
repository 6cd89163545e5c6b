package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/preview"
)

func UploadDatasetFile(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasetID, err := uuid.Parse(c.Param("datasetID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID"})
			return
		}

		var dataset entity.Dataset
		if err := ctx.DB.First(&dataset, "id = ?", datasetID).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "Dataset not found")
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			ctx.Logger.Error("Failed to get file from request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
			return
		}

		fileType := c.PostForm("file_type")
		if fileType == "" {
			fileType = filepath.Ext(file.Filename)
			if len(fileType) > 0 {
				fileType = fileType[1:]
			}
		}
		if !entity.AllowedFileType(fileType) {
			respondError(ctx, c, apperrors.ErrValidation, "File type must be csv, json or arff")
			return
		}
		if file.Size < 0 || file.Size > entity.MaxFileSize {
			respondError(ctx, c, apperrors.ErrValidation, "File size out of bounds")
			return
		}

		storagePath := filepath.Join(ctx.UploadDir, datasetID.String(), uuid.NewString()+"_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, storagePath); err != nil {
			ctx.Logger.Error("Failed to store file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		datasetFile := entity.DatasetFile{
			DatasetID: datasetID,
			FileName:  file.Filename,
			FilePath:  storagePath,
			FileSize:  file.Size,
			FileType:  fileType,
		}
		if err := ctx.DB.Create(&datasetFile).Error; err != nil {
			ctx.Logger.Error("Failed to store file record", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file record"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"file": datasetFile})
	}
}

func GetDatasetFiles(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasetID, err := uuid.Parse(c.Param("datasetID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID"})
			return
		}

		var dataset entity.Dataset
		if err := ctx.DB.First(&dataset, "id = ?", datasetID).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "Dataset not found")
			return
		}

		var files []entity.DatasetFile
		if err := ctx.DB.Where("dataset_id = ?", datasetID).Order("created_at DESC").Find(&files).Error; err != nil {
			ctx.Logger.Error("Failed to fetch files", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"files": files})
	}
}

// PreviewDatasetFile returns a bounded preview of a stored file.
// A missing file on disk or an unrecognized format degrades to a null
// preview instead of an error.
func PreviewDatasetFile(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID, err := uuid.Parse(c.Param("fileID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
			return
		}

		var file entity.DatasetFile
		if err := ctx.DB.First(&file, "id = ?", fileID).Error; err != nil {
			respondError(ctx, c, apperrors.Translate(err), "File not found")
			return
		}

		content, err := os.ReadFile(file.FilePath)
		if err != nil {
			ctx.Logger.Warn("Failed to read stored file", zap.String("path", file.FilePath), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"preview": nil})
			return
		}

		format, err := preview.DetectFormat(file.FileName, file.FileType)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"preview": nil})
			return
		}

		result, err := preview.Parse(content, format)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"preview": nil})
			return
		}

		c.JSON(http.StatusOK, gin.H{"preview": result})
	}
}
