package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/citation"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

func GetCitation(ctx *appcontext.Context) gin.HandlerFunc {
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

		var contributor *entity.User
		var user entity.User
		if err := ctx.DB.First(&user, "id = ?", dataset.ContributorID).Error; err == nil {
			contributor = &user
		}

		author := citation.AuthorName(contributor)
		c.JSON(http.StatusOK, gin.H{"citation": citation.Generate(&dataset, author)})
	}
}
