package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/report"
)

func GetDashboardStatistics(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := report.Dashboard(ctx.DB)
		if err != nil {
			ctx.Logger.Error("Failed to compute dashboard statistics", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard statistics"})
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
