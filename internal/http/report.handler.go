package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/report"
)

func reportFilters(c *gin.Context) (report.Filters, bool) {
	var f report.Filters
	if raw := c.Query("start_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start year"})
			return f, false
		}
		f.StartYear = &year
	}
	if raw := c.Query("end_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end year"})
			return f, false
		}
		f.EndYear = &year
	}
	if raw := c.Query("contributor_id"); raw != "" {
		contributorID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contributor ID"})
			return f, false
		}
		f.ContributorID = &contributorID
	}
	if raw := c.Query("profile_type"); raw != "" {
		profileType := entity.ProfileType(raw)
		if !profileType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile type"})
			return f, false
		}
		f.ProfileType = &profileType
	}
	if raw := c.Query("department"); raw != "" {
		department := raw
		f.Department = &department
	}
	return f, true
}

func GetReport(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters, ok := reportFilters(c)
		if !ok {
			return
		}

		r, err := report.Generate(ctx.DB, filters)
		if err != nil {
			ctx.Logger.Error("Failed to generate report", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"report": r})
	}
}

func ExportReport(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters, ok := reportFilters(c)
		if !ok {
			return
		}

		r, err := report.Generate(ctx.DB, filters)
		if err != nil {
			ctx.Logger.Error("Failed to generate report", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		opts := report.ExportOptions{
			Format:        strings.ToLower(c.DefaultQuery("format", "csv")),
			IncludeCharts: c.Query("include_charts") == "true",
		}
		data, err := report.Export(r, opts)
		if err != nil {
			respondError(ctx, c, err, "Unsupported export format")
			return
		}

		contentType := "text/csv"
		filename := "report.csv"
		if opts.Format == "excel" {
			contentType = "application/vnd.ms-excel"
			filename = "report.xls"
		}
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, contentType, data)
	}
}
